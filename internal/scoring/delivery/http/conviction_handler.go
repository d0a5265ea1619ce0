package http

import (
	"errors"
	"net/http"
	"strconv"

	"insider-conviction/internal/conviction"
	"insider-conviction/internal/scoring/dto"
	"insider-conviction/internal/scoring/service"
	"insider-conviction/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ConvictionHandler handles HTTP requests for conviction results.
type ConvictionHandler struct {
	convictionService service.ConvictionService
	scoringService    service.ScoringService
	logger            *logger.Logger
}

// NewConvictionHandler creates a new ConvictionHandler.
func NewConvictionHandler(convictionService service.ConvictionService, scoringService service.ScoringService, logger *logger.Logger) *ConvictionHandler {
	return &ConvictionHandler{convictionService: convictionService, scoringService: scoringService, logger: logger}
}

// RegisterRoutes registers the conviction routes to the Echo group.
func (h *ConvictionHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetLatest)
	g.POST("/score", h.Score)
	g.GET("/:ticker", h.GetByTicker)
	g.GET("/:ticker/explain", h.Explain)
}

// GetLatest godoc
// @Summary List the latest conviction results
// @Description Results from the most recent scoring cycle, strongest first
// @Tags convictions
// @Produce  json
// @Param   category  query  string  false  "Filter by category (SKIP, WEAK, WATCH, ACCUMULATE, BUY, STRONG_BUY, INDETERMINATE)"
// @Param   limit     query  int     false  "Maximum results (default 50, max 500)"
// @Success 200 {array} dto.ConvictionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /convictions [get]
func (h *ConvictionHandler) GetLatest(c echo.Context) error {
	limit, err := parseLimit(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid limit"})
	}

	results, err := h.convictionService.GetLatest(c.Request().Context(), c.QueryParam("category"), limit)
	if errors.Is(err, service.ErrUnknownBand) {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}
	if err != nil {
		h.logger.Error("Failed to get latest convictions", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get convictions"})
	}
	return c.JSON(http.StatusOK, results)
}

// GetByTicker godoc
// @Summary Get conviction results for a ticker
// @Description Stored results for one ticker, newest first
// @Tags convictions
// @Produce  json
// @Param   ticker  path   string  true   "Ticker symbol"
// @Param   limit   query  int     false  "Maximum results (default 50, max 500)"
// @Success 200 {array} dto.ConvictionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /convictions/{ticker} [get]
func (h *ConvictionHandler) GetByTicker(c echo.Context) error {
	limit, err := parseLimit(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid limit"})
	}

	results, err := h.convictionService.GetByTicker(c.Request().Context(), c.Param("ticker"), limit)
	if errors.Is(err, service.ErrConvictionNotFound) {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	}
	if err != nil {
		h.logger.Error("Failed to get convictions for ticker", logger.ErrorField(err), logger.StringField("ticker", c.Param("ticker")))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get convictions"})
	}
	return c.JSON(http.StatusOK, results)
}

// Explain godoc
// @Summary Explain the latest result for a ticker
// @Description Per-component values, configured weights and re-normalized weights
// @Tags convictions
// @Produce  json
// @Param   ticker  path  string  true  "Ticker symbol"
// @Success 200 {object} conviction.Breakdown
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /convictions/{ticker}/explain [get]
func (h *ConvictionHandler) Explain(c echo.Context) error {
	breakdown, err := h.convictionService.Explain(c.Request().Context(), c.Param("ticker"))
	if errors.Is(err, service.ErrConvictionNotFound) {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	}
	if err != nil {
		h.logger.Error("Failed to explain conviction", logger.ErrorField(err), logger.StringField("ticker", c.Param("ticker")))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to explain conviction"})
	}
	return c.JSON(http.StatusOK, breakdown)
}

// Score godoc
// @Summary Score a batch of insider purchases
// @Description Scores the posted transactions against the current signal cache without storing them
// @Tags convictions
// @Accept  json
// @Produce  json
// @Param   batch  body  dto.ScoreRequest  true  "Transactions to score"
// @Success 200 {object} dto.ScoreResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /convictions/score [post]
func (h *ConvictionHandler) Score(c echo.Context) error {
	var req dto.ScoreRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}
	if len(req.Transactions) == 0 {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "No transactions to score"})
	}

	results, err := h.scoringService.Score(c.Request().Context(), service.ToTransactions(req.Transactions))
	resp := dto.ScoreResponse{Results: make([]conviction.Breakdown, 0, len(results))}

	var malformed *conviction.MalformedBatchError
	if errors.As(err, &malformed) {
		for _, r := range malformed.Rejections {
			resp.Rejected = append(resp.Rejected, dto.Rejection{Index: r.Index, Ticker: r.Ticker, Reason: r.Reason.Error()})
		}
	} else if err != nil {
		h.logger.Error("Failed to score transactions", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to score transactions"})
	}

	for _, r := range results {
		resp.Results = append(resp.Results, conviction.Explain(r))
	}
	return c.JSON(http.StatusOK, resp)
}

func parseLimit(c echo.Context) (int, error) {
	raw := c.QueryParam("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, errors.New("invalid limit")
	}
	return limit, nil
}
