package http

import (
	"net/http"

	"insider-conviction/internal/scoring/dto"
	"insider-conviction/internal/scoring/service"
	"insider-conviction/pkg/logger"

	"github.com/labstack/echo/v4"
)

// FilingHandler accepts filed insider trades over HTTP.
type FilingHandler struct {
	ingestionService service.IngestionService
	logger           *logger.Logger
}

// NewFilingHandler creates a new FilingHandler.
func NewFilingHandler(ingestionService service.IngestionService, logger *logger.Logger) *FilingHandler {
	return &FilingHandler{ingestionService: ingestionService, logger: logger}
}

// RegisterRoutes registers the filing routes to the Echo group.
func (h *FilingHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.Create)
}

// Create godoc
// @Summary Ingest a Form 4 filing
// @Description Validates every line and stores purchases and sales. Lines already stored are skipped.
// @Tags filings
// @Accept  json
// @Produce  json
// @Param   filing  body  dto.FilingMessage  true  "Filing to ingest"
// @Success 200 {object} dto.IngestReport
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /filings [post]
func (h *FilingHandler) Create(c echo.Context) error {
	var req dto.FilingMessage
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}
	if len(req.Transactions) == 0 {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "No transactions to ingest"})
	}

	report, err := h.ingestionService.Ingest(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Failed to ingest filing", logger.ErrorField(err), logger.StringField("accession_number", req.AccessionNumber))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to ingest filing"})
	}
	return c.JSON(http.StatusOK, report)
}
