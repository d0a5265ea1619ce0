package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"insider-conviction/internal/scoring/config"
	"insider-conviction/internal/scoring/dto"
	"insider-conviction/internal/signal"
	"insider-conviction/pkg/logger"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// EarningsAnalyzerRepository rates the tone of earnings coverage.
type EarningsAnalyzerRepository interface {
	RateEarningsSentiment(ctx context.Context, ticker string, articles []dto.NewsArticle) (*dto.EarningsSentimentResult, error)
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type geminiRepository struct {
	model          string
	log            *logger.Logger
	models         contentGenerator
	requestLimiter *rate.Limiter
}

// NewGeminiRepository creates an analyzer backed by the Gemini API client.
func NewGeminiRepository(cfg config.Gemini, log *logger.Logger, genAiClient *genai.Client) EarningsAnalyzerRepository {
	return newGeminiRepository(cfg, log, genAiClient.Models)
}

func newGeminiRepository(cfg config.Gemini, log *logger.Logger, models contentGenerator) *geminiRepository {
	perMinute := cfg.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 10
	}
	return &geminiRepository{
		model:          cfg.Model,
		log:            log,
		models:         models,
		requestLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
}

func (r *geminiRepository) RateEarningsSentiment(ctx context.Context, ticker string, articles []dto.NewsArticle) (*dto.EarningsSentimentResult, error) {
	if len(articles) == 0 {
		return nil, fmt.Errorf("%w: no earnings coverage for %s", signal.ErrUnavailable, ticker)
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(BuildEarningsSentimentPrompt(ticker, articles), "user"),
	}
	resp, err := r.models.GenerateContent(ctx, r.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		r.log.Error("Failed to generate earnings sentiment", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return nil, fmt.Errorf("%w: gemini request failed: %v", signal.ErrUnavailable, err)
	}

	return parseEarningsSentiment(resp)
}

func parseEarningsSentiment(resp *genai.GenerateContentResponse) (*dto.EarningsSentimentResult, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: no content found in Gemini response", signal.ErrUnavailable)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			text.WriteString(part.Text)
		}
	}
	jsonString := strings.TrimSpace(text.String())
	jsonString = strings.TrimPrefix(jsonString, "```json")
	jsonString = strings.Trim(jsonString, "`\n ")

	var result dto.EarningsSentimentResult
	if err := json.Unmarshal([]byte(jsonString), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal earnings sentiment from Gemini response: %w", err)
	}
	if result.Sentiment < -1 || result.Sentiment > 1 {
		return nil, fmt.Errorf("%w: sentiment %v out of range", signal.ErrUnavailable, result.Sentiment)
	}
	return &result, nil
}
