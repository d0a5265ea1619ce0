package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"insider-conviction/internal/signal"
	"insider-conviction/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// vendorClient is a rate-limited GET client shared by the market-data repositories.
type vendorClient struct {
	vendor         string
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
	maxPerMinute   int
}

func newVendorClient(vendor string, maxRequestPerMinute int, log *logger.Logger) *vendorClient {
	if maxRequestPerMinute <= 0 {
		maxRequestPerMinute = 60
	}
	secondsPerRequest := time.Minute / time.Duration(maxRequestPerMinute)
	return &vendorClient{
		vendor: vendor,
		log:    log,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
		maxPerMinute:   maxRequestPerMinute,
	}
}

// get waits for the limiter and returns the body of a 200 response. Any other
// status is reported as signal.ErrUnavailable.
func (c *vendorClient) get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	fields := []zap.Field{
		zap.String("vendor", c.vendor),
		zap.String("url", url),
		zap.Int("max_request_per_minute", c.maxPerMinute),
	}

	if err := c.requestLimiter.Wait(ctx); err != nil {
		fields = append(fields, zap.Error(err))
		c.log.ErrorContext(ctx, "Failed to wait for request limit", fields...)
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		fields = append(fields, zap.Error(err))
		c.log.ErrorContext(ctx, "Failed to create new http request", fields...)
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		fields = append(fields, zap.Error(err))
		c.log.ErrorContext(ctx, "Failed to send request", fields...)
		return nil, fmt.Errorf("%w: %s request failed: %v", signal.ErrUnavailable, c.vendor, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fields = append(fields, zap.Error(err))
		c.log.ErrorContext(ctx, "Failed to read response body", fields...)
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		fields = append(fields, zap.Int("status_code", resp.StatusCode))
		c.log.WarnContext(ctx, "Received non-OK response", fields...)
		return nil, fmt.Errorf("%w: %s returned status %d", signal.ErrUnavailable, c.vendor, resp.StatusCode)
	}

	return body, nil
}
