package drill

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/squads/pkg/logger"
)

// HTTPClient wraps http.Client with JSON helpers.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// Do sends body as JSON (when non-nil) and decodes the response into out (when non-nil).
// It returns the status code.
func (c *HTTPClient) Do(ctx context.Context, method, path string, body, out any) (int, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return resp.StatusCode, fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, bytes.TrimSpace(data))
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// registerParticipants posts participants concurrently using a worker pool.
func registerParticipants(ctx context.Context, config *Config, client *HTTPClient, participants []Participant, stats *Stats) {
	logger.Get().Info(ctx, "registering participants",
		logger.Int("participants", len(participants)),
		logger.Int("workers", config.Workers))

	var registered, failed atomic.Int64
	workers := max(1, config.Workers)
	jobs := make(chan Participant, workers*workerChannelMultiplier)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				if _, err := client.Do(ctx, http.MethodPost, "/participants", p, nil); err != nil {
					failed.Add(1)
					if config.Verbose {
						logger.Get().Warn(ctx, "registration failed", logger.String("id", p.ID), logger.Error(err))
					}
					continue
				}
				registered.Add(1)
			}
		}()
	}

	func() {
		defer close(jobs)
		for _, p := range participants {
			select {
			case <-ctx.Done():
				return
			case jobs <- p:
			}
		}
	}()
	wg.Wait()

	stats.Registered = int(registered.Load())
	stats.Failed = int(failed.Load())
	logger.Get().Info(ctx, "registration completed",
		logger.Int("registered", stats.Registered),
		logger.Int("failed", stats.Failed))
}

// formSquads triggers one formation run.
func formSquads(ctx context.Context, config *Config, client *HTTPClient) (FormResponse, error) {
	body := map[string]any{"formationType": config.FormationType}
	if config.SquadSize > 0 {
		body["squadSize"] = config.SquadSize
	}
	var out FormResponse
	if _, err := client.Do(ctx, http.MethodPost, "/squads/form", body, &out); err != nil {
		return FormResponse{}, err
	}
	return out, nil
}
