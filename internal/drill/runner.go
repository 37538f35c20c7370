// Package drill seeds a running squads service with synthetic participants,
// forms squads over HTTP and checks the result.
package drill

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/squads/internal/domain/taxonomy"
	"github.com/okian/squads/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0600
)

// Run executes a complete drill against config.BaseURL.
func Run(ctx context.Context, config *Config, tx *taxonomy.Taxonomy) (*Stats, error) {
	if tx == nil {
		tx = taxonomy.Default()
	}
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting squads drill",
		logger.String("baseURL", config.BaseURL),
		logger.Int("participants", config.Participants),
		logger.Int("squadSize", config.SquadSize),
		logger.String("formationType", config.FormationType),
		logger.Int("workers", config.Workers))

	client := newHTTPClient(config.BaseURL, config.Timeout)

	if err := checkServiceHealth(ctx, client); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	if config.Reset {
		var out struct {
			Removed int `json:"removed"`
		}
		if _, err := client.Do(ctx, http.MethodDelete, "/squads", nil, &out); err != nil {
			return stats, fmt.Errorf("squad reset failed: %w", err)
		}
		logger.Get().Info(ctx, "existing squads removed", logger.Int("removed", out.Removed))
	}

	participants, err := generateParticipants(ctx, config, tx, stats)
	if err != nil {
		return stats, fmt.Errorf("participant generation failed: %w", err)
	}

	registerParticipants(ctx, config, client, participants, stats)
	if stats.Failed > 0 {
		return stats, fmt.Errorf("%d of %d registrations failed", stats.Failed, stats.Generated)
	}

	res, err := formSquads(ctx, config, client)
	if err != nil {
		return stats, fmt.Errorf("formation failed: %w", err)
	}
	stats.Squads = len(res.Squads)
	stats.FellBack = res.FellBack
	stats.Reassigned = res.Reassigned

	if err := verifyFormation(ctx, participants, res.Squads, res.SquadSize); err != nil {
		return stats, fmt.Errorf("verification failed: %w", err)
	}

	if config.OutputFile != "" {
		if err := saveSquadsToFile(ctx, config.OutputFile, res); err != nil {
			logger.Get().Warn(ctx, "failed to save squads to file", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	if _, err := client.Do(ctx, http.MethodGet, "/healthz", nil, nil); err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveSquadsToFile writes the formation response as indented JSON.
func saveSquadsToFile(ctx context.Context, filename string, res FormResponse) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal squads: %w", err)
	}
	if err := os.WriteFile(filename, data, filePermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	logger.Get().Info(ctx, "squads saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats logs the final drill statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var presentRate float64
	if stats.Generated > 0 {
		presentRate = float64(stats.Present) / float64(stats.Generated) * percentageMultiplier
	}
	logger.Get().Info(ctx, "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("registered", stats.Registered),
		logger.Int("present", stats.Present),
		logger.Float64("presentRate", presentRate),
		logger.Int("squads", stats.Squads),
		logger.Bool("fallback", stats.FellBack),
		logger.Int("reassigned", stats.Reassigned),
		logger.String("duration", stats.Duration.String()))
}
