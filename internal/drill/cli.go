package drill

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/squads/pkg/logger"
)

// File permission for log files.
const logFilePermission = 0600

// SetupLogging initializes the global logger writing to stdout and, when
// logFile is set, to that file as well. The returned func closes the file.
func SetupLogging(logFile string, verbose bool) (func(), error) {
	var (
		w       io.Writer = os.Stdout
		closeFn           = func() {}
	)
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			return nil, fmt.Errorf("failed to create log file: %w", err)
		}
		w = io.MultiWriter(os.Stdout, file)
		closeFn = func() { _ = file.Close() }
	}
	if err := logger.Init(logger.WithWriter(w)); err != nil {
		closeFn()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	return closeFn, nil
}

// ShowHelp prints usage information for the drill tool.
func ShowHelp() {
	os.Stdout.WriteString(`Squads Drill
============

Registers synthetic participants against a running squads service, forms
squads and verifies that every present participant landed in exactly one squad.

Usage:
  go run ./cmd/drill [options]

Options:
  -url string        Base URL of the service (default "http://localhost:9080")
  -participants int  Number of participants to generate (default 200)
  -present float     Share registered as present (default 0.8)
  -blank float       Share registered without skills (default 0.05)
  -size int          Squad size; 0 uses the server default (default 4)
  -type string       Formation type: similar or diverse (default "diverse")
  -workers int       Concurrent registration workers (default CPU cores * 2)
  -timeout duration  HTTP request timeout (default 30s)
  -seed int          Seed for participant generation (default 1)
  -reset             Delete existing squads first
  -taxonomy string   Taxonomy YAML used for skill vocabulary (default: embedded)
  -output string     Write the formed squads to this JSON file
  -log string        Also write logs to this file
  -verbose           Enable verbose logging
  -help              Show this help message
`)
}
