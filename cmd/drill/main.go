package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/squads/internal/domain/taxonomy"
	"github.com/okian/squads/internal/drill"
)

// Default configuration constants.
const (
	defaultParticipants  = 200
	defaultPresentRatio  = 0.8
	defaultBlankRatio    = 0.05
	defaultSquadSize     = 4
	defaultWorkers       = 2 // multiplier for runtime.NumCPU()
	defaultTimeout       = 30 * time.Second
	defaultDrillDeadline = 10 * time.Minute
)

func main() {
	var (
		baseURL      = flag.String("url", "http://localhost:9080", "Base URL of the service")
		participants = flag.Int("participants", defaultParticipants, "Number of participants to generate")
		present      = flag.Float64("present", defaultPresentRatio, "Share registered as present")
		blank        = flag.Float64("blank", defaultBlankRatio, "Share registered without skills")
		squadSize    = flag.Int("size", defaultSquadSize, "Squad size; 0 uses the server default")
		formation    = flag.String("type", "diverse", "Formation type: similar or diverse")
		workers      = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Concurrent registration workers")
		timeout      = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		seed         = flag.Int64("seed", 1, "Seed for participant generation")
		reset        = flag.Bool("reset", false, "Delete existing squads first")
		taxonomyPath = flag.String("taxonomy", "", "Taxonomy YAML used for skill vocabulary")
		outputFile   = flag.String("output", "", "Write the formed squads to this JSON file")
		logFile      = flag.String("log", "", "Also write logs to this file")
		verbose      = flag.Bool("verbose", false, "Enable verbose logging")
		help         = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		drill.ShowHelp()
		return
	}

	closeLog, err := drill.SetupLogging(*logFile, *verbose)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	config := &drill.Config{
		BaseURL:       *baseURL,
		Participants:  *participants,
		PresentRatio:  *present,
		BlankRatio:    *blank,
		SquadSize:     *squadSize,
		FormationType: *formation,
		Workers:       *workers,
		Timeout:       *timeout,
		Seed:          *seed,
		Reset:         *reset,
		OutputFile:    *outputFile,
		Verbose:       *verbose,
	}

	err = run(config, *taxonomyPath)
	closeLog()
	if err != nil {
		os.Stderr.WriteString("Drill failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run(config *drill.Config, taxonomyPath string) error {
	tx, err := taxonomy.LoadOrDefault(taxonomyPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDrillDeadline)
	defer cancel()

	_, err = drill.Run(ctx, config, tx)
	return err
}
