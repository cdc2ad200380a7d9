package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/okian/codearena/internal/lintrun"
	"github.com/okian/codearena/pkg/logger"
)

// Exit codes.
const (
	exitFindings = 1
	exitFailure  = 2
)

const defaultWorkers = 2 // multiplier for runtime.NumCPU()

func main() {
	os.Exit(run())
}

func run() int {
	var (
		workers  = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		severity = flag.String("severity", "info", "Lowest severity to report: error, warning or info")
		logFile  = flag.String("log", "", "Log file (default: stderr)")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		lintrun.ShowHelp(os.Stdout)
		return 0
	}

	minSeverity, err := lintrun.ParseSeverity(*severity)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		return exitFailure
	}

	if err := lintrun.SetupLogging(*logFile, *verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return exitFailure
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config := &lintrun.Config{
		Paths:       flag.Args(),
		Workers:     *workers,
		MinSeverity: minSeverity,
		LogFile:     *logFile,
		Verbose:     *verbose,
	}

	if _, err := lintrun.Run(ctx, config, os.Stdout); err != nil {
		if errors.Is(err, lintrun.ErrFindings) {
			return exitFindings
		}
		os.Stderr.WriteString("lint failed: " + err.Error() + "\n")
		return exitFailure
	}
	return 0
}
