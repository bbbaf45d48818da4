package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"

	"fire-ca/internal/storage"
	"fire-ca/internal/sweep"
)

func main() {
	planPath := flag.String("plan", "", "path to a YAML sweep plan (empty = built-in demo sweep)")
	workers := flag.Int("workers", 0, "override worker count (0 = plan value or NumCPU)")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "sweep",
	})

	plan := sweep.DefaultPlan()
	if *planPath != "" {
		var err error
		plan, err = sweep.LoadPlan(*planPath)
		if err != nil {
			logger.Fatal("could not load plan", "error", err)
		}
	}
	if *workers > 0 {
		plan.Workers = *workers
	}

	runner, err := sweep.NewRunner(plan, logger)
	if err != nil {
		logger.Fatal("invalid plan", "error", err)
	}
	results, err := runner.Run()
	if err != nil {
		logger.Fatal("sweep failed", "error", err)
	}

	if plan.OutputDir != "" {
		path, err := sweep.WriteSummary(plan.OutputDir, results)
		if err != nil {
			logger.Fatal("could not write summary", "error", err)
		}
		logger.Info("summary written", "file", path)
	}

	if plan.Database != "" {
		store, err := storage.Open(plan.Database)
		if err != nil {
			logger.Fatal("could not open summary database", "error", err)
		}
		defer store.Close()
		for _, res := range results {
			if _, err := store.SaveResult(res); err != nil {
				logger.Error("could not persist summary", "error", err)
			}
		}
		logger.Info("summaries stored", "database", plan.Database, "rows", len(results))
	}
}
