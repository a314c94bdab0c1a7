package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"ride-assignment-service/internal/api/dto"
	"ride-assignment-service/internal/app"
	"ride-assignment-service/internal/config"
	"ride-assignment-service/internal/domain"
	"syscall"

	"github.com/joho/godotenv"
)

// assign runs one assignment pass over the configured fleet and prints the
// result as JSON.
func main() {
	out := flag.String("out", "", "write the result to this file instead of stdout")
	report := flag.Bool("report", false, "include dropped rides and resolver counters")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	if err := run(*out, *report); err != nil {
		log.Printf("assign failed: %v", err)
		if errors.Is(err, domain.ErrInvalidInput) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}

func run(outPath string, report bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	run, err := a.Assigner.AssignFromRepository(ctx, a.Fleet)
	if err != nil {
		return err
	}

	var body any = dto.NewAssignmentResponse(run.Result)
	if report {
		body = dto.NewAssignmentReport(run.Result, run.Rides, dto.ResolverStatsResponse{
			RoutedQueries:  run.Stats.RoutedQueries,
			CacheHits:      run.Stats.CacheHits,
			StoreHits:      run.Stats.StoreHits,
			ThresholdSkips: run.Stats.ThresholdSkips,
			Fallbacks:      run.Stats.Fallbacks,
		})
	}

	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %q: %w", outPath, err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(body); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	return nil
}
