package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"antcolony-sim/internal/simulation"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// runReport is the JSON form of a finished headless run.
type runReport struct {
	RunID       string                       `json:"run_id"`
	Generations int                          `json:"generations"`
	BestTour    []int                        `json:"best_tour,omitempty"`
	BestLength  float64                      `json:"best_length,omitempty"`
	History     []simulation.GenerationStats `json:"history,omitempty"`
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the colony headless until a generation limit or interrupt",
		Example: `  antcolony run --random-points 30 --generations 200
  antcolony run --points cities.yaml --turbo --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, logger, err := newSimulationFromFlags(cmd)
			if err != nil {
				return err
			}

			cfg := sim.Config()
			if cmd.Flags().Changed("generations") {
				cfg.Run.MaxGenerations, _ = cmd.Flags().GetInt("generations")
			}
			if cmd.Flags().Changed("turbo") {
				cfg.Run.Turbo, _ = cmd.Flags().GetBool("turbo")
			}
			if cmd.Flags().Changed("interval") {
				cfg.Run.TickInterval, _ = cmd.Flags().GetDuration("interval")
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
				shutdown := serveMetrics(addr, logger)
				defer shutdown()
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			progress, _ := cmd.Flags().GetBool("progress")
			return runHeadless(ctx, sim, cmd.OutOrStdout(), jsonOut, progress)
		},
	}

	cmd.Flags().Int("generations", 0, "Stop after this many generations, 0 runs until interrupted")
	cmd.Flags().Bool("turbo", false, "Tick back to back, ignoring the tick interval")
	cmd.Flags().Duration("interval", 0, "Delay between ticks (overrides config)")
	cmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	cmd.Flags().Bool("json", false, "Print the result as JSON")
	cmd.Flags().Bool("progress", false, "Print a line after every generation")

	return cmd
}

func runHeadless(ctx context.Context, sim *simulation.Simulation, w io.Writer, jsonOut, progress bool) error {
	if err := sim.Start(); err != nil {
		return err
	}

	driver := simulation.NewDriver(sim)
	if progress {
		driver.OnGeneration = func(s simulation.GenerationStats) {
			fmt.Fprintf(w, "generation %d: best %.3f, mean %.3f, min %.3f, max %.3f\n",
				s.Generation, s.Best, s.Mean, s.Min, s.Max)
		}
	}

	result, err := driver.Run(ctx)
	if err != nil {
		return err
	}

	report := runReport{
		RunID:       result.RunID,
		Generations: result.Generations,
		History:     result.History,
	}
	if result.Best != nil {
		report.BestTour = result.Best.Nodes
		report.BestLength = result.Best.Length
	}

	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(w, "Run %s finished after %d generations\n", report.RunID, report.Generations)
	if result.Best == nil {
		fmt.Fprintln(w, "No tour completed")
		return nil
	}
	fmt.Fprintf(w, "Best tour: %v\n", report.BestTour)
	fmt.Fprintf(w, "Best length: %.3f\n", report.BestLength)
	return nil
}

// serveMetrics exposes the default Prometheus registry on addr and returns a
// function that shuts the server down.
func serveMetrics(addr string, logger *slog.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
