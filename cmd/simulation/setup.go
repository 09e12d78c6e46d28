package main

import (
	"fmt"
	"log/slog"

	"antcolony-sim/internal/common"
	"antcolony-sim/internal/config"
	"antcolony-sim/internal/logging"
	"antcolony-sim/internal/simulation"

	"github.com/spf13/cobra"
)

// newSimulationFromFlags loads the configuration, applies the global flag
// overrides and places the requested points.
func newSimulationFromFlags(cmd *cobra.Command) (*simulation.Simulation, *slog.Logger, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("seed") {
		cfg.Run.Seed, _ = cmd.Flags().GetInt64("seed")
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
	sim, err := simulation.NewSimulation(cfg, nil, logger)
	if err != nil {
		return nil, nil, err
	}

	if pointsPath, _ := cmd.Flags().GetString("points"); pointsPath != "" {
		inst, err := config.LoadInstance(pointsPath)
		if err != nil {
			return nil, nil, err
		}
		for _, p := range inst.Points {
			if _, err := sim.AddNode(common.NewVector(p.X, p.Y)); err != nil {
				return nil, nil, err
			}
		}
	}

	randomPoints, _ := cmd.Flags().GetInt("random-points")
	if randomPoints < 0 {
		return nil, nil, fmt.Errorf("random-points must be non-negative, got %d", randomPoints)
	}
	for i := 0; i < randomPoints; i++ {
		if _, err := sim.AddRandomNode(); err != nil {
			return nil, nil, fmt.Errorf("adding random point: %w", err)
		}
	}

	logger.Debug("simulation ready", "points", len(sim.Nodes()), "ants", cfg.Ant.Count, "seed", cfg.Run.Seed)
	return sim, logger, nil
}
