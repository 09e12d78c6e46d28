package simulation

import (
	"context"
	"time"
)

// pausedPollInterval bounds how often a paused run is polled.
const pausedPollInterval = 10 * time.Millisecond

// Result is what a driven run produced, captured before the end-of-run cleanup.
type Result struct {
	RunID       string
	Generations int
	Best        *Tour
	History     []GenerationStats
}

// Driver issues ticks to a Simulation from a single goroutine.
type Driver struct {
	sim *Simulation
	// OnGeneration, if set, is called after every completed generation.
	OnGeneration func(GenerationStats)
}

// NewDriver creates a driver for sim.
func NewDriver(sim *Simulation) *Driver {
	return &Driver{sim: sim}
}

// Run ticks the simulation until it is stopped, until Run.MaxGenerations
// generations have completed, or until ctx is cancelled. Cancellation and the
// generation limit only request a stop; the stop is observed on the next
// iteration, which performs the cleanup and returns. The tick interval is
// re-read from the config every iteration; turbo mode ticks back to back.
func (d *Driver) Run(ctx context.Context) (Result, error) {
	sim := d.sim
	if !sim.Started() {
		return Result{}, ErrNotStarted
	}

	result := Result{RunID: sim.RunID()}
	for {
		if !sim.Started() {
			sim.Reset()
			return result, nil
		}

		before := sim.Generation()
		sim.Tick()
		if after := sim.Generation(); after != before {
			result.Generations = after
			if best, ok := sim.Best(); ok {
				result.Best = &best
			}
			result.History = sim.History()
			if d.OnGeneration != nil {
				d.OnGeneration(result.History[len(result.History)-1])
			}
		}

		cfg := sim.Config()
		if cfg.Run.MaxGenerations > 0 && sim.Generation() >= cfg.Run.MaxGenerations {
			sim.Stop()
			continue
		}

		interval := cfg.Run.TickInterval
		if cfg.Run.Paused {
			interval = max(interval, pausedPollInterval)
		} else if cfg.Run.Turbo {
			interval = 0
		}

		if interval == 0 {
			select {
			case <-ctx.Done():
				sim.Stop()
			default:
			}
			continue
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			sim.Stop()
		case <-timer.C:
		}
	}
}
