// Package config provides configuration loading for the ant colony simulation.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config contains every tunable setting of the simulation. The controller
// keeps a pointer to it and reads it at each decision point, so edits made
// between ticks take effect on the next one.
type Config struct {
	// Ant contains settings for per-ant decision making.
	Ant AntConfig `json:"ant" yaml:"ant"`

	// Pheromone contains settings for the trail model.
	Pheromone PheromoneConfig `json:"pheromone" yaml:"pheromone"`

	// Run contains settings for the tick driver.
	Run RunConfig `json:"run" yaml:"run"`

	// View contains settings for the renderer.
	View ViewConfig `json:"view" yaml:"view"`

	// Logging contains settings for operational logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// AntConfig configures the ant population and its desirability function.
type AntConfig struct {
	// Count is the population size per generation.
	Count int `json:"count" yaml:"count"`

	// DistancePower is the exponent applied to inverse distance.
	DistancePower float64 `json:"distance_power" yaml:"distance_power"`

	// PheromonePower is the exponent applied to the trail value.
	PheromonePower float64 `json:"pheromone_power" yaml:"pheromone_power"`
}

// PheromoneConfig configures trail creation, passive updates, evaporation and reinforcement.
type PheromoneConfig struct {
	// Initial is assigned to newly created trails and on stochastic reset.
	Initial float64 `json:"initial" yaml:"initial"`

	// Minimum is the lower clamp for decay-mode evaporation.
	Minimum float64 `json:"minimum" yaml:"minimum"`

	// Passive is the value (or multiplier source) applied to a trail when an ant crosses it.
	Passive float64 `json:"passive" yaml:"passive"`

	// PassiveAscend selects the multiplicative passive update instead of the absolute one.
	PassiveAscend bool `json:"passive_ascend" yaml:"passive_ascend"`

	// EvaporationRate is the decay factor in decay mode or the reset probability otherwise.
	// Range: 0.0 to 1.0
	EvaporationRate float64 `json:"evaporation_rate" yaml:"evaporation_rate"`

	// Decay selects continuous decay evaporation instead of stochastic reset.
	Decay bool `json:"decay" yaml:"decay"`

	// Intensity is assigned to every edge of the best tour on reinforcement.
	Intensity float64 `json:"intensity" yaml:"intensity"`
}

// RunConfig configures the tick driver and the random source.
type RunConfig struct {
	// TickInterval is the delay between two ticks. Ignored in turbo mode.
	TickInterval time.Duration `json:"tick_interval" yaml:"tick_interval"`

	// Turbo collapses the Idle->Picking ant transition into one tick and
	// removes the delay between ticks.
	Turbo bool `json:"turbo" yaml:"turbo"`

	// Paused suppresses tick processing without stopping the run.
	Paused bool `json:"paused" yaml:"paused"`

	// MaxGenerations stops the driver after that many generations; 0 runs until cancelled.
	MaxGenerations int `json:"max_generations" yaml:"max_generations"`

	// Seed seeds the random source; 0 seeds from the clock.
	Seed int64 `json:"seed" yaml:"seed"`

	// World is the placement area for random nodes: [minX, maxX, minY, maxY].
	World []float64 `json:"world" yaml:"world"`
}

// ViewConfig configures the renderer.
type ViewConfig struct {
	// FocusedAnt selects which ants are drawn: -1 all, -2 none, n only ant n.
	FocusedAnt int `json:"focused_ant" yaml:"focused_ant"`

	// ShowPheromone draws every trail with an alpha proportional to its value.
	ShowPheromone bool `json:"show_pheromone" yaml:"show_pheromone"`

	// ShowBestTour draws the best tour and the HUD.
	ShowBestTour bool `json:"show_best_tour" yaml:"show_best_tour"`

	// Width and Height are the initial window size.
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`

	// TurboTicksPerFrame is the number of ticks run per frame in turbo mode.
	TurboTicksPerFrame int `json:"turbo_ticks_per_frame" yaml:"turbo_ticks_per_frame"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "trace" logs every ant decision.
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config with the parameter panel defaults.
func Default() *Config {
	return &Config{
		Ant: AntConfig{
			Count:          500,
			DistancePower:  3,
			PheromonePower: 1.3,
		},
		Pheromone: PheromoneConfig{
			Initial:         1,
			Minimum:         0.1,
			Passive:         1.5,
			PassiveAscend:   true,
			EvaporationRate: 0.8,
			Decay:           false,
			Intensity:       15,
		},
		Run: RunConfig{
			TickInterval: time.Millisecond,
			World:        []float64{0, 800, 0, 600},
		},
		View: ViewConfig{
			FocusedAnt:         -2,
			ShowPheromone:      true,
			ShowBestTour:       true,
			Width:              800,
			Height:             600,
			TurboTicksPerFrame: 64,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromFile loads configuration from a specific YAML file.
// Keys missing from the file keep their default value.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return config, nil
}

// Load builds the configuration from defaults, an optional YAML file and the environment.
// Order: defaults -> path (if non-empty) -> environment variables
func Load(path string) (*Config, error) {
	config := Default()
	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		config = fileConfig
	}

	ApplyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Ant.Count < 1 {
		return fmt.Errorf("ant count must be at least 1, got %d", c.Ant.Count)
	}
	if c.Ant.DistancePower < 0 {
		return fmt.Errorf("distance_power must be non-negative, got %f", c.Ant.DistancePower)
	}
	if c.Ant.PheromonePower < 0 {
		return fmt.Errorf("pheromone_power must be non-negative, got %f", c.Ant.PheromonePower)
	}
	if c.Pheromone.Initial <= 0 {
		return fmt.Errorf("initial pheromone must be positive, got %f", c.Pheromone.Initial)
	}
	if c.Pheromone.Minimum < 0 {
		return fmt.Errorf("minimum pheromone must be non-negative, got %f", c.Pheromone.Minimum)
	}
	if c.Pheromone.Passive < 0 {
		return fmt.Errorf("passive pheromone must be non-negative, got %f", c.Pheromone.Passive)
	}
	if c.Pheromone.EvaporationRate < 0 || c.Pheromone.EvaporationRate > 1 {
		return fmt.Errorf("evaporation_rate must be between 0 and 1, got %f", c.Pheromone.EvaporationRate)
	}
	if c.Pheromone.Intensity <= 0 {
		return fmt.Errorf("pheromone intensity must be positive, got %f", c.Pheromone.Intensity)
	}
	if c.Run.TickInterval < 0 {
		return fmt.Errorf("tick_interval must be non-negative, got %v", c.Run.TickInterval)
	}
	if c.Run.MaxGenerations < 0 {
		return fmt.Errorf("max_generations must be non-negative, got %d", c.Run.MaxGenerations)
	}
	if len(c.Run.World) != 4 {
		return fmt.Errorf("world must have 4 elements [minX, maxX, minY, maxY], got %d", len(c.Run.World))
	}
	if c.Run.World[0] >= c.Run.World[1] || c.Run.World[2] >= c.Run.World[3] {
		return fmt.Errorf("world bounds must be increasing, got %v", c.Run.World)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// ApplyEnvOverrides applies environment variable overrides to the config.
func ApplyEnvOverrides(config *Config) {
	if v := os.Getenv("ANTCOLONY_ANTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Ant.Count = n
		}
	}

	if v := os.Getenv("ANTCOLONY_TURBO"); v != "" {
		config.Run.Turbo = v == "true" || v == "1"
	}

	if v := os.Getenv("ANTCOLONY_PHEROMONE_DECAY"); v != "" {
		config.Pheromone.Decay = v == "true" || v == "1"
	}

	if v := os.Getenv("ANTCOLONY_TICK_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.Run.TickInterval = d
		}
	}

	if v := os.Getenv("ANTCOLONY_MAX_GENERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Run.MaxGenerations = n
		}
	}

	if v := os.Getenv("ANTCOLONY_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Run.Seed = n
		}
	}

	if v := os.Getenv("ANTCOLONY_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}
