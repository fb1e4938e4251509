package collide

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the iteration limits and tolerances shared by the solvers.
type Config struct {
	// Upper bound on GJK refinement steps.
	GJKMaxIterations int `toml:"gjk_max_iterations"`
	// Upper bound on polytope expansions before EPA returns an approximate answer.
	EPAMaxIterations int `toml:"epa_max_iterations"`
	// EPA stops once the support estimate is within this distance of the closest edge.
	EPATolerance float64 `toml:"epa_tolerance"`
	// Upper bound on edge refinements in a sweep.
	SweepMaxIterations int `toml:"sweep_max_iterations"`
	// A sweep stops once a new support point advances the edge by less than this.
	SweepTolerance float64 `toml:"sweep_tolerance"`
	// Distances at or below Epsilon count as zero.
	Epsilon float64 `toml:"epsilon"`
	// Extra separation added to pushouts and taken off sweep hits so resolved shapes do not touch.
	Skin float64 `toml:"skin"`
	// Solver runs that take more iterations than this log a warning. Zero disables the warning.
	WarnIterations int `toml:"warn_iterations"`
}

func DefaultConfig() Config {
	return Config{
		GJKMaxIterations:   32,
		EPAMaxIterations:   32,
		EPATolerance:       1e-4,
		SweepMaxIterations: 32,
		SweepTolerance:     1e-6,
		Epsilon:            1e-9,
		Skin:               1e-6,
		WarnIterations:     20,
	}
}

func (cfg Config) Validate() error {
	switch {
	case cfg.GJKMaxIterations <= 0:
		return fmt.Errorf("%w: gjk_max_iterations must be positive, got %d", ErrInvalidConfig, cfg.GJKMaxIterations)
	case cfg.EPAMaxIterations <= 0:
		return fmt.Errorf("%w: epa_max_iterations must be positive, got %d", ErrInvalidConfig, cfg.EPAMaxIterations)
	case cfg.SweepMaxIterations <= 0:
		return fmt.Errorf("%w: sweep_max_iterations must be positive, got %d", ErrInvalidConfig, cfg.SweepMaxIterations)
	case cfg.EPATolerance <= 0:
		return fmt.Errorf("%w: epa_tolerance must be positive, got %g", ErrInvalidConfig, cfg.EPATolerance)
	case cfg.SweepTolerance <= 0:
		return fmt.Errorf("%w: sweep_tolerance must be positive, got %g", ErrInvalidConfig, cfg.SweepTolerance)
	case cfg.Epsilon < 0:
		return fmt.Errorf("%w: epsilon must not be negative, got %g", ErrInvalidConfig, cfg.Epsilon)
	case cfg.Skin < 0:
		return fmt.Errorf("%w: skin must not be negative, got %g", ErrInvalidConfig, cfg.Skin)
	case cfg.WarnIterations < 0:
		return fmt.Errorf("%w: warn_iterations must not be negative, got %d", ErrInvalidConfig, cfg.WarnIterations)
	}
	return nil
}

// ParseConfig reads a TOML document on top of DefaultConfig. Unknown keys are an error.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading collision config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
