package forest

import (
	"fmt"
	"strconv"

	"fire-ca/internal/cluster"
	"fire-ca/internal/core"
)

// Config controls the foundation forest-fire simulation. Suppress > 0 turns
// on the firefighting variant: that many burned cells are replanted after
// every fire.
type Config struct {
	L int

	GrowthP    float64
	LightningF float64
	Suppress   int

	Connectivity cluster.Connectivity

	// Advanced keeps burning and replanted cells visible for one tick.
	Advanced bool

	Seed int64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		L:            128,
		GrowthP:      0.01,
		LightningF:   0.0001,
		Suppress:     0,
		Connectivity: cluster.VonNeumann,
		Advanced:     false,
		Seed:         1337,
	}
}

// Validate rejects out-of-range parameters. Values are never clamped.
func (c Config) Validate() error {
	if c.L <= 0 {
		return fmt.Errorf("forest: L=%d: %w", c.L, core.ErrInvalidParameter)
	}
	if c.GrowthP < 0 || c.GrowthP > 1 {
		return fmt.Errorf("forest: growth probability %g: %w", c.GrowthP, core.ErrInvalidParameter)
	}
	if c.LightningF < 0 || c.LightningF > 1 {
		return fmt.Errorf("forest: lightning probability %g: %w", c.LightningF, core.ErrInvalidParameter)
	}
	if c.Suppress < 0 {
		return fmt.Errorf("forest: suppress=%d: %w", c.Suppress, core.ErrInvalidParameter)
	}
	if c.Connectivity != cluster.VonNeumann && c.Connectivity != cluster.Moore {
		return fmt.Errorf("forest: connectivity %d: %w", int(c.Connectivity), core.ErrInvalidParameter)
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). Unparseable values are ignored; range checking happens in Validate.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["l"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.L = parsed
		}
	}
	if v, ok := cfg["p"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.GrowthP = parsed
		}
	}
	if v, ok := cfg["f"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.LightningF = parsed
		}
	}
	if v, ok := cfg["suppress"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Suppress = parsed
		}
	}
	if v, ok := cfg["connectivity"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Connectivity = cluster.Connectivity(parsed)
		}
	}
	if v, ok := cfg["advanced"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Advanced = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	return c
}
