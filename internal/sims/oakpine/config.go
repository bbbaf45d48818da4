package oakpine

import (
	"fmt"
	"strconv"

	"fire-ca/internal/cluster"
	"fire-ca/internal/core"
)

// Config controls the two-species forest-fire simulation. With Spatial set,
// oak placement comes from a generated slime-mold mask instead of a
// per-growth coin flip.
type Config struct {
	L int

	GrowthP    float64
	LightningF float64

	OakRatio float64
	PBurnOak float64

	Connectivity cluster.Connectivity

	// Advanced keeps burning cells visible for one tick.
	Advanced bool

	// Spatial switches species placement to the immutable physarum mask;
	// MaskIterations tunes its agent simulation (0 = default).
	Spatial        bool
	MaskIterations int

	Seed int64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		L:            128,
		GrowthP:      0.01,
		LightningF:   0.0001,
		OakRatio:     0.3,
		PBurnOak:     0.3,
		Connectivity: cluster.VonNeumann,
		Seed:         1337,
	}
}

// Validate rejects out-of-range parameters. Values are never clamped.
func (c Config) Validate() error {
	if c.L <= 0 {
		return fmt.Errorf("oakpine: L=%d: %w", c.L, core.ErrInvalidParameter)
	}
	if c.GrowthP < 0 || c.GrowthP > 1 {
		return fmt.Errorf("oakpine: growth probability %g: %w", c.GrowthP, core.ErrInvalidParameter)
	}
	if c.LightningF < 0 || c.LightningF > 1 {
		return fmt.Errorf("oakpine: lightning probability %g: %w", c.LightningF, core.ErrInvalidParameter)
	}
	if c.OakRatio < 0 || c.OakRatio > 1 {
		return fmt.Errorf("oakpine: oak ratio %g: %w", c.OakRatio, core.ErrInvalidParameter)
	}
	if c.PBurnOak < 0 || c.PBurnOak > 1 {
		return fmt.Errorf("oakpine: oak burn probability %g: %w", c.PBurnOak, core.ErrInvalidParameter)
	}
	if c.Connectivity != cluster.VonNeumann && c.Connectivity != cluster.Moore {
		return fmt.Errorf("oakpine: connectivity %d: %w", int(c.Connectivity), core.ErrInvalidParameter)
	}
	if c.MaskIterations < 0 {
		return fmt.Errorf("oakpine: mask iterations %d: %w", c.MaskIterations, core.ErrInvalidParameter)
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
	if v, ok := cfg["oak_ratio"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.OakRatio = parsed
		}
	}
	if v, ok := cfg["p_burn_oak"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.PBurnOak = parsed
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
	if v, ok := cfg["spatial"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Spatial = parsed
		}
	}
	if v, ok := cfg["mask_iterations"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.MaskIterations = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	return c
}
