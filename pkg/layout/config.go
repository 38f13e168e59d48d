package layout

import (
	"math"

	"github.com/matzehuels/umlayout/pkg/errors"
	"github.com/matzehuels/umlayout/pkg/placement"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultHorizontalGap is the space between neighbours within a level.
	DefaultHorizontalGap = 40.0

	// DefaultVerticalGap is the space between consecutive levels.
	DefaultVerticalGap = 60.0

	// DefaultMaxCrossingReductionPasses caps barycenter sweeps.
	DefaultMaxCrossingReductionPasses = 8

	// DefaultNonHierarchyGap separates the hierarchy from the nodes placed
	// below it.
	DefaultNonHierarchyGap = 80.0

	// DefaultMargin offsets the drawing from the origin.
	DefaultMargin = 20.0

	// DefaultMaxWidth is where non-hierarchy rows wrap.
	DefaultMaxWidth = 1200.0
)

// Config controls spacing and effort of a layout run. All distances are in
// pixels. Zero values take the defaults above.
type Config struct {
	HorizontalGap              float64 `toml:"horizontal_gap" json:"horizontal_gap,omitempty"`
	VerticalGap                float64 `toml:"vertical_gap" json:"vertical_gap,omitempty"`
	MaxCrossingReductionPasses int     `toml:"max_crossing_reduction_passes" json:"max_crossing_reduction_passes,omitempty"`
	NonHierarchyGap            float64 `toml:"non_hierarchy_gap" json:"non_hierarchy_gap,omitempty"`
	Margin                     float64 `toml:"margin" json:"margin,omitempty"`
	MaxWidth                   float64 `toml:"max_width" json:"max_width,omitempty"`
}

// DefaultConfig returns a Config with every field set to its default.
func DefaultConfig() Config {
	return Config{
		HorizontalGap:              DefaultHorizontalGap,
		VerticalGap:                DefaultVerticalGap,
		MaxCrossingReductionPasses: DefaultMaxCrossingReductionPasses,
		NonHierarchyGap:            DefaultNonHierarchyGap,
		Margin:                     DefaultMargin,
		MaxWidth:                   DefaultMaxWidth,
	}
}

// SetDefaults replaces zero fields with their defaults.
// This method is idempotent.
func (c *Config) SetDefaults() {
	if c.HorizontalGap == 0 {
		c.HorizontalGap = DefaultHorizontalGap
	}
	if c.VerticalGap == 0 {
		c.VerticalGap = DefaultVerticalGap
	}
	if c.MaxCrossingReductionPasses == 0 {
		c.MaxCrossingReductionPasses = DefaultMaxCrossingReductionPasses
	}
	if c.NonHierarchyGap == 0 {
		c.NonHierarchyGap = DefaultNonHierarchyGap
	}
	if c.Margin == 0 {
		c.Margin = DefaultMargin
	}
	if c.MaxWidth == 0 {
		c.MaxWidth = DefaultMaxWidth
	}
}

// Validate rejects negative or non-finite values with INVALID_CONFIG.
func (c Config) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"horizontal gap", c.HorizontalGap},
		{"vertical gap", c.VerticalGap},
		{"non-hierarchy gap", c.NonHierarchyGap},
		{"margin", c.Margin},
		{"max width", c.MaxWidth},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be finite, got %v", f.name, f.value)
		}
		if f.value < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be >= 0, got %v", f.name, f.value)
		}
	}
	if c.MaxCrossingReductionPasses < 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"max crossing reduction passes must be >= 0, got %d", c.MaxCrossingReductionPasses)
	}
	return nil
}

// Spacing returns the placement distances of c.
func (c Config) Spacing() placement.Spacing {
	return placement.Spacing{
		HorizontalGap:   c.HorizontalGap,
		VerticalGap:     c.VerticalGap,
		NonHierarchyGap: c.NonHierarchyGap,
		Margin:          c.Margin,
		MaxWidth:        c.MaxWidth,
	}
}
