package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/umlayout/pkg/errors"
)

func TestConfigSetDefaults(t *testing.T) {
	var c Config
	c.SetDefaults()
	if c != DefaultConfig() {
		t.Errorf("SetDefaults() on zero Config = %+v, want %+v", c, DefaultConfig())
	}

	c = Config{HorizontalGap: 5, MaxCrossingReductionPasses: 2}
	c.SetDefaults()
	if c.HorizontalGap != 5 || c.MaxCrossingReductionPasses != 2 {
		t.Errorf("SetDefaults() overwrote explicit values: %+v", c)
	}
	if c.VerticalGap != DefaultVerticalGap {
		t.Errorf("VerticalGap = %v, want default %v", c.VerticalGap, DefaultVerticalGap)
	}

	before := c
	c.SetDefaults()
	if c != before {
		t.Error("SetDefaults() is not idempotent")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero", Config{}, false},
		{"defaults", DefaultConfig(), false},
		{"negative horizontal gap", Config{HorizontalGap: -1}, true},
		{"negative vertical gap", Config{VerticalGap: -0.5}, true},
		{"negative passes", Config{MaxCrossingReductionPasses: -3}, true},
		{"negative non-hierarchy gap", Config{NonHierarchyGap: -10}, true},
		{"negative margin", Config{Margin: -1}, true},
		{"negative max width", Config{MaxWidth: -1}, true},
		{"NaN gap", Config{HorizontalGap: math.NaN()}, true},
		{"infinite width", Config{MaxWidth: math.Inf(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidConfig) {
					t.Errorf("Validate() = %v, want INVALID_CONFIG", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}
