package sim

import "testing"

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero cols", func(c *Config) { c.Cols = 0 }},
		{"two rows", func(c *Config) { c.Rows = 2 }},
		{"zero damping", func(c *Config) { c.Damping = 0 }},
		{"unit damping", func(c *Config) { c.Damping = 1 }},
		{"growing damping", func(c *Config) { c.Damping = 1.2 }},
		{"negative multiplier", func(c *Config) { c.DrawableRadiusMultiplier = -1 }},
	}
	for _, c := range cases {
		cfg := DefaultConfig()
		c.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: Validate accepted %+v", c.name, cfg)
		}
		if _, err := New(cfg); err == nil {
			t.Fatalf("%s: New accepted %+v", c.name, cfg)
		}
	}
}

func TestFromMapOverridesAndIgnoresJunk(t *testing.T) {
	c := FromMap(map[string]string{
		"cols":             "64",
		"rows":             "32",
		"damping":          "0.9",
		"impulse_strength": "250",
		"point_falloff":    "0.5",
		"path_falloff":     "0.4",
		"drawable_radius":  "2",
		"rows_bogus":       "7",
		"cols_bad":         "x",
	})
	if c.Cols != 64 || c.Rows != 32 {
		t.Fatalf("dims = %dx%d", c.Cols, c.Rows)
	}
	if c.Damping != 0.9 || c.ImpulseStrength != 250 {
		t.Fatalf("damping %v strength %v", c.Damping, c.ImpulseStrength)
	}
	if c.PointFalloff != 0.5 || c.PathFalloff != 0.4 {
		t.Fatalf("falloffs %v %v", c.PointFalloff, c.PathFalloff)
	}
	if c.DrawableRadiusMultiplier != 2 {
		t.Fatalf("multiplier %v", c.DrawableRadiusMultiplier)
	}
}

func TestFromMapKeepsDefaultsOnMalformedValues(t *testing.T) {
	def := DefaultConfig()
	c := FromMap(map[string]string{
		"cols":    "not-a-number",
		"rows":    "-4",
		"damping": "oops",
	})
	if c.Cols != def.Cols || c.Rows != def.Rows || c.Damping != def.Damping {
		t.Fatalf("malformed values leaked into config: %+v", c)
	}
}
