package app

import (
	"flag"
	"strconv"
)

// Config represents the command-line parameters shared by the front-ends.
type Config struct {
	Window int
	TPS    int

	Cols     int
	Rows     int
	Damping  float64
	Strength float64

	Audio      bool
	HapticsPin string

	Listen string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Window:   640,
		TPS:      60,
		Cols:     256,
		Rows:     128,
		Damping:  0.985,
		Strength: 400,
		Listen:   ":8089",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Window, "window", c.Window, "viewport size in pixels")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.IntVar(&c.Cols, "cols", c.Cols, "grid columns (longitude)")
	fs.IntVar(&c.Rows, "rows", c.Rows, "grid rows (colatitude)")
	fs.Float64Var(&c.Damping, "damping", c.Damping, "wave damping factor in (0,1)")
	fs.Float64Var(&c.Strength, "strength", c.Strength, "impulse strength")
	fs.BoolVar(&c.Audio, "audio", c.Audio, "play a ping on fresh taps")
	fs.StringVar(&c.HapticsPin, "haptics-pin", c.HapticsPin, "GPIO pin pulsed on fresh taps (empty disables)")
	fs.StringVar(&c.Listen, "listen", c.Listen, "address for the streaming server")
}

// SimConfig translates the flag values into a simulation configuration.
func (c *Config) SimConfig() map[string]string {
	return map[string]string{
		"cols":             strconv.Itoa(c.Cols),
		"rows":             strconv.Itoa(c.Rows),
		"damping":          strconv.FormatFloat(c.Damping, 'f', -1, 64),
		"impulse_strength": strconv.FormatFloat(c.Strength, 'f', -1, 64),
	}
}
