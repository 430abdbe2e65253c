package config

// Key names a persisted integer setting.
type Key string

const (
	WindowLeft   Key = "window_left"
	WindowTop    Key = "window_top"
	WindowRight  Key = "window_right"
	WindowBottom Key = "window_bottom"
)

func defaultConfig() Config {
	return Config{
		Values: map[Key]int{},
	}
}

type Config struct {
	Values map[Key]int `json:"values" yaml:"values" toml:"values"`
}

func (c Config) normalize() Config {
	if c.Values == nil {
		c.Values = map[Key]int{}
	}
	return c
}
