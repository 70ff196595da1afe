package config

// Config holds runtime settings for the Sarthi CLI.
//
// Fields:
//   - DatabasePath: filename of the local SQLite database holding the slots.
//   - DefaultLanguage: interface language used before any user logs in.
type Config struct {
	DatabasePath    string
	DefaultLanguage string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "sarthi.db"
	c.DefaultLanguage = "en"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
