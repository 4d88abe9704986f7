package config

// Config represents the complete configuration structure
type Config struct {
	Roblox  RobloxConfig  `mapstructure:"roblox"`
	Search  SearchConfig  `mapstructure:"search"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// RobloxConfig holds the Roblox session credential. Cookie is the raw
// .ROBLOSECURITY value and is optional: without it the client stays
// anonymous and endpoints that need an account answer 401.
type RobloxConfig struct {
	Cookie string `mapstructure:"cookie"`
}

// SearchConfig contains defaults for the search command
type SearchConfig struct {
	Limit int `mapstructure:"limit"`
}

// FilterConfig contains the default filter expression and named presets
type FilterConfig struct {
	Default string            `mapstructure:"default"`
	Presets map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
