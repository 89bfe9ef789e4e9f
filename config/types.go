package config

// Config represents the complete configuration structure
type Config struct {
	Twitter TwitterConfig `mapstructure:"twitter"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TwitterConfig holds the application credentials for both OAuth flows.
// The consumer pair drives the user-context flow, the client pair the
// app-context flow; only the pair for the flow actually used needs to
// be configured.
type TwitterConfig struct {
	ConsumerKey    string `mapstructure:"consumer_key"`
	ConsumerSecret string `mapstructure:"consumer_secret"`
	ClientID       string `mapstructure:"client_id"`
	ClientSecret   string `mapstructure:"client_secret"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
