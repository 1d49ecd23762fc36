package config

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	API     APIConfig     `mapstructure:"api"`
	Channel ChannelConfig `mapstructure:"channel"`
	Session SessionConfig `mapstructure:"session"`
	Toast   ToastConfig   `mapstructure:"toast"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// --- Core App Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// APIConfig holds settings for the REST client.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// ChannelConfig holds settings for the realtime channel client.
type ChannelConfig struct {
	URL           string `mapstructure:"url"`
	DialTimeout   int    `mapstructure:"dial_timeout"`  // milliseconds
	WriteTimeout  int    `mapstructure:"write_timeout"` // milliseconds
	PingInterval  int    `mapstructure:"ping_interval"` // milliseconds
	MessageBuffer int    `mapstructure:"message_buffer"`

	Backoff BackoffConfig `mapstructure:"backoff"`
}

// BackoffConfig controls reconnection pacing after a lost connection.
type BackoffConfig struct {
	Initial    int     `mapstructure:"initial"` // milliseconds
	Max        int     `mapstructure:"max"`     // milliseconds
	Multiplier float64 `mapstructure:"multiplier"`
	Jitter     float64 `mapstructure:"jitter"` // fraction of the delay, 0..1
}

// SessionConfig holds settings for durable session storage.
type SessionConfig struct {
	ServiceName string `mapstructure:"service_name"`
	FileDir     string `mapstructure:"file_dir"` // fallback backend for headless hosts
}

// ToastConfig holds settings for the toast notifier.
type ToastConfig struct {
	TTL      int `mapstructure:"ttl"` // milliseconds
	MaxQueue int `mapstructure:"max_queue"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig holds the /metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}
