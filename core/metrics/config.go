package metrics

// Config holds configuration for Prometheus metrics.
type Config struct {
	// Enabled exposes /metrics and records request metrics.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Prefix is prepended to every metric name.
	Prefix string `mapstructure:"prefix" default:"catalog"`
	// Path is the route serving the Prometheus exposition format.
	Path string `mapstructure:"path" default:"/metrics"`
}
