package variants

import "time"

// Config holds configuration for variant drift reconciliation.
type Config struct {
	// Enabled loads the variants routes.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// CacheTTLSeconds is how long existing variants are cached per product. Zero disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"30"`
	// ArchiveReports uploads every commit result to object storage.
	ArchiveReports bool `mapstructure:"archive_reports" default:"true"`
	// ReportPrefix is the object key prefix for archived commit reports.
	ReportPrefix string `mapstructure:"report_prefix" default:"reports/variants"`
	// PreserveManualOverrides re-applies admin edits when a session is recomputed.
	// Requests may override it per call.
	PreserveManualOverrides bool `mapstructure:"preserve_manual_overrides" default:"false"`
	// SessionTTLMinutes drops editing sessions idle for longer.
	SessionTTLMinutes int `mapstructure:"session_ttl_minutes" default:"60"`
	// StoreTimeoutSeconds bounds each database call made by a commit.
	StoreTimeoutSeconds int `mapstructure:"store_timeout_seconds" default:"10"`
	// AutoMigrate creates the catalog tables on startup instead of only checking them.
	AutoMigrate bool `mapstructure:"auto_migrate" default:"false"`
}

// CacheTTL returns the variant cache TTL.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// SessionTTL returns the idle session lifetime.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// StoreTimeout returns the per-call database timeout.
func (c Config) StoreTimeout() time.Duration {
	return time.Duration(c.StoreTimeoutSeconds) * time.Second
}
