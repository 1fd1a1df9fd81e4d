package bgg

import "time"

// Config holds configuration for the BoardGameGeek XML API client.
type Config struct {
	// BaseURL is the XML API 2 root.
	BaseURL string `mapstructure:"base_url" default:"https://boardgamegeek.com/xmlapi2"`
	// Username is the BGG user whose collection is synchronized.
	Username string `mapstructure:"username" default:""`
	// Token is an optional application token sent as a bearer credential.
	Token string `mapstructure:"token" default:""`
	// RetryDelay is the fixed wait between attempts while an export is pending.
	RetryDelay time.Duration `mapstructure:"retry_delay" default:"1s"`
	// MaxRetries is the number of pending (202) responses tolerated per request.
	MaxRetries int `mapstructure:"max_retries" default:"10"`
	// ThingBatchSize is the maximum number of ids sent in one /thing request.
	ThingBatchSize int `mapstructure:"thing_batch_size" default:"20"`
	// IncludePreordered adds preordered expansions to the synchronized set.
	IncludePreordered bool `mapstructure:"include_preordered" default:"false"`
	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent" default:"boardgame-sync"`
	// TimeoutSeconds is the per-request HTTP timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"60"`
}

const (
	defaultMaxRetries     = 10
	defaultThingBatchSize = 20
	defaultTimeoutSeconds = 60
)
