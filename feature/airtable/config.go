package airtable

// Config holds configuration for the Airtable destination.
type Config struct {
	// APIKey is the personal access token used as bearer credential.
	APIKey string `mapstructure:"api_key" default:""`
	// BaseID identifies the destination base (app...).
	BaseID string `mapstructure:"base_id" default:""`
	// BaseURL is the REST API root.
	BaseURL string `mapstructure:"base_url" default:"https://api.airtable.com/v0"`
	// GamesTable is the table holding base games.
	GamesTable string `mapstructure:"games_table" default:"Boardgames"`
	// ExpansionsTable is the table holding expansions.
	ExpansionsTable string `mapstructure:"expansions_table" default:"Expansions"`
	// TimeoutSeconds is the per-request HTTP timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
