package collection

// Config holds the sync run switches.
type Config struct {
	// Reset recreates every destination row instead of applying the diff.
	Reset bool `mapstructure:"reset" default:"false"`
	// DryRun stops after the plan is computed; nothing is written.
	DryRun bool `mapstructure:"dry_run" default:"false"`
	// ChunkSize is the number of records per destination call.
	ChunkSize int `mapstructure:"chunk_size" default:"10"`
}
