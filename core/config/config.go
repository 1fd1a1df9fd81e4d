package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"boardgame-sync/core/database"
	"boardgame-sync/core/logger"
	"boardgame-sync/core/storage"
	"boardgame-sync/feature/airtable"
	"boardgame-sync/feature/bgg"
	"boardgame-sync/feature/collection"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingSetting is returned by Validate when a required value is empty.
var ErrMissingSetting = errors.New("missing required setting")

// ValuesFile is the legacy credentials file read next to .env.
const ValuesFile = "values.json"

// legacyValues maps values.json keys to configuration keys.
var legacyValues = map[string]string{
	"AIRTABLE_API_KEY": "airtable.api_key",
	"AIRTABLE_BASE_ID": "airtable.base_id",
	"BGG_USER":         "bgg.username",
}

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// BGG holds configuration for the upstream catalog API.
	BGG bgg.Config `mapstructure:"bgg"`
	// Airtable holds configuration for the destination base.
	Airtable airtable.Config `mapstructure:"airtable"`
	// Sync holds the run switches.
	Sync collection.Config `mapstructure:"sync"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the run history database.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the snapshot object storage.
	Storage storage.Config `mapstructure:"storage"`
}

// LoadConfig loads configuration from environment variables, the .env file and values.json.
// Environment variables win over values.json, which wins over built-in defaults.
func LoadConfig(path string) (*Config, error) {
	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(filepath.Join(path, ".env"))

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	if err := overlayValuesFile(v, filepath.Join(path, ValuesFile)); err != nil {
		return nil, err
	}

	// Map environment variables to nested keys (e.g. BGG_USERNAME -> bgg.username)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Short names kept from the original scripts
	if err := v.BindEnv("sync.reset", "SYNC_RESET", "RESET"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("bgg.username", "BGG_USERNAME", "BGG_USER"); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	return &config, nil
}

// Validate reports the first required sync setting that is empty.
func (c *Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"bgg.username", c.BGG.Username},
		{"airtable.api_key", c.Airtable.APIKey},
		{"airtable.base_id", c.Airtable.BaseID},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingSetting, r.key)
		}
	}
	if c.Sync.ChunkSize <= 0 || c.Sync.ChunkSize > airtable.MaxBatchSize {
		return fmt.Errorf("sync.chunk_size must be between 1 and %d, got %d", airtable.MaxBatchSize, c.Sync.ChunkSize)
	}
	return nil
}

// overlayValuesFile registers values.json entries as defaults, below the environment.
func overlayValuesFile(v *viper.Viper, file string) error {
	if _, err := os.Stat(file); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", file, err)
	}

	values := viper.New()
	values.SetConfigFile(file)
	values.SetConfigType("json")
	if err := values.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}

	for legacy, key := range legacyValues {
		// viper keys are case-insensitive
		if val := values.GetString(legacy); val != "" {
			v.SetDefault(key, val)
		}
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
