package properties

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultLayerRegistry = "layers.csv"
	defaultBatchWorkers  = 4
	maxBatchWorkers      = 64
)

// Config holds the tool settings, populated from the environment.
type Config struct {
	LayerRegistryPath string
	CacheDir          string
	PreviewEnabled    bool
	FootprintEnabled  bool
	BatchWorkers      int
	CreationOptions   []string

	DiscordSuccessURL string
	DiscordErrorURL   string
}

// LoadEnvFile loads the first .env found among paths. A missing file is not
// an error, the environment may be set some other way.
func LoadEnvFile(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		return nil
	}
	return nil
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	preview, err := parseBool("PREVIEW_ENABLED", false)
	if err != nil {
		return nil, err
	}
	footprint, err := parseBool("FOOTPRINT_ENABLED", true)
	if err != nil {
		return nil, err
	}
	workers, err := parseBatchWorkers()
	if err != nil {
		return nil, err
	}

	return &Config{
		LayerRegistryPath: envOrDefault("LAYER_REGISTRY_PATH", defaultLayerRegistry),
		CacheDir:          os.Getenv("CACHE_DIR"),
		PreviewEnabled:    preview,
		FootprintEnabled:  footprint,
		BatchWorkers:      workers,
		CreationOptions:   parseList(envOrDefault("GTIFF_CREATION_OPTIONS", "COMPRESS=LZW")),
		DiscordSuccessURL: DiscordSuccessNotificationUrl(),
		DiscordErrorURL:   DiscordErrorNotificationUrl(),
	}, nil
}

func DiscordErrorNotificationUrl() string {
	return os.Getenv("DISCORD_ERROR_NOTIFICATION_URL")
}

func DiscordSuccessNotificationUrl() string {
	return os.Getenv("DISCORD_SUCCESS_NOTIFICATION_URL")
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %q", key, v)
	}
	return b, nil
}

func parseBatchWorkers() (int, error) {
	v := os.Getenv("BATCH_WORKERS")
	if v == "" {
		return defaultBatchWorkers, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > maxBatchWorkers {
		return 0, errors.New("invalid BATCH_WORKERS: must be between 1 and 64")
	}
	return n, nil
}

func parseList(v string) []string {
	out := []string{}
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
