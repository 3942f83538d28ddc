package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables that override file settings,
// e.g. REVIEWPIPE_POOL_SIZE.
const EnvPrefix = "REVIEWPIPE"

// Load builds a Config from defaults, an optional config file and the
// environment. A .env file in the working directory is loaded first when
// present. An empty path skips the config file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("error loading .env file", "err", err)
	}

	v := viper.New()
	defaults := DefaultConfig()
	v.SetDefault("source", defaults.Source)
	v.SetDefault("source_root", defaults.SourceRoot)
	v.SetDefault("store", defaults.Store)
	v.SetDefault("store_path", defaults.StorePath)
	v.SetDefault("table", defaults.Table)
	v.SetDefault("region", defaults.Region)
	v.SetDefault("pool_size", defaults.PoolSize)
	v.SetDefault("id_scheme", defaults.IDScheme)
	v.SetDefault("upload_log", defaults.UploadLog)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
