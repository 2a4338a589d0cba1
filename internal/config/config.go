package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Mononote"`
	}

	Data struct {
		// Path of the sqlite file holding all persisted state.
		Path string `envconfig:"DATA_PATH" default:"./data/mononote.db"`
	}

	Backup struct {
		// Default directory offered for exported backup files.
		Dir string `envconfig:"BACKUP_DIR" default:"."`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
