package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v9"
	"github.com/velahq/vela/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"VELA_RUNTIME_PATH" envDefault:".vela"`
	LLMProvider string `env:"LLM_PROVIDER" envDefault:"ollama"`

	EnableCLI bool `env:"ENABLE_CLI" envDefault:"true"`

	// Number of recent chat turns rendered into the model context.
	// The window is global, not per-session; concurrent conversations
	// can interleave inside it.
	ContextWindowSize int `env:"CONTEXT_WINDOW_SIZE" envDefault:"5"`

	// Snapshots retained after each backup rotation.
	BackupRetention int `env:"BACKUP_RETENTION" envDefault:"5"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "vela.db")
}

func (c AppConfig) GetBackupDir() string {
	return filepath.Join(c.RuntimePath, "backups")
}
