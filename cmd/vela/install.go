package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/velahq/vela/internal/config"
	"github.com/velahq/vela/pkg/env"
	"github.com/velahq/vela/pkg/log"
)

var installCmd = &cobra.Command{
	Use:           "install",
	Short:         "Create the runtime directory and a starter .env file",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Setup logger
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		runtimePath := config.GetRuntimePath()
		if err := os.MkdirAll(runtimePath, 0755); err != nil {
			return fmt.Errorf("failed to create runtime directory: %w", err)
		}

		envPath := filepath.Join(runtimePath, ".env")
		if _, err := os.Stat(envPath); err == nil {
			logger.Info().Str("path", envPath).Msg(".env already exists, leaving it untouched")
			return nil
		}

		content, err := starterEnv()
		if err != nil {
			return err
		}
		if err := os.WriteFile(envPath, []byte(content), 0600); err != nil {
			return fmt.Errorf("failed to write .env file: %w", err)
		}

		logger.Info().Msgf("initialized runtime directory at: %s", runtimePath)
		logger.Info().Msg("Installation complete! You can now run 'vela start'.")
		return nil
	},
}

// starterEnv renders the default configuration as .env content so users
// have every knob in front of them.
func starterEnv() (string, error) {
	app := &config.AppConfig{
		RuntimePath:       ".vela",
		LLMProvider:       "ollama",
		EnableCLI:         true,
		ContextWindowSize: 5,
		BackupRetention:   5,
	}
	llm := &config.LLMConfig{
		Model:         "llama2",
		OllamaBaseURL: "http://localhost:11434",
	}

	appPart, err := env.MarshalEnv(app)
	if err != nil {
		return "", err
	}
	llmPart, err := env.MarshalEnv(llm)
	if err != nil {
		return "", err
	}
	return appPart + llmPart, nil
}

func init() {
	rootCmd.AddCommand(installCmd)
}
