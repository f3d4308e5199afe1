package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/velahq/vela/internal/config"
	"github.com/velahq/vela/internal/providers/llm"
	providertools "github.com/velahq/vela/internal/providers/tools"
	"github.com/velahq/vela/internal/service/agent"
	"github.com/velahq/vela/internal/service/memory"
	"github.com/velahq/vela/internal/service/tools"
	"github.com/velahq/vela/internal/storage/sqlite"
	"github.com/velahq/vela/internal/transport/cli"
	"github.com/velahq/vela/pkg/log"
	"github.com/velahq/vela/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	err := initEnv(ctx, config.GetRuntimePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	llmCfg := config.NewLLMConfig(ctx)

	// 2. Storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	// 3. Memory
	mem, err := memory.Shared(ctx, func(ctx context.Context) (*memory.Memory, error) {
		return buildMemory(ctx, db, appCfg), nil
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize memory")
	}

	// 4. AI Provider
	aiProvider, err := llm.NewProvider(ctx, appCfg.LLMProvider, llmCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	// 5. Tools
	dispatcher := newDispatcher()

	// 6. Agent Service
	ag := agent.NewAgent(
		appCfg,
		aiProvider,
		mem,
		memory.NewContextBuilder(sqlite.NewChatRepo(db)),
		dispatcher,
		agent.NewComposer(nil),
	)

	// 7. Transports
	if appCfg.EnableCLI {
		rl, err := cli.NewReadLine(ag, appCfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize CLI transport")
		}
		services = append(services, rl)
	}

	return services
}

func buildMemory(ctx context.Context, db *sql.DB, cfg *config.AppConfig) *memory.Memory {
	return memory.NewMemory(
		ctx,
		sqlite.NewChatRepo(db),
		sqlite.NewTasksRepo(db),
		sqlite.NewPreferencesRepo(db),
		sqlite.NewSemanticRepo(db),
		sqlite.NewBackups(cfg.GetDatabasePath(), cfg.GetBackupDir(), cfg.BackupRetention),
	)
}

func newDispatcher() *tools.Dispatcher {
	d := tools.NewDispatcher(nil)

	d.Register("get_weather", providertools.NewWeather().Current)
	d.Register("get_news", providertools.NewNews().Headlines)
	d.Register("search_web", providertools.NewSearch().Query)
	d.Register("fetch_url", providertools.NewFetch().FetchURL)

	return d
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
