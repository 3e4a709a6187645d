package fx

import (
	"Pocketbook/config"
	"Pocketbook/internal/logger"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		newConfig,
	),
	fx.Invoke(
		initLogger,
	),
)

// newConfig loads .env files before the environment is read. Missing files
// are fine: deployments set the variables directly.
func newConfig() (*config.Config, error) {
	loaded := loadEnvFiles(".env", "../../.env")

	cfg, err := config.Get()
	if err != nil {
		return nil, err
	}

	logger.Init(cfg)
	for _, file := range loaded {
		logger.Debug().Str("file", file).Msg("loaded env file")
	}
	return cfg, nil
}

func loadEnvFiles(files ...string) []string {
	var loaded []string
	for _, file := range files {
		if err := godotenv.Load(file); err == nil {
			loaded = append(loaded, file)
		}
	}
	return loaded
}

func initLogger(cfg *config.Config) {
	logger.Info().
		Str("app", cfg.App.Name).
		Str("environment", cfg.App.Environment).
		Str("storage_backend", cfg.Database.Backend).
		Str("log_level", cfg.Log.Level).
		Msg("configuration loaded")
}
