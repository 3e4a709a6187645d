package fx

import (
	"context"
	"fmt"

	"Pocketbook/config"
	"Pocketbook/internal/domain/account"
	"Pocketbook/internal/domain/budget"
	"Pocketbook/internal/domain/category"
	"Pocketbook/internal/domain/user"
	"Pocketbook/internal/infrastructure"
	"Pocketbook/internal/infrastructure/memory"
	"Pocketbook/internal/logger"

	"go.uber.org/fx"
)

var InfrastructureModule = fx.Module("infrastructure",
	fx.Provide(
		newRepositories,
	),
)

type Repositories struct {
	fx.Out

	Users      user.Repository
	Accounts   account.Repository
	Categories category.Repository
	Budgets    budget.Repository
}

func newRepositories(lc fx.Lifecycle, cfg *config.Config) (Repositories, error) {
	switch cfg.Database.Backend {
	case config.BackendMemory:
		logger.Warn().Msg("using in-memory storage, data is lost on restart")
		return Repositories{
			Users:      memory.NewUserRepository(),
			Accounts:   memory.NewAccountRepository(),
			Categories: memory.NewCategoryRepository(),
			Budgets:    memory.NewBudgetRepository(),
		}, nil
	case config.BackendMongo:
		return newMongoRepositories(lc, cfg)
	default:
		return Repositories{}, fmt.Errorf("unknown storage backend %q", cfg.Database.Backend)
	}
}

func newMongoRepositories(lc fx.Lifecycle, cfg *config.Config) (Repositories, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.Timeout)
	defer cancel()

	client, err := infrastructure.NewMongo(ctx, cfg)
	if err != nil {
		return Repositories{}, err
	}
	db := client.Database(cfg.Database.Name)

	users, err := infrastructure.NewUserRepository(db)
	if err != nil {
		return Repositories{}, err
	}
	accounts, err := infrastructure.NewAccountRepository(db)
	if err != nil {
		return Repositories{}, err
	}
	categories, err := infrastructure.NewCategoryRepository(db)
	if err != nil {
		return Repositories{}, err
	}
	budgets, err := infrastructure.NewBudgetRepository(db)
	if err != nil {
		return Repositories{}, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Cold repositories build their indexes on first use.
			if err := infrastructure.EnsureIndexes(ctx, users, accounts, categories, budgets); err != nil {
				logger.Warn().Err(err).Msg("index warm-up failed")
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("disconnecting from mongodb")
			return client.Disconnect(ctx)
		},
	})

	return Repositories{
		Users:      users,
		Accounts:   accounts,
		Categories: categories,
		Budgets:    budgets,
	}, nil
}
