package fx

import (
	"context"
	"time"

	"Pocketbook/config"
	"Pocketbook/internal/domain/account"
	"Pocketbook/internal/domain/budget"
	"Pocketbook/internal/domain/category"
	"Pocketbook/internal/domain/user"
	"Pocketbook/internal/middleware"
	"Pocketbook/internal/routes"

	"go.uber.org/fx"
)

var RoutesModule = fx.Module("routes",
	fx.Provide(
		newHandler,
		newRateLimiter,
	),
)

func newHandler(
	userSvc *user.Service,
	accountSvc *account.Service,
	categorySvc *category.Service,
	budgetSvc *budget.Service,
) *routes.Handler {
	return &routes.Handler{
		UserService:     userSvc,
		AccountService:  accountSvc,
		CategoryService: categorySvc,
		BudgetService:   budgetSvc,
	}
}

func newRateLimiter(lc fx.Lifecycle, cfg *config.Config) *middleware.RateLimiter {
	limiter := middleware.NewRateLimiter(cfg.Server.RateLimit, time.Minute)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			limiter.Stop()
			return nil
		},
	})
	return limiter
}
