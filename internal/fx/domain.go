package fx

import (
	"Pocketbook/internal/domain/account"
	"Pocketbook/internal/domain/budget"
	"Pocketbook/internal/domain/category"
	"Pocketbook/internal/domain/shared"
	"Pocketbook/internal/domain/user"

	"go.uber.org/fx"
)

var DomainModule = fx.Module("domain",
	fx.Provide(
		user.NewService,
		newUserCheckerService,
		category.NewService,
		account.NewService,
		newBudgetService,
	),
)

func newUserCheckerService(userSvc *user.Service) *shared.UserCheckerService {
	return shared.NewUserCheckerService(userSvc)
}

func newBudgetService(
	repo budget.Repository,
	categorySvc *category.Service,
	userChecker *shared.UserCheckerService,
) *budget.Service {
	return budget.NewService(repo, categorySvc, userChecker)
}
