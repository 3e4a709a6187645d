package budget

import (
	"context"

	"Pocketbook/internal/domain/category"
	"Pocketbook/internal/domain/shared"
	appErrors "Pocketbook/internal/errors"
	"Pocketbook/internal/pkg"

	"github.com/shopspring/decimal"
)

type CategoryGetter interface {
	GetByID(ctx context.Context, categoryID, userID string) (*category.Category, error)
}

type Service struct {
	Repository Repository
	Categories CategoryGetter
	shared.BaseService
}

func NewService(repo Repository, categories CategoryGetter, userChecker *shared.UserCheckerService) *Service {
	return &Service{
		Repository: repo,
		Categories: categories,
		BaseService: shared.BaseService{
			UserChecker: userChecker,
		},
	}
}

func (s *Service) CreateBudget(ctx context.Context, req *CreateBudgetRequest) (*Budget, error) {
	if err := s.EnsureUserExists(ctx, req.UserId); err != nil {
		return nil, err
	}

	if err := s.validateCreateRequest(ctx, req); err != nil {
		return nil, err
	}

	period := Period{UserId: req.UserId, CategoryId: req.CategoryId, Year: req.Year, Month: req.Month}
	if err := s.ensurePeriodFree(ctx, period, ""); err != nil {
		return nil, err
	}

	now := pkg.Now()
	created, err := s.Repository.Create(ctx, &Budget{
		Id:         pkg.NewID(),
		UserId:     req.UserId,
		CategoryId: req.CategoryId,
		Year:       req.Year,
		Month:      req.Month,
		Amount:     req.Amount,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, shared.StorageError(err)
	}

	return created, nil
}

func (s *Service) UpdateBudget(ctx context.Context, budgetID, userID string, req *UpdateBudgetRequest) (*Budget, error) {
	existing, err := s.GetBudgetByID(ctx, budgetID, userID)
	if err != nil {
		return nil, err
	}

	patch := pkg.Fields{}
	period := existing.Period()

	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, appErrors.NewValidationError("amount", "must be greater than zero")
		}
		patch["amount"] = *req.Amount
	}

	if req.CategoryId != nil && *req.CategoryId != existing.CategoryId {
		if _, err := s.Categories.GetByID(ctx, *req.CategoryId, userID); err != nil {
			return nil, err
		}
		patch["category_id"] = *req.CategoryId
		period.CategoryId = *req.CategoryId
	}

	if req.Year != nil {
		if err := validateYear(*req.Year); err != nil {
			return nil, err
		}
		patch["year"] = *req.Year
		period.Year = *req.Year
	}

	if req.Month != nil {
		if err := validateMonth(*req.Month); err != nil {
			return nil, err
		}
		patch["month"] = *req.Month
		period.Month = *req.Month
	}

	if period != existing.Period() {
		if err := s.ensurePeriodFree(ctx, period, existing.Id); err != nil {
			return nil, err
		}
	}

	updated, err := s.Repository.Update(ctx, budgetID, patch)
	if err != nil {
		return nil, shared.StorageError(err)
	}
	if updated == nil {
		return nil, appErrors.ErrBudgetNotFound
	}

	return updated, nil
}

func (s *Service) DeleteBudget(ctx context.Context, budgetID, userID string) error {
	if _, err := s.GetBudgetByID(ctx, budgetID, userID); err != nil {
		return err
	}

	deleted, err := s.Repository.Delete(ctx, budgetID)
	if err != nil {
		return shared.StorageError(err)
	}
	if !deleted {
		return appErrors.ErrBudgetNotFound
	}
	return nil
}

func (s *Service) GetBudgetByID(ctx context.Context, budgetID, userID string) (*Budget, error) {
	budget, err := s.Repository.GetByID(ctx, budgetID)
	if err != nil {
		return nil, shared.StorageError(err)
	}
	if budget == nil {
		return nil, appErrors.ErrBudgetNotFound
	}

	if budget.UserId != userID {
		return nil, appErrors.ErrResourceNotOwned
	}

	return budget, nil
}

// ListBudgets returns the user's budgets ordered by (year, month).
func (s *Service) ListBudgets(ctx context.Context, userID string, filters pkg.Fields) ([]*Budget, error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	scoped := pkg.Fields{}
	for k, v := range filters {
		scoped[k] = v
	}
	scoped[FilterUserID] = userID

	budgets, err := s.Repository.List(ctx, scoped)
	if err != nil {
		return nil, shared.StorageError(err)
	}
	return budgets, nil
}

func (s *Service) GetForPeriod(ctx context.Context, userID, categoryID string, year, month int) (*Budget, error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	budget, err := s.Repository.FindByPeriod(ctx, userID, categoryID, year, month)
	if err != nil {
		return nil, shared.StorageError(err)
	}
	if budget == nil {
		return nil, appErrors.ErrBudgetNotFound
	}
	return budget, nil
}

func (s *Service) ensurePeriodFree(ctx context.Context, period Period, selfID string) error {
	existing, err := s.Repository.FindByPeriod(ctx, period.UserId, period.CategoryId, period.Year, period.Month)
	if err != nil {
		return shared.StorageError(err)
	}
	if existing != nil && existing.Id != selfID {
		return appErrors.NewAlreadyExistsError("budget", period.Details())
	}
	return nil
}

func (s *Service) validateCreateRequest(ctx context.Context, req *CreateBudgetRequest) error {
	if !req.Amount.IsPositive() {
		return appErrors.NewValidationError("amount", "must be greater than zero")
	}

	if err := validateMonth(req.Month); err != nil {
		return err
	}

	if err := validateYear(req.Year); err != nil {
		return err
	}

	if _, err := s.Categories.GetByID(ctx, req.CategoryId, req.UserId); err != nil {
		return err
	}

	return nil
}

func validateMonth(month int) error {
	if month < 1 || month > 12 {
		return appErrors.NewValidationError("month", "must be between 1 and 12")
	}
	return nil
}

func validateYear(year int) error {
	if year < 2000 || year > 2100 {
		return appErrors.NewValidationError("year", "is out of range")
	}
	return nil
}

type CreateBudgetRequest struct {
	UserId     string
	CategoryId string
	Year       int
	Month      int
	Amount     decimal.Decimal
}

type UpdateBudgetRequest struct {
	CategoryId *string
	Year       *int
	Month      *int
	Amount     *decimal.Decimal
}
