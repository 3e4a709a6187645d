package budget_test

import (
	"context"
	"errors"
	"testing"

	"Pocketbook/internal/domain/budget"
	"Pocketbook/internal/domain/category"
	"Pocketbook/internal/domain/shared"
	appErrors "Pocketbook/internal/errors"
	"Pocketbook/internal/pkg"

	"github.com/shopspring/decimal"
)

type fakeBudgetRepository struct {
	createFn       func(ctx context.Context, b *budget.Budget) (*budget.Budget, error)
	getByIDFn      func(ctx context.Context, id string) (*budget.Budget, error)
	listFn         func(ctx context.Context, filters pkg.Fields) ([]*budget.Budget, error)
	updateFn       func(ctx context.Context, id string, patch pkg.Fields) (*budget.Budget, error)
	deleteFn       func(ctx context.Context, id string) (bool, error)
	findByPeriodFn func(ctx context.Context, userID, categoryID string, year, month int) (*budget.Budget, error)
}

func (f *fakeBudgetRepository) Create(ctx context.Context, b *budget.Budget) (*budget.Budget, error) {
	if f.createFn != nil {
		return f.createFn(ctx, b)
	}
	return b, nil
}

func (f *fakeBudgetRepository) GetByID(ctx context.Context, id string) (*budget.Budget, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeBudgetRepository) List(ctx context.Context, filters pkg.Fields) ([]*budget.Budget, error) {
	if f.listFn != nil {
		return f.listFn(ctx, filters)
	}
	return nil, nil
}

func (f *fakeBudgetRepository) Update(ctx context.Context, id string, patch pkg.Fields) (*budget.Budget, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, patch)
	}
	return nil, nil
}

func (f *fakeBudgetRepository) Delete(ctx context.Context, id string) (bool, error) {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return false, nil
}

func (f *fakeBudgetRepository) FindByPeriod(ctx context.Context, userID, categoryID string, year, month int) (*budget.Budget, error) {
	if f.findByPeriodFn != nil {
		return f.findByPeriodFn(ctx, userID, categoryID, year, month)
	}
	return nil, nil
}

type fakeCategoryGetter struct {
	getByIDFn func(ctx context.Context, categoryID, userID string) (*category.Category, error)
}

func (f *fakeCategoryGetter) GetByID(ctx context.Context, categoryID, userID string) (*category.Category, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, categoryID, userID)
	}
	return &category.Category{Id: categoryID, UserId: userID, Type: category.TypeExpense}, nil
}

type fakeUserDirectory struct {
	existsFn func(ctx context.Context, userID string) error
}

func (f *fakeUserDirectory) Exists(ctx context.Context, userID string) error {
	if f.existsFn != nil {
		return f.existsFn(ctx, userID)
	}
	return nil
}

func (f *fakeUserDirectory) DefaultCurrency(ctx context.Context, userID string) (string, error) {
	return "EUR", nil
}

func newService(repo *fakeBudgetRepository, categories *fakeCategoryGetter) *budget.Service {
	return budget.NewService(repo, categories, shared.NewUserCheckerService(&fakeUserDirectory{}))
}

func validRequest() *budget.CreateBudgetRequest {
	return &budget.CreateBudgetRequest{
		UserId:     pkg.NewID(),
		CategoryId: pkg.NewID(),
		Year:       2024,
		Month:      5,
		Amount:     decimal.RequireFromString("250.00"),
	}
}

func TestCreateBudget_Success(t *testing.T) {
	var stored *budget.Budget
	repo := &fakeBudgetRepository{
		createFn: func(ctx context.Context, b *budget.Budget) (*budget.Budget, error) {
			stored = b
			return b, nil
		},
	}
	svc := newService(repo, &fakeCategoryGetter{})

	req := validRequest()
	created, err := svc.CreateBudget(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored == nil || created.Id == "" || !pkg.IsValidID(created.Id) {
		t.Fatalf("expected budget to be stored with a generated id, got %+v", created)
	}
	if created.Period() != (budget.Period{UserId: req.UserId, CategoryId: req.CategoryId, Year: 2024, Month: 5}) {
		t.Fatalf("unexpected period: %+v", created.Period())
	}
	if created.CreatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}
}

func TestCreateBudget_PeriodTaken(t *testing.T) {
	repo := &fakeBudgetRepository{
		findByPeriodFn: func(ctx context.Context, userID, categoryID string, year, month int) (*budget.Budget, error) {
			return &budget.Budget{Id: pkg.NewID(), UserId: userID, CategoryId: categoryID, Year: year, Month: month}, nil
		},
		createFn: func(ctx context.Context, b *budget.Budget) (*budget.Budget, error) {
			t.Fatalf("create must not be called when the period is taken")
			return nil, nil
		},
	}
	svc := newService(repo, &fakeCategoryGetter{})

	_, err := svc.CreateBudget(context.Background(), validRequest())
	if !errors.Is(err, appErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
	if !shared.IsConflict(err) {
		t.Fatalf("expected conflict")
	}
}

func TestCreateBudget_Validation(t *testing.T) {
	tests := map[string]func(r *budget.CreateBudgetRequest){
		"zero amount":     func(r *budget.CreateBudgetRequest) { r.Amount = decimal.Zero },
		"negative amount": func(r *budget.CreateBudgetRequest) { r.Amount = decimal.NewFromInt(-1) },
		"month zero":      func(r *budget.CreateBudgetRequest) { r.Month = 0 },
		"month thirteen":  func(r *budget.CreateBudgetRequest) { r.Month = 13 },
		"year too old":    func(r *budget.CreateBudgetRequest) { r.Year = 1999 },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			svc := newService(&fakeBudgetRepository{}, &fakeCategoryGetter{})
			req := validRequest()
			mutate(req)

			_, err := svc.CreateBudget(context.Background(), req)
			if !errors.Is(err, appErrors.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateBudget_CategoryNotOwned(t *testing.T) {
	categories := &fakeCategoryGetter{
		getByIDFn: func(ctx context.Context, categoryID, userID string) (*category.Category, error) {
			return nil, appErrors.ErrResourceNotOwned
		},
	}
	svc := newService(&fakeBudgetRepository{}, categories)

	_, err := svc.CreateBudget(context.Background(), validRequest())
	if !errors.Is(err, appErrors.ErrResourceNotOwned) {
		t.Fatalf("expected not owned, got %v", err)
	}
}

func TestCreateBudget_UnknownUser(t *testing.T) {
	users := &fakeUserDirectory{
		existsFn: func(ctx context.Context, userID string) error {
			return appErrors.ErrUserNotFound
		},
	}
	svc := budget.NewService(&fakeBudgetRepository{}, &fakeCategoryGetter{}, shared.NewUserCheckerService(users))

	_, err := svc.CreateBudget(context.Background(), validRequest())
	if !errors.Is(err, appErrors.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}

func TestUpdateBudget_MovingToTakenPeriod(t *testing.T) {
	userID, categoryID := pkg.NewID(), pkg.NewID()
	current := &budget.Budget{Id: pkg.NewID(), UserId: userID, CategoryId: categoryID, Year: 2024, Month: 1, Amount: decimal.NewFromInt(10)}
	other := &budget.Budget{Id: pkg.NewID(), UserId: userID, CategoryId: categoryID, Year: 2024, Month: 2, Amount: decimal.NewFromInt(10)}

	repo := &fakeBudgetRepository{
		getByIDFn: func(ctx context.Context, id string) (*budget.Budget, error) {
			return current, nil
		},
		findByPeriodFn: func(ctx context.Context, u, c string, year, month int) (*budget.Budget, error) {
			if month == 2 {
				return other, nil
			}
			return nil, nil
		},
		updateFn: func(ctx context.Context, id string, patch pkg.Fields) (*budget.Budget, error) {
			t.Fatalf("update must not be called")
			return nil, nil
		},
	}
	svc := newService(repo, &fakeCategoryGetter{})

	month := 2
	_, err := svc.UpdateBudget(context.Background(), current.Id, userID, &budget.UpdateBudgetRequest{Month: &month})
	if !errors.Is(err, appErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
}

func TestUpdateBudget_AmountOnly(t *testing.T) {
	userID := pkg.NewID()
	current := &budget.Budget{Id: pkg.NewID(), UserId: userID, CategoryId: pkg.NewID(), Year: 2024, Month: 1, Amount: decimal.NewFromInt(10)}

	var gotPatch pkg.Fields
	repo := &fakeBudgetRepository{
		getByIDFn: func(ctx context.Context, id string) (*budget.Budget, error) {
			return current, nil
		},
		findByPeriodFn: func(ctx context.Context, u, c string, year, month int) (*budget.Budget, error) {
			t.Fatalf("period lookup is not needed when the period is unchanged")
			return nil, nil
		},
		updateFn: func(ctx context.Context, id string, patch pkg.Fields) (*budget.Budget, error) {
			gotPatch = patch
			updated := *current
			updated.Amount = patch["amount"].(decimal.Decimal)
			return &updated, nil
		},
	}
	svc := newService(repo, &fakeCategoryGetter{})

	amount := decimal.RequireFromString("99.90")
	updated, err := svc.UpdateBudget(context.Background(), current.Id, userID, &budget.UpdateBudgetRequest{Amount: &amount})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotPatch) != 1 || !updated.Amount.Equal(amount) {
		t.Fatalf("unexpected patch %v / budget %+v", gotPatch, updated)
	}
}

func TestGetBudgetByID_Ownership(t *testing.T) {
	repo := &fakeBudgetRepository{
		getByIDFn: func(ctx context.Context, id string) (*budget.Budget, error) {
			return &budget.Budget{Id: id, UserId: "owner"}, nil
		},
	}
	svc := newService(repo, &fakeCategoryGetter{})

	if _, err := svc.GetBudgetByID(context.Background(), pkg.NewID(), "intruder"); !errors.Is(err, appErrors.ErrResourceNotOwned) {
		t.Fatalf("expected not owned, got %v", err)
	}

	repo.getByIDFn = nil
	if _, err := svc.GetBudgetByID(context.Background(), pkg.NewID(), "owner"); !errors.Is(err, appErrors.ErrBudgetNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListBudgets_ScopesToUser(t *testing.T) {
	userID := pkg.NewID()
	repo := &fakeBudgetRepository{
		listFn: func(ctx context.Context, filters pkg.Fields) ([]*budget.Budget, error) {
			if v, _ := filters.String(budget.FilterUserID); v != userID {
				t.Fatalf("expected user scope, got %v", filters)
			}
			if v, _ := filters.Int(budget.FilterYear); v != 2024 {
				t.Fatalf("expected year filter to be kept, got %v", filters)
			}
			return []*budget.Budget{}, nil
		},
	}
	svc := newService(repo, &fakeCategoryGetter{})

	if _, err := svc.ListBudgets(context.Background(), userID, pkg.Fields{budget.FilterUserID: "someone-else", budget.FilterYear: 2024}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteBudget_StorageFailure(t *testing.T) {
	userID := pkg.NewID()
	repo := &fakeBudgetRepository{
		getByIDFn: func(ctx context.Context, id string) (*budget.Budget, error) {
			return &budget.Budget{Id: id, UserId: userID}, nil
		},
		deleteFn: func(ctx context.Context, id string) (bool, error) {
			return false, errors.New("connection reset")
		},
	}
	svc := newService(repo, &fakeCategoryGetter{})

	err := svc.DeleteBudget(context.Background(), pkg.NewID(), userID)
	if !errors.Is(err, appErrors.ErrDatabase) {
		t.Fatalf("expected database error, got %v", err)
	}
}

func TestGetForPeriod_UnknownUser(t *testing.T) {
	users := &fakeUserDirectory{
		existsFn: func(ctx context.Context, userID string) error {
			return appErrors.ErrUserNotFound
		},
	}
	repo := &fakeBudgetRepository{
		findByPeriodFn: func(ctx context.Context, userID, categoryID string, year, month int) (*budget.Budget, error) {
			t.Fatalf("repository must not be queried for an unknown user")
			return nil, nil
		},
	}
	svc := budget.NewService(repo, &fakeCategoryGetter{}, shared.NewUserCheckerService(users))

	_, err := svc.GetForPeriod(context.Background(), pkg.NewID(), pkg.NewID(), 2024, 5)
	if !errors.Is(err, appErrors.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}

func TestGetForPeriod_Missing(t *testing.T) {
	svc := newService(&fakeBudgetRepository{}, &fakeCategoryGetter{})

	_, err := svc.GetForPeriod(context.Background(), pkg.NewID(), pkg.NewID(), 2024, 5)
	if !errors.Is(err, appErrors.ErrBudgetNotFound) {
		t.Fatalf("expected budget not found, got %v", err)
	}
}
