package memory_test

import (
	"context"
	"testing"

	"Pocketbook/internal/domain/account"
	"Pocketbook/internal/domain/budget"
	"Pocketbook/internal/domain/category"
	"Pocketbook/internal/domain/user"
	appErrors "Pocketbook/internal/errors"
	"Pocketbook/internal/infrastructure/memory"
	"Pocketbook/internal/pkg"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBudget(userID, categoryID string, year, month int, amount string) *budget.Budget {
	now := pkg.Now()
	return &budget.Budget{
		Id:         pkg.NewID(),
		UserId:     userID,
		CategoryId: categoryID,
		Year:       year,
		Month:      month,
		Amount:     decimal.RequireFromString(amount),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func newCategory(userID, name string, parentID *string) *category.Category {
	now := pkg.Now()
	return &category.Category{
		Id:        pkg.NewID(),
		UserId:    userID,
		Name:      name,
		Type:      category.TypeExpense,
		ParentId:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestBudgetRepository_PeriodIsUnique(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewBudgetRepository()
	userID, categoryID := pkg.NewID(), pkg.NewID()

	_, err := repo.Create(ctx, newBudget(userID, categoryID, 2024, 1, "100.50"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newBudget(userID, categoryID, 2024, 1, "80"))
	require.ErrorIs(t, err, appErrors.ErrAlreadyExists)

	appErr, ok := appErrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 2024, appErr.Details["year"])
	assert.Equal(t, 1, appErr.Details["month"])

	_, err = repo.Create(ctx, newBudget(userID, categoryID, 2024, 2, "80"))
	require.NoError(t, err)
}

func TestBudgetRepository_UpdateIntoTakenPeriod(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewBudgetRepository()
	userID, categoryID := pkg.NewID(), pkg.NewID()

	_, err := repo.Create(ctx, newBudget(userID, categoryID, 2024, 1, "10"))
	require.NoError(t, err)
	second, err := repo.Create(ctx, newBudget(userID, categoryID, 2024, 2, "10"))
	require.NoError(t, err)

	_, err = repo.Update(ctx, second.Id, pkg.Fields{"month": 1})
	require.ErrorIs(t, err, appErrors.ErrAlreadyExists)

	unchanged, err := repo.GetByID(ctx, second.Id)
	require.NoError(t, err)
	assert.Equal(t, 2, unchanged.Month)
}

func TestBudgetRepository_FindByPeriodMatchesAllFields(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewBudgetRepository()
	userA, userB, categoryID := pkg.NewID(), pkg.NewID(), pkg.NewID()

	first, err := repo.Create(ctx, newBudget(userA, categoryID, 2024, 1, "50"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newBudget(userB, categoryID, 2024, 1, "75"))
	require.NoError(t, err)

	found, err := repo.FindByPeriod(ctx, userA, categoryID, 2024, 1)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, first.Id, found.Id)

	missing, err := repo.FindByPeriod(ctx, userA, categoryID, 2024, 2)
	require.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = repo.FindByPeriod(ctx, pkg.NewID(), categoryID, 2024, 1)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBudgetRepository_ListOrdersByPeriod(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewBudgetRepository()
	userID, categoryID := pkg.NewID(), pkg.NewID()

	for _, p := range [][2]int{{2025, 1}, {2024, 12}, {2024, 3}} {
		_, err := repo.Create(ctx, newBudget(userID, categoryID, p[0], p[1], "1"))
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, pkg.Fields{budget.FilterUserID: userID})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, [2]int{2024, 3}, [2]int{all[0].Year, all[0].Month})
	assert.Equal(t, [2]int{2024, 12}, [2]int{all[1].Year, all[1].Month})
	assert.Equal(t, [2]int{2025, 1}, [2]int{all[2].Year, all[2].Month})

	only2024, err := repo.List(ctx, pkg.Fields{budget.FilterYear: 2024})
	require.NoError(t, err)
	assert.Len(t, only2024, 2)

	ignored, err := repo.List(ctx, pkg.Fields{budget.FilterYear: "2024"})
	require.NoError(t, err)
	assert.Len(t, ignored, 3, "a wrong-typed filter is ignored")
}

func TestCategoryRepository_ParentFilter(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCategoryRepository()
	userID := pkg.NewID()

	food, err := repo.Create(ctx, newCategory(userID, "Food", nil))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newCategory(userID, "Restaurants", &food.Id))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newCategory(userID, "Bills", nil))
	require.NoError(t, err)

	all, err := repo.List(ctx, pkg.Fields{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	topLevel, err := repo.List(ctx, pkg.Fields{category.FilterParentID: nil})
	require.NoError(t, err)
	require.Len(t, topLevel, 2)
	assert.Equal(t, "Bills", topLevel[0].Name)
	assert.Equal(t, "Food", topLevel[1].Name)

	children, err := repo.List(ctx, pkg.Fields{category.FilterParentID: food.Id})
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "Restaurants", children[0].Name)
}

func TestCategoryRepository_UpdateDetachesParent(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCategoryRepository()
	userID := pkg.NewID()

	parent, err := repo.Create(ctx, newCategory(userID, "Home", nil))
	require.NoError(t, err)

	for name, value := range map[string]any{"empty string": "", "nil": nil} {
		t.Run(name, func(t *testing.T) {
			child, err := repo.Create(ctx, newCategory(userID, "Rent", &parent.Id))
			require.NoError(t, err)

			updated, err := repo.Update(ctx, child.Id, pkg.Fields{"parent_id": value})
			require.NoError(t, err)
			require.NotNil(t, updated)
			assert.Nil(t, updated.ParentId)
			assert.True(t, updated.IsTopLevel())
		})
	}
}

func TestCategoryRepository_NameFilterIgnoresCase(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCategoryRepository()
	userID := pkg.NewID()

	_, err := repo.Create(ctx, newCategory(userID, "Cafe Da Manha", nil))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newCategory(userID, "Transport", nil))
	require.NoError(t, err)

	for _, query := range []string{"cafe", "CAFE", "Manha"} {
		found, err := repo.List(ctx, pkg.Fields{category.FilterName: query})
		require.NoError(t, err)
		require.Len(t, found, 1, query)
		assert.Equal(t, "Cafe Da Manha", found[0].Name)
	}
}

func TestUserRepository_Duplicates(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	existing := &user.User{Id: pkg.NewID(), Name: "Ana", Email: "ana@example.com", DefaultCurrency: "EUR"}
	_, err := repo.Create(ctx, existing)
	require.NoError(t, err)

	_, err = repo.Create(ctx, &user.User{Id: existing.Id, Name: "Other", Email: "other@example.com"})
	require.ErrorIs(t, err, appErrors.ErrAlreadyExists)
	appErr, _ := appErrors.AsAppError(err)
	assert.Equal(t, existing.Id, appErr.Details["id"])

	_, err = repo.Create(ctx, &user.User{Id: pkg.NewID(), Name: "Other", Email: "ANA@example.com"})
	require.ErrorIs(t, err, appErrors.ErrAlreadyExists)
	appErr, _ = appErrors.AsAppError(err)
	assert.Equal(t, "ana@example.com", appErr.Details["email"])
}

func TestUserRepository_ListByEmailIgnoresCase(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	created, err := repo.Create(ctx, &user.User{Id: pkg.NewID(), Name: "Bo", Email: "Bo@Example.com", DefaultCurrency: "USD"})
	require.NoError(t, err)
	assert.Equal(t, "bo@example.com", created.Email)

	found, err := repo.List(ctx, pkg.Fields{user.FilterEmail: "BO@EXAMPLE.COM"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, created.Id, found[0].Id)
}

func TestAccountRepository_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAccountRepository()

	created, err := repo.Create(ctx, &account.Account{
		Id:       pkg.NewID(),
		UserId:   pkg.NewID(),
		Name:     "Wallet",
		Type:     account.TypeCash,
		Currency: "EUR",
		Balance:  decimal.Zero,
	})
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, created.Id)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, created.Id)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = repo.Delete(ctx, "not-an-id")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestAccountRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAccountRepository()

	created, err := repo.Create(ctx, &account.Account{
		Id:       pkg.NewID(),
		UserId:   pkg.NewID(),
		Name:     "Checking",
		Type:     account.TypeChecking,
		Currency: "EUR",
		Balance:  decimal.RequireFromString("100.50"),
		IsActive: true,
	})
	require.NoError(t, err)

	t.Run("empty patch returns current entity", func(t *testing.T) {
		got, err := repo.Update(ctx, created.Id, pkg.Fields{})
		require.NoError(t, err)
		assert.Equal(t, created, got)

		got, err = repo.Update(ctx, created.Id, pkg.Fields{"unknown": "x", "name": nil})
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("partial patch", func(t *testing.T) {
		got, err := repo.Update(ctx, created.Id, pkg.Fields{"balance": "20.10", "is_active": false})
		require.NoError(t, err)
		assert.True(t, got.Balance.Equal(decimal.RequireFromString("20.10")))
		assert.False(t, got.IsActive)
		assert.Equal(t, "Checking", got.Name)
	})

	t.Run("float balance is rejected", func(t *testing.T) {
		_, err := repo.Update(ctx, created.Id, pkg.Fields{"balance": 20.1})
		require.ErrorIs(t, err, appErrors.ErrValidation)
	})

	t.Run("missing id", func(t *testing.T) {
		got, err := repo.Update(ctx, pkg.NewID(), pkg.Fields{"name": "x"})
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestAccountRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAccountRepository()
	owner := pkg.NewID()

	names := []string{"Main Checking", "Savings", "checking travel"}
	for _, name := range names {
		_, err := repo.Create(ctx, &account.Account{Id: pkg.NewID(), UserId: owner, Name: name, Type: account.TypeChecking, Currency: "EUR"})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, &account.Account{Id: pkg.NewID(), UserId: pkg.NewID(), Name: "Checking", Type: account.TypeChecking, Currency: "USD"})
	require.NoError(t, err)

	owned, err := repo.List(ctx, pkg.Fields{account.FilterUserID: owner})
	require.NoError(t, err)
	require.Len(t, owned, 3)
	for i, name := range names {
		assert.Equal(t, name, owned[i].Name, "insertion order")
	}

	checking, err := repo.List(ctx, pkg.Fields{account.FilterUserID: owner, account.FilterName: "CHECKING"})
	require.NoError(t, err)
	assert.Len(t, checking, 2)

	usd, err := repo.List(ctx, pkg.Fields{account.FilterCurrency: "USD"})
	require.NoError(t, err)
	assert.Len(t, usd, 1)
}
