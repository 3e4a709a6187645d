package infrastructure_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"Pocketbook/config"
	"Pocketbook/internal/domain/account"
	"Pocketbook/internal/domain/budget"
	"Pocketbook/internal/domain/category"
	"Pocketbook/internal/domain/user"
	appErrors "Pocketbook/internal/errors"
	"Pocketbook/internal/infrastructure"
	"Pocketbook/internal/pkg"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// TestMongoRepositories runs against a throwaway MongoDB container. Each
// subtest gets its own database so index state does not leak between them.
func TestMongoRepositories(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping mongodb integration tests in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		t.Skipf("mongodb container unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := infrastructure.NewMongo(ctx, &config.Config{
		App:      config.AppConfig{Name: "pocketbook-test"},
		Database: config.DatabaseConfig{Backend: config.BackendMongo, URI: uri, Name: "pocketbook", Timeout: 30 * time.Second},
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Disconnect(context.Background())
	})

	databases := 0
	freshDB := func() *mongo.Database {
		databases++
		return client.Database(fmt.Sprintf("pocketbook_test_%d", databases))
	}

	t.Run("budget period is unique", func(t *testing.T) {
		repo, err := infrastructure.NewBudgetRepository(freshDB())
		require.NoError(t, err)
		userID, categoryID := pkg.NewID(), pkg.NewID()

		first := &budget.Budget{Id: pkg.NewID(), UserId: userID, CategoryId: categoryID, Year: 2024, Month: 1, Amount: decimal.RequireFromString("100.50")}
		_, err = repo.Create(ctx, first)
		require.NoError(t, err)

		second := &budget.Budget{Id: pkg.NewID(), UserId: userID, CategoryId: categoryID, Year: 2024, Month: 1, Amount: decimal.NewFromInt(1)}
		_, err = repo.Create(ctx, second)
		require.ErrorIs(t, err, appErrors.ErrAlreadyExists)
		appErr, _ := appErrors.AsAppError(err)
		assert.Equal(t, categoryID, appErr.Details["category_id"])

		stored, err := repo.GetByID(ctx, first.Id)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.True(t, stored.Amount.Equal(decimal.RequireFromString("100.50")))
	})

	t.Run("find by period matches all fields", func(t *testing.T) {
		repo, err := infrastructure.NewBudgetRepository(freshDB())
		require.NoError(t, err)
		userA, userB, categoryID := pkg.NewID(), pkg.NewID(), pkg.NewID()

		a := &budget.Budget{Id: pkg.NewID(), UserId: userA, CategoryId: categoryID, Year: 2024, Month: 1, Amount: decimal.NewFromInt(10)}
		b := &budget.Budget{Id: pkg.NewID(), UserId: userB, CategoryId: categoryID, Year: 2024, Month: 1, Amount: decimal.NewFromInt(20)}
		for _, item := range []*budget.Budget{a, b} {
			_, err := repo.Create(ctx, item)
			require.NoError(t, err)
		}

		found, err := repo.FindByPeriod(ctx, userA, categoryID, 2024, 1)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, a.Id, found.Id)

		missing, err := repo.FindByPeriod(ctx, userA, categoryID, 2024, 2)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("category parent filter and detach", func(t *testing.T) {
		repo, err := infrastructure.NewCategoryRepository(freshDB())
		require.NoError(t, err)
		userID := pkg.NewID()

		parent := &category.Category{Id: pkg.NewID(), UserId: userID, Name: "Food", Type: category.TypeExpense}
		_, err = repo.Create(ctx, parent)
		require.NoError(t, err)
		child := &category.Category{Id: pkg.NewID(), UserId: userID, Name: "Cafe Da Manha", Type: category.TypeExpense, ParentId: &parent.Id}
		_, err = repo.Create(ctx, child)
		require.NoError(t, err)

		all, err := repo.List(ctx, pkg.Fields{category.FilterUserID: userID})
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "Cafe Da Manha", all[0].Name)

		topLevel, err := repo.List(ctx, pkg.Fields{category.FilterParentID: nil})
		require.NoError(t, err)
		require.Len(t, topLevel, 1)
		assert.Equal(t, parent.Id, topLevel[0].Id)

		byName, err := repo.List(ctx, pkg.Fields{category.FilterName: "CAFE"})
		require.NoError(t, err)
		require.Len(t, byName, 1)

		detached, err := repo.Update(ctx, child.Id, pkg.Fields{"parent_id": ""})
		require.NoError(t, err)
		require.NotNil(t, detached)
		assert.Nil(t, detached.ParentId)

		topLevel, err = repo.List(ctx, pkg.Fields{category.FilterParentID: nil})
		require.NoError(t, err)
		assert.Len(t, topLevel, 2)
	})

	t.Run("user duplicates", func(t *testing.T) {
		repo, err := infrastructure.NewUserRepository(freshDB())
		require.NoError(t, err)

		existing := &user.User{Id: pkg.NewID(), Name: "Ana", Email: "Ana@Example.com", DefaultCurrency: "EUR"}
		_, err = repo.Create(ctx, existing)
		require.NoError(t, err)

		_, err = repo.Create(ctx, &user.User{Id: existing.Id, Name: "Other", Email: "other@example.com"})
		require.ErrorIs(t, err, appErrors.ErrAlreadyExists)
		appErr, _ := appErrors.AsAppError(err)
		assert.Equal(t, existing.Id, appErr.Details["id"])

		_, err = repo.Create(ctx, &user.User{Id: pkg.NewID(), Name: "Other", Email: "ana@example.COM"})
		require.ErrorIs(t, err, appErrors.ErrAlreadyExists)
		appErr, _ = appErrors.AsAppError(err)
		assert.Equal(t, "ana@example.com", appErr.Details["email"])

		found, err := repo.List(ctx, pkg.Fields{user.FilterEmail: "ANA@EXAMPLE.COM"})
		require.NoError(t, err)
		require.Len(t, found, 1)
	})

	t.Run("account update and delete", func(t *testing.T) {
		repo, err := infrastructure.NewAccountRepository(freshDB())
		require.NoError(t, err)

		created, err := repo.Create(ctx, &account.Account{
			Id:        pkg.NewID(),
			UserId:    pkg.NewID(),
			Name:      "Checking",
			Type:      account.TypeChecking,
			Currency:  "EUR",
			Balance:   decimal.RequireFromString("100.50"),
			IsActive:  true,
			CreatedAt: pkg.Now(),
			UpdatedAt: pkg.Now(),
		})
		require.NoError(t, err)

		same, err := repo.Update(ctx, created.Id, pkg.Fields{})
		require.NoError(t, err)
		assert.Equal(t, created.UpdatedAt, same.UpdatedAt)

		updated, err := repo.Update(ctx, created.Id, pkg.Fields{"balance": "0.01", "name": "Main"})
		require.NoError(t, err)
		assert.Equal(t, "Main", updated.Name)
		assert.True(t, updated.Balance.Equal(decimal.RequireFromString("0.01")))

		missing, err := repo.Update(ctx, pkg.NewID(), pkg.Fields{"name": "x"})
		require.NoError(t, err)
		assert.Nil(t, missing)

		deleted, err := repo.Delete(ctx, created.Id)
		require.NoError(t, err)
		assert.True(t, deleted)
		deleted, err = repo.Delete(ctx, created.Id)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("indexes warm concurrently", func(t *testing.T) {
		db := freshDB()
		users, _ := infrastructure.NewUserRepository(db)
		accounts, _ := infrastructure.NewAccountRepository(db)
		categories, _ := infrastructure.NewCategoryRepository(db)
		budgets, _ := infrastructure.NewBudgetRepository(db)

		require.NoError(t, infrastructure.EnsureIndexes(ctx, users, accounts, categories, budgets))
		require.NoError(t, infrastructure.EnsureIndexes(ctx, users, accounts, categories, budgets))
	})
}

func TestRepositoriesRequireDatabase(t *testing.T) {
	_, err := infrastructure.NewBudgetRepository(nil)
	require.ErrorIs(t, err, appErrors.ErrStorageUnavailable)
	_, err = infrastructure.NewUserRepository(nil)
	require.ErrorIs(t, err, appErrors.ErrStorageUnavailable)
	_, err = infrastructure.NewAccountRepository(nil)
	require.ErrorIs(t, err, appErrors.ErrStorageUnavailable)
	_, err = infrastructure.NewCategoryRepository(nil)
	require.ErrorIs(t, err, appErrors.ErrStorageUnavailable)
}
