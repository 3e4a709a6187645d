package budget

import (
	"context"

	"Pocketbook/internal/pkg"
)

const (
	FilterUserID     = "user_id"
	FilterCategoryID = "category_id"
	FilterYear       = "year"
	FilterMonth      = "month"
)

var PatchSchema = pkg.Schema{
	"user_id":     pkg.KindRef,
	"category_id": pkg.KindRef,
	"year":        pkg.KindInt,
	"month":       pkg.KindInt,
	"amount":      pkg.KindDecimal,
}

type Repository interface {
	// Create fails with errors.ErrAlreadyExists when the period is taken.
	Create(ctx context.Context, budget *Budget) (*Budget, error)
	GetByID(ctx context.Context, id string) (*Budget, error)
	List(ctx context.Context, filters pkg.Fields) ([]*Budget, error)
	Update(ctx context.Context, id string, patch pkg.Fields) (*Budget, error)
	Delete(ctx context.Context, id string) (bool, error)
	// FindByPeriod matches all four fields; nil when no budget exists.
	FindByPeriod(ctx context.Context, userID, categoryID string, year, month int) (*Budget, error)
}
