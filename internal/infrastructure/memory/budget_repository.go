package memory

import (
	"context"
	"sort"

	"Pocketbook/internal/domain/budget"
	appErrors "Pocketbook/internal/errors"
	"Pocketbook/internal/pkg"
)

type BudgetRepository struct {
	budgets *table[budget.Budget]
}

func NewBudgetRepository() *BudgetRepository {
	return &BudgetRepository{budgets: newTable(func(b *budget.Budget) *budget.Budget {
		c := *b
		return &c
	})}
}

// Create enforces one budget per (user, category, year, month).
func (r *BudgetRepository) Create(_ context.Context, b *budget.Budget) (*budget.Budget, error) {
	return r.budgets.insert(b.Id, b, func(existing []*budget.Budget) error {
		for _, e := range existing {
			if e.Id == b.Id {
				return appErrors.NewAlreadyExistsError("budget", map[string]interface{}{"id": b.Id})
			}
		}
		return periodTaken(existing, b.Period())
	})
}

func (r *BudgetRepository) GetByID(_ context.Context, id string) (*budget.Budget, error) {
	return r.budgets.get(id), nil
}

func (r *BudgetRepository) List(_ context.Context, filters pkg.Fields) ([]*budget.Budget, error) {
	userID, byUser := filters.String(budget.FilterUserID)
	categoryID, byCategory := filters.String(budget.FilterCategoryID)
	year, byYear := filters.Int(budget.FilterYear)
	month, byMonth := filters.Int(budget.FilterMonth)

	out := r.budgets.list(func(b *budget.Budget) bool {
		switch {
		case byUser && b.UserId != userID:
			return false
		case byCategory && b.CategoryId != categoryID:
			return false
		case byYear && b.Year != year:
			return false
		case byMonth && b.Month != month:
			return false
		}
		return true
	})

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Before(out[j])
	})
	return out, nil
}

func (r *BudgetRepository) Update(ctx context.Context, id string, patch pkg.Fields) (*budget.Budget, error) {
	normalized, err := patch.Normalize(budget.PatchSchema)
	if err != nil {
		return nil, err
	}
	if len(normalized) == 0 {
		return r.GetByID(ctx, id)
	}

	return r.budgets.update(id, func(b *budget.Budget, others []*budget.Budget) error {
		if v, ok := normalized.String("user_id"); ok {
			b.UserId = v
		}
		if v, ok := normalized.String("category_id"); ok {
			b.CategoryId = v
		}
		if v, ok := normalized.Int("year"); ok {
			b.Year = v
		}
		if v, ok := normalized.Int("month"); ok {
			b.Month = v
		}
		if v, ok := normalized.Decimal("amount"); ok {
			b.Amount = v
		}
		if err := periodTaken(others, b.Period()); err != nil {
			return err
		}
		b.UpdatedAt = pkg.Now()
		return nil
	})
}

func (r *BudgetRepository) Delete(_ context.Context, id string) (bool, error) {
	return r.budgets.remove(id), nil
}

func (r *BudgetRepository) FindByPeriod(_ context.Context, userID, categoryID string, year, month int) (*budget.Budget, error) {
	want := budget.Period{UserId: userID, CategoryId: categoryID, Year: year, Month: month}
	matches := r.budgets.list(func(b *budget.Budget) bool {
		return b.Period() == want
	})
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func periodTaken(budgets []*budget.Budget, period budget.Period) error {
	for _, b := range budgets {
		if b.Period() == period {
			return appErrors.NewAlreadyExistsError("budget", period.Details())
		}
	}
	return nil
}
