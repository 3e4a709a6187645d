package memory

import (
	"context"

	"Pocketbook/internal/domain/account"
	appErrors "Pocketbook/internal/errors"
	"Pocketbook/internal/pkg"
)

type AccountRepository struct {
	accounts *table[account.Account]
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: newTable(func(a *account.Account) *account.Account {
		c := *a
		return &c
	})}
}

func (r *AccountRepository) Create(_ context.Context, a *account.Account) (*account.Account, error) {
	return r.accounts.insert(a.Id, a, func(existing []*account.Account) error {
		for _, e := range existing {
			if e.Id == a.Id {
				return appErrors.NewAlreadyExistsError("account", map[string]interface{}{"id": a.Id})
			}
		}
		return nil
	})
}

func (r *AccountRepository) GetByID(_ context.Context, id string) (*account.Account, error) {
	return r.accounts.get(id), nil
}

func (r *AccountRepository) List(_ context.Context, filters pkg.Fields) ([]*account.Account, error) {
	userID, byUser := filters.String(account.FilterUserID)
	accountType, byType := filters.String(account.FilterAccountType)
	currency, byCurrency := filters.String(account.FilterCurrency)
	name, byName := filters.String(account.FilterName)

	return r.accounts.list(func(a *account.Account) bool {
		switch {
		case byUser && a.UserId != userID:
			return false
		case byType && string(a.Type) != accountType:
			return false
		case byCurrency && a.Currency != currency:
			return false
		case byName && !containsFold(a.Name, name):
			return false
		}
		return true
	}), nil
}

func (r *AccountRepository) Update(ctx context.Context, id string, patch pkg.Fields) (*account.Account, error) {
	normalized, err := patch.Normalize(account.PatchSchema)
	if err != nil {
		return nil, err
	}
	if len(normalized) == 0 {
		return r.GetByID(ctx, id)
	}

	return r.accounts.update(id, func(a *account.Account, _ []*account.Account) error {
		if v, ok := normalized.String("user_id"); ok {
			a.UserId = v
		}
		if v, ok := normalized.String("name"); ok {
			a.Name = v
		}
		if v, ok := normalized.String("account_type"); ok {
			a.Type = account.AccountType(v)
		}
		if v, ok := normalized.String("currency"); ok {
			a.Currency = v
		}
		if v, ok := normalized.Decimal("balance"); ok {
			a.Balance = v
		}
		if v, ok := normalized.String("color"); ok {
			a.Color = v
		}
		if v, ok := normalized.String("icon"); ok {
			a.Icon = v
		}
		if v, ok := normalized.Bool("is_active"); ok {
			a.IsActive = v
		}
		a.UpdatedAt = pkg.Now()
		return nil
	})
}

func (r *AccountRepository) Delete(_ context.Context, id string) (bool, error) {
	return r.accounts.remove(id), nil
}
