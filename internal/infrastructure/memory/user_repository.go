package memory

import (
	"context"

	"Pocketbook/internal/domain/user"
	appErrors "Pocketbook/internal/errors"
	"Pocketbook/internal/pkg"
)

type UserRepository struct {
	users *table[user.User]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: newTable(func(u *user.User) *user.User {
		c := *u
		return &c
	})}
}

// Create rejects a taken id first, then a taken email. Emails are compared
// case-folded.
func (r *UserRepository) Create(_ context.Context, u *user.User) (*user.User, error) {
	row := *u
	row.Email = user.NormalizeEmail(u.Email)

	return r.users.insert(row.Id, &row, func(existing []*user.User) error {
		for _, e := range existing {
			if e.Id == row.Id {
				return appErrors.NewAlreadyExistsError("user", map[string]interface{}{"id": row.Id})
			}
		}
		return emailTaken(existing, row.Email)
	})
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*user.User, error) {
	return r.users.get(id), nil
}

func (r *UserRepository) List(_ context.Context, filters pkg.Fields) ([]*user.User, error) {
	email, byEmail := filters.String(user.FilterEmail)
	email = user.NormalizeEmail(email)
	currency, byCurrency := filters.String(user.FilterDefaultCurrency)
	name, byName := filters.String(user.FilterName)

	return r.users.list(func(u *user.User) bool {
		switch {
		case byEmail && u.Email != email:
			return false
		case byCurrency && u.DefaultCurrency != currency:
			return false
		case byName && !containsFold(u.Name, name):
			return false
		}
		return true
	}), nil
}

func (r *UserRepository) Update(ctx context.Context, id string, patch pkg.Fields) (*user.User, error) {
	normalized, err := patch.Normalize(user.PatchSchema)
	if err != nil {
		return nil, err
	}
	if len(normalized) == 0 {
		return r.GetByID(ctx, id)
	}

	return r.users.update(id, func(u *user.User, others []*user.User) error {
		if v, ok := normalized.String("name"); ok {
			u.Name = v
		}
		if v, ok := normalized.String("email"); ok {
			email := user.NormalizeEmail(v)
			if err := emailTaken(others, email); err != nil {
				return err
			}
			u.Email = email
		}
		if v, ok := normalized.String("default_currency"); ok {
			u.DefaultCurrency = v
		}
		u.UpdatedAt = pkg.Now()
		return nil
	})
}

func (r *UserRepository) Delete(_ context.Context, id string) (bool, error) {
	return r.users.remove(id), nil
}

func emailTaken(users []*user.User, email string) error {
	for _, u := range users {
		if u.Email == email {
			return appErrors.NewAlreadyExistsError("user", map[string]interface{}{"email": email})
		}
	}
	return nil
}
