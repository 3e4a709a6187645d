package user

import (
	"context"

	"Pocketbook/internal/pkg"
)

// Filter keys understood by Repository.List.
const (
	FilterEmail           = "email"
	FilterDefaultCurrency = "default_currency"
	FilterName            = "name"
)

// PatchSchema lists the fields Repository.Update accepts.
var PatchSchema = pkg.Schema{
	"name":             pkg.KindString,
	"email":            pkg.KindString,
	"default_currency": pkg.KindString,
}

// Repository persists users. Lookups that match nothing return a nil user
// and a nil error; Delete reports whether a record was removed.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, filters pkg.Fields) ([]*User, error)
	Update(ctx context.Context, id string, patch pkg.Fields) (*User, error)
	Delete(ctx context.Context, id string) (bool, error)
}
