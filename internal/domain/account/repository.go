package account

import (
	"context"

	"Pocketbook/internal/pkg"
)

const (
	FilterUserID      = "user_id"
	FilterAccountType = "account_type"
	FilterCurrency    = "currency"
	FilterName        = "name"
)

var PatchSchema = pkg.Schema{
	"user_id":      pkg.KindRef,
	"name":         pkg.KindString,
	"account_type": pkg.KindString,
	"currency":     pkg.KindString,
	"balance":      pkg.KindDecimal,
	"color":        pkg.KindString,
	"icon":         pkg.KindString,
	"is_active":    pkg.KindBool,
}

type Repository interface {
	Create(ctx context.Context, account *Account) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
	List(ctx context.Context, filters pkg.Fields) ([]*Account, error)
	Update(ctx context.Context, id string, patch pkg.Fields) (*Account, error)
	Delete(ctx context.Context, id string) (bool, error)
}
