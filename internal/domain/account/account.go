package account

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	Id        string          `json:"id"`
	UserId    string          `json:"userId"`
	Name      string          `json:"name"`
	Type      AccountType     `json:"type"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
	Color     string          `json:"color,omitempty"`
	Icon      string          `json:"icon,omitempty"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
