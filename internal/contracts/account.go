package contracts

import (
	"Pocketbook/internal/domain/account"

	"github.com/shopspring/decimal"
)

type AccountCreateRequest struct {
	Name           string           `json:"name" binding:"required,max=100"`
	Type           string           `json:"type" binding:"required,oneof=CHECKING SAVINGS CREDIT_CARD CASH INVESTMENT OTHER"`
	Currency       string           `json:"currency" binding:"omitempty,len=3"`
	InitialBalance *decimal.Decimal `json:"initial_balance" binding:"omitempty"`
	Color          string           `json:"color" binding:"omitempty,max=7"`
	Icon           string           `json:"icon" binding:"omitempty,max=50"`
}

type AccountUpdateRequest struct {
	Name     *string          `json:"name" binding:"omitempty,max=100"`
	Type     *string          `json:"type" binding:"omitempty,oneof=CHECKING SAVINGS CREDIT_CARD CASH INVESTMENT OTHER"`
	Currency *string          `json:"currency" binding:"omitempty,len=3"`
	Balance  *decimal.Decimal `json:"balance" binding:"omitempty"`
	Color    *string          `json:"color" binding:"omitempty,max=7"`
	Icon     *string          `json:"icon" binding:"omitempty,max=50"`
	IsActive *bool            `json:"is_active" binding:"omitempty"`
}

type AccountCreateResponse struct {
	Message string           `json:"message"`
	Account *account.Account `json:"account"`
}

type AccountSingleResponse struct {
	Account *account.Account `json:"account"`
}

type AccountBalanceResponse struct {
	Totals map[string]decimal.Decimal `json:"totals"`
}
