package contracts

import (
	"Pocketbook/internal/domain/budget"

	"github.com/shopspring/decimal"
)

type BudgetCreateRequest struct {
	CategoryId string           `json:"category_id" binding:"required"`
	Amount     *decimal.Decimal `json:"amount" binding:"required"`
	Month      int              `json:"month" binding:"required,min=1,max=12"`
	Year       int              `json:"year" binding:"required,min=2000,max=2100"`
}

type BudgetUpdateRequest struct {
	CategoryId *string          `json:"category_id" binding:"omitempty"`
	Amount     *decimal.Decimal `json:"amount" binding:"omitempty"`
	Month      *int             `json:"month" binding:"omitempty,min=1,max=12"`
	Year       *int             `json:"year" binding:"omitempty,min=2000,max=2100"`
}

type BudgetPeriodQuery struct {
	CategoryId string `form:"category_id" binding:"required"`
	Month      int    `form:"month" binding:"required,min=1,max=12"`
	Year       int    `form:"year" binding:"required,min=2000,max=2100"`
}

type BudgetCreateResponse struct {
	Message string         `json:"message"`
	Budget  *budget.Budget `json:"budget"`
}

type BudgetSingleResponse struct {
	Budget *budget.Budget `json:"budget"`
}
