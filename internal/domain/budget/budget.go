package budget

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget caps spending on one category for one calendar month. A user has at
// most one budget per (category, year, month).
type Budget struct {
	Id         string          `json:"id"`
	UserId     string          `json:"userId"`
	CategoryId string          `json:"categoryId"`
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	Amount     decimal.Decimal `json:"amount"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// Period identifies the uniqueness key of a budget.
type Period struct {
	UserId     string
	CategoryId string
	Year       int
	Month      int
}

func (b *Budget) Period() Period {
	return Period{UserId: b.UserId, CategoryId: b.CategoryId, Year: b.Year, Month: b.Month}
}

func (p Period) Details() map[string]interface{} {
	return map[string]interface{}{
		"user_id":     p.UserId,
		"category_id": p.CategoryId,
		"year":        p.Year,
		"month":       p.Month,
	}
}

// Before orders periods by (year, month).
func (b *Budget) Before(other *Budget) bool {
	if b.Year != other.Year {
		return b.Year < other.Year
	}
	return b.Month < other.Month
}
