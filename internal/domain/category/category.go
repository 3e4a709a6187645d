package category

import "time"

type CategoryType string

const (
	TypeExpense CategoryType = "EXPENSE"
	TypeIncome  CategoryType = "INCOME"
)

func (t CategoryType) IsValid() bool {
	return t == TypeExpense || t == TypeIncome
}

// Category groups transactions. A category with a nil ParentId is top-level;
// otherwise ParentId references another category of the same user.
type Category struct {
	Id        string       `json:"id"`
	UserId    string       `json:"userId"`
	Name      string       `json:"name"`
	Type      CategoryType `json:"type"`
	ParentId  *string      `json:"parentId"`
	Icon      string       `json:"icon,omitempty"`
	Color     string       `json:"color,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

func (c *Category) IsTopLevel() bool {
	return c.ParentId == nil
}
