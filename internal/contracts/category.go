package contracts

import "Pocketbook/internal/domain/category"

type CategoryCreateRequest struct {
	Name     string  `json:"name" binding:"required,max=100"`
	Type     string  `json:"type" binding:"omitempty,oneof=EXPENSE INCOME"`
	ParentId *string `json:"parent_id" binding:"omitempty"`
	Icon     string  `json:"icon" binding:"omitempty,max=50"`
	Color    string  `json:"color" binding:"omitempty,max=7"`
}

// CategoryUpdateRequest accepts an empty parent_id to detach the category.
type CategoryUpdateRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	Type     *string `json:"type" binding:"omitempty,oneof=EXPENSE INCOME"`
	ParentId *string `json:"parent_id"`
	Icon     *string `json:"icon" binding:"omitempty,max=50"`
	Color    *string `json:"color" binding:"omitempty,max=7"`
}

type CategoryCreateResponse struct {
	Message  string             `json:"message"`
	Category *category.Category `json:"category"`
}

type CategorySingleResponse struct {
	Category *category.Category `json:"category"`
}
