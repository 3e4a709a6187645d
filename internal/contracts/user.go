package contracts

import "Pocketbook/internal/domain/user"

type UserCreateRequest struct {
	Name            string `json:"name" binding:"required,max=100"`
	Email           string `json:"email" binding:"required,email"`
	DefaultCurrency string `json:"default_currency" binding:"required,len=3"`
}

type UserUpdateRequest struct {
	Name            *string `json:"name" binding:"omitempty,max=100"`
	Email           *string `json:"email" binding:"omitempty,email"`
	DefaultCurrency *string `json:"default_currency" binding:"omitempty,len=3"`
}

type UserCreateResponse struct {
	Message string     `json:"message"`
	User    *user.User `json:"user"`
}

type UserSingleResponse struct {
	User *user.User `json:"user"`
}

type UserDeletionResponse struct {
	Message string `json:"message"`
}
