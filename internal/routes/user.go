package routes

import (
	"net/http"

	"Pocketbook/internal/contracts"
	"Pocketbook/internal/domain/user"
	appErrors "Pocketbook/internal/errors"
	"Pocketbook/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateUser(c *gin.Context) {
	var body contracts.UserCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	created, err := h.UserService.Create(c.Request.Context(), &user.CreateUserRequest{
		Name:            body.Name,
		Email:           body.Email,
		DefaultCurrency: body.DefaultCurrency,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.UserCreateResponse{
		Message: "User created",
		User:    created,
	})
}

func (h *Handler) ListUsers(c *gin.Context) {
	filters := h.queryFilters(c, user.FilterEmail, user.FilterDefaultCurrency, user.FilterName)

	users, err := h.UserService.List(c.Request.Context(), filters)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.Paginate(users, h.parsePagination(c)))
}

func (h *Handler) GetUser(c *gin.Context) {
	userID, err := h.pathID(c, "user_id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	u, err := h.UserService.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.UserSingleResponse{User: u})
}

func (h *Handler) UpdateUser(c *gin.Context) {
	userID, err := h.pathID(c, "user_id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.UserUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	updated, err := h.UserService.Update(c.Request.Context(), userID, &user.UpdateUserRequest{
		Name:            body.Name,
		Email:           body.Email,
		DefaultCurrency: body.DefaultCurrency,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.UserSingleResponse{User: updated})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	userID, err := h.pathID(c, "user_id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.UserService.Delete(c.Request.Context(), userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.UserDeletionResponse{Message: "User deleted"})
}
