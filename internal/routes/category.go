package routes

import (
	"net/http"
	"strconv"

	"Pocketbook/internal/contracts"
	"Pocketbook/internal/domain/category"
	appErrors "Pocketbook/internal/errors"
	"Pocketbook/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateCategory(c *gin.Context) {
	userID, err := h.pathID(c, "user_id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.CategoryCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	created, err := h.CategoryService.Create(c.Request.Context(), &category.CreateCategoryRequest{
		UserId:   userID,
		Name:     body.Name,
		Type:     category.CategoryType(body.Type),
		ParentId: body.ParentId,
		Icon:     body.Icon,
		Color:    body.Color,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.CategoryCreateResponse{
		Message:  "Category created",
		Category: created,
	})
}

// ListCategories narrows to top-level categories with ?top_level=true and to
// the children of one category with ?parent_id=<id>.
func (h *Handler) ListCategories(c *gin.Context) {
	userID, err := h.pathID(c, "user_id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	filters := h.queryFilters(c, category.FilterCategoryType, category.FilterParentID, category.FilterName)
	if topLevel, _ := strconv.ParseBool(c.Query("top_level")); topLevel {
		filters[category.FilterParentID] = nil
	}

	categories, err := h.CategoryService.List(c.Request.Context(), userID, filters)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.Paginate(categories, h.parsePagination(c)))
}

func (h *Handler) GetCategory(c *gin.Context) {
	userID, err := h.pathID(c, "user_id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	categoryID, err := h.pathID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	found, err := h.CategoryService.GetByID(c.Request.Context(), categoryID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CategorySingleResponse{Category: found})
}

func (h *Handler) ListCategoryChildren(c *gin.Context) {
	userID, err := h.pathID(c, "user_id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	categoryID, err := h.pathID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	children, err := h.CategoryService.ListChildren(c.Request.Context(), categoryID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.Paginate(children, h.parsePagination(c)))
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	userID, err := h.pathID(c, "user_id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	categoryID, err := h.pathID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.CategoryUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	req := &category.UpdateCategoryRequest{
		Name:     body.Name,
		ParentId: body.ParentId,
		Icon:     body.Icon,
		Color:    body.Color,
	}
	if body.Type != nil {
		t := category.CategoryType(*body.Type)
		req.Type = &t
	}

	updated, err := h.CategoryService.Update(c.Request.Context(), categoryID, userID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CategorySingleResponse{Category: updated})
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	userID, err := h.pathID(c, "user_id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	categoryID, err := h.pathID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.CategoryService.Delete(c.Request.Context(), categoryID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Category deleted"})
}
