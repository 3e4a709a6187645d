package routes

import (
	"net/http"
	"strconv"

	"Pocketbook/internal/contracts"
	"Pocketbook/internal/domain/budget"
	appErrors "Pocketbook/internal/errors"
	"Pocketbook/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateBudget(c *gin.Context) {
	userID, err := h.pathID(c, "user_id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.BudgetCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	if !pkg.IsValidID(body.CategoryId) {
		h.respondError(c, appErrors.NewValidationError("category_id", "is not a valid id"))
		return
	}

	b, err := h.BudgetService.CreateBudget(c.Request.Context(), &budget.CreateBudgetRequest{
		UserId:     userID,
		CategoryId: body.CategoryId,
		Year:       body.Year,
		Month:      body.Month,
		Amount:     *body.Amount,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.BudgetCreateResponse{
		Message: "Budget created",
		Budget:  b,
	})
}

func (h *Handler) ListBudgets(c *gin.Context) {
	userID, err := h.pathID(c, "user_id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	filters := h.queryFilters(c, budget.FilterCategoryID)
	for _, key := range []string{budget.FilterYear, budget.FilterMonth} {
		if v, err := strconv.Atoi(c.Query(key)); err == nil {
			filters[key] = v
		}
	}

	budgets, err := h.BudgetService.ListBudgets(c.Request.Context(), userID, filters)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.Paginate(budgets, h.parsePagination(c)))
}

func (h *Handler) GetBudgetForPeriod(c *gin.Context) {
	userID, err := h.pathID(c, "user_id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var query contracts.BudgetPeriodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	b, err := h.BudgetService.GetForPeriod(c.Request.Context(), userID, query.CategoryId, query.Year, query.Month)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.BudgetSingleResponse{Budget: b})
}

func (h *Handler) GetBudget(c *gin.Context) {
	userID, err := h.pathID(c, "user_id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	budgetID, err := h.pathID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	b, err := h.BudgetService.GetBudgetByID(c.Request.Context(), budgetID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.BudgetSingleResponse{Budget: b})
}

func (h *Handler) UpdateBudget(c *gin.Context) {
	userID, err := h.pathID(c, "user_id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	budgetID, err := h.pathID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.BudgetUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	b, err := h.BudgetService.UpdateBudget(c.Request.Context(), budgetID, userID, &budget.UpdateBudgetRequest{
		CategoryId: body.CategoryId,
		Year:       body.Year,
		Month:      body.Month,
		Amount:     body.Amount,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.BudgetSingleResponse{Budget: b})
}

func (h *Handler) DeleteBudget(c *gin.Context) {
	userID, err := h.pathID(c, "user_id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	budgetID, err := h.pathID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.BudgetService.DeleteBudget(c.Request.Context(), budgetID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Budget deleted"})
}
