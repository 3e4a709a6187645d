package routes

import (
	"strconv"

	"Pocketbook/internal/domain/account"
	"Pocketbook/internal/domain/budget"
	"Pocketbook/internal/domain/category"
	"Pocketbook/internal/domain/user"
	appErrors "Pocketbook/internal/errors"
	"Pocketbook/internal/logger"
	"Pocketbook/internal/middleware"
	"Pocketbook/internal/pkg"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	UserService     *user.Service
	AccountService  *account.Service
	CategoryService *category.Service
	BudgetService   *budget.Service
}

// Register mounts every resource under /api/users.
func (h *Handler) Register(api *gin.RouterGroup) {
	users := api.Group("/users")
	{
		users.POST("", h.CreateUser)
		users.GET("", h.ListUsers)
		users.GET("/:user_id", h.GetUser)
		users.PATCH("/:user_id", h.UpdateUser)
		users.DELETE("/:user_id", h.DeleteUser)
	}

	owned := users.Group("/:user_id")

	accounts := owned.Group("/accounts")
	{
		accounts.POST("", h.CreateAccount)
		accounts.GET("", h.ListAccounts)
		accounts.GET("/balance", h.GetTotalBalance)
		accounts.GET("/:id", h.GetAccount)
		accounts.PATCH("/:id", h.UpdateAccount)
		accounts.DELETE("/:id", h.DeleteAccount)
	}

	categories := owned.Group("/categories")
	{
		categories.POST("", h.CreateCategory)
		categories.GET("", h.ListCategories)
		categories.GET("/:id", h.GetCategory)
		categories.GET("/:id/children", h.ListCategoryChildren)
		categories.PATCH("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}

	budgets := owned.Group("/budgets")
	{
		budgets.POST("", h.CreateBudget)
		budgets.GET("", h.ListBudgets)
		budgets.GET("/period", h.GetBudgetForPeriod)
		budgets.GET("/:id", h.GetBudget)
		budgets.PATCH("/:id", h.UpdateBudget)
		budgets.DELETE("/:id", h.DeleteBudget)
	}
}

func (h *Handler) pathID(c *gin.Context, name string) (string, error) {
	id := c.Param(name)
	if !pkg.IsValidID(id) {
		return "", appErrors.NewValidationError(name, "is not a valid id")
	}
	return id, nil
}

func (h *Handler) parsePagination(c *gin.Context) *pkg.PaginationParams {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}

	return &pkg.PaginationParams{
		Page:  page,
		Limit: limit,
	}
}

// queryFilters copies the non-empty query parameters named by keys.
func (h *Handler) queryFilters(c *gin.Context, keys ...string) pkg.Fields {
	filters := pkg.Fields{}
	for _, key := range keys {
		if v := c.Query(key); v != "" {
			filters[key] = v
		}
	}
	return filters
}

func (h *Handler) respondError(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	event := logger.Error().
		Str("code", appErr.Code).
		Str("path", c.FullPath()).
		Str("request_id", c.GetString(middleware.RequestIDKey))
	if appErr.Err != nil {
		event = event.Err(appErr.Err)
	}
	event.Msg("request_error")
	payload := gin.H{
		"error":   appErr.Code,
		"message": appErr.Message,
	}
	if len(appErr.Details) > 0 {
		payload["details"] = appErr.Details
	}
	c.JSON(appErr.StatusCode, payload)
}
