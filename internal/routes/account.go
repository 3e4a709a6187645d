package routes

import (
	"net/http"

	"Pocketbook/internal/contracts"
	"Pocketbook/internal/domain/account"
	appErrors "Pocketbook/internal/errors"
	"Pocketbook/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func (h *Handler) CreateAccount(c *gin.Context) {
	userID, err := h.pathID(c, "user_id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.AccountCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	initialBalance := decimal.Zero
	if body.InitialBalance != nil {
		initialBalance = *body.InitialBalance
	}

	acc, err := h.AccountService.CreateAccount(c.Request.Context(), &account.CreateAccountRequest{
		UserId:         userID,
		Name:           body.Name,
		Type:           account.AccountType(body.Type),
		Currency:       body.Currency,
		InitialBalance: initialBalance,
		Color:          body.Color,
		Icon:           body.Icon,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.AccountCreateResponse{
		Message: "Account created",
		Account: acc,
	})
}

func (h *Handler) ListAccounts(c *gin.Context) {
	userID, err := h.pathID(c, "user_id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	filters := h.queryFilters(c, account.FilterAccountType, account.FilterCurrency, account.FilterName)

	accounts, err := h.AccountService.ListAccounts(c.Request.Context(), userID, filters)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.Paginate(accounts, h.parsePagination(c)))
}

func (h *Handler) GetTotalBalance(c *gin.Context) {
	userID, err := h.pathID(c, "user_id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	totals, err := h.AccountService.GetTotalBalance(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.AccountBalanceResponse{Totals: totals})
}

func (h *Handler) GetAccount(c *gin.Context) {
	userID, err := h.pathID(c, "user_id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	accountID, err := h.pathID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	acc, err := h.AccountService.GetAccountByID(c.Request.Context(), accountID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.AccountSingleResponse{Account: acc})
}

func (h *Handler) UpdateAccount(c *gin.Context) {
	userID, err := h.pathID(c, "user_id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	accountID, err := h.pathID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.AccountUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	req := &account.UpdateAccountRequest{
		Name:     body.Name,
		Currency: body.Currency,
		Balance:  body.Balance,
		Color:    body.Color,
		Icon:     body.Icon,
		IsActive: body.IsActive,
	}
	if body.Type != nil {
		t := account.AccountType(*body.Type)
		req.Type = &t
	}

	acc, err := h.AccountService.UpdateAccount(c.Request.Context(), accountID, userID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.AccountSingleResponse{Account: acc})
}

func (h *Handler) DeleteAccount(c *gin.Context) {
	userID, err := h.pathID(c, "user_id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	accountID, err := h.pathID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.AccountService.DeleteAccount(c.Request.Context(), accountID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Account deleted"})
}
