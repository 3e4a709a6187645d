package account

import (
	"context"
	"strings"

	"Pocketbook/internal/domain/shared"
	appErrors "Pocketbook/internal/errors"
	"Pocketbook/internal/pkg"

	"github.com/shopspring/decimal"
)

type Service struct {
	Repository Repository
	shared.BaseService
}

func NewService(repo Repository, userChecker *shared.UserCheckerService) *Service {
	return &Service{
		Repository: repo,
		BaseService: shared.BaseService{
			UserChecker: userChecker,
		},
	}
}

func (s *Service) CreateAccount(ctx context.Context, req *CreateAccountRequest) (*Account, error) {
	if err := s.EnsureUserExists(ctx, req.UserId); err != nil {
		return nil, err
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}

	currency, err := s.UserChecker.ResolveCurrency(ctx, req.UserId, strings.ToUpper(strings.TrimSpace(req.Currency)))
	if err != nil {
		return nil, err
	}

	now := pkg.Now()
	account := &Account{
		Id:        pkg.NewID(),
		UserId:    req.UserId,
		Name:      strings.TrimSpace(req.Name),
		Type:      req.Type,
		Currency:  currency,
		Balance:   req.InitialBalance,
		Color:     req.Color,
		Icon:      req.Icon,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.Repository.Create(ctx, account)
	if err != nil {
		return nil, shared.StorageError(err)
	}

	return created, nil
}

func (s *Service) UpdateAccount(ctx context.Context, accountID, userID string, req *UpdateAccountRequest) (*Account, error) {
	if _, err := s.GetAccountByID(ctx, accountID, userID); err != nil {
		return nil, err
	}

	patch := pkg.Fields{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, appErrors.NewValidationError("name", "cannot be empty")
		}
		patch["name"] = name
	}

	if req.Type != nil {
		if !req.Type.IsValid() {
			return nil, appErrors.NewValidationError("type", "invalid account type")
		}
		patch["account_type"] = string(*req.Type)
	}

	if req.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*req.Currency))
		if len(currency) != 3 {
			return nil, appErrors.NewValidationError("currency", "must be a 3-letter ISO code")
		}
		patch["currency"] = currency
	}

	if req.Balance != nil {
		patch["balance"] = *req.Balance
	}

	if req.Color != nil {
		patch["color"] = *req.Color
	}

	if req.Icon != nil {
		patch["icon"] = *req.Icon
	}

	if req.IsActive != nil {
		patch["is_active"] = *req.IsActive
	}

	updated, err := s.Repository.Update(ctx, accountID, patch)
	if err != nil {
		return nil, shared.StorageError(err)
	}
	if updated == nil {
		return nil, appErrors.ErrAccountNotFound
	}

	return updated, nil
}

func (s *Service) DeleteAccount(ctx context.Context, accountID, userID string) error {
	account, err := s.GetAccountByID(ctx, accountID, userID)
	if err != nil {
		return err
	}

	if !account.Balance.IsZero() {
		return appErrors.NewValidationError("account", "has a non-zero balance and cannot be removed")
	}

	deleted, err := s.Repository.Delete(ctx, accountID)
	if err != nil {
		return shared.StorageError(err)
	}
	if !deleted {
		return appErrors.ErrAccountNotFound
	}
	return nil
}

func (s *Service) GetAccountByID(ctx context.Context, accountID, userID string) (*Account, error) {
	account, err := s.Repository.GetByID(ctx, accountID)
	if err != nil {
		return nil, shared.StorageError(err)
	}
	if account == nil {
		return nil, appErrors.ErrAccountNotFound
	}

	if account.UserId != userID {
		return nil, appErrors.ErrResourceNotOwned
	}

	return account, nil
}

// ListAccounts returns the user's accounts in creation order. filters may
// narrow by account_type, currency or name; any user_id in it is overridden.
func (s *Service) ListAccounts(ctx context.Context, userID string, filters pkg.Fields) ([]*Account, error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	scoped := pkg.Fields{}
	for k, v := range filters {
		scoped[k] = v
	}
	scoped[FilterUserID] = userID

	accounts, err := s.Repository.List(ctx, scoped)
	if err != nil {
		return nil, shared.StorageError(err)
	}
	return accounts, nil
}

// GetTotalBalance sums the balances of active accounts per currency.
func (s *Service) GetTotalBalance(ctx context.Context, userID string) (map[string]decimal.Decimal, error) {
	accounts, err := s.ListAccounts(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal)
	for _, a := range accounts {
		if !a.IsActive {
			continue
		}
		totals[a.Currency] = totals[a.Currency].Add(a.Balance)
	}
	return totals, nil
}

func (s *Service) validateCreateRequest(req *CreateAccountRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return appErrors.NewValidationError("name", "is required")
	}

	if !req.Type.IsValid() {
		return appErrors.NewValidationError("type", "invalid account type")
	}

	if c := strings.TrimSpace(req.Currency); c != "" && len(c) != 3 {
		return appErrors.NewValidationError("currency", "must be a 3-letter ISO code")
	}

	return nil
}

type CreateAccountRequest struct {
	UserId         string
	Name           string
	Type           AccountType
	Currency       string
	InitialBalance decimal.Decimal
	Color          string
	Icon           string
}

type UpdateAccountRequest struct {
	Name     *string
	Type     *AccountType
	Currency *string
	Balance  *decimal.Decimal
	Color    *string
	Icon     *string
	IsActive *bool
}
