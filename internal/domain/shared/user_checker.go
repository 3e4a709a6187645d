package shared

import (
	"context"

	appErrors "Pocketbook/internal/errors"
)

type UserCheckerService struct {
	users UserDirectory
}

func NewUserCheckerService(users UserDirectory) *UserCheckerService {
	return &UserCheckerService{users: users}
}

func (s *UserCheckerService) EnsureUserExists(ctx context.Context, userID string) error {
	if s == nil || s.users == nil {
		return appErrors.ErrInternalServer
	}

	if err := s.users.Exists(ctx, userID); err != nil {
		if appErr, ok := appErrors.AsAppError(err); ok && appErr.Is(appErrors.ErrUserNotFound) {
			return appErr
		}
		return appErrors.ErrUserNotFound.WithError(err)
	}

	return nil
}

// ResolveCurrency returns currency when set, otherwise the owner's default.
func (s *UserCheckerService) ResolveCurrency(ctx context.Context, userID, currency string) (string, error) {
	if currency != "" {
		return currency, nil
	}
	if s == nil || s.users == nil {
		return "", appErrors.ErrInternalServer
	}
	return s.users.DefaultCurrency(ctx, userID)
}

type BaseService struct {
	UserChecker *UserCheckerService
}

func (b *BaseService) EnsureUserExists(ctx context.Context, userID string) error {
	if b.UserChecker == nil {
		return appErrors.ErrInternalServer
	}
	return b.UserChecker.EnsureUserExists(ctx, userID)
}
