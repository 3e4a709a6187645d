package user

import (
	"context"
	"strings"

	"Pocketbook/internal/domain/shared"
	appErrors "Pocketbook/internal/errors"
	"Pocketbook/internal/pkg"

	"github.com/badoux/checkmail"
)

type Service struct {
	Repository Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo}
}

var _ shared.UserDirectory = (*Service)(nil)

func (s *Service) Create(ctx context.Context, req *CreateUserRequest) (*User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, appErrors.NewValidationError("name", "is required")
	}

	email, err := validateEmail(req.Email)
	if err != nil {
		return nil, err
	}

	currency, err := validateCurrency(req.DefaultCurrency)
	if err != nil {
		return nil, err
	}

	now := pkg.Now()
	created, err := s.Repository.Create(ctx, &User{
		Id:              pkg.NewID(),
		Name:            name,
		Email:           email,
		DefaultCurrency: currency,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return nil, shared.StorageError(err)
	}

	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	user, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return nil, shared.StorageError(err)
	}
	if user == nil {
		return nil, appErrors.ErrUserNotFound
	}
	return user, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	users, err := s.Repository.List(ctx, pkg.Fields{FilterEmail: NormalizeEmail(email)})
	if err != nil {
		return nil, shared.StorageError(err)
	}
	if len(users) == 0 {
		return nil, appErrors.ErrUserNotFound
	}
	return users[0], nil
}

func (s *Service) List(ctx context.Context, filters pkg.Fields) ([]*User, error) {
	users, err := s.Repository.List(ctx, filters)
	if err != nil {
		return nil, shared.StorageError(err)
	}
	return users, nil
}

func (s *Service) Update(ctx context.Context, id string, req *UpdateUserRequest) (*User, error) {
	patch := pkg.Fields{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, appErrors.NewValidationError("name", "cannot be empty")
		}
		patch["name"] = name
	}

	if req.Email != nil {
		email, err := validateEmail(*req.Email)
		if err != nil {
			return nil, err
		}
		patch["email"] = email
	}

	if req.DefaultCurrency != nil {
		currency, err := validateCurrency(*req.DefaultCurrency)
		if err != nil {
			return nil, err
		}
		patch["default_currency"] = currency
	}

	user, err := s.Repository.Update(ctx, id, patch)
	if err != nil {
		return nil, shared.StorageError(err)
	}
	if user == nil {
		return nil, appErrors.ErrUserNotFound
	}
	return user, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.Repository.Delete(ctx, id)
	if err != nil {
		return shared.StorageError(err)
	}
	if !deleted {
		return appErrors.ErrUserNotFound
	}
	return nil
}

func (s *Service) Exists(ctx context.Context, userID string) error {
	_, err := s.GetByID(ctx, userID)
	return err
}

func (s *Service) DefaultCurrency(ctx context.Context, userID string) (string, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.DefaultCurrency, nil
}

func validateEmail(raw string) (string, error) {
	email := NormalizeEmail(raw)
	if email == "" {
		return "", appErrors.NewValidationError("email", "is required")
	}
	if err := checkmail.ValidateFormat(email); err != nil {
		return "", appErrors.NewValidationError("email", "is not a valid address")
	}
	return email, nil
}

func validateCurrency(raw string) (string, error) {
	currency := NormalizeCurrency(raw)
	if len(currency) != 3 {
		return "", appErrors.NewValidationError("default_currency", "must be a 3-letter ISO code")
	}
	return currency, nil
}

type CreateUserRequest struct {
	Name            string
	Email           string
	DefaultCurrency string
}

type UpdateUserRequest struct {
	Name            *string
	Email           *string
	DefaultCurrency *string
}
