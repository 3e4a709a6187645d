package category

import (
	"context"

	"Pocketbook/internal/domain/shared"
	appErrors "Pocketbook/internal/errors"
	"Pocketbook/internal/pkg"
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

func (s *Service) Create(ctx context.Context, req *CreateCategoryRequest) (*Category, error) {
	if err := s.EnsureUserExists(ctx, req.UserId); err != nil {
		return nil, err
	}

	name := shared.NormalizeName(req.Name)
	if name == "" {
		return nil, appErrors.NewValidationError("name", "is required")
	}

	categoryType := req.Type
	if categoryType == "" {
		categoryType = TypeExpense
	}
	if !categoryType.IsValid() {
		return nil, appErrors.NewValidationError("type", "invalid category type")
	}

	var parentID *string
	if req.ParentId != nil && *req.ParentId != "" {
		parent, err := s.GetByID(ctx, *req.ParentId, req.UserId)
		if err != nil {
			return nil, err
		}
		if parent.Type != categoryType {
			return nil, appErrors.NewValidationError("parent_id", "must have the same type")
		}
		id := parent.Id
		parentID = &id
	}

	now := pkg.Now()
	created, err := s.Repository.Create(ctx, &Category{
		Id:        pkg.NewID(),
		UserId:    req.UserId,
		Name:      name,
		Type:      categoryType,
		ParentId:  parentID,
		Icon:      req.Icon,
		Color:     req.Color,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, shared.StorageError(err)
	}

	return created, nil
}

// Update applies req to the category. A ParentId pointing at an empty string
// turns the category into a top-level one.
func (s *Service) Update(ctx context.Context, categoryID, userID string, req *UpdateCategoryRequest) (*Category, error) {
	existing, err := s.GetByID(ctx, categoryID, userID)
	if err != nil {
		return nil, err
	}

	patch := pkg.Fields{}

	if req.Name != nil {
		name := shared.NormalizeName(*req.Name)
		if name == "" {
			return nil, appErrors.NewValidationError("name", "cannot be empty")
		}
		patch["name"] = name
	}

	categoryType := existing.Type
	if req.Type != nil {
		if !req.Type.IsValid() {
			return nil, appErrors.NewValidationError("type", "invalid category type")
		}
		categoryType = *req.Type
		patch["category_type"] = string(*req.Type)
	}

	parentID := existing.ParentId
	if req.ParentId != nil {
		if *req.ParentId == "" {
			parentID = nil
			patch["parent_id"] = nil
		} else {
			if err := s.ensureNoCycle(ctx, categoryID, *req.ParentId, userID); err != nil {
				return nil, err
			}
			parentID = req.ParentId
			patch["parent_id"] = *req.ParentId
		}
	}

	if parentID != nil && (req.ParentId != nil || req.Type != nil) {
		parent, err := s.GetByID(ctx, *parentID, userID)
		if err != nil {
			return nil, err
		}
		if parent.Type != categoryType {
			return nil, appErrors.NewValidationError("parent_id", "must have the same type")
		}
	}

	if req.Type != nil && categoryType != existing.Type {
		children, err := s.Repository.List(ctx, pkg.Fields{FilterUserID: userID, FilterParentID: categoryID})
		if err != nil {
			return nil, shared.StorageError(err)
		}
		if len(children) > 0 {
			return nil, appErrors.NewValidationError("type", "cannot change while subcategories exist")
		}
	}

	if req.Icon != nil {
		patch["icon"] = *req.Icon
	}

	if req.Color != nil {
		patch["color"] = *req.Color
	}

	updated, err := s.Repository.Update(ctx, categoryID, patch)
	if err != nil {
		return nil, shared.StorageError(err)
	}
	if updated == nil {
		return nil, appErrors.ErrCategoryNotFound
	}

	return updated, nil
}

// ensureNoCycle walks up from parentID and fails if the chain reaches
// categoryID.
func (s *Service) ensureNoCycle(ctx context.Context, categoryID, parentID, userID string) error {
	visited := map[string]bool{}
	for current := parentID; ; {
		if current == categoryID {
			return appErrors.NewValidationError("parent_id", "would create a cycle")
		}
		if visited[current] {
			return nil
		}
		visited[current] = true

		ancestor, err := s.GetByID(ctx, current, userID)
		if err != nil {
			return err
		}
		if ancestor.ParentId == nil {
			return nil
		}
		current = *ancestor.ParentId
	}
}

func (s *Service) Delete(ctx context.Context, categoryID, userID string) error {
	if _, err := s.GetByID(ctx, categoryID, userID); err != nil {
		return err
	}

	children, err := s.Repository.List(ctx, pkg.Fields{FilterUserID: userID, FilterParentID: categoryID})
	if err != nil {
		return shared.StorageError(err)
	}
	if len(children) > 0 {
		return appErrors.NewValidationError("category", "has subcategories and cannot be removed")
	}

	deleted, err := s.Repository.Delete(ctx, categoryID)
	if err != nil {
		return shared.StorageError(err)
	}
	if !deleted {
		return appErrors.ErrCategoryNotFound
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, categoryID, userID string) (*Category, error) {
	category, err := s.Repository.GetByID(ctx, categoryID)
	if err != nil {
		return nil, shared.StorageError(err)
	}
	if category == nil {
		return nil, appErrors.ErrCategoryNotFound
	}
	if category.UserId != userID {
		return nil, appErrors.ErrResourceNotOwned
	}
	return category, nil
}

// List returns the user's categories ordered by name. filters follows the
// repository contract, so {"parent_id": nil} yields top-level categories only.
func (s *Service) List(ctx context.Context, userID string, filters pkg.Fields) ([]*Category, error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	scoped := pkg.Fields{}
	for k, v := range filters {
		scoped[k] = v
	}
	scoped[FilterUserID] = userID

	categories, err := s.Repository.List(ctx, scoped)
	if err != nil {
		return nil, shared.StorageError(err)
	}
	return categories, nil
}

func (s *Service) ListTopLevel(ctx context.Context, userID string) ([]*Category, error) {
	return s.List(ctx, userID, pkg.Fields{FilterParentID: nil})
}

func (s *Service) ListChildren(ctx context.Context, parentID, userID string) ([]*Category, error) {
	if _, err := s.GetByID(ctx, parentID, userID); err != nil {
		return nil, err
	}
	return s.List(ctx, userID, pkg.Fields{FilterParentID: parentID})
}

type CreateCategoryRequest struct {
	UserId   string
	Name     string
	Type     CategoryType
	ParentId *string
	Icon     string
	Color    string
}

type UpdateCategoryRequest struct {
	Name     *string
	Type     *CategoryType
	ParentId *string
	Icon     *string
	Color    *string
}
