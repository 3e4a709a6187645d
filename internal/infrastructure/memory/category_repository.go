package memory

import (
	"context"
	"sort"

	"Pocketbook/internal/domain/category"
	appErrors "Pocketbook/internal/errors"
	"Pocketbook/internal/pkg"
)

type CategoryRepository struct {
	categories *table[category.Category]
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: newTable(cloneCategory)}
}

func cloneCategory(c *category.Category) *category.Category {
	out := *c
	if c.ParentId != nil {
		parent := *c.ParentId
		out.ParentId = &parent
	}
	return &out
}

func (r *CategoryRepository) Create(_ context.Context, c *category.Category) (*category.Category, error) {
	return r.categories.insert(c.Id, c, func(existing []*category.Category) error {
		for _, e := range existing {
			if e.Id == c.Id {
				return appErrors.NewAlreadyExistsError("category", map[string]interface{}{"id": c.Id})
			}
		}
		return nil
	})
}

func (r *CategoryRepository) GetByID(_ context.Context, id string) (*category.Category, error) {
	return r.categories.get(id), nil
}

// List sorts by name. A parent_id key with a nil value keeps top-level
// categories only; without the key the parent is not looked at.
func (r *CategoryRepository) List(_ context.Context, filters pkg.Fields) ([]*category.Category, error) {
	userID, byUser := filters.String(category.FilterUserID)
	categoryType, byType := filters.String(category.FilterCategoryType)
	name, byName := filters.String(category.FilterName)
	topLevelOnly := filters.IsNull(category.FilterParentID)
	parentID, byParent := filters.String(category.FilterParentID)

	out := r.categories.list(func(c *category.Category) bool {
		switch {
		case byUser && c.UserId != userID:
			return false
		case byType && string(c.Type) != categoryType:
			return false
		case byName && !containsFold(c.Name, name):
			return false
		case topLevelOnly && c.ParentId != nil:
			return false
		case byParent && (c.ParentId == nil || *c.ParentId != parentID):
			return false
		}
		return true
	})

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *CategoryRepository) Update(ctx context.Context, id string, patch pkg.Fields) (*category.Category, error) {
	normalized, err := patch.Normalize(category.PatchSchema)
	if err != nil {
		return nil, err
	}
	if len(normalized) == 0 {
		return r.GetByID(ctx, id)
	}

	return r.categories.update(id, func(c *category.Category, _ []*category.Category) error {
		if v, ok := normalized.String("user_id"); ok {
			c.UserId = v
		}
		if v, ok := normalized.String("name"); ok {
			c.Name = v
		}
		if v, ok := normalized.String("category_type"); ok {
			c.Type = category.CategoryType(v)
		}
		if normalized.IsNull("parent_id") {
			c.ParentId = nil
		} else if v, ok := normalized.String("parent_id"); ok {
			c.ParentId = &v
		}
		if v, ok := normalized.String("icon"); ok {
			c.Icon = v
		}
		if v, ok := normalized.String("color"); ok {
			c.Color = v
		}
		c.UpdatedAt = pkg.Now()
		return nil
	})
}

func (r *CategoryRepository) Delete(_ context.Context, id string) (bool, error) {
	return r.categories.remove(id), nil
}
