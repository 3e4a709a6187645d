package category

import (
	"context"

	"Pocketbook/internal/pkg"
)

const (
	FilterUserID       = "user_id"
	FilterCategoryType = "category_type"
	// FilterParentID narrows to children of the given id. Passing the key
	// with a nil value narrows to top-level categories instead.
	FilterParentID = "parent_id"
	FilterName     = "name"
)

// PatchSchema lists the fields Repository.Update accepts. A falsy parent_id
// detaches the category from its parent.
var PatchSchema = pkg.Schema{
	"user_id":       pkg.KindRef,
	"name":          pkg.KindString,
	"category_type": pkg.KindString,
	"parent_id":     pkg.KindNullableRef,
	"icon":          pkg.KindString,
	"color":         pkg.KindString,
}

type Repository interface {
	Create(ctx context.Context, category *Category) (*Category, error)
	GetByID(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context, filters pkg.Fields) ([]*Category, error)
	Update(ctx context.Context, id string, patch pkg.Fields) (*Category, error)
	Delete(ctx context.Context, id string) (bool, error)
}
