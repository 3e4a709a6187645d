package infrastructure

import (
	"context"
	"time"

	"Pocketbook/internal/domain/category"
	appErrors "Pocketbook/internal/errors"
	"Pocketbook/internal/pkg"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const categoriesCollection = "categories"

type categoryDocument struct {
	ID           bson.ObjectID  `bson:"_id"`
	UserID       bson.ObjectID  `bson:"user_id"`
	Name         string         `bson:"name"`
	CategoryType string         `bson:"category_type"`
	ParentID     *bson.ObjectID `bson:"parent_id"`
	Icon         string         `bson:"icon,omitempty"`
	Color        string         `bson:"color,omitempty"`
	CreatedAt    time.Time      `bson:"created_at"`
	UpdatedAt    time.Time      `bson:"updated_at"`
}

func toCategoryDocument(c *category.Category) (*categoryDocument, error) {
	id, err := toObjectID(c.Id)
	if err != nil {
		return nil, err
	}
	userID, err := toObjectID(c.UserId)
	if err != nil {
		return nil, err
	}
	parentID, err := toObjectIDPtr(c.ParentId)
	if err != nil {
		return nil, err
	}

	return &categoryDocument{
		ID:           id,
		UserID:       userID,
		Name:         c.Name,
		CategoryType: string(c.Type),
		ParentID:     parentID,
		Icon:         c.Icon,
		Color:        c.Color,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}, nil
}

func toDomainCategory(doc *categoryDocument) (*category.Category, error) {
	return &category.Category{
		Id:        doc.ID.Hex(),
		UserId:    doc.UserID.Hex(),
		Name:      doc.Name,
		Type:      category.CategoryType(doc.CategoryType),
		ParentId:  fromObjectIDPtr(doc.ParentID),
		Icon:      doc.Icon,
		Color:     doc.Color,
		CreatedAt: doc.CreatedAt.UTC(),
		UpdatedAt: doc.UpdatedAt.UTC(),
	}, nil
}

type CategoryRepository struct {
	collection *mongo.Collection
	indexes    *indexSet
}

func NewCategoryRepository(db *mongo.Database) (*CategoryRepository, error) {
	if db == nil {
		return nil, appErrors.ErrStorageUnavailable
	}
	coll := db.Collection(categoriesCollection)
	return &CategoryRepository{
		collection: coll,
		indexes: &indexSet{
			collection: coll,
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetName("idx_categories_user_id")},
				{Keys: bson.D{{Key: "category_type", Value: 1}}, Options: options.Index().SetName("idx_categories_category_type")},
				{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetName("idx_categories_name")},
			},
		},
	}, nil
}

func (r *CategoryRepository) EnsureIndexes(ctx context.Context) error {
	return r.indexes.ensure(ctx)
}

func (r *CategoryRepository) Create(ctx context.Context, c *category.Category) (*category.Category, error) {
	if err := r.indexes.ensure(ctx); err != nil {
		return nil, err
	}

	doc, err := toCategoryDocument(c)
	if err != nil {
		return nil, err
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, appErrors.NewAlreadyExistsError("category", map[string]interface{}{"id": c.Id})
		}
		return nil, err
	}
	return toDomainCategory(doc)
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*category.Category, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return findOne(ctx, r.collection, bson.M{"_id": oid}, toDomainCategory)
}

// List matches parent_id: nil against documents whose parent is null or
// missing, which is how the server evaluates an equality on null.
func (r *CategoryRepository) List(ctx context.Context, filters pkg.Fields) ([]*category.Category, error) {
	if err := r.indexes.ensure(ctx); err != nil {
		return nil, err
	}

	b := newFilterBuilder(filters).
		ref(category.FilterUserID).
		exact(category.FilterCategoryType).
		contains(category.FilterName)
	if filters.IsNull(category.FilterParentID) {
		b.query[category.FilterParentID] = nil
	} else {
		b.ref(category.FilterParentID)
	}
	if b.impossible {
		return []*category.Category{}, nil
	}

	return findAll(ctx, r.collection, b.query, bson.D{{Key: "name", Value: 1}}, toDomainCategory)
}

func (r *CategoryRepository) Update(ctx context.Context, id string, patch pkg.Fields) (*category.Category, error) {
	normalized, err := patch.Normalize(category.PatchSchema)
	if err != nil {
		return nil, err
	}
	if len(normalized) == 0 {
		return r.GetByID(ctx, id)
	}

	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	set, err := setDocument(normalized, category.PatchSchema)
	if err != nil {
		return nil, err
	}
	return updateOne(ctx, r.collection, oid, set, toDomainCategory)
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteOne(ctx, r.collection, id)
}
