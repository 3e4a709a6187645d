package infrastructure

import (
	"context"
	"time"

	"Pocketbook/internal/domain/budget"
	appErrors "Pocketbook/internal/errors"
	"Pocketbook/internal/pkg"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	budgetsCollection = "budgets"
	budgetPeriodIndex = "idx_budgets_period"
)

type budgetDocument struct {
	ID         bson.ObjectID   `bson:"_id"`
	UserID     bson.ObjectID   `bson:"user_id"`
	CategoryID bson.ObjectID   `bson:"category_id"`
	Year       int             `bson:"year"`
	Month      int             `bson:"month"`
	Amount     bson.Decimal128 `bson:"amount"`
	CreatedAt  time.Time       `bson:"created_at"`
	UpdatedAt  time.Time       `bson:"updated_at"`
}

func toBudgetDocument(b *budget.Budget) (*budgetDocument, error) {
	id, err := toObjectID(b.Id)
	if err != nil {
		return nil, err
	}
	userID, err := toObjectID(b.UserId)
	if err != nil {
		return nil, err
	}
	categoryID, err := toObjectID(b.CategoryId)
	if err != nil {
		return nil, err
	}
	amount, err := toDecimal128(b.Amount)
	if err != nil {
		return nil, err
	}

	return &budgetDocument{
		ID:         id,
		UserID:     userID,
		CategoryID: categoryID,
		Year:       b.Year,
		Month:      b.Month,
		Amount:     amount,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}, nil
}

func toDomainBudget(doc *budgetDocument) (*budget.Budget, error) {
	amount, err := fromDecimal128(doc.Amount)
	if err != nil {
		return nil, err
	}

	return &budget.Budget{
		Id:         doc.ID.Hex(),
		UserId:     doc.UserID.Hex(),
		CategoryId: doc.CategoryID.Hex(),
		Year:       doc.Year,
		Month:      doc.Month,
		Amount:     amount,
		CreatedAt:  doc.CreatedAt.UTC(),
		UpdatedAt:  doc.UpdatedAt.UTC(),
	}, nil
}

type BudgetRepository struct {
	collection *mongo.Collection
	indexes    *indexSet
}

func NewBudgetRepository(db *mongo.Database) (*BudgetRepository, error) {
	if db == nil {
		return nil, appErrors.ErrStorageUnavailable
	}
	coll := db.Collection(budgetsCollection)
	return &BudgetRepository{
		collection: coll,
		indexes: &indexSet{
			collection: coll,
			models: []mongo.IndexModel{
				{
					Keys: bson.D{
						{Key: "user_id", Value: 1},
						{Key: "category_id", Value: 1},
						{Key: "year", Value: 1},
						{Key: "month", Value: 1},
					},
					Options: options.Index().SetUnique(true).SetName(budgetPeriodIndex),
				},
			},
		},
	}, nil
}

func (r *BudgetRepository) EnsureIndexes(ctx context.Context) error {
	return r.indexes.ensure(ctx)
}

// Create relies on the unique period index; a second budget for the same
// (user, category, year, month) fails with errors.ErrAlreadyExists.
func (r *BudgetRepository) Create(ctx context.Context, b *budget.Budget) (*budget.Budget, error) {
	if err := r.indexes.ensure(ctx); err != nil {
		return nil, err
	}

	doc, err := toBudgetDocument(b)
	if err != nil {
		return nil, err
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, r.translate(err, b.Id, b.Period())
	}
	return toDomainBudget(doc)
}

func (r *BudgetRepository) GetByID(ctx context.Context, id string) (*budget.Budget, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return findOne(ctx, r.collection, bson.M{"_id": oid}, toDomainBudget)
}

func (r *BudgetRepository) List(ctx context.Context, filters pkg.Fields) ([]*budget.Budget, error) {
	if err := r.indexes.ensure(ctx); err != nil {
		return nil, err
	}

	b := newFilterBuilder(filters).
		ref(budget.FilterUserID).
		ref(budget.FilterCategoryID).
		integer(budget.FilterYear).
		integer(budget.FilterMonth)
	if b.impossible {
		return []*budget.Budget{}, nil
	}

	sort := bson.D{{Key: "year", Value: 1}, {Key: "month", Value: 1}}
	return findAll(ctx, r.collection, b.query, sort, toDomainBudget)
}

func (r *BudgetRepository) Update(ctx context.Context, id string, patch pkg.Fields) (*budget.Budget, error) {
	normalized, err := patch.Normalize(budget.PatchSchema)
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

	set, err := setDocument(normalized, budget.PatchSchema)
	if err != nil {
		return nil, err
	}

	updated, err := updateOne(ctx, r.collection, oid, set, toDomainBudget)
	if err != nil {
		return nil, r.translate(err, id, budget.Period{})
	}
	return updated, nil
}

func (r *BudgetRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteOne(ctx, r.collection, id)
}

func (r *BudgetRepository) FindByPeriod(ctx context.Context, userID, categoryID string, year, month int) (*budget.Budget, error) {
	userOID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, nil
	}
	categoryOID, err := bson.ObjectIDFromHex(categoryID)
	if err != nil {
		return nil, nil
	}

	filter := bson.M{
		"user_id":     userOID,
		"category_id": categoryOID,
		"year":        year,
		"month":       month,
	}
	return findOne(ctx, r.collection, filter, toDomainBudget)
}

func (r *BudgetRepository) translate(err error, id string, period budget.Period) error {
	switch {
	case isDuplicateOn(err, budgetPeriodIndex):
		if period == (budget.Period{}) {
			return appErrors.NewAlreadyExistsError("budget", nil)
		}
		return appErrors.NewAlreadyExistsError("budget", period.Details())
	case mongo.IsDuplicateKeyError(err):
		return appErrors.NewAlreadyExistsError("budget", map[string]interface{}{"id": id})
	}
	return err
}
