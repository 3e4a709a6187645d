package infrastructure

import (
	"context"
	"time"

	"Pocketbook/internal/domain/account"
	appErrors "Pocketbook/internal/errors"
	"Pocketbook/internal/pkg"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const accountsCollection = "accounts"

type accountDocument struct {
	ID          bson.ObjectID   `bson:"_id"`
	UserID      bson.ObjectID   `bson:"user_id"`
	Name        string          `bson:"name"`
	AccountType string          `bson:"account_type"`
	Currency    string          `bson:"currency"`
	Balance     bson.Decimal128 `bson:"balance"`
	Color       string          `bson:"color,omitempty"`
	Icon        string          `bson:"icon,omitempty"`
	IsActive    bool            `bson:"is_active"`
	CreatedAt   time.Time       `bson:"created_at"`
	UpdatedAt   time.Time       `bson:"updated_at"`
}

func toAccountDocument(a *account.Account) (*accountDocument, error) {
	id, err := toObjectID(a.Id)
	if err != nil {
		return nil, err
	}
	userID, err := toObjectID(a.UserId)
	if err != nil {
		return nil, err
	}
	balance, err := toDecimal128(a.Balance)
	if err != nil {
		return nil, err
	}

	return &accountDocument{
		ID:          id,
		UserID:      userID,
		Name:        a.Name,
		AccountType: string(a.Type),
		Currency:    a.Currency,
		Balance:     balance,
		Color:       a.Color,
		Icon:        a.Icon,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}, nil
}

func toDomainAccount(doc *accountDocument) (*account.Account, error) {
	balance, err := fromDecimal128(doc.Balance)
	if err != nil {
		return nil, err
	}

	return &account.Account{
		Id:        doc.ID.Hex(),
		UserId:    doc.UserID.Hex(),
		Name:      doc.Name,
		Type:      account.AccountType(doc.AccountType),
		Currency:  doc.Currency,
		Balance:   balance,
		Color:     doc.Color,
		Icon:      doc.Icon,
		IsActive:  doc.IsActive,
		CreatedAt: doc.CreatedAt.UTC(),
		UpdatedAt: doc.UpdatedAt.UTC(),
	}, nil
}

type AccountRepository struct {
	collection *mongo.Collection
	indexes    *indexSet
}

func NewAccountRepository(db *mongo.Database) (*AccountRepository, error) {
	if db == nil {
		return nil, appErrors.ErrStorageUnavailable
	}
	coll := db.Collection(accountsCollection)
	return &AccountRepository{
		collection: coll,
		indexes: &indexSet{
			collection: coll,
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetName("idx_accounts_user_id")},
				{Keys: bson.D{{Key: "account_type", Value: 1}}, Options: options.Index().SetName("idx_accounts_account_type")},
				{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetName("idx_accounts_name")},
			},
		},
	}, nil
}

func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	return r.indexes.ensure(ctx)
}

func (r *AccountRepository) Create(ctx context.Context, a *account.Account) (*account.Account, error) {
	if err := r.indexes.ensure(ctx); err != nil {
		return nil, err
	}

	doc, err := toAccountDocument(a)
	if err != nil {
		return nil, err
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, appErrors.NewAlreadyExistsError("account", map[string]interface{}{"id": a.Id})
		}
		return nil, err
	}
	return toDomainAccount(doc)
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*account.Account, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return findOne(ctx, r.collection, bson.M{"_id": oid}, toDomainAccount)
}

func (r *AccountRepository) List(ctx context.Context, filters pkg.Fields) ([]*account.Account, error) {
	if err := r.indexes.ensure(ctx); err != nil {
		return nil, err
	}

	b := newFilterBuilder(filters).
		ref(account.FilterUserID).
		exact(account.FilterAccountType).
		exact(account.FilterCurrency).
		contains(account.FilterName)
	if b.impossible {
		return []*account.Account{}, nil
	}

	return findAll(ctx, r.collection, b.query, bson.D{{Key: "_id", Value: 1}}, toDomainAccount)
}

func (r *AccountRepository) Update(ctx context.Context, id string, patch pkg.Fields) (*account.Account, error) {
	normalized, err := patch.Normalize(account.PatchSchema)
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

	set, err := setDocument(normalized, account.PatchSchema)
	if err != nil {
		return nil, err
	}
	return updateOne(ctx, r.collection, oid, set, toDomainAccount)
}

func (r *AccountRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteOne(ctx, r.collection, id)
}
