package infrastructure

import (
	"context"
	"time"

	"Pocketbook/internal/domain/user"
	appErrors "Pocketbook/internal/errors"
	"Pocketbook/internal/pkg"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	usersCollection = "users"
	userEmailIndex  = "idx_users_email"
)

type userDocument struct {
	ID              bson.ObjectID `bson:"_id"`
	Name            string        `bson:"name"`
	Email           string        `bson:"email"`
	DefaultCurrency string        `bson:"default_currency"`
	CreatedAt       time.Time     `bson:"created_at"`
	UpdatedAt       time.Time     `bson:"updated_at"`
}

func toUserDocument(u *user.User) (*userDocument, error) {
	id, err := toObjectID(u.Id)
	if err != nil {
		return nil, err
	}
	return &userDocument{
		ID:              id,
		Name:            u.Name,
		Email:           user.NormalizeEmail(u.Email),
		DefaultCurrency: u.DefaultCurrency,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}, nil
}

func toDomainUser(doc *userDocument) (*user.User, error) {
	return &user.User{
		Id:              doc.ID.Hex(),
		Name:            doc.Name,
		Email:           doc.Email,
		DefaultCurrency: doc.DefaultCurrency,
		CreatedAt:       doc.CreatedAt.UTC(),
		UpdatedAt:       doc.UpdatedAt.UTC(),
	}, nil
}

type UserRepository struct {
	collection *mongo.Collection
	indexes    *indexSet
}

func NewUserRepository(db *mongo.Database) (*UserRepository, error) {
	if db == nil {
		return nil, appErrors.ErrStorageUnavailable
	}
	coll := db.Collection(usersCollection)
	return &UserRepository{
		collection: coll,
		indexes: &indexSet{
			collection: coll,
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "email", Value: 1}},
					Options: options.Index().SetUnique(true).SetName(userEmailIndex),
				},
				{
					Keys:    bson.D{{Key: "name", Value: 1}},
					Options: options.Index().SetName("idx_users_name"),
				},
			},
		},
	}, nil
}

func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	return r.indexes.ensure(ctx)
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if err := r.indexes.ensure(ctx); err != nil {
		return nil, err
	}

	doc, err := toUserDocument(u)
	if err != nil {
		return nil, err
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, r.translate(err, doc.ID.Hex(), doc.Email)
	}
	return toDomainUser(doc)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return findOne(ctx, r.collection, bson.M{"_id": oid}, toDomainUser)
}

func (r *UserRepository) List(ctx context.Context, filters pkg.Fields) ([]*user.User, error) {
	if err := r.indexes.ensure(ctx); err != nil {
		return nil, err
	}

	query := newFilterBuilder(filters).
		lower(user.FilterEmail).
		exact(user.FilterDefaultCurrency).
		contains(user.FilterName).
		query

	return findAll(ctx, r.collection, query, bson.D{{Key: "_id", Value: 1}}, toDomainUser)
}

func (r *UserRepository) Update(ctx context.Context, id string, patch pkg.Fields) (*user.User, error) {
	normalized, err := patch.Normalize(user.PatchSchema)
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

	if email, ok := normalized.String("email"); ok {
		normalized["email"] = user.NormalizeEmail(email)
	}

	set, err := setDocument(normalized, user.PatchSchema)
	if err != nil {
		return nil, err
	}

	updated, err := updateOne(ctx, r.collection, oid, set, toDomainUser)
	if err != nil {
		email, _ := normalized.String("email")
		return nil, r.translate(err, id, email)
	}
	return updated, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteOne(ctx, r.collection, id)
}

func (r *UserRepository) translate(err error, id, email string) error {
	switch {
	case isDuplicateOn(err, userEmailIndex):
		return appErrors.NewAlreadyExistsError("user", map[string]interface{}{"email": email})
	case mongo.IsDuplicateKeyError(err):
		return appErrors.NewAlreadyExistsError("user", map[string]interface{}{"id": id})
	}
	return err
}
