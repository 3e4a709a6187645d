package infrastructure

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync/atomic"

	appErrors "Pocketbook/internal/errors"
	"Pocketbook/internal/logger"
	"Pocketbook/internal/pkg"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// indexSet creates the indexes of one collection on first use. ready is only
// set after a successful round, so a failed attempt is retried by the next
// caller. Two callers racing on the first use both create the indexes, which
// the server treats as a no-op.
type indexSet struct {
	collection *mongo.Collection
	models     []mongo.IndexModel
	ready      atomic.Bool
}

func (s *indexSet) ensure(ctx context.Context) error {
	if s.ready.Load() {
		return nil
	}

	names, err := s.collection.Indexes().CreateMany(ctx, s.models)
	if err != nil {
		logger.Error().
			Err(err).
			Str("collection", s.collection.Name()).
			Msg("failed to create indexes")
		return err
	}

	s.ready.Store(true)
	logger.Debug().
		Str("collection", s.collection.Name()).
		Strs("indexes", names).
		Msg("indexes ready")
	return nil
}

func toObjectID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, appErrors.ErrInvalidID.
			WithDetails(map[string]interface{}{"id": id}).
			WithError(err)
	}
	return oid, nil
}

func toObjectIDPtr(id *string) (*bson.ObjectID, error) {
	if id == nil {
		return nil, nil
	}
	oid, err := toObjectID(*id)
	if err != nil {
		return nil, err
	}
	return &oid, nil
}

func fromObjectIDPtr(oid *bson.ObjectID) *string {
	if oid == nil {
		return nil
	}
	s := oid.Hex()
	return &s
}

// toDecimal128 keeps the scale of d, so 100.50 is stored as 100.50.
func toDecimal128(d decimal.Decimal) (bson.Decimal128, error) {
	s := d.String()
	if exp := d.Exponent(); exp < 0 {
		s = d.StringFixed(-exp)
	}
	out, err := bson.ParseDecimal128(s)
	if err != nil {
		return bson.Decimal128{}, appErrors.NewValidationError("amount", "does not fit a decimal128").WithError(err)
	}
	return out, nil
}

// fromDecimal128 treats the zero Decimal128, which is what an absent field
// decodes to, as zero.
func fromDecimal128(d bson.Decimal128) (decimal.Decimal, error) {
	if d == (bson.Decimal128{}) {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(d.String())
}

// containsFold matches values containing s regardless of case.
func containsFold(s string) bson.Regex {
	return bson.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

// filterBuilder turns an open filter set into a query document. A reference
// filter that cannot be converted to an ObjectID cannot match any document,
// which is recorded in impossible rather than raised.
type filterBuilder struct {
	fields     pkg.Fields
	query      bson.M
	impossible bool
}

func newFilterBuilder(fields pkg.Fields) *filterBuilder {
	return &filterBuilder{fields: fields, query: bson.M{}}
}

func (b *filterBuilder) ref(key string) *filterBuilder {
	if v, ok := b.fields.String(key); ok {
		oid, err := bson.ObjectIDFromHex(v)
		if err != nil {
			b.impossible = true
			return b
		}
		b.query[key] = oid
	}
	return b
}

func (b *filterBuilder) exact(key string) *filterBuilder {
	if v, ok := b.fields.String(key); ok {
		b.query[key] = v
	}
	return b
}

func (b *filterBuilder) integer(key string) *filterBuilder {
	if v, ok := b.fields.Int(key); ok {
		b.query[key] = v
	}
	return b
}

func (b *filterBuilder) contains(key string) *filterBuilder {
	if v, ok := b.fields.String(key); ok {
		b.query[key] = containsFold(v)
	}
	return b
}

func (b *filterBuilder) lower(key string) *filterBuilder {
	if v, ok := b.fields.String(key); ok {
		b.query[key] = strings.ToLower(strings.TrimSpace(v))
	}
	return b
}

// setDocument converts a normalized patch into a $set document: references
// become ObjectIDs, decimals become Decimal128 and explicit nils are kept so
// the field is cleared.
func setDocument(patch pkg.Fields, schema pkg.Schema) (bson.M, error) {
	set := bson.M{}
	for key, value := range patch {
		if value == nil {
			set[key] = nil
			continue
		}
		switch schema[key] {
		case pkg.KindRef, pkg.KindNullableRef:
			oid, err := toObjectID(value.(string))
			if err != nil {
				return nil, err
			}
			set[key] = oid
		case pkg.KindDecimal:
			d, err := toDecimal128(value.(decimal.Decimal))
			if err != nil {
				return nil, err
			}
			set[key] = d
		default:
			set[key] = value
		}
	}
	set["updated_at"] = pkg.Now()
	return set, nil
}

const duplicateKeyCode = 11000

// isDuplicateOn reports whether err is a duplicate key violation of index.
// The index name only appears in the server message.
func isDuplicateOn(err error, index string) bool {
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, we := range writeErr.WriteErrors {
			if we.Code == duplicateKeyCode && strings.Contains(we.Message, index) {
				return true
			}
		}
		return false
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == duplicateKeyCode && strings.Contains(cmdErr.Message, index)
	}
	return false
}

func findOne[D any, T any](ctx context.Context, coll *mongo.Collection, filter bson.M, convert func(*D) (*T, error)) (*T, error) {
	var doc D
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return convert(&doc)
}

func findAll[D any, T any](ctx context.Context, coll *mongo.Collection, filter bson.M, sort bson.D, convert func(*D) (*T, error)) ([]*T, error) {
	cursor, err := coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}

	var docs []D
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]*T, 0, len(docs))
	for i := range docs {
		item, err := convert(&docs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// updateOne applies set to the document with the given _id and decodes the
// updated document. A miss yields nil, nil.
func updateOne[D any, T any](ctx context.Context, coll *mongo.Collection, oid bson.ObjectID, set bson.M, convert func(*D) (*T, error)) (*T, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc D
	err := coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return convert(&doc)
}

func deleteOne(ctx context.Context, coll *mongo.Collection, id string) (bool, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	result, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}
