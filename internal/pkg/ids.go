package pkg

import (
	"time"

	"github.com/oklog/ulid/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// NewID returns a fresh entity identifier: the hex form of a MongoDB ObjectID,
// so that it converts losslessly to the storage reference type.
func NewID() string {
	return bson.NewObjectID().Hex()
}

func IsValidID(id string) bool {
	_, err := bson.ObjectIDFromHex(id)
	return err == nil
}

// NewRequestID returns a lexically sortable id used to correlate log lines
// of a single request.
func NewRequestID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.DefaultEntropy()).String()
}

// Now returns the current UTC time truncated to the millisecond precision
// that BSON dates can hold.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
