package shared

import "context"

type UserChecker interface {
	Exists(ctx context.Context, userID string) error
}

// UserDirectory answers the questions other services ask about an owner.
type UserDirectory interface {
	UserChecker
	DefaultCurrency(ctx context.Context, userID string) (string, error)
}
