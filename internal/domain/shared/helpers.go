package shared

import (
	"errors"
	"strings"

	appErrors "Pocketbook/internal/errors"
)

// IsConflict reports whether err is a uniqueness violation raised by a
// repository or a service pre-check.
func IsConflict(err error) bool {
	return errors.Is(err, appErrors.ErrAlreadyExists) || errors.Is(err, appErrors.ErrConflict)
}

// StorageError passes application errors through and wraps anything else
// coming out of a repository as a database error.
func StorageError(err error) error {
	if err == nil {
		return nil
	}
	if appErrors.IsAppError(err) {
		return err
	}
	return appErrors.NewDatabaseError(err)
}

func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return name
	}
	words := strings.Fields(name)
	normalized := make([]string, 0, len(words))
	for _, word := range words {
		runes := []rune(word)
		if len(runes) == 1 {
			normalized = append(normalized, strings.ToUpper(word))
			continue
		}
		normalized = append(normalized, strings.ToUpper(string(runes[0]))+strings.ToLower(string(runes[1:])))
	}
	return strings.Join(normalized, " ")
}
