package database

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotInitialized is returned when the store is used before a successful Connect.
var ErrNotInitialized = errors.New("document store not initialized")

// ConnectionError reports that every connection attempt failed.
type ConnectionError struct {
	Attempts int
	Cause    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("document store unreachable after %d attempt(s): %v", e.Attempts, e.Cause)
}

func (e *ConnectionError) Unwrap() error { return e.Cause }

// IsDuplicateKey reports whether err is a unique index violation.
func IsDuplicateKey(err error) bool {
	return err != nil && mongo.IsDuplicateKeyError(err)
}
