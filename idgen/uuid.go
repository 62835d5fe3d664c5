package idgen

import "github.com/google/uuid"

// Generator returns a new unique identifier on every call.
type Generator func() string

// UUID returns a random (version 4) UUID string.
func UUID() string {
	return uuid.New().String()
}
