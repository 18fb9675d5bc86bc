package utils

import "github.com/google/uuid"

// IsUUID reports whether id parses as a UUID. Route handlers use this to
// reject malformed ids with a 400 before any store lookup happens.
func IsUUID(id string) bool {
	_, err := uuid.Parse(id)

	return err == nil
}
