package models

import "github.com/google/uuid"

// newID returns the opaque identifier used as primary key for every
// tenant-owned row.
func newID() string {
	return uuid.NewString()
}

func ensureID(id *string) {
	if *id == "" {
		*id = newID()
	}
}
