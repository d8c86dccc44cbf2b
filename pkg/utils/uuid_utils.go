package utils

import (
	"github.com/google/uuid"
)

var newUUIDv7 = uuid.NewV7

// GenerateUUIDv7 returns a time-ordered UUID. Entity IDs must sort by
// creation time because payout association walks commissions oldest first
// by primary key. Falls back to v4 only if the clock source fails.
func GenerateUUIDv7() uuid.UUID {
	id, err := newUUIDv7()
	if err != nil {
		return uuid.New()
	}
	return id
}
