package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the persisted identity of a Telegram sender, upserted on every
// inbound event. The natural key is (Username, TUID); latest event wins.
type User struct {
	ID        uuid.UUID
	TUID      int64 // Telegram user id
	Username  string
	FirstName string
	LastName  string
	IsBot     bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
