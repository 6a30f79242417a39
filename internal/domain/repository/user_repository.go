package repository

import (
	"context"

	"brewscout/internal/domain/entity"
)

// UserRepository defines the interface for sender identity persistence.
type UserRepository interface {
	// Upsert inserts the user or, when a row with the same (username, tuid)
	// already exists, overwrites its name fields, bot flag and updated_at.
	// The operation is idempotent by the natural key and never creates
	// duplicate rows.
	Upsert(ctx context.Context, user *entity.User) error
}
