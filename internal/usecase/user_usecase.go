package usecase

import (
	"context"

	"brewscout/internal/domain/entity"
)

// UserUsecase maintains sender identity records.
type UserUsecase interface {
	// StoreSender upserts the sender's identity and returns the stored
	// entity. Called on every inbound event before anything else.
	StoreSender(ctx context.Context, sender *SenderInput) (*entity.User, error)
}
