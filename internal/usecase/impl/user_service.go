package impl

import (
	"context"

	"brewscout/internal/domain/entity"
	"brewscout/internal/domain/repository"
	"brewscout/internal/errors"
	"brewscout/internal/usecase"
)

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new sender identity service instance
func NewUserService(userRepo repository.UserRepository) usecase.UserUsecase {
	return &userService{userRepo: userRepo}
}

// StoreSender upserts the sender identity. Repeating the same sender updates
// the existing row in place; it never creates a duplicate.
func (s *userService) StoreSender(ctx context.Context, sender *usecase.SenderInput) (*entity.User, error) {
	user := &entity.User{
		TUID:      sender.TUID,
		Username:  sender.Username,
		FirstName: sender.FirstName,
		LastName:  sender.LastName,
		IsBot:     sender.IsBot,
	}

	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to upsert sender")
	}

	return user, nil
}
