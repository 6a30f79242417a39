package postgres

import (
	"context"
	"time"

	"brewscout/internal/domain/entity"
	"brewscout/internal/domain/repository"
	"brewscout/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Upsert inserts the sender or updates the existing row on the
// (username, tuid) natural key. Identity fields stay put; names, the bot
// flag and updated_at take the latest event's values.
func (repo *userRepository) Upsert(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)
	userM.UpdatedAt = time.Now().UTC()

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "username"}, {Name: "tuid"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"is_bot", "first_name", "last_name", "updated_at",
			}),
		}).
		Create(userM).Error; err != nil {
		return errors.Wrap(err, "failed to upsert user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// --- Mapper Functions ---

func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:        data.ID,
		TUID:      data.TUID,
		Username:  data.Username,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		IsBot:     data.IsBot,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
