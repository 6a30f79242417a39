package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel maps to the users table. (username, tuid) is the natural key
// the upsert conflicts on.
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TUID      int64     `gorm:"column:tuid;not null;uniqueIndex:idx_users_username_tuid"`
	Username  string    `gorm:"not null;uniqueIndex:idx_users_username_tuid"`
	FirstName string
	LastName  string
	IsBot     bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}
