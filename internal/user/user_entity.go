package user

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors an identity owned by the external identity provider. Only the
// id and username are kept locally so other tables can reference them.
type User struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Username  string    `gorm:"column:username;type:varchar(150);not null;uniqueIndex:uq_users_username"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u User) String() string {
	return u.Username
}
