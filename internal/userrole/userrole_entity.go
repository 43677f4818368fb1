package userrole

import (
	"fmt"
	"time"

	"go-teamdesk/internal/domain"
	"go-teamdesk/internal/user"

	"github.com/google/uuid"
)

// UserRole holds the single role of a user. Role is NULL until an admin
// assigns one.
type UserRole struct {
	ID        uuid.UUID   `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID   `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_user_roles_user_id"`
	Role      domain.Role `gorm:"column:role;type:smallint"`
	CreatedAt time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time   `gorm:"column:updated_at;autoUpdateTime"`

	User *user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (UserRole) TableName() string {
	return "user_roles"
}

// String renders "<username> - <role label>".
func (r UserRole) String() string {
	name := r.UserID.String()
	if r.User != nil {
		name = r.User.Username
	}
	return fmt.Sprintf("%s - %s", name, r.Role.Label())
}

// NewUnassigned builds the role record created during profile setup.
func NewUnassigned(userID uuid.UUID) *UserRole {
	return &UserRole{ID: uuid.New(), UserID: userID, Role: domain.RoleUnassigned}
}
