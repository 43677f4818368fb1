package notification

import (
	"time"

	"go-teamdesk/internal/user"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Title     string    `gorm:"column:title;type:varchar(50);not null;default:''"`
	Message   string    `gorm:"column:message;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`

	User *user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (Notification) TableName() string {
	return "notifications"
}

// String renders "<username> - <message>".
func (n Notification) String() string {
	name := n.UserID.String()
	if n.User != nil {
		name = n.User.Username
	}
	return name + " - " + n.Message
}
