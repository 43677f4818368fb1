package profile

import (
	"time"

	"go-teamdesk/internal/user"

	"github.com/google/uuid"
)

type UserProfile struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_user_profiles_user_id"`
	FirstName      string    `gorm:"column:first_name;type:varchar(50);not null;default:''"`
	LastName       string    `gorm:"column:last_name;type:varchar(50);not null;default:''"`
	PhoneNumber    string    `gorm:"column:phone_number;type:varchar(20);not null;default:''"`
	Address        string    `gorm:"column:address;type:varchar(100);not null;default:''"`
	Email          string    `gorm:"column:email;type:varchar(254);not null;default:''"`
	ProfilePicture string    `gorm:"column:profile_picture;type:varchar(255);not null;default:''"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`

	User *user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// String renders "<username> - <email>".
func (p UserProfile) String() string {
	name := p.UserID.String()
	if p.User != nil {
		name = p.User.Username
	}
	return name + " - " + p.Email
}
