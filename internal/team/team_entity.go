package team

import (
	"time"

	"go-teamdesk/internal/user"

	"github.com/google/uuid"
)

type Team struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	TeamName  string    `gorm:"column:team_name;type:varchar(50);not null;default:''"`
	LeaderID  uuid.UUID `gorm:"column:leader_id;type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Leader  *user.User  `gorm:"foreignKey:LeaderID;constraint:OnDelete:CASCADE"`
	Members []user.User `gorm:"many2many:team_members;joinForeignKey:TeamID;joinReferences:UserID"`
}

func (Team) TableName() string {
	return "teams"
}

func (t Team) String() string {
	return t.TeamName
}

// MemberIDs returns the ids of the loaded members.
func (t Team) MemberIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(t.Members))
	for i, m := range t.Members {
		ids[i] = m.ID
	}
	return ids
}
