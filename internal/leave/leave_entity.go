package leave

import (
	"time"

	"go-teamdesk/internal/domain"
	"go-teamdesk/internal/user"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// LeaveApplication is a request for time off. UserID and TeamID are nullable
// so an application survives as a record even when it was filed without a
// team.
type LeaveApplication struct {
	ID          uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	UserID      *uuid.UUID         `gorm:"column:user_id;type:uuid;index:idx_leave_applications_user"`
	TeamID      *uuid.UUID         `gorm:"column:team_id;type:uuid;index:idx_leave_applications_team"`
	Reason      string             `gorm:"column:reason;type:text;not null"`
	StartDate   time.Time          `gorm:"column:start_date;type:date;not null"`
	EndDate     time.Time          `gorm:"column:end_date;type:date;not null"`
	Status      domain.LeaveStatus `gorm:"column:status;not null;default:1"`
	AppliedDate time.Time          `gorm:"column:applied_date;autoCreateTime"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime"`

	User *user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (LeaveApplication) TableName() string {
	return "leave_applications"
}

// String renders "<username> - <start> to <end>".
func (l LeaveApplication) String() string {
	name := "unknown"
	if l.User != nil {
		name = l.User.Username
	} else if l.UserID != nil {
		name = l.UserID.String()
	}
	return name + " - " + l.StartDate.Format(dateLayout) + " to " + l.EndDate.Format(dateLayout)
}

// Days counts calendar days, both ends included.
func (l LeaveApplication) Days() int {
	return int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
}
