package calendar

import (
	"time"

	"github.com/google/uuid"
)

// CalendarEvent is a team calendar entry. Start and end are stored as given;
// no ordering between them is enforced.
type CalendarEvent struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Title     string    `gorm:"column:title;type:varchar(100);not null"`
	StartAt   time.Time `gorm:"column:start_at;type:timestamptz;not null"`
	EndAt     time.Time `gorm:"column:end_at;type:timestamptz;not null"`
	TeamID    uuid.UUID `gorm:"column:team_id;type:uuid;not null;index:idx_calendar_events_team_start"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (CalendarEvent) TableName() string {
	return "calendar_events"
}

func (e CalendarEvent) String() string {
	return e.Title
}
