package ticket

import (
	"time"

	"go-teamdesk/internal/domain"
	"go-teamdesk/internal/tickettype"
	"go-teamdesk/internal/user"

	"github.com/google/uuid"
)

// TeamTicket is a support ticket raised inside a team. TicketNumber is free
// form and not checked for uniqueness.
type TeamTicket struct {
	ID           uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	TicketNumber string              `gorm:"column:ticket_number;type:varchar(10);not null;default:''"`
	TicketTypeID uuid.UUID           `gorm:"column:ticket_type_id;type:uuid;not null;index"`
	RaisedDate   time.Time           `gorm:"column:raised_date;autoCreateTime"`
	RaisedByID   uuid.UUID           `gorm:"column:raised_by;type:uuid;not null;index"`
	IssueDetail  string              `gorm:"column:issue_detail;type:text;not null"`
	IssueDate    *time.Time          `gorm:"column:issue_date;type:timestamptz"`
	ResponseDate *time.Time          `gorm:"column:response_date;type:timestamptz"`
	ResponseByID *uuid.UUID          `gorm:"column:response_by;type:uuid"`
	Comments     string              `gorm:"column:comments;type:text;not null;default:''"`
	Status       domain.TicketStatus `gorm:"column:ticket_status;not null;default:0"`
	ClosedDate   *time.Time          `gorm:"column:closed_date;type:timestamptz"`
	TeamID       uuid.UUID           `gorm:"column:team_id;type:uuid;not null;index:idx_team_tickets_team_status"`
	ClosedByID   *uuid.UUID          `gorm:"column:closed_by;type:uuid"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime"`

	TicketType *tickettype.TicketType `gorm:"foreignKey:TicketTypeID;constraint:OnDelete:CASCADE"`
	RaisedBy   *user.User             `gorm:"foreignKey:RaisedByID;constraint:OnDelete:CASCADE"`
}

func (TeamTicket) TableName() string {
	return "team_tickets"
}

// String renders "<number> - <type>", falling back to the id.
func (t TeamTicket) String() string {
	label := t.TicketNumber
	if label == "" {
		label = t.ID.String()
	}
	if t.TicketType != nil {
		return label + " - " + t.TicketType.Name
	}
	return label
}

// Open reports whether the ticket still awaits an outcome.
func (t TeamTicket) Open() bool {
	return t.Status == domain.TicketStatusRaised || t.Status == domain.TicketStatusProcessing
}
