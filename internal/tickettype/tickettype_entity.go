package tickettype

import (
	"time"

	"github.com/google/uuid"
)

type TicketType struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name        string    `gorm:"column:name;type:varchar(30);not null"`
	Description string    `gorm:"column:description;type:text;not null;default:''"`
	Active      bool      `gorm:"column:active;not null;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (TicketType) TableName() string {
	return "ticket_types"
}

func (t TicketType) String() string {
	return t.Name
}
