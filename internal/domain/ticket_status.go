package domain

import "fmt"

type TicketStatus int16

const (
	TicketStatusRaised     TicketStatus = 0
	TicketStatusProcessing TicketStatus = 1
	TicketStatusRejected   TicketStatus = 2
	TicketStatusClosed     TicketStatus = 3
	TicketStatusDeleted    TicketStatus = 4
)

// Labels are persisted display strings; "Deleted" is capitalised.
var ticketStatusLabels = map[TicketStatus]string{
	TicketStatusRaised:     "raised",
	TicketStatusProcessing: "processing",
	TicketStatusRejected:   "rejected",
	TicketStatusClosed:     "closed",
	TicketStatusDeleted:    "Deleted",
}

func ParseTicketStatus(v int) (TicketStatus, error) {
	s := TicketStatus(v)
	if _, ok := ticketStatusLabels[s]; !ok || v != int(s) {
		return 0, fmt.Errorf("invalid ticket status value %d", v)
	}
	return s, nil
}

func (s TicketStatus) Valid() bool {
	_, ok := ticketStatusLabels[s]
	return ok
}

func (s TicketStatus) Label() string {
	return ticketStatusLabels[s]
}

func (s TicketStatus) String() string {
	return s.Label()
}

// CanTransitionTo follows raised -> processing -> closed|rejected; Deleted
// is reachable from every state except itself.
func (s TicketStatus) CanTransitionTo(next TicketStatus) bool {
	if next == TicketStatusDeleted {
		return s != TicketStatusDeleted
	}
	switch s {
	case TicketStatusRaised:
		return next == TicketStatusProcessing
	case TicketStatusProcessing:
		return next == TicketStatusClosed || next == TicketStatusRejected
	default:
		return false
	}
}

func (TicketStatus) GormDataType() string {
	return "smallint"
}

func TicketStatusChoices() []Choice {
	out := make([]Choice, 0, len(ticketStatusLabels))
	for _, s := range []TicketStatus{
		TicketStatusRaised,
		TicketStatusProcessing,
		TicketStatusRejected,
		TicketStatusClosed,
		TicketStatusDeleted,
	} {
		out = append(out, Choice{Value: int(s), Label: s.Label()})
	}
	return out
}
