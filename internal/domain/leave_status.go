package domain

import "fmt"

type LeaveStatus int16

const (
	LeaveStatusPending  LeaveStatus = 1
	LeaveStatusApproved LeaveStatus = 2
	LeaveStatusRejected LeaveStatus = 3
)

var leaveStatusLabels = map[LeaveStatus]string{
	LeaveStatusPending:  "Pending",
	LeaveStatusApproved: "Approved",
	LeaveStatusRejected: "Rejected",
}

func ParseLeaveStatus(v int) (LeaveStatus, error) {
	s := LeaveStatus(v)
	if _, ok := leaveStatusLabels[s]; !ok || v != int(s) {
		return 0, fmt.Errorf("invalid leave status value %d", v)
	}
	return s, nil
}

func (s LeaveStatus) Valid() bool {
	_, ok := leaveStatusLabels[s]
	return ok
}

func (s LeaveStatus) Label() string {
	return leaveStatusLabels[s]
}

func (s LeaveStatus) String() string {
	return s.Label()
}

// Terminal reports whether no further transition is possible.
func (s LeaveStatus) Terminal() bool {
	return s == LeaveStatusApproved || s == LeaveStatusRejected
}

// CanTransitionTo allows Pending -> Approved|Rejected and the no-op
// Pending -> Pending used by detail edits.
func (s LeaveStatus) CanTransitionTo(next LeaveStatus) bool {
	if s != LeaveStatusPending {
		return false
	}
	switch next {
	case LeaveStatusPending, LeaveStatusApproved, LeaveStatusRejected:
		return true
	default:
		return false
	}
}

func (LeaveStatus) GormDataType() string {
	return "smallint"
}

func LeaveStatusChoices() []Choice {
	return []Choice{
		{Value: int(LeaveStatusPending), Label: LeaveStatusPending.Label()},
		{Value: int(LeaveStatusApproved), Label: LeaveStatusApproved.Label()},
		{Value: int(LeaveStatusRejected), Label: LeaveStatusRejected.Label()},
	}
}
