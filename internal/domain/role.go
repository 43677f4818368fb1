package domain

import (
	"database/sql/driver"
	"fmt"
)

// Role classifies a user as team leader or team member. RoleUnassigned is
// the state of a role record created without a role; it is stored as NULL.
type Role int16

const (
	RoleTeamLeader Role = 0
	RoleTeamMember Role = 1
	RoleUnassigned Role = -1
)

var roleLabels = map[Role]string{
	RoleTeamLeader: "Team Leader",
	RoleTeamMember: "Team Member",
}

// ParseRole accepts only the declared choice values.
func ParseRole(v int) (Role, error) {
	r := Role(v)
	if _, ok := roleLabels[r]; !ok || v != int(r) {
		return RoleUnassigned, fmt.Errorf("invalid role value %d", v)
	}
	return r, nil
}

func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

func (r Role) Label() string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return "Unassigned"
}

// Subject is the casbin subject a role maps to.
func (r Role) Subject() string {
	switch r {
	case RoleTeamLeader:
		return "team_leader"
	case RoleTeamMember:
		return "team_member"
	default:
		return "unassigned"
	}
}

// IntPtr returns the persisted value, nil when unassigned.
func (r Role) IntPtr() *int {
	if !r.Valid() {
		return nil
	}
	v := int(r)
	return &v
}

func (r Role) String() string {
	return r.Label()
}

func (Role) GormDataType() string {
	return "smallint"
}

func (r Role) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, nil
	}
	return int64(r), nil
}

func (r *Role) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*r = RoleUnassigned
		return nil
	case int64:
		*r = Role(v)
	case int32:
		*r = Role(v)
	case int16:
		*r = Role(v)
	case []byte:
		var n int64
		if _, err := fmt.Sscan(string(v), &n); err != nil {
			return fmt.Errorf("scan role: %w", err)
		}
		*r = Role(n)
	default:
		return fmt.Errorf("scan role: unsupported type %T", src)
	}
	if !r.Valid() {
		*r = RoleUnassigned
	}
	return nil
}

func RoleChoices() []Choice {
	return []Choice{
		{Value: int(RoleTeamLeader), Label: RoleTeamLeader.Label()},
		{Value: int(RoleTeamMember), Label: RoleTeamMember.Label()},
	}
}
