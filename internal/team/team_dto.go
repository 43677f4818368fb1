package team

type CreateTeamRequest struct {
	TeamName  string   `json:"team_name" binding:"max=50"`
	LeaderID  string   `json:"leader_id" binding:"required,uuid"`
	MemberIDs []string `json:"member_ids" binding:"omitempty,dive,uuid"`
}

type UpdateTeamRequest struct {
	TeamName string `json:"team_name" binding:"max=50"`
	LeaderID string `json:"leader_id" binding:"required,uuid"`
	// MemberIDs replaces the member set when not nil.
	MemberIDs []string `json:"member_ids" binding:"omitempty,dive,uuid"`
}

type MembersRequest struct {
	UserIDs []string `json:"user_ids" binding:"required,min=1,dive,uuid"`
}

type MemberResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type TeamResponse struct {
	ID         string           `json:"id"`
	TeamName   string           `json:"team_name"`
	LeaderID   string           `json:"leader_id"`
	LeaderName string           `json:"leader_name,omitempty"`
	Members    []MemberResponse `json:"members"`
}
