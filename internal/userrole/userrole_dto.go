package userrole

type CreateUserRoleRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	// Role is omitted to create an unassigned record.
	Role *int `json:"role"`
}

type UpdateUserRoleRequest struct {
	// Role is nil to clear the assignment.
	Role *int `json:"role"`
}

type UserRoleResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Username  string `json:"username,omitempty"`
	Role      *int   `json:"role"`
	RoleLabel string `json:"role_label"`
	Display   string `json:"display"`
}
