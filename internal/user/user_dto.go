package user

type CreateUserRequest struct {
	// ID is the identity provider's subject; generated when empty.
	ID       string `json:"id" binding:"omitempty,uuid"`
	Username string `json:"username" binding:"required,max=150"`
}

type UpdateUserRequest struct {
	Username string `json:"username" binding:"required,max=150"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}
