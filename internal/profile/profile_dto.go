package profile

// ProfileFields are the editable columns. Every field is optional.
type ProfileFields struct {
	FirstName      string `json:"first_name" binding:"max=50"`
	LastName       string `json:"last_name" binding:"max=50"`
	PhoneNumber    string `json:"phone_number" binding:"max=20"`
	Address        string `json:"address" binding:"max=100"`
	Email          string `json:"email" binding:"omitempty,email,max=254"`
	ProfilePicture string `json:"profile_picture" binding:"max=255"`
}

type CreateProfileRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	ProfileFields
}

type UpdateProfileRequest struct {
	ProfileFields
}

type ProfileResponse struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	Username       string `json:"username,omitempty"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	PhoneNumber    string `json:"phone_number"`
	Address        string `json:"address"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profile_picture"`
	Display        string `json:"display"`
}
