package domain

// EnforceRequest asks whether the caller may perform action on resource.
type EnforceRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	IsStaff  bool   `json:"is_staff"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool   `json:"allowed"`
	Subject string `json:"subject"`
}
