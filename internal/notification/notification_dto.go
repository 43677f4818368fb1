package notification

type CreateNotificationRequest struct {
	UserID  string `json:"user_id" binding:"required,uuid"`
	Title   string `json:"title" binding:"max=50"`
	Message string `json:"message" binding:"required"`
}

type UpdateNotificationRequest struct {
	Title   string `json:"title" binding:"max=50"`
	Message string `json:"message" binding:"required"`
}

type NotificationResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}
