package tickettype

type CreateTicketTypeRequest struct {
	Name        string `json:"name" binding:"required,max=30"`
	Description string `json:"description"`
	// Active defaults to true when omitted.
	Active *bool `json:"active"`
}

type UpdateTicketTypeRequest struct {
	Name        string `json:"name" binding:"required,max=30"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

type TicketTypeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}
