package domain

// AppointmentContact is the contact snapshot taken when the visit was
// scheduled; it does not track later contact edits.
type AppointmentContact struct {
	ID    string `json:"id"`
	Names string `json:"names"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Appointment is a scheduled technician visit for a ticket.
type Appointment struct {
	ID          string             `json:"id,omitempty"`
	TicketID    string             `json:"ticketId"`
	TechnicalID string             `json:"technicalId,omitempty"`
	StartDate   string             `json:"startDate"`
	EndDate     string             `json:"endDate"`
	Contact     AppointmentContact `json:"contact"`
	Description string             `json:"description,omitempty"`
	Comment     string             `json:"comment,omitempty"`
	CreatedAt   string             `json:"createdAt,omitempty"`
	UpdatedAt   string             `json:"updatedAt,omitempty"`
}
