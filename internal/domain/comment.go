package domain

// Comment is an append-only note on a ticket, tied to the history entry
// and ticket status it was written under.
type Comment struct {
	ID         string `json:"id,omitempty"`
	HistoryID  string `json:"historyId"`
	TicketID   string `json:"ticketId"`
	EmployeeID string `json:"employeeId"`
	StatusID   string `json:"statusId"`
	Comment    string `json:"comment"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}
