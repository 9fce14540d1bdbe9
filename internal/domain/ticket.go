package domain

// EmployeeRef is a ticket-side reference to an employee together with
// its enabled flag. Coordinators and technicals share this shape.
type EmployeeRef struct {
	ID      string `json:"id"`
	Enabled bool   `json:"enabled"`
}

// Ticket is the root record of a field-service incident. currentState
// is mutated exclusively as a side effect of a new status-history entry.
type Ticket struct {
	ID            string        `json:"id"`
	TicketNumber  string        `json:"ticket_number"`
	Description   string        `json:"description"`
	PlannedDate   string        `json:"plannedDate"`
	SLA           string        `json:"sla,omitempty"`
	AttentionType string        `json:"attentionType"`
	CategoryID    string        `json:"categoryId"`
	SubcategoryID string        `json:"subcategoryId"`
	Priority      string        `json:"priority"`
	CommerceID    string        `json:"commerceId"`
	BranchID      string        `json:"branchId"`
	ContactIDs    []string      `json:"contactsId,omitempty"`
	Coordinators  []EmployeeRef `json:"coordinators,omitempty"`
	Technicals    []EmployeeRef `json:"technicals,omitempty"`
	CurrentState  string        `json:"currentState,omitempty"`
	CreatedAt     string        `json:"createdAt,omitempty"`
	UpdatedAt     string        `json:"updatedAt,omitempty"`
}
