package domain

// ApprovalRole identifies who signed off on an evidence record.
type ApprovalRole string

const (
	ApprovalRoleCommerce   ApprovalRole = "COMMERCE"
	ApprovalRoleSupervisor ApprovalRole = "SUPERVISOR"
)

// Approval is a role + signature pair attached to an evidence.
type Approval struct {
	Role      ApprovalRole `json:"role"`
	Signature string       `json:"signature"`
}

// Evidence documents a problem found while servicing a ticket. Devices
// reference it back by evidence id.
type Evidence struct {
	ID        string     `json:"id,omitempty"`
	TicketID  string     `json:"ticketId"`
	HistoryID string     `json:"historyId"`
	State     string     `json:"state"`
	Problem   string     `json:"problem"`
	Pictures  []string   `json:"pictures,omitempty"`
	Approvals []Approval `json:"approvals,omitempty"`
	CreatedAt string     `json:"createdAt,omitempty"`
	UpdatedAt string     `json:"updatedAt,omitempty"`
}

// Device is hardware recorded under an evidence. TicketID is a stored
// denormalization that lets the hydrator fetch a batch's devices in one
// query; the join itself keys through evidence ids only.
type Device struct {
	ID          string `json:"id,omitempty"`
	EvidenceID  string `json:"evidenceId"`
	TicketID    string `json:"ticketId,omitempty"`
	Type        string `json:"type"`
	Brand       string `json:"brand"`
	Serial      string `json:"serial"`
	IP          string `json:"ip"`
	State       string `json:"state"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}
