package domain

// TicketFlow is the denormalized per-ticket view assembled by the flow
// composer. It lives for one aggregation call and is never persisted.
type TicketFlow struct {
	Ticket       FlowTicket      `json:"ticket"`
	Commerce     FlowCommerce    `json:"commerce"`
	Branch       FlowBranch      `json:"branch"`
	Coordinators []FlowEmployee  `json:"coordinators"`
	Technicals   []FlowTechnical `json:"technicals"`
	History      []StatusHistory `json:"history"`
	Comments     []FlowComment   `json:"comments"`
	Evidences    []FlowEvidence  `json:"evidences"`
	Appointments []Appointment   `json:"appointments"`
}

// FlowTicket is the ticket summary inside a flow; attention type and
// priority are resolved against their reference tables.
type FlowTicket struct {
	ID            string          `json:"id"`
	TicketNumber  string          `json:"ticket_number"`
	Description   string          `json:"description"`
	PlannedDate   string          `json:"plannedDate"`
	SLA           string          `json:"sla,omitempty"`
	AttentionType *ReferenceValue `json:"attentionType"`
	Category      *Category       `json:"category"`
	Subcategory   *Category       `json:"subcategory"`
	Priority      *ReferenceValue `json:"priority"`
	CurrentState  string          `json:"currentState,omitempty"`
	CreatedAt     string          `json:"createdAt,omitempty"`
	UpdatedAt     string          `json:"updatedAt,omitempty"`
}

// FlowCommerce is the commerce summary with a composed logo URL.
type FlowCommerce struct {
	ID          string   `json:"id"`
	RUT         string   `json:"rut,omitempty"`
	Name        string   `json:"name,omitempty"`
	Observation string   `json:"observation,omitempty"`
	Services    []string `json:"services,omitempty"`
	Logo        string   `json:"logo"`
}

// FlowLocation is the fixed branch location sub-structure; it is always
// fully shaped regardless of how sparsely the source branch populated it.
type FlowLocation struct {
	Address string `json:"address"`
	City    string `json:"city"`
	Region  string `json:"region"`
	Commune string `json:"commune"`
	Coords  Coords `json:"coords"`
}

// FlowContact is a contact row nested under the branch.
type FlowContact struct {
	ID       string `json:"id"`
	Names    string `json:"names"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Position string `json:"position,omitempty"`
}

// FlowBranch is the branch summary with reshaped location and contacts.
type FlowBranch struct {
	ID          string        `json:"id"`
	RUT         string        `json:"rut,omitempty"`
	Name        string        `json:"name,omitempty"`
	Observation string        `json:"observation,omitempty"`
	Location    FlowLocation  `json:"location"`
	Contacts    []FlowContact `json:"contacts"`
}

// FlowEmployee is a coordinator row inside a flow.
type FlowEmployee struct {
	ID       string `json:"id"`
	Role     string `json:"role,omitempty"`
	RUT      string `json:"rut,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
}

// FlowTechnical crosses the ticket's own technical reference (enabled)
// with the hydrated employee identity.
type FlowTechnical struct {
	ID             string `json:"id"`
	Role           string `json:"role,omitempty"`
	FullName       string `json:"fullName"`
	RUT            string `json:"rut"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
	Enabled        bool   `json:"enabled"`
	AssignmentDate string `json:"assignmentDate,omitempty"`
}

// FlowComment is a comment enriched with the author's display name.
type FlowComment struct {
	Comment
	EmployeeName string `json:"employeeName"`
}

// FlowEvidence nests the devices belonging to one evidence. Devices is
// an empty slice when nothing matches, never absent.
type FlowEvidence struct {
	Evidence
	Devices []Device `json:"devices"`
}
