package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated      EventType = "ticket_created"
	EventTicketStateChanged EventType = "ticket_state_changed"
	EventCommentAdded       EventType = "comment_added"
	EventEvidenceAdded      EventType = "evidence_added"
	EventAppointmentBooked  EventType = "appointment_booked"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketNumber string `json:"ticket_number"`
	CommerceID   string `json:"commerce_id"`
	BranchID     string `json:"branch_id"`
	Priority     string `json:"priority"`
}

// TicketStateChangedPayload payload.
type TicketStateChangedPayload struct {
	HistoryID string `json:"history_id"`
	StateID   string `json:"state_id"`
	StateName string `json:"state_name"`
}

// CommentAddedPayload payload.
type CommentAddedPayload struct {
	CommentID  string `json:"comment_id"`
	EmployeeID string `json:"employee_id"`
}

// EvidenceAddedPayload payload.
type EvidenceAddedPayload struct {
	EvidenceID string `json:"evidence_id"`
	Problem    string `json:"problem"`
}

// AppointmentBookedPayload payload.
type AppointmentBookedPayload struct {
	AppointmentID string `json:"appointment_id"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
}
