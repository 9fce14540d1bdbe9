package flow

import "github.com/saecheverry/stefanini-go-tickets/internal/domain"

// ownElements is the subset of hydrated records belonging to one ticket.
// Single-relation fields are nil when the foreign key resolved nothing;
// that is data inconsistency, not an error, and degrades downstream.
type ownElements struct {
	Ticket       domain.Ticket
	Commerce     *domain.Commerce
	Branch       *domain.Branch
	Category     *domain.Category
	Subcategory  *domain.Category
	Contacts     []domain.Contact
	Coordinators []domain.Employee
	Technicals   []domain.Employee
	History      []domain.StatusHistory
	Comments     []domain.Comment
	Evidences    []domain.Evidence
	Devices      []domain.Device
	Appointments []domain.Appointment
}

// joinOwnElements slices one ticket's records out of the hydrated
// lists. Pure in-memory filtering; this is the dominant CPU cost of the
// pipeline for large batches.
func joinOwnElements(ticket domain.Ticket, h *hydration) ownElements {
	own := ownElements{Ticket: ticket}

	own.Commerce = findCommerce(h.Commerces, ticket.CommerceID)
	own.Branch = findBranch(h.Branches, ticket.BranchID)
	own.Category = findCategory(h.Categories, ticket.CategoryID)
	own.Subcategory = findCategory(h.Subcategories, ticket.SubcategoryID)

	// Contacts are commerce-scoped, not ticket-scoped.
	for _, contact := range h.Contacts {
		if contact.CommerceID == ticket.CommerceID {
			own.Contacts = append(own.Contacts, contact)
		}
	}

	own.Coordinators = employeesByRef(h.Coordinators, ticket.Coordinators)
	own.Technicals = employeesByRef(h.Technicals, ticket.Technicals)

	for _, entry := range h.History {
		if entry.TicketID == ticket.ID {
			own.History = append(own.History, entry)
		}
	}
	for _, comment := range h.Comments {
		if comment.TicketID == ticket.ID {
			own.Comments = append(own.Comments, comment)
		}
	}
	for _, evidence := range h.Evidences {
		if evidence.TicketID == ticket.ID {
			own.Evidences = append(own.Evidences, evidence)
		}
	}
	for _, appointment := range h.Appointments {
		if appointment.TicketID == ticket.ID {
			own.Appointments = append(own.Appointments, appointment)
		}
	}

	// Devices join through the ticket's own evidences, not the ticket id.
	evidenceIDs := make(map[string]bool, len(own.Evidences))
	for _, evidence := range own.Evidences {
		evidenceIDs[evidence.ID] = true
	}
	for _, device := range h.Devices {
		if evidenceIDs[device.EvidenceID] {
			own.Devices = append(own.Devices, device)
		}
	}

	return own
}

func findCommerce(list []domain.Commerce, id string) *domain.Commerce {
	if id == "" {
		return nil
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	return nil
}

func findBranch(list []domain.Branch, id string) *domain.Branch {
	if id == "" {
		return nil
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	return nil
}

func findCategory(list []domain.Category, id string) *domain.Category {
	if id == "" {
		return nil
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	return nil
}

// employeesByRef keeps the hydrated employees referenced by the
// ticket's own list. An absent reference list yields an empty set.
func employeesByRef(employees []domain.Employee, refs []domain.EmployeeRef) []domain.Employee {
	if len(refs) == 0 {
		return nil
	}
	wanted := make(map[string]bool, len(refs))
	for _, ref := range refs {
		wanted[ref.ID] = true
	}
	var out []domain.Employee
	for _, employee := range employees {
		if wanted[employee.ID] {
			out = append(out, employee)
		}
	}
	return out
}
