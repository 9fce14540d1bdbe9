package flow

import (
	"fmt"
	"strings"

	"github.com/saecheverry/stefanini-go-tickets/internal/domain"
)

// employeeNameFallback is emitted when a comment's author is not among
// the ticket's coordinators or technicals.
const employeeNameFallback = "Nombre no encontrado"

// compose assembles the denormalized flow for one ticket from its own
// elements and the two reference tables. Missing related data always
// degrades to empty or nil values; composition itself never fails.
func (p *Pipeline) compose(own ownElements, attentionType, priority *domain.ReferenceTable) domain.TicketFlow {
	ticket := own.Ticket

	return domain.TicketFlow{
		Ticket: domain.FlowTicket{
			ID:            ticket.ID,
			TicketNumber:  ticket.TicketNumber,
			Description:   ticket.Description,
			PlannedDate:   ticket.PlannedDate,
			SLA:           ticket.SLA,
			AttentionType: resolveReference(attentionType, ticket.AttentionType),
			Category:      stripInternalID(own.Category),
			Subcategory:   stripInternalID(own.Subcategory),
			Priority:      resolveReference(priority, ticket.Priority),
			CurrentState:  ticket.CurrentState,
			CreatedAt:     ticket.CreatedAt,
			UpdatedAt:     ticket.UpdatedAt,
		},
		Commerce:     p.composeCommerce(own.Commerce),
		Branch:       composeBranch(own.Branch, own.Contacts),
		Coordinators: composeCoordinators(own.Coordinators),
		Technicals:   composeTechnicals(ticket.Technicals, own.Technicals),
		History:      nonNil(own.History),
		Comments:     composeComments(own.Comments, own.Coordinators, own.Technicals),
		Evidences:    composeEvidences(own.Evidences, own.Devices),
		Appointments: nonNil(own.Appointments),
	}
}

// resolveReference matches a raw code against the enumeration's value
// field. Unmatched codes compose to nil, not an error.
func resolveReference(table *domain.ReferenceTable, code string) *domain.ReferenceValue {
	if table == nil || code == "" {
		return nil
	}
	for i := range table.Values {
		if table.Values[i].Value == code {
			return &table.Values[i]
		}
	}
	return nil
}

func stripInternalID(category *domain.Category) *domain.Category {
	if category == nil {
		return nil
	}
	clean := *category
	clean.InternalID = ""
	return &clean
}

func (p *Pipeline) composeCommerce(commerce *domain.Commerce) domain.FlowCommerce {
	if commerce == nil {
		return domain.FlowCommerce{}
	}
	return domain.FlowCommerce{
		ID:          commerce.ID,
		RUT:         commerce.RUT,
		Name:        commerce.Name,
		Observation: commerce.Observation,
		Services:    commerce.Services,
		Logo:        fmt.Sprintf("%s/v1/commerces/%s/logos/%s", p.apiDomain, commerce.ID, commerce.LogoFileName),
	}
}

// composeBranch reshapes the branch into the fixed location structure,
// however sparsely the source was populated.
func composeBranch(branch *domain.Branch, contacts []domain.Contact) domain.FlowBranch {
	out := domain.FlowBranch{Contacts: make([]domain.FlowContact, 0, len(contacts))}
	if branch != nil {
		out.ID = branch.ID
		out.RUT = branch.RUT
		out.Name = branch.Name
		out.Observation = branch.Observation
		out.Location = domain.FlowLocation{
			Address: branch.Address,
			City:    branch.City,
			Region:  branch.Region,
			Commune: branch.Commune,
		}
		if branch.Coords != nil {
			out.Location.Coords = *branch.Coords
		}
	}
	for _, contact := range contacts {
		out.Contacts = append(out.Contacts, domain.FlowContact{
			ID:       contact.ID,
			Names:    joinNames(contact.FirstName, contact.LastName),
			Phone:    contact.Phone,
			Email:    contact.Mail,
			Position: contact.Position,
		})
	}
	return out
}

func composeCoordinators(coordinators []domain.Employee) []domain.FlowEmployee {
	out := make([]domain.FlowEmployee, 0, len(coordinators))
	for _, coordinator := range coordinators {
		out = append(out, domain.FlowEmployee{
			ID:       coordinator.ID,
			Role:     coordinator.Role,
			RUT:      coordinator.RUT,
			FullName: coordinator.FullName,
			Phone:    coordinator.Phone,
			Email:    coordinator.Email,
		})
	}
	return out
}

// composeTechnicals walks the ticket's own technical references, which
// carry the enabled flag, and enriches each with the hydrated employee
// identity. A reference whose employee is gone still yields a row.
func composeTechnicals(refs []domain.EmployeeRef, employees []domain.Employee) []domain.FlowTechnical {
	out := make([]domain.FlowTechnical, 0, len(refs))
	for _, ref := range refs {
		row := domain.FlowTechnical{ID: ref.ID, Enabled: ref.Enabled}
		for i := range employees {
			if employees[i].ID != ref.ID {
				continue
			}
			info := employees[i]
			row.Role = info.Role
			row.FullName = joinNames(info.FirstName, info.SecondName, info.FirstSurname, info.SecondSurname)
			row.RUT = info.DNINumber
			row.Phone = info.Phone
			row.Email = info.Email
			row.AssignmentDate = info.AssignmentDate
			break
		}
		out = append(out, row)
	}
	return out
}

func composeComments(comments []domain.Comment, coordinators, technicals []domain.Employee) []domain.FlowComment {
	all := make([]domain.Employee, 0, len(coordinators)+len(technicals))
	all = append(all, coordinators...)
	all = append(all, technicals...)

	out := make([]domain.FlowComment, 0, len(comments))
	for _, comment := range comments {
		name := employeeNameFallback
		for _, employee := range all {
			if employee.ID == comment.EmployeeID {
				name = joinNames(employee.FirstName, employee.SecondName, employee.FirstSurname, employee.SecondSurname)
				break
			}
		}
		out = append(out, domain.FlowComment{Comment: comment, EmployeeName: name})
	}
	return out
}

func composeEvidences(evidences []domain.Evidence, devices []domain.Device) []domain.FlowEvidence {
	out := make([]domain.FlowEvidence, 0, len(evidences))
	for _, evidence := range evidences {
		nested := make([]domain.Device, 0)
		for _, device := range devices {
			if device.EvidenceID == evidence.ID {
				nested = append(nested, device)
			}
		}
		out = append(out, domain.FlowEvidence{Evidence: evidence, Devices: nested})
	}
	return out
}

// joinNames concatenates name parts with single spaces, trimming the
// redundant whitespace empty parts would leave behind.
func joinNames(parts ...string) string {
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
