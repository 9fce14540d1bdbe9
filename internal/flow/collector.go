package flow

import "github.com/saecheverry/stefanini-go-tickets/internal/domain"

// KeySet holds the distinct identifiers needed to hydrate every related
// entity type for a ticket batch. Order of first appearance is kept.
type KeySet struct {
	TicketIDs      []string
	CategoryIDs    []string
	SubcategoryIDs []string
	CommerceIDs    []string
	BranchIDs      []string
	ContactIDs     []string
	CoordinatorIDs []string
	TechnicalIDs   []string
}

// CollectKeys scans a ticket batch and extracts the eight deduplicated
// id sets. Tickets with absent coordinator or technical lists simply
// contribute nothing. Pure function, no I/O.
func CollectKeys(tickets []domain.Ticket) KeySet {
	var keys KeySet
	seen := map[string]map[string]bool{}

	add := func(set *[]string, kind, id string) {
		if id == "" {
			return
		}
		if seen[kind] == nil {
			seen[kind] = map[string]bool{}
		}
		if seen[kind][id] {
			return
		}
		seen[kind][id] = true
		*set = append(*set, id)
	}

	for _, ticket := range tickets {
		add(&keys.TicketIDs, "ticket", ticket.ID)
		add(&keys.CategoryIDs, "category", ticket.CategoryID)
		add(&keys.SubcategoryIDs, "subcategory", ticket.SubcategoryID)
		add(&keys.CommerceIDs, "commerce", ticket.CommerceID)
		add(&keys.BranchIDs, "branch", ticket.BranchID)
		for _, contactID := range ticket.ContactIDs {
			add(&keys.ContactIDs, "contact", contactID)
		}
		for _, coordinator := range ticket.Coordinators {
			add(&keys.CoordinatorIDs, "coordinator", coordinator.ID)
		}
		for _, technical := range ticket.Technicals {
			add(&keys.TechnicalIDs, "technical", technical.ID)
		}
	}
	return keys
}
