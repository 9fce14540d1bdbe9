package domain

// SummaryTicketRow is the lightweight per-ticket row bucketed by status.
type SummaryTicketRow struct {
	ID           string `json:"id"`
	TicketNumber string `json:"ticketNumber"`
	Date         string `json:"date"`
	Region       string `json:"region"`
	Comuna       string `json:"comuna"`
	Technician   string `json:"technician"`
}

// ClosedVsPending carries the closed/pending split. The rounding happens
// once, on the closed side; both always add up to 100 for a non-empty
// population.
type ClosedVsPending struct {
	ClosedPercentage  int `json:"closedPercentage"`
	PendingPercentage int `json:"pendingPercentage"`
}

// FacetRef echoes one resolved filter value.
type FacetRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RegionFacet echoes a requested region by literal name.
type RegionFacet struct {
	Name string `json:"name"`
}

// SummaryFilters echoes the facets the caller applied.
type SummaryFilters struct {
	Clients    []FacetRef    `json:"clients"`
	Regions    []RegionFacet `json:"regions"`
	Technicals []FacetRef    `json:"technicals"`
}

// Summary is the fleet-wide statistics view derived from composed flows.
// Never persisted.
type Summary struct {
	TotalTickets    int                           `json:"totalTickets"`
	TicketsByStatus map[string][]SummaryTicketRow `json:"ticketsByStatus"`
	TicketStatuses  map[string]int                `json:"ticketStatuses"`
	ClosedVsPending ClosedVsPending               `json:"closedVsPending"`
	Filters         SummaryFilters                `json:"filters"`
}
