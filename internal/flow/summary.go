package flow

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/saecheverry/stefanini-go-tickets/internal/docstore"
	"github.com/saecheverry/stefanini-go-tickets/internal/domain"
	apperrors "github.com/saecheverry/stefanini-go-tickets/pkg/util"
)

// summaryPageLimit is the effectively unbounded page used to pull the
// whole matching ticket population. The hydration cap does not apply to
// the root ticket query.
const summaryPageLimit = 1_000_000

// Closed states by literal name. Buckets missing from the population
// count as zero.
var closedStates = []string{"Cerrado", "Resuelto"}

// SummaryFilter carries the optional facets of a summary request.
type SummaryFilter struct {
	CommerceIDs  []string
	Regions      []string
	TechnicalIDs []string
	StartDate    *time.Time
	EndDate      *time.Time
}

// Summarize computes fleet-wide statistics over the filtered ticket
// population. Commerce and technician facets are pushed down as query
// predicates; technician-enabled, region and date filtering happen on
// the composed flows. An empty population yields an empty summary.
func (p *Pipeline) Summarize(ctx context.Context, filter SummaryFilter) (*domain.Summary, error) {
	query := docstore.Query{
		Filters: map[string]any{},
		Sort:    map[string]string{"plannedDate": "desc"},
	}
	if len(filter.CommerceIDs) > 0 {
		query.Filters["commerceId"] = filter.CommerceIDs
	}
	if len(filter.TechnicalIDs) > 0 {
		query.Filters["technicals.id"] = filter.TechnicalIDs
	}

	tickets, err := docstore.ListAs[domain.Ticket](ctx, p.store, 0, summaryPageLimit, query, docstore.Tickets)
	if err != nil {
		return nil, apperrors.NewGatewayFailure(docstore.Tickets, err)
	}

	flows, err := p.ComposeFlows(ctx, tickets)
	if err != nil {
		return nil, err
	}

	if len(filter.TechnicalIDs) > 0 {
		flows = filterByTechnicals(flows, filter.TechnicalIDs)
	}
	if len(filter.Regions) > 0 {
		flows = filterByRegions(flows, filter.Regions)
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		flows = filterByDateRange(flows, *filter.StartDate, *filter.EndDate)
	}

	if len(flows) == 0 {
		return &domain.Summary{}, nil
	}

	statuses := make(map[string]int)
	for _, f := range flows {
		statuses[f.Ticket.CurrentState]++
	}

	closed := 0
	for _, state := range closedStates {
		closed += statuses[state]
	}
	total := len(flows)
	closedPct := int(math.Round(float64(closed) / float64(total) * 100))

	return &domain.Summary{
		TotalTickets:    total,
		TicketsByStatus: bucketByStatus(flows),
		TicketStatuses:  statuses,
		ClosedVsPending: domain.ClosedVsPending{
			ClosedPercentage:  closedPct,
			PendingPercentage: 100 - closedPct,
		},
		Filters: echoFilters(flows, filter),
	}, nil
}

// filterByTechnicals keeps only enabled technicians among the requested
// ids and drops tickets left with no qualifying technician.
func filterByTechnicals(flows []domain.TicketFlow, ids []string) []domain.TicketFlow {
	out := make([]domain.TicketFlow, 0, len(flows))
	for _, f := range flows {
		kept := make([]domain.FlowTechnical, 0, len(f.Technicals))
		for _, tech := range f.Technicals {
			if tech.Enabled && containsString(ids, tech.ID) {
				kept = append(kept, tech)
			}
		}
		if len(kept) == 0 {
			continue
		}
		f.Technicals = kept
		out = append(out, f)
	}
	return out
}

func filterByRegions(flows []domain.TicketFlow, regions []string) []domain.TicketFlow {
	out := make([]domain.TicketFlow, 0, len(flows))
	for _, f := range flows {
		if containsString(regions, f.Branch.Location.Region) {
			out = append(out, f)
		}
	}
	return out
}

func filterByDateRange(flows []domain.TicketFlow, start, end time.Time) []domain.TicketFlow {
	out := make([]domain.TicketFlow, 0, len(flows))
	for _, f := range flows {
		createdAt, err := time.Parse(time.RFC3339, f.Ticket.CreatedAt)
		if err != nil {
			continue
		}
		if !createdAt.Before(start) && !createdAt.After(end) {
			out = append(out, f)
		}
	}
	return out
}

// bucketByStatus partitions the population by currentState; every
// ticket lands in exactly one bucket.
func bucketByStatus(flows []domain.TicketFlow) map[string][]domain.SummaryTicketRow {
	buckets := make(map[string][]domain.SummaryTicketRow)
	for _, f := range flows {
		technician := "N/A"
		if len(f.Technicals) > 0 && f.Technicals[0].Email != "" {
			technician = f.Technicals[0].Email
		}
		row := domain.SummaryTicketRow{
			ID:           f.Ticket.ID,
			TicketNumber: f.Ticket.TicketNumber,
			Date:         dateOnly(f.Ticket.PlannedDate),
			Region:       f.Branch.Location.Region,
			Comuna:       f.Branch.Location.Commune,
			Technician:   technician,
		}
		state := f.Ticket.CurrentState
		buckets[state] = append(buckets[state], row)
	}
	return buckets
}

func echoFilters(flows []domain.TicketFlow, filter SummaryFilter) domain.SummaryFilters {
	var echo domain.SummaryFilters

	if len(filter.CommerceIDs) > 0 {
		echo.Clients = make([]domain.FacetRef, 0, len(filter.CommerceIDs))
		for _, id := range filter.CommerceIDs {
			ref := domain.FacetRef{ID: id}
			for _, f := range flows {
				if f.Commerce.ID == id {
					ref.Name = f.Commerce.Name
					break
				}
			}
			echo.Clients = append(echo.Clients, ref)
		}
	}

	if len(filter.Regions) > 0 {
		echo.Regions = make([]domain.RegionFacet, 0, len(filter.Regions))
		for _, region := range filter.Regions {
			echo.Regions = append(echo.Regions, domain.RegionFacet{Name: region})
		}
	}

	if len(filter.TechnicalIDs) > 0 {
		seen := make(map[string]bool)
		echo.Technicals = make([]domain.FacetRef, 0)
		for _, f := range flows {
			for _, tech := range f.Technicals {
				if !tech.Enabled || !containsString(filter.TechnicalIDs, tech.ID) || seen[tech.ID] {
					continue
				}
				seen[tech.ID] = true
				echo.Technicals = append(echo.Technicals, domain.FacetRef{ID: tech.ID, Name: tech.FullName})
			}
		}
	}

	return echo
}

// dateOnly reduces an ISO timestamp to its date part.
func dateOnly(value string) string {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.Format("2006-01-02")
	}
	if date, _, found := strings.Cut(value, "T"); found {
		return date
	}
	return value
}

func containsString(set []string, value string) bool {
	for _, item := range set {
		if item == value {
			return true
		}
	}
	return false
}
