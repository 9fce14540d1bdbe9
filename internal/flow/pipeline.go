// Package flow implements the ticket flow aggregation engine: foreign
// key collection over a ticket batch, concurrent batch hydration of
// every related collection, in-memory joining, denormalized flow
// composition and fleet-wide summaries.
package flow

import (
	"context"

	"github.com/saecheverry/stefanini-go-tickets/internal/config"
	"github.com/saecheverry/stefanini-go-tickets/internal/docstore"
	"github.com/saecheverry/stefanini-go-tickets/internal/domain"
	"github.com/saecheverry/stefanini-go-tickets/internal/observability"
)

const defaultHydrationLimit = 100

// Pipeline wires the aggregation stages over a document store. It holds
// no per-request state; a single instance serves all requests.
type Pipeline struct {
	store     docstore.Store
	apiDomain string
	limit     int
	metrics   *observability.Metrics
}

// NewPipeline builds the aggregation pipeline. The API domain is
// injected here so composition never reads ambient environment state.
func NewPipeline(store docstore.Store, cfg config.FlowConfig, metrics *observability.Metrics) *Pipeline {
	limit := cfg.HydrationLimit
	if limit <= 0 {
		limit = defaultHydrationLimit
	}
	return &Pipeline{
		store:     store,
		apiDomain: cfg.APIDomain,
		limit:     limit,
		metrics:   metrics,
	}
}

// ComposeFlows runs collect → hydrate → join → compose for a ticket
// batch. The result preserves input order and has exactly one flow per
// input ticket; only a failed hydration lookup makes it fail.
func (p *Pipeline) ComposeFlows(ctx context.Context, tickets []domain.Ticket) ([]domain.TicketFlow, error) {
	keys := CollectKeys(tickets)

	hydrated, err := p.hydrate(ctx, keys)
	if err != nil {
		return nil, err
	}

	flows := make([]domain.TicketFlow, 0, len(tickets))
	for _, ticket := range tickets {
		own := joinOwnElements(ticket, hydrated)
		flows = append(flows, p.compose(own, hydrated.AttentionType, hydrated.Priority))
	}
	return flows, nil
}

func (p *Pipeline) recordHydration(collection string, records int) {
	p.metrics.RecordHydration(collection, records)
}
