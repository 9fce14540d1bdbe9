package flow

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/saecheverry/stefanini-go-tickets/internal/docstore"
	"github.com/saecheverry/stefanini-go-tickets/internal/domain"
	apperrors "github.com/saecheverry/stefanini-go-tickets/pkg/util"
)

// Reference table ids inside the datas collection.
const (
	refAttentionType = "attentionType"
	refPriority      = "priority"
)

// hydration is the output of one batch fetch: one flat list per related
// entity type, not yet associated with any particular ticket.
type hydration struct {
	Commerces     []domain.Commerce
	Branches      []domain.Branch
	Categories    []domain.Category
	Subcategories []domain.Category
	Contacts      []domain.Contact
	Coordinators  []domain.Employee
	Technicals    []domain.Employee
	History       []domain.StatusHistory
	Comments      []domain.Comment
	Evidences     []domain.Evidence
	Devices       []domain.Device
	Appointments  []domain.Appointment
	AttentionType *domain.ReferenceTable
	Priority      *domain.ReferenceTable
}

// hydrate issues every related-entity lookup concurrently and waits for
// all of them. Each goroutine writes a distinct field, so no locking is
// needed; the group cancels the remaining lookups on the first failure
// and the whole aggregation aborts with a gateway failure.
func (p *Pipeline) hydrate(ctx context.Context, keys KeySet) (*hydration, error) {
	h := &hydration{}
	group, ctx := errgroup.WithContext(ctx)

	listInto := func(collection string, filters map[string]any, out func([]docstore.Document) error) {
		group.Go(func() error {
			docs, err := p.store.List(ctx, 0, p.limit, docstore.Query{Filters: filters}, collection)
			if err != nil {
				return apperrors.NewGatewayFailure(collection, err)
			}
			p.recordHydration(collection, len(docs))
			return out(docs)
		})
	}

	byID := func(ids []string) map[string]any { return map[string]any{"id": ids} }
	byTicket := map[string]any{"ticketId": keys.TicketIDs}

	listInto(docstore.Commerces, byID(keys.CommerceIDs), decodeInto(&h.Commerces))
	listInto(docstore.Branches, byID(keys.BranchIDs), decodeInto(&h.Branches))
	listInto(docstore.Categories, byID(keys.CategoryIDs), decodeInto(&h.Categories))
	listInto(docstore.Subcategories, byID(keys.SubcategoryIDs), decodeInto(&h.Subcategories))
	listInto(docstore.Contacts, byID(keys.ContactIDs), decodeInto(&h.Contacts))
	listInto(docstore.Employees, byID(keys.CoordinatorIDs), decodeInto(&h.Coordinators))
	listInto(docstore.Employees, byID(keys.TechnicalIDs), decodeInto(&h.Technicals))
	listInto(docstore.StatesHistory, byTicket, decodeInto(&h.History))
	listInto(docstore.Comments, byTicket, decodeInto(&h.Comments))
	listInto(docstore.Evidences, byTicket, decodeInto(&h.Evidences))
	listInto(docstore.Devices, byTicket, decodeInto(&h.Devices))
	listInto(docstore.Appointments, byTicket, decodeInto(&h.Appointments))

	// Reference enumerations are small; fetched unconditionally.
	group.Go(func() error {
		table, err := p.referenceTable(ctx, refAttentionType)
		if err != nil {
			return err
		}
		h.AttentionType = table
		return nil
	})
	group.Go(func() error {
		table, err := p.referenceTable(ctx, refPriority)
		if err != nil {
			return err
		}
		h.Priority = table
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return h, nil
}

func (p *Pipeline) referenceTable(ctx context.Context, id string) (*domain.ReferenceTable, error) {
	table, err := docstore.GetAs[domain.ReferenceTable](ctx, p.store, id, docstore.Datas)
	if err != nil {
		return nil, apperrors.NewGatewayFailure(docstore.Datas, err)
	}
	return table, nil
}

func decodeInto[T any](target *[]T) func([]docstore.Document) error {
	return func(docs []docstore.Document) error {
		records, err := docstore.DecodeAll[T](docs)
		if err != nil {
			return err
		}
		*target = records
		return nil
	}
}
