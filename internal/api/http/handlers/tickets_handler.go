package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/saecheverry/stefanini-go-tickets/internal/api/dto"
	"github.com/saecheverry/stefanini-go-tickets/internal/domain"
	"github.com/saecheverry/stefanini-go-tickets/internal/flow"
	"github.com/saecheverry/stefanini-go-tickets/internal/service"
	apperrors "github.com/saecheverry/stefanini-go-tickets/pkg/util"
)

// TicketsHandler manages ticket CRUD plus the flow and summary endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Create POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	tickets, err := decodeBatch[domain.Ticket](c.Body())
	if err != nil {
		return err
	}
	for i := range tickets {
		if err := validateTicket(&tickets[i]); err != nil {
			return err
		}
	}
	ids, err := h.service.Create(c.UserContext(), tickets)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.CreatedResponse{IDs: ids}})
}

// List GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	page, limit, query, err := parseListQuery(c)
	if err != nil {
		return err
	}
	tickets, total, err := h.service.List(c.UserContext(), page, limit, query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ListResponse{
		Total:   total,
		Page:    page,
		Limit:   limit,
		Records: tickets,
	}})
}

// Get GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	ticket, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticket})
}

// Update PATCH /tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	patch, err := decodePatch(c.Body())
	if err != nil {
		return err
	}
	if err := h.service.Update(c.UserContext(), c.Params("id"), patch); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": c.Params("id")}})
}

// Delete DELETE /tickets/:id.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Flows GET /tickets/:id/flows.
func (h *TicketsHandler) Flows(c *fiber.Ctx) error {
	ticketFlow, err := h.service.Flows(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketFlow})
}

// ListFlows GET /tickets/flows/all.
func (h *TicketsHandler) ListFlows(c *fiber.Ctx) error {
	page, limit, query, err := parseListQuery(c)
	if err != nil {
		return err
	}
	flows, total, err := h.service.ListFlows(c.UserContext(), page, limit, query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ListResponse{
		Total:   total,
		Page:    page,
		Limit:   limit,
		Records: flows,
	}})
}

// Summary GET /tickets/summary.
func (h *TicketsHandler) Summary(c *fiber.Ctx) error {
	filter, err := parseSummaryQuery(c)
	if err != nil {
		return err
	}
	summary, err := h.service.Summary(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}

func parseSummaryQuery(c *fiber.Ctx) (flow.SummaryFilter, error) {
	filter := flow.SummaryFilter{
		CommerceIDs:  commaSeparated(c.Query("commerces")),
		Regions:      commaSeparated(c.Query("regions")),
		TechnicalIDs: commaSeparated(c.Query("technicals")),
	}
	start, err := parseDateQuery(c.Query("startDate"))
	if err != nil {
		return filter, apperrors.NewValidationError("startDate must be an RFC3339 timestamp or YYYY-MM-DD date", nil)
	}
	end, err := parseDateQuery(c.Query("endDate"))
	if err != nil {
		return filter, apperrors.NewValidationError("endDate must be an RFC3339 timestamp or YYYY-MM-DD date", nil)
	}
	filter.StartDate = start
	filter.EndDate = end
	if start != nil && end != nil && end.Before(*start) {
		return filter, apperrors.NewValidationError("endDate must not precede startDate", nil)
	}
	return filter, nil
}

func parseDateQuery(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return &parsed, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func validateTicket(ticket *domain.Ticket) error {
	missing := make([]string, 0, 4)
	if strings.TrimSpace(ticket.TicketNumber) == "" {
		missing = append(missing, "ticket_number")
	}
	if strings.TrimSpace(ticket.PlannedDate) == "" {
		missing = append(missing, "plannedDate")
	}
	if strings.TrimSpace(ticket.CommerceID) == "" {
		missing = append(missing, "commerceId")
	}
	if strings.TrimSpace(ticket.BranchID) == "" {
		missing = append(missing, "branchId")
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("missing required fields", fiber.Map{"fields": missing})
	}
	return nil
}
