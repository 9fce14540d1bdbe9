package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/saecheverry/stefanini-go-tickets/internal/api/dto"
	"github.com/saecheverry/stefanini-go-tickets/internal/docstore"
)

// CrudService is the shape every per-collection service exposes.
type CrudService[T any] interface {
	Create(ctx context.Context, records []T) ([]string, error)
	Get(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, page, limit int, query docstore.Query) ([]T, int, error)
	Update(ctx context.Context, id string, patch map[string]any) error
	Delete(ctx context.Context, id string) error
}

// ResourceHandler serves the shared CRUD surface for a ticket-related
// collection such as comments, evidences or appointments.
type ResourceHandler[T any] struct {
	service  CrudService[T]
	validate func(*T) error
}

// NewResourceHandler constructs a handler; validate may be nil when the
// collection has no required fields beyond what the service enforces.
func NewResourceHandler[T any](service CrudService[T], validate func(*T) error) *ResourceHandler[T] {
	return &ResourceHandler[T]{service: service, validate: validate}
}

// Create POST /<collection>.
func (h *ResourceHandler[T]) Create(c *fiber.Ctx) error {
	records, err := decodeBatch[T](c.Body())
	if err != nil {
		return err
	}
	if h.validate != nil {
		for i := range records {
			if err := h.validate(&records[i]); err != nil {
				return err
			}
		}
	}
	ids, err := h.service.Create(c.UserContext(), records)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.CreatedResponse{IDs: ids}})
}

// List GET /<collection>.
func (h *ResourceHandler[T]) List(c *fiber.Ctx) error {
	page, limit, query, err := parseListQuery(c)
	if err != nil {
		return err
	}
	records, total, err := h.service.List(c.UserContext(), page, limit, query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ListResponse{
		Total:   total,
		Page:    page,
		Limit:   limit,
		Records: records,
	}})
}

// Get GET /<collection>/:id.
func (h *ResourceHandler[T]) Get(c *fiber.Ctx) error {
	record, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": record})
}

// Update PATCH /<collection>/:id.
func (h *ResourceHandler[T]) Update(c *fiber.Ctx) error {
	patch, err := decodePatch(c.Body())
	if err != nil {
		return err
	}
	if err := h.service.Update(c.UserContext(), c.Params("id"), patch); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": c.Params("id")}})
}

// Delete DELETE /<collection>/:id.
func (h *ResourceHandler[T]) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
