package handlers

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/saecheverry/stefanini-go-tickets/internal/docstore"
	apperrors "github.com/saecheverry/stefanini-go-tickets/pkg/util"
)

// parseListQuery reads common pagination and filter parameters.
// Filters, sort and exclude arrive as JSON-encoded objects so nested
// keys such as "technicals.id" survive URL encoding; fields is a plain
// comma-separated list.
func parseListQuery(c *fiber.Ctx) (page, limit int, query docstore.Query, err error) {
	page = parseIntQuery(c, "page", 1)
	limit = parseIntQuery(c, "limit", 10)

	if raw := c.Query("filters"); raw != "" {
		if jsonErr := json.Unmarshal([]byte(raw), &query.Filters); jsonErr != nil {
			err = apperrors.NewValidationError("filters must be a JSON object", nil)
			return
		}
	}
	if raw := c.Query("sort"); raw != "" {
		if jsonErr := json.Unmarshal([]byte(raw), &query.Sort); jsonErr != nil {
			err = apperrors.NewValidationError("sort must be a JSON object", nil)
			return
		}
	}
	if raw := c.Query("exclude"); raw != "" {
		if jsonErr := json.Unmarshal([]byte(raw), &query.Exclude); jsonErr != nil {
			err = apperrors.NewValidationError("exclude must be a JSON object", nil)
			return
		}
	}
	if raw := c.Query("fields"); raw != "" {
		for _, field := range strings.Split(raw, ",") {
			if field = strings.TrimSpace(field); field != "" {
				query.Fields = append(query.Fields, field)
			}
		}
	}
	return
}

func parseIntQuery(c *fiber.Ctx, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

// decodeBatch accepts either a single object or an array of objects,
// so callers can create one record or many with the same endpoint.
func decodeBatch[T any](body []byte) ([]T, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil, apperrors.NewValidationError("request body required", nil)
	}
	if strings.HasPrefix(trimmed, "[") {
		var records []T
		if err := json.Unmarshal(body, &records); err != nil {
			return nil, apperrors.NewValidationError("invalid payload", nil)
		}
		if len(records) == 0 {
			return nil, apperrors.NewValidationError("at least one record required", nil)
		}
		return records, nil
	}
	var record T
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	return []T{record}, nil
}

// decodePatch reads a partial-update body. Identifier and bookkeeping
// fields are stripped so a PATCH can never rewrite them.
func decodePatch(body []byte) (map[string]any, error) {
	var patch map[string]any
	if err := json.Unmarshal(body, &patch); err != nil || len(patch) == 0 {
		return nil, apperrors.NewValidationError("patch body must be a non-empty JSON object", nil)
	}
	delete(patch, "id")
	delete(patch, "createdAt")
	delete(patch, "updatedAt")
	if len(patch) == 0 {
		return nil, apperrors.NewValidationError("patch body contains no updatable fields", nil)
	}
	return patch, nil
}

func commaSeparated(raw string) []string {
	if raw == "" {
		return nil
	}
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
