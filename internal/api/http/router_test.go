package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/saecheverry/stefanini-go-tickets/internal/api/http/handlers"
	"github.com/saecheverry/stefanini-go-tickets/internal/config"
	"github.com/saecheverry/stefanini-go-tickets/internal/docstore"
	"github.com/saecheverry/stefanini-go-tickets/internal/domain"
	"github.com/saecheverry/stefanini-go-tickets/internal/events"
	"github.com/saecheverry/stefanini-go-tickets/internal/flow"
	"github.com/saecheverry/stefanini-go-tickets/internal/observability"
	"github.com/saecheverry/stefanini-go-tickets/internal/persistence"
	"github.com/saecheverry/stefanini-go-tickets/internal/service"
)

func newTestApp(store docstore.Store) *fiber.App {
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	pipeline := flow.NewPipeline(store, config.FlowConfig{APIDomain: "http://api.test", HydrationLimit: 100}, metrics)
	dispatcher := events.NewInMemoryDispatcher(logger)

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 0)
	RegisterRoutes(app, RouteConfig{
		Health:        handlers.NewHealthHandler("test", "dev", &persistence.Postgres{}, nil),
		Tickets:       handlers.NewTicketsHandler(service.NewTicketService(store, pipeline, dispatcher)),
		StatesHistory: handlers.NewResourceHandler[domain.StatusHistory](service.NewStatesHistoryService(store, dispatcher), nil),
		Comments:      handlers.NewResourceHandler[domain.Comment](service.NewCommentService(store, dispatcher), nil),
		Evidences:     handlers.NewResourceHandler[domain.Evidence](service.NewEvidenceService(store, dispatcher), nil),
		Devices:       handlers.NewResourceHandler[domain.Device](service.NewDeviceService(store), nil),
		Appointments:  handlers.NewResourceHandler[domain.Appointment](service.NewAppointmentService(store, dispatcher), nil),
	})
	return app
}

func seedRouterFixture() *docstore.MemoryStore {
	return docstore.NewMemoryStore().
		Seed(docstore.Tickets, domain.Ticket{
			ID: "T1", TicketNumber: "TK-001", PlannedDate: "2026-03-10T09:00:00Z",
			CommerceID: "C1", BranchID: "B1", CurrentState: "Abierto",
			CreatedAt: "2026-03-01T10:00:00Z",
		}).
		Seed(docstore.Commerces, domain.Commerce{ID: "C1", Name: "Comercial Andina", LogoFileName: "logo.png"}).
		Seed(docstore.Branches, domain.Branch{ID: "B1", CommerceID: "C1", Region: "Metropolitana"}).
		Seed(docstore.Datas,
			domain.ReferenceTable{ID: "attentionType"},
			domain.ReferenceTable{ID: "priority"},
		)
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	payload := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &payload))
	}
	return resp, payload
}

func TestHealthLive(t *testing.T) {
	app := newTestApp(docstore.NewMemoryStore())

	resp, payload := doRequest(t, app, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alive", payload["status"])
}

func TestCreateTicketEndpoint(t *testing.T) {
	app := newTestApp(seedRouterFixture())

	resp, payload := doRequest(t, app, http.MethodPost, "/v1/tickets/",
		`{"ticket_number":"TK-002","plannedDate":"2026-03-11T09:00:00Z","commerceId":"C1","branchId":"B1"}`)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	data := payload["data"].(map[string]any)
	ids := data["ids"].([]any)
	assert.Len(t, ids, 1)
}

func TestCreateTicketValidation(t *testing.T) {
	app := newTestApp(seedRouterFixture())

	resp, payload := doRequest(t, app, http.MethodPost, "/v1/tickets/", `{"description":"no number"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errObj := payload["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_FAILED", errObj["code"])
}

func TestGetTicketNotFoundMapped(t *testing.T) {
	app := newTestApp(seedRouterFixture())

	resp, payload := doRequest(t, app, http.MethodGet, "/v1/tickets/missing", "")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	errObj := payload["error"].(map[string]any)
	assert.Equal(t, "NOT_FOUND", errObj["code"])
}

func TestTicketFlowsEndpoint(t *testing.T) {
	app := newTestApp(seedRouterFixture())

	resp, payload := doRequest(t, app, http.MethodGet, "/v1/tickets/T1/flows", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := payload["data"].(map[string]any)
	ticket := data["ticket"].(map[string]any)
	assert.Equal(t, "TK-001", ticket["ticket_number"])
	commerce := data["commerce"].(map[string]any)
	assert.Equal(t, "http://api.test/v1/commerces/C1/logos/logo.png", commerce["logo"])
}

func TestTicketSummaryEndpoint(t *testing.T) {
	app := newTestApp(seedRouterFixture())

	resp, payload := doRequest(t, app, http.MethodGet, "/v1/tickets/summary?regions=Metropolitana", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := payload["data"].(map[string]any)
	assert.Equal(t, float64(1), data["totalTickets"])
}

func TestTicketSummaryRejectsBadDate(t *testing.T) {
	app := newTestApp(seedRouterFixture())

	resp, payload := doRequest(t, app, http.MethodGet, "/v1/tickets/summary?startDate=not-a-date", "")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errObj := payload["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_FAILED", errObj["code"])
}

func TestStatesHistoryEndpointUpdatesTicket(t *testing.T) {
	store := seedRouterFixture().
		Seed(docstore.Datas, domain.ReferenceTable{ID: "states", Values: []domain.ReferenceValue{
			{Name: "Cerrado", Value: "Cerrado"},
		}})
	app := newTestApp(store)

	resp, _ := doRequest(t, app, http.MethodPost, "/v1/states-history/",
		`{"ticketId":"T1","stateId":"Cerrado"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, payload := doRequest(t, app, http.MethodGet, "/v1/tickets/T1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := payload["data"].(map[string]any)
	assert.Equal(t, "Cerrado", data["currentState"])
}
