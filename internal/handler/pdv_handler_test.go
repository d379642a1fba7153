package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"styllobarber-pdv/internal/model"
	"styllobarber-pdv/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPDVService struct{ mock.Mock }

func (m *mockPDVService) RecordTransaction(ctx context.Context, req *service.RecordTransactionRequest, actorID string) (uuid.UUID, error) {
	args := m.Called(ctx, req, actorID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockPDVService) CancelTransaction(ctx context.Context, id uuid.UUID, actorID string) error {
	return m.Called(ctx, id, actorID).Error(0)
}

func (m *mockPDVService) ValidateTransaction(req *service.RecordTransactionRequest) service.ValidationResult {
	return service.ValidateTransaction(req)
}

func (m *mockPDVService) GetRecentHistory(ctx context.Context, limit int, filter service.HistoryFilter) ([]service.HistoryEntry, error) {
	args := m.Called(ctx, limit, filter)
	entries, _ := args.Get(0).([]service.HistoryEntry)
	return entries, args.Error(1)
}

func (m *mockPDVService) GetDailyStats(ctx context.Context, filter service.StatsFilter) (*service.DailyStats, error) {
	args := m.Called(ctx, filter)
	stats, _ := args.Get(0).(*service.DailyStats)
	return stats, args.Error(1)
}

func (m *mockPDVService) Saving() bool { return false }

func newPDVApp(svc service.PDVService) *fiber.App {
	h := NewPDVHandler(svc, time.UTC)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("profile_id", "actor-1")
		return c.Next()
	})
	app.Post("/pdv/transactions", h.RecordTransaction)
	app.Post("/pdv/transactions/validate", h.ValidateTransaction)
	app.Post("/pdv/transactions/:id/cancel", h.CancelTransaction)
	app.Get("/pdv/transactions/recent", h.GetRecentHistory)
	app.Get("/pdv/stats/daily", h.GetDailyStats)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func TestRecordTransactionHandler_Success(t *testing.T) {
	svc := new(mockPDVService)
	id := uuid.New()
	svc.On("RecordTransaction", mock.Anything, mock.MatchedBy(func(req *service.RecordTransactionRequest) bool {
		return req.Kind == model.KindRevenue &&
			req.Amount.Equal(decimal.RequireFromString("45")) &&
			req.PaymentMethod != nil && *req.PaymentMethod == model.PaymentPix &&
			req.StaffName == "João Silva" &&
			req.IdempotencyKey == "key-1"
	}), "actor-1").Return(id, nil)

	app := newPDVApp(svc)
	req := httptest.NewRequest("POST", "/pdv/transactions", strings.NewReader(
		`{"kind":"RECEITA","amount":45.00,"description":"Corte + Barba","payment_method":"PIX","staff_name":"João Silva"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", "key-1")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, id.String(), body["transaction_id"])
}

func TestRecordTransactionHandler_ValidationError(t *testing.T) {
	svc := new(mockPDVService)
	svc.On("RecordTransaction", mock.Anything, mock.Anything, "actor-1").
		Return(uuid.Nil, &service.ValidationError{Errors: []service.FieldError{{Field: "amount", Message: "amount must be greater than zero"}}})

	status, body := doJSON(t, newPDVApp(svc), "POST", "/pdv/transactions", `{"kind":"RECEITA","amount":0}`)
	assert.Equal(t, 400, status)
	assert.Equal(t, false, body["success"])
	errs := body["errors"].([]interface{})
	require.Len(t, errs, 1)
	assert.Equal(t, "amount", errs[0].(map[string]interface{})["field"])
}

func TestRecordTransactionHandler_PersistenceError(t *testing.T) {
	svc := new(mockPDVService)
	svc.On("RecordTransaction", mock.Anything, mock.Anything, "actor-1").
		Return(uuid.Nil, service.ErrPersistence)

	status, body := doJSON(t, newPDVApp(svc), "POST", "/pdv/transactions", `{"kind":"DESPESA"}`)
	assert.Equal(t, 500, status)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}

func TestValidateTransactionHandler(t *testing.T) {
	status, body := doJSON(t, newPDVApp(new(mockPDVService)), "POST", "/pdv/transactions/validate",
		`{"kind":"DESPESA","amount":"120.00","description":"Compra de produtos"}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, false, body["valid"])
	errs := body["errors"].([]interface{})
	require.Len(t, errs, 1)
	assert.Equal(t, "category", errs[0].(map[string]interface{})["field"])
}

func TestCancelTransactionHandler(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"ok", nil, 200},
		{"not found", service.ErrTransactionNotFound, 404},
		{"already cancelled", service.ErrTransactionAlreadyCancelled, 409},
		{"db error", errors.New("boom"), 500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mockPDVService)
			id := uuid.New()
			svc.On("CancelTransaction", mock.Anything, id, "actor-1").Return(tc.err)

			status, body := doJSON(t, newPDVApp(svc), "POST", "/pdv/transactions/"+id.String()+"/cancel", "")
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.err == nil, body["success"])
		})
	}

	t.Run("bad id", func(t *testing.T) {
		status, _ := doJSON(t, newPDVApp(new(mockPDVService)), "POST", "/pdv/transactions/nope/cancel", "")
		assert.Equal(t, 400, status)
	})
}

func TestGetRecentHistoryHandler(t *testing.T) {
	svc := new(mockPDVService)
	staffID := uuid.New()
	kind := model.KindExpense
	svc.On("GetRecentHistory", mock.Anything, 5, service.HistoryFilter{StaffID: &staffID, Kind: &kind}).
		Return([]service.HistoryEntry{{CategoryLabel: "Despesa"}}, nil)

	app := newPDVApp(svc)
	resp, err := app.Test(httptest.NewRequest("GET", "/pdv/transactions/recent?limit=5&kind=despesa&staff_id="+staffID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var entries []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Despesa", entries[0]["category_label"])

	status, _ := doJSON(t, app, "GET", "/pdv/transactions/recent?kind=OUTRO", "")
	assert.Equal(t, 400, status)
}

func TestGetDailyStatsHandler(t *testing.T) {
	svc := new(mockPDVService)
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	pix := model.PaymentPix
	svc.On("GetDailyStats", mock.Anything, service.StatsFilter{Day: &day}).Return(&service.DailyStats{
		Date:             "2024-05-10",
		TotalIn:          decimal.RequireFromString("45"),
		TotalOut:         decimal.Zero,
		Net:              decimal.RequireFromString("45"),
		Count:            1,
		TopPaymentMethod: &pix,
	}, nil)

	status, body := doJSON(t, newPDVApp(svc), "GET", "/pdv/stats/daily?date=2024-05-10", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, "2024-05-10", body["date"])
	assert.Equal(t, "45", body["total_in"])
	assert.Equal(t, "PIX", body["top_payment_method"])

	status, _ = doJSON(t, newPDVApp(svc), "GET", "/pdv/stats/daily?date=10-05-2024", "")
	assert.Equal(t, 400, status)
}
