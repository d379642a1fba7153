package handler

import (
	"context"
	"testing"
	"time"

	"styllobarber-pdv/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockDashboardService struct{ mock.Mock }

func (m *mockDashboardService) GetCashFlow(ctx context.Context, days int) ([]repository.DailyFlowData, error) {
	args := m.Called(ctx, days)
	data, _ := args.Get(0).([]repository.DailyFlowData)
	return data, args.Error(1)
}

func (m *mockDashboardService) GetCashFlowSummary(ctx context.Context, from, to time.Time) (*repository.CashFlowSummary, error) {
	args := m.Called(ctx, from, to)
	summary, _ := args.Get(0).(*repository.CashFlowSummary)
	return summary, args.Error(1)
}

func (m *mockDashboardService) GetCommissionReport(ctx context.Context, from, to time.Time) ([]repository.StaffCommissionTotal, error) {
	args := m.Called(ctx, from, to)
	report, _ := args.Get(0).([]repository.StaffCommissionTotal)
	return report, args.Error(1)
}

func newDashboardApp(svc *mockDashboardService) *fiber.App {
	h := NewDashboardHandler(svc, time.UTC)
	app := fiber.New()
	app.Get("/dashboard/cash-flow", h.GetCashFlow)
	app.Get("/dashboard/summary", h.GetCashFlowSummary)
	app.Get("/reports/commissions", h.GetCommissionReport)
	return app
}

func TestGetCashFlowHandler_ClampsDays(t *testing.T) {
	svc := new(mockDashboardService)
	svc.On("GetCashFlow", mock.Anything, 7).Return([]repository.DailyFlowData{
		{Date: "2024-05-10", Inflow: decimal.RequireFromString("45"), Outflow: decimal.Zero},
	}, nil)

	status, body := doJSON(t, newDashboardApp(svc), "GET", "/dashboard/cash-flow?days=1000", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, float64(7), body["period"])
	assert.Len(t, body["data"], 1)
}

func TestGetCashFlowSummaryHandler(t *testing.T) {
	svc := new(mockDashboardService)
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	svc.On("GetCashFlowSummary", mock.Anything, from, to).Return(&repository.CashFlowSummary{
		Inflow:  decimal.RequireFromString("300"),
		Outflow: decimal.RequireFromString("120"),
		Balance: decimal.RequireFromString("180"),
	}, nil)

	app := newDashboardApp(svc)
	status, body := doJSON(t, app, "GET", "/dashboard/summary?from=2024-05-01&to=2024-05-31", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, "180", body["balance"])

	status, _ = doJSON(t, app, "GET", "/dashboard/summary?from=2024-05-31&to=2024-05-01", "")
	assert.Equal(t, 400, status)
}

func TestGetCommissionReportHandler(t *testing.T) {
	svc := new(mockDashboardService)
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	svc.On("GetCommissionReport", mock.Anything, from, to).Return([]repository.StaffCommissionTotal{
		{StaffName: "João Silva", Total: decimal.RequireFromString("18"), Count: 1},
	}, nil)

	status, body := doJSON(t, newDashboardApp(svc), "GET", "/reports/commissions?from=2024-05-01&to=2024-05-10", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, "2024-05-01", body["from"])
	assert.Equal(t, "2024-05-10", body["to"])
	assert.Len(t, body["data"], 1)
}
