package service

import (
	"context"
	"testing"
	"time"

	"styllobarber-pdv/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDashboard(cashFlow *mockCashFlowRepo, txRepo *mockTransactionRepo, loc *time.Location, now time.Time) DashboardService {
	svc := NewDashboardService(cashFlow, txRepo, loc).(*dashboardService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestGetCashFlow_CoversLastDays(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, loc)
	cashFlow := new(mockCashFlowRepo)
	start := time.Date(2024, 5, 4, 0, 0, 0, 0, loc)
	end := time.Date(2024, 5, 10, 23, 59, 59, 999999000, loc)
	data := []repository.DailyFlowData{{Date: "2024-05-10", Inflow: decimal.NewFromInt(45), Outflow: decimal.Zero}}
	cashFlow.On("GetDailyFlow", mock.Anything, start, end).Return(data, nil)

	got, err := newDashboard(cashFlow, new(mockTransactionRepo), loc, now).GetCashFlow(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestGetCommissionReport_WholeDays(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	txRepo := new(mockTransactionRepo)
	from := time.Date(2024, 5, 1, 15, 0, 0, 0, loc)
	to := time.Date(2024, 5, 31, 8, 0, 0, 0, loc)
	txRepo.On("GetCommissionsByStaff", mock.Anything,
		time.Date(2024, 5, 1, 0, 0, 0, 0, loc),
		time.Date(2024, 5, 31, 23, 59, 59, 999999000, loc),
	).Return([]repository.StaffCommissionTotal{{StaffName: "João Silva", Total: decimal.NewFromInt(18), Count: 1}}, nil)

	got, err := newDashboard(new(mockCashFlowRepo), txRepo, loc, to).GetCommissionReport(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "João Silva", got[0].StaffName)
}
