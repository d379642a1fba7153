package service

import (
	"context"
	"time"

	"styllobarber-pdv/internal/repository"
)

type DashboardService interface {
	GetCashFlow(ctx context.Context, days int) ([]repository.DailyFlowData, error)
	GetCashFlowSummary(ctx context.Context, from, to time.Time) (*repository.CashFlowSummary, error)
	GetCommissionReport(ctx context.Context, from, to time.Time) ([]repository.StaffCommissionTotal, error)
}

type dashboardService struct {
	cashFlowRepo repository.CashFlowRepository
	txRepo       repository.TransactionRepository
	loc          *time.Location
	now          func() time.Time
}

func NewDashboardService(cashFlowRepo repository.CashFlowRepository, txRepo repository.TransactionRepository, loc *time.Location) DashboardService {
	return &dashboardService{
		cashFlowRepo: cashFlowRepo,
		txRepo:       txRepo,
		loc:          loc,
		now:          time.Now,
	}
}

// GetCashFlow returns daily totals for the last days, today included.
func (s *dashboardService) GetCashFlow(ctx context.Context, days int) ([]repository.DailyFlowData, error) {
	if days <= 0 {
		days = 7
	}
	_, endDate := dayBounds(s.now(), s.loc)
	startDate := startOfDay(s.now(), s.loc).AddDate(0, 0, -(days - 1))

	return s.cashFlowRepo.GetDailyFlow(ctx, startDate, endDate)
}

func (s *dashboardService) GetCashFlowSummary(ctx context.Context, from, to time.Time) (*repository.CashFlowSummary, error) {
	start, end := s.period(from, to)
	return s.cashFlowRepo.GetSummary(ctx, start, end)
}

func (s *dashboardService) GetCommissionReport(ctx context.Context, from, to time.Time) ([]repository.StaffCommissionTotal, error) {
	start, end := s.period(from, to)
	return s.txRepo.GetCommissionsByStaff(ctx, start, end)
}

// period widens [from, to] to whole days.
func (s *dashboardService) period(from, to time.Time) (time.Time, time.Time) {
	start := startOfDay(from, s.loc)
	_, end := dayBounds(to, s.loc)
	return start, end
}
