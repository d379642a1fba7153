package repository

import (
	"context"
	"time"

	"styllobarber-pdv/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CashFlowRepository interface {
	Create(ctx context.Context, movement *model.CashFlowMovement) error
	FindByTransactionID(ctx context.Context, transactionID uuid.UUID) ([]model.CashFlowMovement, error)
	UpdateStatusByTransaction(ctx context.Context, transactionID uuid.UUID, status model.CashFlowStatus, updatedBy string) error
	GetDailyFlow(ctx context.Context, startDate, endDate time.Time) ([]DailyFlowData, error)
	GetSummary(ctx context.Context, startDate, endDate time.Time) (*CashFlowSummary, error)
}

// DailyFlowData is one point of the cash flow chart.
type DailyFlowData struct {
	Date    string          `json:"date"`
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
}

type CashFlowSummary struct {
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
	Balance decimal.Decimal `json:"balance"`
}

type cashFlowRepo struct {
	db *gorm.DB
}

func NewCashFlowRepo(db *gorm.DB) CashFlowRepository {
	return &cashFlowRepo{db}
}

func (r *cashFlowRepo) Create(ctx context.Context, movement *model.CashFlowMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

func (r *cashFlowRepo) FindByTransactionID(ctx context.Context, transactionID uuid.UUID) ([]model.CashFlowMovement, error) {
	var movements []model.CashFlowMovement
	err := r.db.WithContext(ctx).Where("transacao_id = ?", transactionID).Find(&movements).Error
	return movements, err
}

func (r *cashFlowRepo) UpdateStatusByTransaction(ctx context.Context, transactionID uuid.UUID, status model.CashFlowStatus, updatedBy string) error {
	return r.db.WithContext(ctx).Model(&model.CashFlowMovement{}).
		Where("transacao_id = ?", transactionID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
		}).Error
}

func (r *cashFlowRepo) GetDailyFlow(ctx context.Context, startDate, endDate time.Time) ([]DailyFlowData, error) {
	var results []DailyFlowData

	rows, err := r.db.WithContext(ctx).Model(&model.CashFlowMovement{}).
		Select(`
			TO_CHAR(data, 'YYYY-MM-DD') as date,
			COALESCE(SUM(CASE WHEN tipo = 'ENTRADA' THEN valor ELSE 0 END), 0) as inflow,
			COALESCE(SUM(CASE WHEN tipo = 'SAIDA' THEN valor ELSE 0 END), 0) as outflow
		`).
		Where("status = ? AND data BETWEEN ? AND ?", model.FlowRealized, startDate, endDate).
		Group("data").
		Order("data ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data DailyFlowData
		if err := rows.Scan(&data.Date, &data.Inflow, &data.Outflow); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, rows.Err()
}

func (r *cashFlowRepo) GetSummary(ctx context.Context, startDate, endDate time.Time) (*CashFlowSummary, error) {
	var summary CashFlowSummary

	err := r.db.WithContext(ctx).Model(&model.CashFlowMovement{}).
		Where("tipo = ? AND status = ? AND data BETWEEN ? AND ?", model.FlowIn, model.FlowRealized, startDate, endDate).
		Select("COALESCE(SUM(valor), 0)").
		Row().Scan(&summary.Inflow)
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Model(&model.CashFlowMovement{}).
		Where("tipo = ? AND status = ? AND data BETWEEN ? AND ?", model.FlowOut, model.FlowRealized, startDate, endDate).
		Select("COALESCE(SUM(valor), 0)").
		Row().Scan(&summary.Outflow)
	if err != nil {
		return nil, err
	}

	summary.Balance = summary.Inflow.Sub(summary.Outflow)
	return &summary, nil
}
