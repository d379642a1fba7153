package repository

import (
	"context"
	"time"

	"styllobarber-pdv/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*model.Transaction, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.TransactionStatus, updatedBy string) error
	// CancelDerived cancels the commission rows generated from originID.
	CancelDerived(ctx context.Context, originID uuid.UUID, updatedBy string) error
	// LinkAppointment stores appointmentID on the transaction and appends a
	// non-empty note to its observations.
	LinkAppointment(ctx context.Context, id, appointmentID uuid.UUID, note string) error
	FindRecent(ctx context.Context, query HistoryQuery) ([]model.Transaction, error)
	GetKindTotals(ctx context.Context, startDate, endDate time.Time, staffID *uuid.UUID) ([]KindTotal, error)
	CountPaymentMethods(ctx context.Context, startDate, endDate time.Time, staffID *uuid.UUID) ([]PaymentMethodCount, error)
	GetCommissionsByStaff(ctx context.Context, startDate, endDate time.Time) ([]StaffCommissionTotal, error)
}

type HistoryQuery struct {
	Limit   int
	StaffID *uuid.UUID
	Kind    *model.TransactionKind
}

// KindTotal aggregates confirmed transactions of one kind.
type KindTotal struct {
	Kind  model.TransactionKind
	Total decimal.Decimal
	Count int64
}

type PaymentMethodCount struct {
	Method model.PaymentMethod
	Count  int64
}

type StaffCommissionTotal struct {
	StaffID   uuid.UUID       `json:"staff_id"`
	StaffName string          `json:"staff_name"`
	Total     decimal.Decimal `json:"total"`
	Count     int64           `json:"count"`
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) Create(ctx context.Context, tx *model.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *transactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	if err := r.db.WithContext(ctx).First(&transaction, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *transactionRepo) FindByIdempotencyKey(ctx context.Context, key string) (*model.Transaction, error) {
	var transaction model.Transaction
	if err := r.db.WithContext(ctx).First(&transaction, "idempotency_key = ?", key).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *transactionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.TransactionStatus, updatedBy string) error {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *transactionRepo) CancelDerived(ctx context.Context, originID uuid.UUID, updatedBy string) error {
	return r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("transacao_origem_id = ? AND status = ?", originID, model.TxConfirmed).
		Updates(map[string]interface{}{
			"status":     model.TxCancelled,
			"updated_by": updatedBy,
		}).Error
}

func (r *transactionRepo) LinkAppointment(ctx context.Context, id, appointmentID uuid.UUID, note string) error {
	updates := map[string]interface{}{"agendamento_id": appointmentID}
	if note != "" {
		updates["observacoes"] = gorm.Expr(
			"CASE WHEN observacoes IS NULL OR observacoes = '' THEN ? ELSE observacoes || ' | ' || ? END",
			note, note,
		)
	}
	return r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *transactionRepo) FindRecent(ctx context.Context, query HistoryQuery) ([]model.Transaction, error) {
	var transactions []model.Transaction

	q := r.db.WithContext(ctx).Order("data_transacao DESC, created_at DESC").Limit(query.Limit)
	if query.StaffID != nil {
		q = q.Where("barbeiro_id = ?", *query.StaffID)
	}
	if query.Kind != nil {
		q = q.Where("tipo = ?", *query.Kind)
	}

	err := q.Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) GetKindTotals(ctx context.Context, startDate, endDate time.Time, staffID *uuid.UUID) ([]KindTotal, error) {
	q := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("tipo, COALESCE(SUM(valor), 0), COUNT(*)").
		Where("status = ? AND data_transacao BETWEEN ? AND ?", model.TxConfirmed, startDate, endDate)
	if staffID != nil {
		q = q.Where("barbeiro_id = ?", *staffID)
	}

	rows, err := q.Group("tipo").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []KindTotal
	for rows.Next() {
		var t KindTotal
		if err := rows.Scan(&t.Kind, &t.Total, &t.Count); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// CountPaymentMethods counts confirmed revenue per payment method, in the
// order the database returns the groups.
func (r *transactionRepo) CountPaymentMethods(ctx context.Context, startDate, endDate time.Time, staffID *uuid.UUID) ([]PaymentMethodCount, error) {
	q := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("metodo_pagamento, COUNT(*)").
		Where("tipo = ? AND status = ? AND metodo_pagamento IS NOT NULL", model.KindRevenue, model.TxConfirmed).
		Where("data_transacao BETWEEN ? AND ?", startDate, endDate)
	if staffID != nil {
		q = q.Where("barbeiro_id = ?", *staffID)
	}

	rows, err := q.Group("metodo_pagamento").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []PaymentMethodCount
	for rows.Next() {
		var c PaymentMethodCount
		if err := rows.Scan(&c.Method, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *transactionRepo) GetCommissionsByStaff(ctx context.Context, startDate, endDate time.Time) ([]StaffCommissionTotal, error) {
	rows, err := r.db.WithContext(ctx).Table("transacoes_financeiras AS t").
		Select("t.barbeiro_id, COALESCE(p.full_name, ''), COALESCE(SUM(t.valor), 0), COUNT(*)").
		Joins("LEFT JOIN profiles p ON p.id = t.barbeiro_id").
		Where("t.tipo = ? AND t.status = ? AND t.deleted_at IS NULL", model.KindCommission, model.TxConfirmed).
		Where("t.data_transacao BETWEEN ? AND ?", startDate, endDate).
		Where("t.barbeiro_id IS NOT NULL").
		Group("t.barbeiro_id, p.full_name").
		Order("p.full_name ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []StaffCommissionTotal
	for rows.Next() {
		var t StaffCommissionTotal
		if err := rows.Scan(&t.StaffID, &t.StaffName, &t.Total, &t.Count); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
