package service

import (
	"context"
	"fmt"
	"time"

	"styllobarber-pdv/internal/model"
	"styllobarber-pdv/internal/repository"

	"github.com/google/uuid"
)

// ledgerWriter mirrors revenue and expense transactions into the cash flow table.
type ledgerWriter struct {
	repo repository.CashFlowRepository
	loc  *time.Location
}

func newLedgerWriter(repo repository.CashFlowRepository, loc *time.Location) *ledgerWriter {
	return &ledgerWriter{repo: repo, loc: loc}
}

func (w *ledgerWriter) Mirror(ctx context.Context, tx *model.Transaction, actorID string) (*model.CashFlowMovement, error) {
	direction, ok := model.DirectionFor(tx.Kind)
	if !ok {
		return nil, fmt.Errorf("no ledger direction for kind %s", tx.Kind)
	}

	movement := &model.CashFlowMovement{
		Direction:     direction,
		Amount:        tx.Amount,
		Description:   tx.Description,
		Category:      model.CashFlowOperational,
		Date:          startOfDay(tx.OccurredAt, w.loc),
		Status:        model.FlowRealized,
		TransactionID: tx.ID,
	}
	movement.ID = uuid.New()
	movement.CreatedBy = actorID
	movement.UpdatedBy = actorID

	if err := w.repo.Create(ctx, movement); err != nil {
		return nil, err
	}
	return movement, nil
}

func (w *ledgerWriter) Cancel(ctx context.Context, transactionID uuid.UUID, actorID string) error {
	return w.repo.UpdateStatusByTransaction(ctx, transactionID, model.FlowCancelled, actorID)
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// dayBounds returns the first and last instant of t's calendar day in loc.
func dayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	start := startOfDay(t, loc)
	end := time.Date(start.Year(), start.Month(), start.Day(), 23, 59, 59, 999999000, loc)
	return start, end
}
