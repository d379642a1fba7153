package service

import (
	"context"
	"errors"
	"fmt"

	"styllobarber-pdv/internal/model"
	"styllobarber-pdv/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

// CommissionAmount returns amount * pct / 100 rounded to cents.
func CommissionAmount(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred).Round(2)
}

type commissionCalculator struct {
	configs    repository.CommissionConfigRepository
	txRepo     repository.TransactionRepository
	defaultPct decimal.Decimal
	log        logrus.FieldLogger
}

func newCommissionCalculator(configs repository.CommissionConfigRepository, txRepo repository.TransactionRepository, defaultPct decimal.Decimal, log logrus.FieldLogger) *commissionCalculator {
	return &commissionCalculator{configs: configs, txRepo: txRepo, defaultPct: defaultPct, log: log}
}

// Percentage is the configured percentage of the staff member, or the default.
func (c *commissionCalculator) Percentage(ctx context.Context, staffID uuid.UUID) decimal.Decimal {
	cfg, err := c.configs.FindByStaffID(ctx, staffID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.log.WithError(err).WithField("staff_id", staffID).Warn("PDV.CommissionPercentage: using default")
		}
		return c.defaultPct
	}
	return cfg.Percentage
}

// Record writes the commission derived from a confirmed revenue transaction.
// It returns nil without writing when the commission rounds to zero.
func (c *commissionCalculator) Record(ctx context.Context, origin *model.Transaction, actorID string) (*model.Transaction, error) {
	if origin.Kind != model.KindRevenue || origin.StaffID == nil {
		return nil, nil
	}

	pct := c.Percentage(ctx, *origin.StaffID)
	amount := CommissionAmount(origin.Amount, pct)
	if !amount.IsPositive() {
		return nil, nil
	}

	originID := origin.ID
	staffID := *origin.StaffID
	commission := &model.Transaction{
		Kind:                model.KindCommission,
		Amount:              amount,
		Description:         "Comissão - " + origin.Description,
		Status:              model.TxConfirmed,
		OccurredAt:          origin.OccurredAt,
		StaffID:             &staffID,
		OriginTransactionID: &originID,
		Notes:               fmt.Sprintf("Comissão de %s%% referente à transação %s", pct.String(), originID),
	}
	commission.ID = uuid.New()
	commission.CreatedBy = actorID
	commission.UpdatedBy = actorID

	if err := c.txRepo.Create(ctx, commission); err != nil {
		return nil, err
	}
	return commission, nil
}
