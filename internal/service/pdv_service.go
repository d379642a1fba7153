package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"styllobarber-pdv/internal/logging"
	"styllobarber-pdv/internal/model"
	"styllobarber-pdv/internal/repository"
	"styllobarber-pdv/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
	staffPlaceholder    = "Barbeiro"
)

// FallbackCommissionPct applies to staff without a comissoes_config row when
// PDVOptions leaves DefaultCommissionPct unset.
var FallbackCommissionPct = decimal.NewFromInt(40)

// PDVService records quick point-of-sale transactions and their side effects.
// Only the primary insert can fail a request; commission, appointment and
// ledger writes are best-effort and only logged.
type PDVService interface {
	RecordTransaction(ctx context.Context, req *RecordTransactionRequest, actorID string) (uuid.UUID, error)
	CancelTransaction(ctx context.Context, id uuid.UUID, actorID string) error
	ValidateTransaction(req *RecordTransactionRequest) ValidationResult
	GetRecentHistory(ctx context.Context, limit int, filter HistoryFilter) ([]HistoryEntry, error)
	GetDailyStats(ctx context.Context, filter StatsFilter) (*DailyStats, error)
	// Saving reports whether a RecordTransaction call is in flight.
	Saving() bool
}

type PDVRepositories struct {
	Transactions repository.TransactionRepository
	Categories   repository.CategoryRepository
	Profiles     repository.ProfileRepository
	Commissions  repository.CommissionConfigRepository
	CashFlow     repository.CashFlowRepository
	Appointments repository.AppointmentRepository
	Services     repository.ServiceCatalogRepository
}

type PDVOptions struct {
	// DefaultCommissionPct of zero means FallbackCommissionPct. A 0% staff
	// member is configured through comissoes_config.
	DefaultCommissionPct decimal.Decimal
	Location             *time.Location
	Matcher              ServiceMatcher
	Notifier             Notifier
	Now                  func() time.Time
}

type HistoryFilter struct {
	StaffID *uuid.UUID
	Kind    *model.TransactionKind
}

// HistoryEntry is a transaction decorated for the history list. The labels
// come from the kind and a fixed staff placeholder, not from joined rows.
type HistoryEntry struct {
	model.Transaction
	CategoryLabel string `json:"category_label"`
	StaffLabel    string `json:"staff_label,omitempty"`
}

type StatsFilter struct {
	StaffID *uuid.UUID
	// Day selects the calendar day; nil means today.
	Day *time.Time
}

type DailyStats struct {
	Date             string               `json:"date"`
	TotalIn          decimal.Decimal      `json:"total_in"`
	TotalOut         decimal.Decimal      `json:"total_out"`
	Net              decimal.Decimal      `json:"net"`
	Count            int64                `json:"count"`
	TopPaymentMethod *model.PaymentMethod `json:"top_payment_method"`
}

type pdvService struct {
	txRepo       repository.TransactionRepository
	categories   *categoryResolver
	profiles     *profileResolver
	commissions  *commissionCalculator
	appointments *appointmentLinker
	ledger       *ledgerWriter
	notifier     Notifier
	loc          *time.Location
	now          func() time.Time
	log          logrus.FieldLogger
	inFlight     atomic.Int64
}

func NewPDVService(repos PDVRepositories, opts PDVOptions, log logrus.FieldLogger) PDVService {
	if opts.DefaultCommissionPct.IsZero() {
		opts.DefaultCommissionPct = FallbackCommissionPct
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Matcher == nil {
		opts.Matcher = SubstringMatcher{}
	}
	if opts.Notifier == nil {
		opts.Notifier = nopNotifier{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	profiles := newProfileResolver(repos.Profiles, log)
	return &pdvService{
		txRepo:      repos.Transactions,
		categories:  newCategoryResolver(repos.Categories, log),
		profiles:    profiles,
		commissions: newCommissionCalculator(repos.Commissions, repos.Transactions, opts.DefaultCommissionPct, log),
		appointments: &appointmentLinker{
			appointments: repos.Appointments,
			services:     repos.Services,
			txRepo:       repos.Transactions,
			profiles:     profiles,
			matcher:      opts.Matcher,
			loc:          opts.Location,
		},
		ledger:   newLedgerWriter(repos.CashFlow, opts.Location),
		notifier: opts.Notifier,
		loc:      opts.Location,
		now:      opts.Now,
		log:      log,
	}
}

func (s *pdvService) Saving() bool {
	return s.inFlight.Load() > 0
}

func (s *pdvService) ValidateTransaction(req *RecordTransactionRequest) ValidationResult {
	return ValidateTransaction(req)
}

func (s *pdvService) RecordTransaction(ctx context.Context, req *RecordTransactionRequest, actorID string) (uuid.UUID, error) {
	s.inFlight.Add(1)
	defer s.inFlight.Add(-1)

	logData := logging.NewLogData(s.log)

	if result := ValidateTransaction(req); !result.Valid {
		return uuid.Nil, &ValidationError{Errors: result.Errors}
	}

	var idempotencyKey *string
	if key := strings.TrimSpace(req.IdempotencyKey); key != "" {
		existing, err := s.txRepo.FindByIdempotencyKey(ctx, key)
		if err == nil {
			logData.AddData("transaction_id", existing.ID)
			logData.AddData("idempotent_replay", true)
			logData.Log().Info("PDV.RecordTransaction")
			return existing.ID, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.WithError(err).Warn("PDV.RecordTransaction: idempotency lookup")
		}
		idempotencyKey = &key
	}

	stopResolve := logData.AddTiming("resolve")
	categoryID := s.categories.Resolve(ctx, req.Category, req.Kind, actorID)
	staffID := s.profiles.ResolveStaff(ctx, req.StaffName)
	stopResolve()

	occurredAt := s.now()
	if req.OccurredAt != nil && !req.OccurredAt.IsZero() {
		occurredAt = *req.OccurredAt
	}

	tx := &model.Transaction{
		Kind:           req.Kind,
		Amount:         req.Amount,
		Description:    strings.TrimSpace(req.Description),
		PaymentMethod:  req.PaymentMethod,
		Status:         model.TxConfirmed,
		OccurredAt:     occurredAt,
		CategoryID:     categoryID,
		StaffID:        staffID,
		Notes:          strings.TrimSpace(req.Notes),
		IdempotencyKey: idempotencyKey,
	}
	tx.ID = uuid.New()
	tx.CreatedBy = actorID
	tx.UpdatedBy = actorID

	stopInsert := logData.AddTiming("insert")
	err := s.txRepo.Create(ctx, tx)
	stopInsert()
	if err != nil {
		logData.Log().WithError(err).Error("PDV.RecordTransaction")
		return uuid.Nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	logData.AddData("transaction_id", tx.ID)
	logData.AddData("kind", tx.Kind)
	logData.AddData("amount", tx.Amount.StringFixed(2))
	log := s.log.WithField("transaction_id", tx.ID)

	if tx.Kind == model.KindRevenue && tx.StaffID != nil {
		stop := logData.AddTiming("commission")
		commission, err := s.commissions.Record(ctx, tx, actorID)
		stop()
		if err != nil {
			log.WithError(err).Warn("PDV.Commission")
		} else if commission != nil {
			logData.AddData("commission_amount", commission.Amount.StringFixed(2))
		}
	}

	if tx.Kind == model.KindRevenue {
		stop := logData.AddTiming("appointment")
		s.linkAppointment(ctx, tx, req, actorID, log)
		stop()
	}

	stopLedger := logData.AddTiming("ledger")
	if _, err := s.ledger.Mirror(ctx, tx, actorID); err != nil {
		log.WithError(err).Warn("PDV.Ledger")
	}
	stopLedger()

	s.notifier.Publish(ws.Event{
		Type: ws.EventTransactionRecorded,
		Payload: map[string]interface{}{
			"transaction_id": tx.ID,
			"kind":           tx.Kind,
			"amount":         tx.Amount,
			"payment_method": tx.PaymentMethod,
			"staff_id":       tx.StaffID,
			"actor_id":       actorID,
		},
	})

	logData.Log().Info("PDV.RecordTransaction")
	return tx.ID, nil
}

func (s *pdvService) linkAppointment(ctx context.Context, tx *model.Transaction, req *RecordTransactionRequest, actorID string, log logrus.FieldLogger) {
	// The appointment id is only stored once the appointment is known to
	// exist, agendamento_id is a foreign key.
	if req.AppointmentID != nil {
		appointmentID := *req.AppointmentID
		if err := s.appointments.MarkPaid(ctx, appointmentID, s.now(), actorID); err != nil {
			log.WithError(err).WithField("appointment_id", appointmentID).Warn("PDV.Appointment: mark paid")
			return
		}
		if err := s.txRepo.LinkAppointment(ctx, tx.ID, appointmentID, ""); err != nil {
			log.WithError(err).WithField("appointment_id", appointmentID).Warn("PDV.Appointment: link")
			return
		}
		tx.AppointmentID = &appointmentID
		return
	}

	if strings.TrimSpace(req.ClientName) == "" || tx.StaffID == nil {
		return
	}
	appointment, err := s.appointments.Synthesize(ctx, tx, req.ClientName, actorID)
	if err != nil {
		log.WithError(err).Warn("PDV.Appointment: retroactive")
		return
	}
	log.WithField("appointment_id", appointment.ID).Info("PDV.Appointment: retroactive created")
}

func (s *pdvService) CancelTransaction(ctx context.Context, id uuid.UUID, actorID string) error {
	tx, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTransactionNotFound
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if tx.Status == model.TxCancelled {
		return ErrTransactionAlreadyCancelled
	}

	if err := s.txRepo.UpdateStatus(ctx, id, model.TxCancelled, actorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTransactionNotFound
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	log := s.log.WithField("transaction_id", id)
	if err := s.ledger.Cancel(ctx, id, actorID); err != nil {
		log.WithError(err).Warn("PDV.Cancel: ledger")
	}
	if err := s.txRepo.CancelDerived(ctx, id, actorID); err != nil {
		log.WithError(err).Warn("PDV.Cancel: commissions")
	}

	s.notifier.Publish(ws.Event{
		Type: ws.EventTransactionCancelled,
		Payload: map[string]interface{}{
			"transaction_id": id,
			"kind":           tx.Kind,
			"amount":         tx.Amount,
			"actor_id":       actorID,
		},
	})

	log.WithField("actor_id", actorID).Info("PDV.CancelTransaction")
	return nil
}

func clampHistoryLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		return MaxHistoryLimit
	default:
		return limit
	}
}

func (s *pdvService) GetRecentHistory(ctx context.Context, limit int, filter HistoryFilter) ([]HistoryEntry, error) {
	transactions, err := s.txRepo.FindRecent(ctx, repository.HistoryQuery{
		Limit:   clampHistoryLimit(limit),
		StaffID: filter.StaffID,
		Kind:    filter.Kind,
	})
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, len(transactions))
	for i, tx := range transactions {
		entries[i] = HistoryEntry{
			Transaction:   tx,
			CategoryLabel: tx.Kind.Label(),
		}
		if tx.StaffID != nil {
			entries[i].StaffLabel = staffPlaceholder
		}
	}
	return entries, nil
}

func (s *pdvService) GetDailyStats(ctx context.Context, filter StatsFilter) (*DailyStats, error) {
	day := s.now()
	if filter.Day != nil {
		day = *filter.Day
	}
	start, end := dayBounds(day, s.loc)

	totals, err := s.txRepo.GetKindTotals(ctx, start, end, filter.StaffID)
	if err != nil {
		return nil, err
	}
	methods, err := s.txRepo.CountPaymentMethods(ctx, start, end, filter.StaffID)
	if err != nil {
		return nil, err
	}

	stats := &DailyStats{
		Date:     start.Format("2006-01-02"),
		TotalIn:  decimal.Zero,
		TotalOut: decimal.Zero,
	}
	for _, t := range totals {
		switch t.Kind {
		case model.KindRevenue:
			stats.TotalIn = stats.TotalIn.Add(t.Total)
			stats.Count += t.Count
		case model.KindExpense:
			stats.TotalOut = stats.TotalOut.Add(t.Total)
			stats.Count += t.Count
		}
	}
	stats.Net = stats.TotalIn.Sub(stats.TotalOut)
	stats.TopPaymentMethod = topPaymentMethod(methods)

	return stats, nil
}

// topPaymentMethod picks the most frequent method; ties go to the lexically
// smaller code so the answer does not depend on query order.
func topPaymentMethod(counts []repository.PaymentMethodCount) *model.PaymentMethod {
	var top *model.PaymentMethod
	var topCount int64
	for _, c := range counts {
		if c.Count <= 0 {
			continue
		}
		if top == nil || c.Count > topCount || (c.Count == topCount && c.Method < *top) {
			method := c.Method
			top = &method
			topCount = c.Count
		}
	}
	return top
}
