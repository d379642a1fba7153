package service

import (
	"context"
	"io"
	"time"

	"styllobarber-pdv/internal/model"
	"styllobarber-pdv/internal/repository"
	"styllobarber-pdv/internal/ws"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type mockTransactionRepo struct{ mock.Mock }

func (m *mockTransactionRepo) Create(ctx context.Context, tx *model.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *mockTransactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	args := m.Called(ctx, id)
	tx, _ := args.Get(0).(*model.Transaction)
	return tx, args.Error(1)
}

func (m *mockTransactionRepo) FindByIdempotencyKey(ctx context.Context, key string) (*model.Transaction, error) {
	args := m.Called(ctx, key)
	tx, _ := args.Get(0).(*model.Transaction)
	return tx, args.Error(1)
}

func (m *mockTransactionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.TransactionStatus, updatedBy string) error {
	return m.Called(ctx, id, status, updatedBy).Error(0)
}

func (m *mockTransactionRepo) CancelDerived(ctx context.Context, originID uuid.UUID, updatedBy string) error {
	return m.Called(ctx, originID, updatedBy).Error(0)
}

func (m *mockTransactionRepo) LinkAppointment(ctx context.Context, id, appointmentID uuid.UUID, note string) error {
	return m.Called(ctx, id, appointmentID, note).Error(0)
}

func (m *mockTransactionRepo) FindRecent(ctx context.Context, query repository.HistoryQuery) ([]model.Transaction, error) {
	args := m.Called(ctx, query)
	txs, _ := args.Get(0).([]model.Transaction)
	return txs, args.Error(1)
}

func (m *mockTransactionRepo) GetKindTotals(ctx context.Context, startDate, endDate time.Time, staffID *uuid.UUID) ([]repository.KindTotal, error) {
	args := m.Called(ctx, startDate, endDate, staffID)
	totals, _ := args.Get(0).([]repository.KindTotal)
	return totals, args.Error(1)
}

func (m *mockTransactionRepo) CountPaymentMethods(ctx context.Context, startDate, endDate time.Time, staffID *uuid.UUID) ([]repository.PaymentMethodCount, error) {
	args := m.Called(ctx, startDate, endDate, staffID)
	counts, _ := args.Get(0).([]repository.PaymentMethodCount)
	return counts, args.Error(1)
}

func (m *mockTransactionRepo) GetCommissionsByStaff(ctx context.Context, startDate, endDate time.Time) ([]repository.StaffCommissionTotal, error) {
	args := m.Called(ctx, startDate, endDate)
	totals, _ := args.Get(0).([]repository.StaffCommissionTotal)
	return totals, args.Error(1)
}

type mockCategoryRepo struct{ mock.Mock }

func (m *mockCategoryRepo) FindByNameAndKind(ctx context.Context, name string, kind model.TransactionKind) (*model.Category, error) {
	args := m.Called(ctx, name, kind)
	c, _ := args.Get(0).(*model.Category)
	return c, args.Error(1)
}

func (m *mockCategoryRepo) Create(ctx context.Context, category *model.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *mockCategoryRepo) FindAll(ctx context.Context, kind *model.TransactionKind) ([]model.Category, error) {
	args := m.Called(ctx, kind)
	cs, _ := args.Get(0).([]model.Category)
	return cs, args.Error(1)
}

type mockProfileRepo struct{ mock.Mock }

func (m *mockProfileRepo) FindByEmail(ctx context.Context, email string) (*model.Profile, error) {
	args := m.Called(ctx, email)
	p, _ := args.Get(0).(*model.Profile)
	return p, args.Error(1)
}

func (m *mockProfileRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Profile)
	return p, args.Error(1)
}

func (m *mockProfileRepo) FindActiveByName(ctx context.Context, name, role string) (*model.Profile, error) {
	args := m.Called(ctx, name, role)
	p, _ := args.Get(0).(*model.Profile)
	return p, args.Error(1)
}

func (m *mockProfileRepo) FindAll(ctx context.Context, role string) ([]model.Profile, error) {
	args := m.Called(ctx, role)
	ps, _ := args.Get(0).([]model.Profile)
	return ps, args.Error(1)
}

func (m *mockProfileRepo) Create(ctx context.Context, profile *model.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *mockProfileRepo) Update(ctx context.Context, profile *model.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *mockProfileRepo) Delete(ctx context.Context, id uuid.UUID, deletedBy string) error {
	return m.Called(ctx, id, deletedBy).Error(0)
}

func (m *mockProfileRepo) ReplacePrivileges(ctx context.Context, profile *model.Profile, privileges []model.Privilege) error {
	return m.Called(ctx, profile, privileges).Error(0)
}

func (m *mockProfileRepo) UpdateLastSeen(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockCommissionConfigRepo struct{ mock.Mock }

func (m *mockCommissionConfigRepo) FindByStaffID(ctx context.Context, staffID uuid.UUID) (*model.CommissionConfig, error) {
	args := m.Called(ctx, staffID)
	c, _ := args.Get(0).(*model.CommissionConfig)
	return c, args.Error(1)
}

func (m *mockCommissionConfigRepo) FindAll(ctx context.Context) ([]model.CommissionConfig, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]model.CommissionConfig)
	return cs, args.Error(1)
}

func (m *mockCommissionConfigRepo) Upsert(ctx context.Context, cfg *model.CommissionConfig) error {
	return m.Called(ctx, cfg).Error(0)
}

type mockCashFlowRepo struct{ mock.Mock }

func (m *mockCashFlowRepo) Create(ctx context.Context, movement *model.CashFlowMovement) error {
	return m.Called(ctx, movement).Error(0)
}

func (m *mockCashFlowRepo) FindByTransactionID(ctx context.Context, transactionID uuid.UUID) ([]model.CashFlowMovement, error) {
	args := m.Called(ctx, transactionID)
	ms, _ := args.Get(0).([]model.CashFlowMovement)
	return ms, args.Error(1)
}

func (m *mockCashFlowRepo) UpdateStatusByTransaction(ctx context.Context, transactionID uuid.UUID, status model.CashFlowStatus, updatedBy string) error {
	return m.Called(ctx, transactionID, status, updatedBy).Error(0)
}

func (m *mockCashFlowRepo) GetDailyFlow(ctx context.Context, startDate, endDate time.Time) ([]repository.DailyFlowData, error) {
	args := m.Called(ctx, startDate, endDate)
	d, _ := args.Get(0).([]repository.DailyFlowData)
	return d, args.Error(1)
}

func (m *mockCashFlowRepo) GetSummary(ctx context.Context, startDate, endDate time.Time) (*repository.CashFlowSummary, error) {
	args := m.Called(ctx, startDate, endDate)
	s, _ := args.Get(0).(*repository.CashFlowSummary)
	return s, args.Error(1)
}

type mockAppointmentRepo struct{ mock.Mock }

func (m *mockAppointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*model.Appointment)
	return a, args.Error(1)
}

func (m *mockAppointmentRepo) Create(ctx context.Context, appointment *model.Appointment) error {
	return m.Called(ctx, appointment).Error(0)
}

func (m *mockAppointmentRepo) Update(ctx context.Context, appointment *model.Appointment) error {
	return m.Called(ctx, appointment).Error(0)
}

func (m *mockAppointmentRepo) FindAll(ctx context.Context, filter repository.AppointmentFilter) ([]model.Appointment, error) {
	args := m.Called(ctx, filter)
	as, _ := args.Get(0).([]model.Appointment)
	return as, args.Error(1)
}

type mockServiceCatalogRepo struct{ mock.Mock }

func (m *mockServiceCatalogRepo) Create(ctx context.Context, service *model.Service) error {
	return m.Called(ctx, service).Error(0)
}

func (m *mockServiceCatalogRepo) FindActive(ctx context.Context) ([]model.Service, error) {
	args := m.Called(ctx)
	ss, _ := args.Get(0).([]model.Service)
	return ss, args.Error(1)
}

func (m *mockServiceCatalogRepo) FindAll(ctx context.Context) ([]model.Service, error) {
	args := m.Called(ctx)
	ss, _ := args.Get(0).([]model.Service)
	return ss, args.Error(1)
}

type mockPrivilegeRepo struct{ mock.Mock }

func (m *mockPrivilegeRepo) FindByCodes(codes []string) ([]model.Privilege, error) {
	args := m.Called(codes)
	ps, _ := args.Get(0).([]model.Privilege)
	return ps, args.Error(1)
}

func (m *mockPrivilegeRepo) FindAll() ([]model.Privilege, error) {
	args := m.Called()
	ps, _ := args.Get(0).([]model.Privilege)
	return ps, args.Error(1)
}

func (m *mockPrivilegeRepo) SeedDefaults() error {
	return m.Called().Error(0)
}

type mockRoleRepo struct{ mock.Mock }

func (m *mockRoleRepo) FindAll() ([]model.Role, error) {
	args := m.Called()
	rs, _ := args.Get(0).([]model.Role)
	return rs, args.Error(1)
}

func (m *mockRoleRepo) FindByCode(code string) (*model.Role, error) {
	args := m.Called(code)
	r, _ := args.Get(0).(*model.Role)
	return r, args.Error(1)
}

func (m *mockRoleRepo) SeedDefaults() error {
	return m.Called().Error(0)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Publish(event ws.Event) bool {
	return m.Called(event).Bool(0)
}
