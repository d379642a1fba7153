package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"styllobarber-pdv/internal/model"
	"styllobarber-pdv/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const paidNoteLayout = "02/01/2006 15:04"

// appointmentLinker ties revenue transactions to appointments: it marks a
// referenced appointment as paid, or records a retroactive one.
type appointmentLinker struct {
	appointments repository.AppointmentRepository
	services     repository.ServiceCatalogRepository
	txRepo       repository.TransactionRepository
	profiles     *profileResolver
	matcher      ServiceMatcher
	loc          *time.Location
}

// MarkPaid completes the appointment and appends the PDV payment note.
func (l *appointmentLinker) MarkPaid(ctx context.Context, appointmentID uuid.UUID, paidAt time.Time, actorID string) error {
	appointment, err := l.appointments.FindByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: appointment %s", ErrLookupMiss, appointmentID)
		}
		return err
	}

	appointment.Status = model.AppointmentCompleted
	appointment.PaidAt = &paidAt
	appointment.Notes = appendNote(appointment.Notes, "Pago via PDV em "+paidAt.In(l.loc).Format(paidNoteLayout))
	appointment.UpdatedBy = actorID

	return l.appointments.Update(ctx, appointment)
}

// Synthesize creates a completed appointment for a revenue transaction that
// had none, then links it back onto the transaction.
func (l *appointmentLinker) Synthesize(ctx context.Context, tx *model.Transaction, clientName, actorID string) (*model.Appointment, error) {
	if tx.StaffID == nil {
		return nil, fmt.Errorf("%w: staff", ErrLookupMiss)
	}

	clientID, err := l.profiles.ResolveClient(ctx, clientName)
	if err != nil {
		return nil, fmt.Errorf("client %q: %w", clientName, err)
	}

	services, err := l.services.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	svc, ok := pickService(l.matcher, tx.Description, services)
	if !ok {
		return nil, fmt.Errorf("%w: no active service", ErrLookupMiss)
	}

	paidAt := tx.OccurredAt
	appointment := &model.Appointment{
		ClientID:    *clientID,
		StaffID:     *tx.StaffID,
		ServiceID:   svc.ID,
		ScheduledAt: tx.OccurredAt,
		Status:      model.AppointmentCompleted,
		Amount:      tx.Amount,
		Notes:       fmt.Sprintf("Agendamento retroativo criado via PDV (transação %s)", tx.ID),
		PaidAt:      &paidAt,
	}
	appointment.ID = uuid.New()
	appointment.CreatedBy = actorID
	appointment.UpdatedBy = actorID

	if err := l.appointments.Create(ctx, appointment); err != nil {
		return nil, err
	}

	note := "Agendamento retroativo: " + appointment.ID.String()
	if err := l.txRepo.LinkAppointment(ctx, tx.ID, appointment.ID, note); err != nil {
		return appointment, fmt.Errorf("link appointment: %w", err)
	}
	appointmentID := appointment.ID
	tx.AppointmentID = &appointmentID
	tx.AppendNote(note)

	return appointment, nil
}

func appendNote(notes, note string) string {
	if notes == "" {
		return note
	}
	return notes + " | " + note
}
