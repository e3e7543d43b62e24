// Package reservation converts an accepted appointment plus a chosen slot
// into an exclusive booking.
package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/romain-38530/rdv-planning/internal/domain"
	"github.com/romain-38530/rdv-planning/internal/logx"
)

// Finalizer claims slots on appointment acceptance. A stale slot (missing,
// blocked, already claimed) is not an error: the acceptance proceeds
// without a booking reference.
type Finalizer struct {
	slots     SlotStore
	bookings  BookingStore
	logger    logx.Logger
	conflicts prometheus.Counter
	now       func() time.Time
	newID     func() string
}

// Option customizes a Finalizer.
type Option func(*Finalizer)

// WithConflictCounter wires a counter incremented each time a claim is
// skipped because the slot was no longer available.
func WithConflictCounter(c prometheus.Counter) Option {
	return func(f *Finalizer) { f.conflicts = c }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(f *Finalizer) {
		if now != nil {
			f.now = now
		}
	}
}

// NewFinalizer creates a Finalizer.
func NewFinalizer(slots SlotStore, bookings BookingStore, logger logx.Logger, opts ...Option) *Finalizer {
	f := &Finalizer{
		slots:    slots,
		bookings: bookings,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() string { return "booking_" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Claim attempts to turn the slot into a confirmed booking for the given
// appointment. It returns nil without error when the slot does not exist
// or is no longer available. The slot's conditional status update is the
// linearization point: the booking row is inserted only after the claim
// has been won, so two concurrent claims can never both create a booking.
func (f *Finalizer) Claim(ctx context.Context, slotID, confirmedBy string, a *domain.AppointmentRequest) (*domain.Booking, error) {
	slot, err := f.slots.Get(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot == nil || slot.Status != domain.SlotAvailable {
		f.skip(slotID, slot)
		return nil, nil
	}

	now := f.now()
	booking := &domain.Booking{
		BookingID:          f.newID(),
		SlotID:             slot.SlotID,
		DockID:             slot.DockID,
		SiteID:             slot.SiteID,
		OrderID:            a.OrderID,
		OrderReference:     a.OrderReference,
		CarrierID:          a.RequesterID,
		CarrierName:        a.CarrierName,
		DriverName:         a.DriverName,
		DriverPhone:        a.DriverPhone,
		VehiclePlate:       a.VehiclePlate,
		Type:               a.Type,
		Status:             domain.BookingConfirmed,
		ScheduledDate:      slot.Date,
		ScheduledStartTime: slot.StartTime,
		ScheduledEndTime:   slot.EndTime,
		CreatedBy:          confirmedBy,
		ConfirmedBy:        confirmedBy,
		ConfirmedAt:        &now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	won, err := f.slots.ClaimAvailable(ctx, slotID, booking.BookingID, now)
	if err != nil {
		return nil, err
	}
	if !won {
		// Lost the race between the read above and the conditional update.
		f.skip(slotID, slot)
		return nil, nil
	}

	if err := f.bookings.Insert(ctx, booking); err != nil {
		return nil, fmt.Errorf("insert booking for slot %q: %w", slotID, err)
	}

	f.logger.Info("slot claimed",
		logx.String("event", "slot_claimed"),
		logx.String("slot_id", slotID),
		logx.String("booking_id", booking.BookingID),
		logx.String("request_id", a.RequestID),
	)
	return booking, nil
}

func (f *Finalizer) skip(slotID string, slot *domain.Slot) {
	if f.conflicts != nil {
		f.conflicts.Inc()
	}
	status := "missing"
	if slot != nil {
		status = string(slot.Status)
	}
	f.logger.Warn("slot unavailable at accept time, confirming without booking",
		logx.String("slot_id", slotID),
		logx.String("slot_status", status),
	)
}
