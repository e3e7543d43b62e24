package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/romain-38530/rdv-planning/internal/apperr"
	"github.com/romain-38530/rdv-planning/internal/domain"
	"github.com/romain-38530/rdv-planning/internal/logx"
	"github.com/romain-38530/rdv-planning/internal/repository"
)

// Service drives the booking lifecycle: arrival, departure, cancellation.
// Checkout marks the slot completed; cancellation releases it back to
// available. Appointment cancellation goes through a different path and
// deliberately touches neither.
type Service struct {
	store   Store
	slots   SlotStore
	timeout time.Duration
	logger  logx.Logger
	now     func() time.Time
}

func NewService(store Store, slots SlotStore, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		store:   store,
		slots:   slots,
		timeout: timeout,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *Service) Get(ctx context.Context, bookingID string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	b, err := s.store.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: booking %s", apperr.ErrNotFound, bookingID)
	}
	return b, nil
}

func (s *Service) List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.store.List(ctx, f)
}

// CheckIn records the carrier's arrival.
func (s *Service) CheckIn(ctx context.Context, bookingID string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	b, err := s.store.CheckIn(ctx, bookingID, s.now())
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: booking %s", apperr.ErrNotFound, bookingID)
	}
	s.logger.Info("booking checked in", logx.String("booking_id", bookingID))
	return b, nil
}

// CheckOut records the departure and completes the slot.
func (s *Service) CheckOut(ctx context.Context, bookingID string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	now := s.now()
	b, err := s.store.CheckOut(ctx, bookingID, now)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: booking %s", apperr.ErrNotFound, bookingID)
	}
	if b.SlotID != "" {
		if err := s.slots.UpdateStatus(ctx, b.SlotID, domain.SlotCompleted, now); err != nil {
			return nil, err
		}
	}
	s.logger.Info("booking checked out", logx.String("booking_id", bookingID))
	return b, nil
}

// Cancel cancels the booking and releases its slot.
func (s *Service) Cancel(ctx context.Context, bookingID, cancelledBy, reason string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	now := s.now()
	b, err := s.store.Cancel(ctx, bookingID, cancelledBy, reason, now)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: booking %s", apperr.ErrNotFound, bookingID)
	}
	if b.SlotID != "" {
		if err := s.slots.Release(ctx, b.SlotID, now); err != nil {
			return nil, err
		}
	}
	s.logger.Info("booking cancelled",
		logx.String("booking_id", bookingID),
		logx.String("cancelled_by", cancelledBy),
	)
	return b, nil
}
