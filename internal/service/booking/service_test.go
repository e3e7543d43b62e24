package booking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romain-38530/rdv-planning/internal/apperr"
	"github.com/romain-38530/rdv-planning/internal/domain"
	"github.com/romain-38530/rdv-planning/internal/logx"
	"github.com/romain-38530/rdv-planning/internal/repository"
	"github.com/romain-38530/rdv-planning/internal/service/booking"
)

type stubStore struct {
	getFn      func(ctx context.Context, bookingID string) (*domain.Booking, error)
	checkInFn  func(ctx context.Context, bookingID string, at time.Time) (*domain.Booking, error)
	checkOutFn func(ctx context.Context, bookingID string, at time.Time) (*domain.Booking, error)
	cancelFn   func(ctx context.Context, bookingID, cancelledBy, reason string, at time.Time) (*domain.Booking, error)
}

func (s *stubStore) Get(ctx context.Context, bookingID string) (*domain.Booking, error) {
	if s.getFn == nil {
		return nil, nil
	}
	return s.getFn(ctx, bookingID)
}

func (s *stubStore) List(context.Context, repository.BookingFilter) ([]domain.Booking, error) {
	return nil, nil
}

func (s *stubStore) CheckIn(ctx context.Context, bookingID string, at time.Time) (*domain.Booking, error) {
	if s.checkInFn == nil {
		return nil, nil
	}
	return s.checkInFn(ctx, bookingID, at)
}

func (s *stubStore) CheckOut(ctx context.Context, bookingID string, at time.Time) (*domain.Booking, error) {
	if s.checkOutFn == nil {
		return nil, nil
	}
	return s.checkOutFn(ctx, bookingID, at)
}

func (s *stubStore) Cancel(ctx context.Context, bookingID, cancelledBy, reason string, at time.Time) (*domain.Booking, error) {
	if s.cancelFn == nil {
		return nil, nil
	}
	return s.cancelFn(ctx, bookingID, cancelledBy, reason, at)
}

type stubSlots struct {
	updated  []string
	released []string
	err      error
}

func (s *stubSlots) UpdateStatus(_ context.Context, slotID string, status domain.SlotStatus, _ time.Time) error {
	if s.err != nil {
		return s.err
	}
	s.updated = append(s.updated, slotID+":"+string(status))
	return nil
}

func (s *stubSlots) Release(_ context.Context, slotID string, _ time.Time) error {
	if s.err != nil {
		return s.err
	}
	s.released = append(s.released, slotID)
	return nil
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()

	svc := booking.NewService(&stubStore{}, &stubSlots{}, time.Second, logx.Nop())
	_, err := svc.Get(context.Background(), "booking_missing")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCheckIn(t *testing.T) {
	t.Parallel()

	store := &stubStore{
		checkInFn: func(_ context.Context, bookingID string, at time.Time) (*domain.Booking, error) {
			return &domain.Booking{BookingID: bookingID, Status: domain.BookingInProgress, ActualArrivalTime: &at}, nil
		},
	}
	slots := &stubSlots{}
	svc := booking.NewService(store, slots, time.Second, logx.Nop())

	b, err := svc.CheckIn(context.Background(), "booking_1")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingInProgress, b.Status)
	require.NotNil(t, b.ActualArrivalTime)
	assert.Empty(t, slots.updated, "checkin must not touch the slot")
}

func TestCheckOut_CompletesSlot(t *testing.T) {
	t.Parallel()

	store := &stubStore{
		checkOutFn: func(_ context.Context, bookingID string, at time.Time) (*domain.Booking, error) {
			return &domain.Booking{BookingID: bookingID, SlotID: "slot-1", Status: domain.BookingCompleted, ActualDepartureTime: &at}, nil
		},
	}
	slots := &stubSlots{}
	svc := booking.NewService(store, slots, time.Second, logx.Nop())

	b, err := svc.CheckOut(context.Background(), "booking_1")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, b.Status)
	require.Equal(t, []string{"slot-1:completed"}, slots.updated)
}

func TestCancel_ReleasesSlot(t *testing.T) {
	t.Parallel()

	store := &stubStore{
		cancelFn: func(_ context.Context, bookingID, cancelledBy, reason string, at time.Time) (*domain.Booking, error) {
			require.Equal(t, "carrier-1", cancelledBy)
			require.Equal(t, "Camion en panne", reason)
			return &domain.Booking{BookingID: bookingID, SlotID: "slot-1", Status: domain.BookingCancelled}, nil
		},
	}
	slots := &stubSlots{}
	svc := booking.NewService(store, slots, time.Second, logx.Nop())

	b, err := svc.Cancel(context.Background(), "booking_1", "carrier-1", "Camion en panne")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
	require.Equal(t, []string{"slot-1"}, slots.released)
}

func TestCancel_MissingBooking(t *testing.T) {
	t.Parallel()

	slots := &stubSlots{}
	svc := booking.NewService(&stubStore{}, slots, time.Second, logx.Nop())

	_, err := svc.Cancel(context.Background(), "booking_missing", "carrier-1", "")
	require.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Empty(t, slots.released)
}

func TestCheckOut_SlotErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("db down")
	store := &stubStore{
		checkOutFn: func(_ context.Context, bookingID string, at time.Time) (*domain.Booking, error) {
			return &domain.Booking{BookingID: bookingID, SlotID: "slot-1"}, nil
		},
	}
	svc := booking.NewService(store, &stubSlots{err: boom}, time.Second, logx.Nop())

	_, err := svc.CheckOut(context.Background(), "booking_1")
	require.ErrorIs(t, err, boom)
}
