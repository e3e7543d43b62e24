package booking

import (
	"context"
	"time"

	"github.com/romain-38530/rdv-planning/internal/domain"
	"github.com/romain-38530/rdv-planning/internal/repository"
)

// Store is the booking persistence surface used by the service.
type Store interface {
	Get(ctx context.Context, bookingID string) (*domain.Booking, error)
	List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, error)
	CheckIn(ctx context.Context, bookingID string, at time.Time) (*domain.Booking, error)
	CheckOut(ctx context.Context, bookingID string, at time.Time) (*domain.Booking, error)
	Cancel(ctx context.Context, bookingID, cancelledBy, reason string, at time.Time) (*domain.Booking, error)
}

// SlotStore mutates the slot tied to a booking on checkout/cancel.
type SlotStore interface {
	UpdateStatus(ctx context.Context, slotID string, status domain.SlotStatus, now time.Time) error
	Release(ctx context.Context, slotID string, now time.Time) error
}
