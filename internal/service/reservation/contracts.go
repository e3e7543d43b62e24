package reservation

import (
	"context"
	"time"

	"github.com/romain-38530/rdv-planning/internal/domain"
)

// SlotStore is the subset of slot persistence the finalizer needs.
type SlotStore interface {
	Get(ctx context.Context, slotID string) (*domain.Slot, error)
	// ClaimAvailable must be an atomic conditional update: it succeeds for
	// exactly one caller when the slot status is available.
	ClaimAvailable(ctx context.Context, slotID, bookingID string, now time.Time) (bool, error)
}

// BookingStore is the subset of booking persistence the finalizer needs.
type BookingStore interface {
	Insert(ctx context.Context, b *domain.Booking) error
}
