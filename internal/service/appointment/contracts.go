package appointment

import (
	"context"

	"github.com/romain-38530/rdv-planning/internal/domain"
	"github.com/romain-38530/rdv-planning/internal/repository"
)

// Store abstracts appointment request persistence.
type Store interface {
	Insert(ctx context.Context, a *domain.AppointmentRequest) error
	Get(ctx context.Context, requestID string) (*domain.AppointmentRequest, error)
	List(ctx context.Context, f repository.AppointmentFilter) ([]domain.AppointmentRequest, error)
	Pending(ctx context.Context, organizationID, siteID string) ([]domain.AppointmentRequest, error)
	ByOrder(ctx context.Context, orderID string) ([]domain.AppointmentRequest, error)
	OpenByOrder(ctx context.Context, orderID string) ([]domain.AppointmentRequest, error)
	Update(ctx context.Context, a *domain.AppointmentRequest) error
}

// SlotClaimer finalizes a reservation on acceptance. A nil booking with a
// nil error means the slot was stale and the acceptance proceeds without
// a booking reference.
type SlotClaimer interface {
	Claim(ctx context.Context, slotID, confirmedBy string, a *domain.AppointmentRequest) (*domain.Booking, error)
}

// Cache is an optional read-through cache for hot pending-request lists.
// The service works with a nil Cache.
type Cache interface {
	GetPending(ctx context.Context, organizationID, siteID string) ([]domain.AppointmentRequest, bool, error)
	SetPending(ctx context.Context, organizationID, siteID string, items []domain.AppointmentRequest) error
	InvalidatePending(ctx context.Context, organizationID string) error
}
