package orders

import (
	"context"
)

// AppointmentPort abstracts the subset of appointment service operations
// needed by Processor when handling order events
type AppointmentPort interface {
	CancelOpenForOrder(ctx context.Context, orderID string) (int, error)
}
