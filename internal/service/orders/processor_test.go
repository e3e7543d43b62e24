package orders_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/romain-38530/rdv-planning/internal/logx"
	"github.com/romain-38530/rdv-planning/internal/service/orders"
)

type stubAppointments struct {
	cancelFn func(ctx context.Context, orderID string) (int, error)
	calls    []string
}

func (s *stubAppointments) CancelOpenForOrder(ctx context.Context, orderID string) (int, error) {
	s.calls = append(s.calls, orderID)
	if s.cancelFn == nil {
		return 0, nil
	}
	return s.cancelFn(ctx, orderID)
}

func TestProcessor_Handle_CanceledPropagates(t *testing.T) {
	t.Parallel()

	for _, status := range []string{"canceled", "cancelled", "deleted", "  CANCELLED  "} {
		a := &stubAppointments{
			cancelFn: func(_ context.Context, orderID string) (int, error) {
				require.Equal(t, "order-1", orderID)
				return 2, nil
			},
		}
		p := orders.NewProcessor(a, logx.Nop())

		err := p.Handle(context.Background(), orders.Event{
			OrderID:   "order-1",
			Status:    status,
			CreatedAt: time.Now(),
		})
		require.NoError(t, err, "status %q", status)
		require.Len(t, a.calls, 1, "status %q", status)
	}
}

func TestProcessor_Handle_UnknownStatusSkipped(t *testing.T) {
	t.Parallel()

	a := &stubAppointments{}
	p := orders.NewProcessor(a, logx.Nop())

	for _, status := range []string{"created", "completed", "", "cooking"} {
		err := p.Handle(context.Background(), orders.Event{OrderID: "order-1", Status: status})
		require.NoError(t, err)
	}
	require.Empty(t, a.calls)
}

func TestProcessor_Handle_CancelErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("db down")
	a := &stubAppointments{
		cancelFn: func(context.Context, string) (int, error) { return 0, boom },
	}
	p := orders.NewProcessor(a, logx.Nop())

	err := p.Handle(context.Background(), orders.Event{OrderID: "order-1", Status: "canceled"})
	require.ErrorIs(t, err, boom)
}
