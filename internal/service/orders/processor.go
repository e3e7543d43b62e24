package orders

import (
	"context"

	"github.com/romain-38530/rdv-planning/internal/logx"
)

// Processor processes order events coming off the bus
type Processor struct {
	appointments AppointmentPort
	factory      *actionFactory
	logger       logx.Logger
}

// NewProcessor creates a new orders.Processor
func NewProcessor(appointments AppointmentPort, logger logx.Logger) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	p := &Processor{
		appointments: appointments,
		logger:       logger,
	}
	p.factory = newActionFactory(p.onCanceled)
	return p
}

// Handle processes a single orders.Event. Statuses without an action
// are acknowledged and skipped.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	if p.factory == nil {
		return nil
	}
	fn, ok := p.factory.get(e.Status)
	if !ok {
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onCanceled(ctx context.Context, e Event) error {
	n, err := p.appointments.CancelOpenForOrder(ctx, e.OrderID)
	if err != nil {
		return err
	}
	if n > 0 {
		p.logger.Info("order cancellation propagated",
			logx.String("order_id", e.OrderID),
			logx.Int("appointments_cancelled", n),
		)
	}
	return nil
}
