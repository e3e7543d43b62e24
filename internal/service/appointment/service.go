// Package appointment implements the RDV request lifecycle:
// pending -> proposed -> accepted | rejected, with cancellation and an
// append-only negotiation thread auditing every transition.
package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/romain-38530/rdv-planning/internal/apperr"
	"github.com/romain-38530/rdv-planning/internal/domain"
	"github.com/romain-38530/rdv-planning/internal/logx"
	"github.com/romain-38530/rdv-planning/internal/repository"
	"github.com/romain-38530/rdv-planning/internal/routing"
)

// Service drives appointment request state transitions.
type Service struct {
	store            Store
	claimer          SlotClaimer
	cache            Cache
	logger           logx.Logger
	routingDecisions *prometheus.CounterVec
	operationTimeout time.Duration
	now              func() time.Time
	newID            func() string
}

// Option customizes a Service.
type Option func(*Service)

// WithCache wires the optional pending-list cache.
func WithCache(c Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithRoutingCounter wires a counter of automatic routing decisions,
// labeled by target organization type.
func WithRoutingCounter(c *prometheus.CounterVec) Option {
	return func(s *Service) { s.routingDecisions = c }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates an appointment Service.
func NewService(store Store, claimer SlotClaimer, timeout time.Duration, logger logx.Logger, opts ...Option) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	s := &Service{
		store:            store,
		claimer:          claimer,
		logger:           logger,
		operationTimeout: timeout,
		now:              func() time.Time { return time.Now().UTC() },
		newID:            uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// AutoRoute runs the routing engine without persisting anything. It is the
// explicit result-or-error half of the two-path routing API: callers decide
// whether apperr.ErrRoutingAmbiguous means failure or manual fallback.
func (s *Service) AutoRoute(order routing.OrderInfo, typ domain.AppointmentType) (routing.Result, error) {
	return routing.Decide(order, typ, s.now())
}

// Create registers a new appointment request in status pending. With
// OrderData present the routing engine picks the recipient; a routing
// failure falls back to the caller's manual target when one was supplied.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.AppointmentRequest, error) {
	if !in.Type.Valid() {
		return nil, fmt.Errorf("%w: appointment type %q", apperr.ErrInvalid, in.Type)
	}
	if in.RequesterID == "" {
		return nil, fmt.Errorf("%w: requester id is required", apperr.ErrInvalid)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := s.now()
	a := &domain.AppointmentRequest{
		RequestID:      "apt_" + s.newID(),
		OrderID:        in.OrderID,
		OrderReference: in.OrderReference,
		Type:           in.Type,
		Status:         domain.AppointmentPending,
		RequesterID:    in.RequesterID,
		RequesterType:  in.RequesterType,
		RequesterName:  in.RequesterName,
		CarrierName:    in.CarrierName,
		DriverName:     in.DriverName,
		DriverPhone:    in.DriverPhone,
		VehiclePlate:   in.VehiclePlate,
		PreferredDates: in.PreferredDates,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.appendSystemMessage(a, "Demande de rendez-vous creee")

	if err := s.route(a, in, now); err != nil {
		return nil, err
	}
	if a.TargetOrganizationID == "" {
		return nil, fmt.Errorf("%w: target organization is required", apperr.ErrInvalid)
	}

	if err := s.store.Insert(ctx, a); err != nil {
		return nil, err
	}
	s.invalidatePending(ctx, a.TargetOrganizationID)

	s.logger.Info("appointment created",
		logx.String("event", "appointment_created"),
		logx.String("request_id", a.RequestID),
		logx.String("order_id", a.OrderID),
		logx.String("type", string(a.Type)),
		logx.String("target_org", a.TargetOrganizationID),
		logx.String("determined_by", a.RDVRouting.DeterminedBy),
	)
	return a, nil
}

// route fills the target fields, automatically when order data is present.
func (s *Service) route(a *domain.AppointmentRequest, in CreateInput, now time.Time) error {
	if in.OrderData != nil {
		res, err := routing.Decide(*in.OrderData, in.Type, now)
		switch {
		case err == nil:
			a.TargetOrganizationID = res.TargetOrganizationID
			a.TargetOrganizationName = res.TargetOrganizationName
			a.TargetOrganizationType = res.TargetOrganizationType
			a.TargetSiteID = res.TargetSiteID
			a.TargetSiteName = res.TargetSiteName
			rdv := res.Routing
			a.RDVRouting = &rdv
			s.appendSystemMessage(a, routing.Message(res))
			if s.routingDecisions != nil {
				s.routingDecisions.WithLabelValues(string(res.TargetOrganizationType), res.Routing.DeterminedBy).Inc()
			}
			return nil
		case errors.Is(err, apperr.ErrRoutingAmbiguous) && in.TargetOrganizationID != "":
			// Recoverable: the caller supplied a manual target.
			s.logger.Warn("auto routing failed, falling back to manual target",
				logx.String("order_id", in.OrderID),
				logx.Err(err),
			)
		default:
			return err
		}
	}

	a.TargetOrganizationID = in.TargetOrganizationID
	a.TargetOrganizationName = in.TargetOrganizationName
	a.TargetOrganizationType = in.TargetOrganizationType
	a.TargetSiteID = in.TargetSiteID
	a.TargetSiteName = in.TargetSiteName
	a.RDVRouting = &domain.RDVRouting{
		DeterminedBy:  "manual",
		DeterminedAt:  now,
		RoutingReason: "Destinataire specifie manuellement",
	}
	return nil
}

// Propose records the recipient's slot proposal. The previous proposal, if
// any, is replaced wholesale; the thread keeps the history.
func (s *Service) Propose(ctx context.Context, requestID string, in ProposeInput) (*domain.AppointmentRequest, error) {
	if in.Date.IsZero() || in.StartTime == "" || in.EndTime == "" || in.ProposedBy == "" {
		return nil, fmt.Errorf("%w: date, times and proposer are required", apperr.ErrInvalid)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	a, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if a.Status.Terminal() {
		return nil, fmt.Errorf("%w: appointment %q is %s", apperr.ErrConflict, requestID, a.Status)
	}

	now := s.now()
	a.Status = domain.AppointmentProposed
	a.ProposedSlot = &domain.ProposedSlot{
		Date:       in.Date,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		DockID:     in.DockID,
		DockName:   in.DockName,
		ProposedBy: in.ProposedBy,
		ProposedAt: now,
	}
	a.RespondedAt = &now

	if in.Message != "" {
		name := in.ProposerName
		if name == "" {
			name = "Industriel"
		}
		s.appendMessage(a, in.ProposedBy, name, domain.SenderIndustrial, in.Message)
	}
	s.appendSystemMessage(a, fmt.Sprintf("Creneau propose: %s de %s a %s",
		in.Date.Format("02/01/2006"), in.StartTime, in.EndTime))

	if err := s.save(ctx, a, now); err != nil {
		return nil, err
	}
	return a, nil
}

// Accept confirms the appointment. When a slot id is supplied the
// reservation finalizer tries to claim it; a stale slot degrades silently
// to an acceptance without booking reference.
func (s *Service) Accept(ctx context.Context, requestID string, in AcceptInput) (*domain.AppointmentRequest, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	a, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if a.Status.Terminal() {
		return nil, fmt.Errorf("%w: appointment %q is %s", apperr.ErrConflict, requestID, a.Status)
	}

	var booking *domain.Booking
	if in.SlotID != "" {
		booking, err = s.claimer.Claim(ctx, in.SlotID, in.ConfirmedBy, a)
		if err != nil {
			return nil, err
		}
	}

	now := s.now()
	confirmed := domain.ConfirmedSlot{
		ConfirmedBy: in.ConfirmedBy,
		ConfirmedAt: now,
	}
	if a.ProposedSlot != nil {
		confirmed.Date = a.ProposedSlot.Date
		confirmed.StartTime = a.ProposedSlot.StartTime
		confirmed.EndTime = a.ProposedSlot.EndTime
		confirmed.DockID = a.ProposedSlot.DockID
	} else {
		// No proposal on record; should not happen when propose precedes
		// accept, kept for malformed callers.
		s.logger.Warn("accept without proposed slot, using placeholder window",
			logx.String("request_id", requestID),
		)
		confirmed.Date = now
		confirmed.StartTime = "08:00"
		confirmed.EndTime = "09:00"
	}
	if booking != nil {
		confirmed.BookingID = booking.BookingID
	}

	a.Status = domain.AppointmentAccepted
	a.ConfirmedSlot = &confirmed
	s.appendSystemMessage(a, "Rendez-vous confirme")

	if err := s.save(ctx, a, now); err != nil {
		return nil, err
	}

	s.logger.Info("appointment accepted",
		logx.String("event", "appointment_accepted"),
		logx.String("request_id", requestID),
		logx.String("booking_id", confirmed.BookingID),
	)
	return a, nil
}

// Reject declines the appointment with an optional reason.
func (s *Service) Reject(ctx context.Context, requestID string, in RejectInput) (*domain.AppointmentRequest, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	a, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if a.Status.Terminal() {
		return nil, fmt.Errorf("%w: appointment %q is %s", apperr.ErrConflict, requestID, a.Status)
	}

	now := s.now()
	a.Status = domain.AppointmentRejected
	a.RejectionReason = in.Reason
	a.RespondedAt = &now

	content := "Demande rejetee"
	if in.Reason != "" {
		content += ": " + in.Reason
	}
	s.appendSystemMessage(a, content)

	if err := s.save(ctx, a, now); err != nil {
		return nil, err
	}
	return a, nil
}

// Cancel marks the request cancelled. By design it does not check the
// current status and never releases a linked slot or booking; the booking
// surface has its own cancellation that does.
func (s *Service) Cancel(ctx context.Context, requestID string) (*domain.AppointmentRequest, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	a, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	a.Status = domain.AppointmentCancelled
	s.appendSystemMessage(a, "Demande annulee")

	if err := s.save(ctx, a, now); err != nil {
		return nil, err
	}
	return a, nil
}

// CancelOpenForOrder cancels every pending or proposed request attached to
// an order. Used when an order is cancelled upstream.
func (s *Service) CancelOpenForOrder(ctx context.Context, orderID string) (int, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	open, err := s.store.OpenByOrder(ctx, orderID)
	if err != nil {
		return 0, err
	}

	now := s.now()
	for i := range open {
		a := &open[i]
		a.Status = domain.AppointmentCancelled
		s.appendSystemMessage(a, "Demande annulee suite a l'annulation de la commande")
		if err := s.save(ctx, a, now); err != nil {
			return i, err
		}
	}
	if len(open) > 0 {
		s.logger.Info("open appointments cancelled for order",
			logx.String("order_id", orderID),
			logx.Int("count", len(open)),
		)
	}
	return len(open), nil
}

// AddMessage appends a message to the thread. Allowed in any state,
// terminal ones included.
func (s *Service) AddMessage(ctx context.Context, requestID string, in MessageInput) (*domain.AppointmentRequest, error) {
	if in.SenderID == "" || in.Content == "" {
		return nil, fmt.Errorf("%w: sender id and content are required", apperr.ErrInvalid)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	a, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}

	s.appendMessage(a, in.SenderID, in.SenderName, in.SenderType, in.Content)
	if err := s.save(ctx, a, s.now()); err != nil {
		return nil, err
	}
	return a, nil
}

// Get returns one appointment request.
func (s *Service) Get(ctx context.Context, requestID string) (*domain.AppointmentRequest, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.load(ctx, requestID)
}

// List returns requests matching the filter, newest first.
func (s *Service) List(ctx context.Context, f repository.AppointmentFilter) ([]domain.AppointmentRequest, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.store.List(ctx, f)
}

// Pending returns the open requests for an organization, oldest first,
// through the cache when one is wired.
func (s *Service) Pending(ctx context.Context, organizationID, siteID string) ([]domain.AppointmentRequest, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	// invalidation is keyed per organization, so lists not narrowed to one
	// would go stale; they skip the cache entirely
	useCache := s.cache != nil && organizationID != ""

	if useCache {
		items, ok, err := s.cache.GetPending(ctx, organizationID, siteID)
		if err != nil {
			s.logger.Warn("pending cache read failed", logx.Err(err))
		} else if ok {
			return items, nil
		}
	}

	items, err := s.store.Pending(ctx, organizationID, siteID)
	if err != nil {
		return nil, err
	}
	if useCache {
		if err := s.cache.SetPending(ctx, organizationID, siteID, items); err != nil {
			s.logger.Warn("pending cache write failed", logx.Err(err))
		}
	}
	return items, nil
}

// ByOrder returns all requests for an order, loading before unloading.
func (s *Service) ByOrder(ctx context.Context, orderID string) ([]domain.AppointmentRequest, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.store.ByOrder(ctx, orderID)
}

func (s *Service) load(ctx context.Context, requestID string) (*domain.AppointmentRequest, error) {
	a, err := s.store.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apperr.ErrNotFound
	}
	return a, nil
}

func (s *Service) save(ctx context.Context, a *domain.AppointmentRequest, now time.Time) error {
	a.UpdatedAt = now
	if err := s.store.Update(ctx, a); err != nil {
		return err
	}
	s.invalidatePending(ctx, a.TargetOrganizationID)
	return nil
}

func (s *Service) appendSystemMessage(a *domain.AppointmentRequest, content string) {
	s.appendMessage(a, "system", "Systeme", domain.SenderSystem, content)
}

func (s *Service) appendMessage(a *domain.AppointmentRequest, senderID, senderName string, senderType domain.SenderType, content string) {
	a.Messages = append(a.Messages, domain.Message{
		ID:         s.newID(),
		SenderID:   senderID,
		SenderName: senderName,
		SenderType: senderType,
		Content:    content,
		Timestamp:  s.now(),
	})
}

func (s *Service) invalidatePending(ctx context.Context, organizationID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePending(ctx, organizationID); err != nil {
		s.logger.Warn("pending cache invalidation failed",
			logx.String("organization_id", organizationID),
			logx.Err(err),
		)
	}
}
