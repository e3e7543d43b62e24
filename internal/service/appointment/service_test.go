package appointment_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romain-38530/rdv-planning/internal/apperr"
	"github.com/romain-38530/rdv-planning/internal/domain"
	"github.com/romain-38530/rdv-planning/internal/logx"
	"github.com/romain-38530/rdv-planning/internal/metrics"
	"github.com/romain-38530/rdv-planning/internal/repository"
	"github.com/romain-38530/rdv-planning/internal/routing"
	"github.com/romain-38530/rdv-planning/internal/service/appointment"
)

// memStore is an in-memory Store keeping the same copy semantics as the
// Postgres repository: callers never share memory with stored documents.
type memStore struct {
	mu    sync.Mutex
	items map[string]domain.AppointmentRequest
}

func newMemStore() *memStore {
	return &memStore{items: make(map[string]domain.AppointmentRequest)}
}

func (m *memStore) Insert(_ context.Context, a *domain.AppointmentRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[a.RequestID] = *a
	return nil
}

func (m *memStore) Get(_ context.Context, requestID string) (*domain.AppointmentRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[requestID]
	if !ok {
		return nil, nil
	}
	cp := a
	cp.Messages = append([]domain.Message(nil), a.Messages...)
	return &cp, nil
}

func (m *memStore) List(_ context.Context, f repository.AppointmentFilter) ([]domain.AppointmentRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.AppointmentRequest
	for _, a := range m.items {
		if f.OrderID != nil && a.OrderID != *f.OrderID {
			continue
		}
		if f.Status != nil && a.Status != *f.Status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *memStore) Pending(_ context.Context, organizationID, _ string) ([]domain.AppointmentRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.AppointmentRequest
	for _, a := range m.items {
		if a.Status != domain.AppointmentPending && a.Status != domain.AppointmentProposed {
			continue
		}
		if organizationID != "" && a.TargetOrganizationID != organizationID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *memStore) ByOrder(_ context.Context, orderID string) ([]domain.AppointmentRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.AppointmentRequest
	for _, a := range m.items {
		if a.OrderID == orderID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memStore) OpenByOrder(_ context.Context, orderID string) ([]domain.AppointmentRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.AppointmentRequest
	for _, a := range m.items {
		if a.OrderID == orderID &&
			(a.Status == domain.AppointmentPending || a.Status == domain.AppointmentProposed) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memStore) Update(_ context.Context, a *domain.AppointmentRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[a.RequestID]; !ok {
		return errors.New("appointment not found")
	}
	m.items[a.RequestID] = *a
	return nil
}

type stubClaimer struct {
	claimFn func(ctx context.Context, slotID, confirmedBy string, a *domain.AppointmentRequest) (*domain.Booking, error)
}

func (s *stubClaimer) Claim(ctx context.Context, slotID, confirmedBy string, a *domain.AppointmentRequest) (*domain.Booking, error) {
	if s.claimFn == nil {
		panic("Claim not expected in this test")
	}
	return s.claimFn(ctx, slotID, confirmedBy, a)
}

type stubCache struct {
	mu          sync.Mutex
	pending     map[string][]domain.AppointmentRequest
	invalidated []string
}

func newStubCache() *stubCache {
	return &stubCache{pending: make(map[string][]domain.AppointmentRequest)}
}

func (c *stubCache) GetPending(_ context.Context, organizationID, siteID string) ([]domain.AppointmentRequest, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, ok := c.pending[organizationID+"/"+siteID]
	return items, ok, nil
}

func (c *stubCache) SetPending(_ context.Context, organizationID, siteID string, items []domain.AppointmentRequest) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[organizationID+"/"+siteID] = items
	return nil
}

func (c *stubCache) InvalidatePending(_ context.Context, organizationID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, organizationID)
	for k := range c.pending {
		delete(c.pending, k)
	}
	return nil
}

var serviceNow = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

func newTestService(store appointment.Store, claimer appointment.SlotClaimer, opts ...appointment.Option) *appointment.Service {
	opts = append(opts, appointment.WithClock(func() time.Time { return serviceNow }))
	return appointment.NewService(store, claimer, time.Second, logx.Nop(), opts...)
}

func createInput() appointment.CreateInput {
	return appointment.CreateInput{
		OrderID:                "order-1",
		OrderReference:         "CMD-2025-001",
		Type:                   domain.TypeLoading,
		RequesterID:            "carrier-1",
		RequesterType:          domain.RequesterCarrier,
		CarrierName:            "Transports Petit",
		TargetOrganizationID:   "org-ind",
		TargetOrganizationName: "Acier Lorraine",
		TargetOrganizationType: domain.RecipientIndustrial,
	}
}

func orderData() *routing.OrderInfo {
	return &routing.OrderInfo{
		OrderID:          "order-1",
		OrganizationID:   "org-ind",
		OrganizationName: "Acier Lorraine",
		PickupSite: routing.SiteInfo{
			SiteID:           "site-pickup",
			SiteName:         "Usine Metz",
			OrganizationType: "industrial",
		},
	}
}

func TestCreate_AutoRoutesToIndustrial(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	svc := newTestService(store, &stubClaimer{})

	in := createInput()
	in.TargetOrganizationID = ""
	in.OrderData = orderData()

	a, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, domain.AppointmentPending, a.Status)
	assert.Equal(t, "org-ind", a.TargetOrganizationID)
	assert.Equal(t, domain.RecipientIndustrial, a.TargetOrganizationType)
	require.NotNil(t, a.RDVRouting)
	assert.Equal(t, "auto", a.RDVRouting.DeterminedBy)
	assert.NotEmpty(t, a.RDVRouting.RoutingReason)

	// Creation message plus routing announcement.
	require.Len(t, a.Messages, 2)
	assert.Equal(t, "Demande de rendez-vous creee", a.Messages[0].Content)
	assert.Contains(t, a.Messages[1].Content, "Acier Lorraine")
	assert.Equal(t, domain.SenderSystem, a.Messages[1].SenderType)

	stored, err := store.Get(context.Background(), a.RequestID)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestCreate_AutoRouteIncrementsRoutingCounter(t *testing.T) {
	t.Parallel()

	// The real counter vector, as wired by the container: a label mismatch
	// would panic inside Create.
	counter := metrics.NewRoutingDecisionsTotal()
	svc := newTestService(newMemStore(), &stubClaimer{}, appointment.WithRoutingCounter(counter))

	in := createInput()
	in.TargetOrganizationID = ""
	in.OrderData = orderData()

	a, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, a.RDVRouting)

	got := testutil.ToFloat64(counter.WithLabelValues("industrial", "auto"))
	assert.Equal(t, 1.0, got)
}

func TestCreate_ManualTarget(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemStore(), &stubClaimer{})

	a, err := svc.Create(context.Background(), createInput())
	require.NoError(t, err)

	require.NotNil(t, a.RDVRouting)
	assert.Equal(t, "manual", a.RDVRouting.DeterminedBy)
	assert.Equal(t, "org-ind", a.TargetOrganizationID)
	require.Len(t, a.Messages, 1)
}

func TestCreate_AmbiguousRoutingFallsBackToManualTarget(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemStore(), &stubClaimer{})

	in := createInput()
	od := orderData()
	od.OrganizationID = ""
	in.OrderData = od

	a, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "manual", a.RDVRouting.DeterminedBy)
	assert.Equal(t, "org-ind", a.TargetOrganizationID)
}

func TestCreate_AmbiguousRoutingWithoutManualTargetFails(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemStore(), &stubClaimer{})

	in := createInput()
	in.TargetOrganizationID = ""
	od := orderData()
	od.OrganizationID = ""
	in.OrderData = od

	_, err := svc.Create(context.Background(), in)
	require.ErrorIs(t, err, apperr.ErrRoutingAmbiguous)
}

func TestCreate_Invalid(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemStore(), &stubClaimer{})

	in := createInput()
	in.Type = "transfer"
	_, err := svc.Create(context.Background(), in)
	require.ErrorIs(t, err, apperr.ErrInvalid)

	in = createInput()
	in.RequesterID = ""
	_, err = svc.Create(context.Background(), in)
	require.ErrorIs(t, err, apperr.ErrInvalid)

	in = createInput()
	in.TargetOrganizationID = ""
	_, err = svc.Create(context.Background(), in)
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func proposeInput() appointment.ProposeInput {
	return appointment.ProposeInput{
		Date:       time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime:  "09:00",
		EndTime:    "10:00",
		DockID:     "dock-1",
		DockName:   "Quai 1",
		ProposedBy: "org-ind",
	}
}

func TestPropose(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	svc := newTestService(store, &stubClaimer{})

	created, err := svc.Create(context.Background(), createInput())
	require.NoError(t, err)

	a, err := svc.Propose(context.Background(), created.RequestID, proposeInput())
	require.NoError(t, err)

	assert.Equal(t, domain.AppointmentProposed, a.Status)
	require.NotNil(t, a.ProposedSlot)
	assert.Equal(t, "09:00", a.ProposedSlot.StartTime)
	assert.Equal(t, "10:00", a.ProposedSlot.EndTime)
	assert.Equal(t, "dock-1", a.ProposedSlot.DockID)
	require.NotNil(t, a.RespondedAt)

	last := a.Messages[len(a.Messages)-1]
	assert.Equal(t, domain.SenderSystem, last.SenderType)
	assert.Contains(t, last.Content, "10/06/2025")
	assert.Contains(t, last.Content, "09:00")
	assert.Contains(t, last.Content, "10:00")
}

func TestPropose_LastProposalWins(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemStore(), &stubClaimer{})

	created, err := svc.Create(context.Background(), createInput())
	require.NoError(t, err)

	_, err = svc.Propose(context.Background(), created.RequestID, proposeInput())
	require.NoError(t, err)

	second := proposeInput()
	second.StartTime = "14:00"
	second.EndTime = "15:00"
	a, err := svc.Propose(context.Background(), created.RequestID, second)
	require.NoError(t, err)

	// Only the latest proposal survives; the thread keeps both.
	assert.Equal(t, "14:00", a.ProposedSlot.StartTime)
	var proposals int
	for _, m := range a.Messages {
		if m.SenderType == domain.SenderSystem && len(m.Content) > 8 && m.Content[:8] == "Creneau " {
			proposals++
		}
	}
	assert.Equal(t, 2, proposals)
}

func TestPropose_WithProposerMessage(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemStore(), &stubClaimer{})

	created, err := svc.Create(context.Background(), createInput())
	require.NoError(t, err)

	in := proposeInput()
	in.Message = "Merci de confirmer rapidement"
	in.ProposerName = "Acier Lorraine"

	a, err := svc.Propose(context.Background(), created.RequestID, in)
	require.NoError(t, err)

	// The proposer's note precedes the system entry.
	n := len(a.Messages)
	assert.Equal(t, domain.SenderIndustrial, a.Messages[n-2].SenderType)
	assert.Equal(t, "Merci de confirmer rapidement", a.Messages[n-2].Content)
	assert.Equal(t, domain.SenderSystem, a.Messages[n-1].SenderType)
}

func TestPropose_NotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemStore(), &stubClaimer{})
	_, err := svc.Propose(context.Background(), "apt_missing", proposeInput())
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPropose_TerminalStateConflicts(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemStore(), &stubClaimer{})

	created, err := svc.Create(context.Background(), createInput())
	require.NoError(t, err)
	_, err = svc.Reject(context.Background(), created.RequestID, appointment.RejectInput{RejectedBy: "org-ind"})
	require.NoError(t, err)

	_, err = svc.Propose(context.Background(), created.RequestID, proposeInput())
	require.ErrorIs(t, err, apperr.ErrConflict)
}

func TestAccept_WithSlotClaim(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	booking := &domain.Booking{BookingID: "booking_1", SlotID: "slot-1", Status: domain.BookingConfirmed}
	claimer := &stubClaimer{
		claimFn: func(_ context.Context, slotID, confirmedBy string, a *domain.AppointmentRequest) (*domain.Booking, error) {
			require.Equal(t, "slot-1", slotID)
			require.Equal(t, "carrier-1", confirmedBy)
			return booking, nil
		},
	}
	svc := newTestService(store, claimer)

	created, err := svc.Create(context.Background(), createInput())
	require.NoError(t, err)
	_, err = svc.Propose(context.Background(), created.RequestID, proposeInput())
	require.NoError(t, err)

	a, err := svc.Accept(context.Background(), created.RequestID, appointment.AcceptInput{
		ConfirmedBy: "carrier-1",
		SlotID:      "slot-1",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.AppointmentAccepted, a.Status)
	require.NotNil(t, a.ConfirmedSlot)
	assert.Equal(t, "booking_1", a.ConfirmedSlot.BookingID)
	assert.Equal(t, "09:00", a.ConfirmedSlot.StartTime)
	assert.Equal(t, "Rendez-vous confirme", a.Messages[len(a.Messages)-1].Content)
}

func TestAccept_StaleSlotDegradesSilently(t *testing.T) {
	t.Parallel()

	claimer := &stubClaimer{
		claimFn: func(context.Context, string, string, *domain.AppointmentRequest) (*domain.Booking, error) {
			return nil, nil
		},
	}
	svc := newTestService(newMemStore(), claimer)

	created, err := svc.Create(context.Background(), createInput())
	require.NoError(t, err)
	_, err = svc.Propose(context.Background(), created.RequestID, proposeInput())
	require.NoError(t, err)

	a, err := svc.Accept(context.Background(), created.RequestID, appointment.AcceptInput{
		ConfirmedBy: "carrier-1",
		SlotID:      "slot-stale",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.AppointmentAccepted, a.Status)
	require.NotNil(t, a.ConfirmedSlot)
	assert.Empty(t, a.ConfirmedSlot.BookingID)
}

func TestAccept_WithoutProposalUsesPlaceholder(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemStore(), &stubClaimer{})

	created, err := svc.Create(context.Background(), createInput())
	require.NoError(t, err)

	a, err := svc.Accept(context.Background(), created.RequestID, appointment.AcceptInput{ConfirmedBy: "carrier-1"})
	require.NoError(t, err)

	require.NotNil(t, a.ConfirmedSlot)
	assert.Equal(t, "08:00", a.ConfirmedSlot.StartTime)
	assert.Equal(t, "09:00", a.ConfirmedSlot.EndTime)
	assert.Equal(t, serviceNow, a.ConfirmedSlot.Date)
}

func TestAccept_ClaimErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("storage down")
	claimer := &stubClaimer{
		claimFn: func(context.Context, string, string, *domain.AppointmentRequest) (*domain.Booking, error) {
			return nil, boom
		},
	}
	svc := newTestService(newMemStore(), claimer)

	created, err := svc.Create(context.Background(), createInput())
	require.NoError(t, err)

	_, err = svc.Accept(context.Background(), created.RequestID, appointment.AcceptInput{
		ConfirmedBy: "carrier-1",
		SlotID:      "slot-1",
	})
	require.ErrorIs(t, err, boom)
}

func TestReject(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemStore(), &stubClaimer{})

	created, err := svc.Create(context.Background(), createInput())
	require.NoError(t, err)

	a, err := svc.Reject(context.Background(), created.RequestID, appointment.RejectInput{
		RejectedBy: "org-ind",
		Reason:     "Quai indisponible",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.AppointmentRejected, a.Status)
	assert.Equal(t, "Quai indisponible", a.RejectionReason)
	require.NotNil(t, a.RespondedAt)
	assert.Equal(t, "Demande rejetee: Quai indisponible", a.Messages[len(a.Messages)-1].Content)
}

func TestCancel_DoesNotCheckStatusNorReleaseSlot(t *testing.T) {
	t.Parallel()

	booking := &domain.Booking{BookingID: "booking_1"}
	claimer := &stubClaimer{
		claimFn: func(context.Context, string, string, *domain.AppointmentRequest) (*domain.Booking, error) {
			return booking, nil
		},
	}
	svc := newTestService(newMemStore(), claimer)

	created, err := svc.Create(context.Background(), createInput())
	require.NoError(t, err)
	_, err = svc.Propose(context.Background(), created.RequestID, proposeInput())
	require.NoError(t, err)
	accepted, err := svc.Accept(context.Background(), created.RequestID, appointment.AcceptInput{
		ConfirmedBy: "carrier-1",
		SlotID:      "slot-1",
	})
	require.NoError(t, err)

	// Cancel goes through even from a terminal state, and the booking
	// reference stays in place: appointment cancellation never releases.
	a, err := svc.Cancel(context.Background(), created.RequestID)
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentCancelled, a.Status)
	require.NotNil(t, a.ConfirmedSlot)
	assert.Equal(t, accepted.ConfirmedSlot.BookingID, a.ConfirmedSlot.BookingID)
	assert.Equal(t, "Demande annulee", a.Messages[len(a.Messages)-1].Content)
}

func TestAddMessage_AllowedInTerminalState(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemStore(), &stubClaimer{})

	created, err := svc.Create(context.Background(), createInput())
	require.NoError(t, err)
	_, err = svc.Cancel(context.Background(), created.RequestID)
	require.NoError(t, err)

	a, err := svc.AddMessage(context.Background(), created.RequestID, appointment.MessageInput{
		SenderID:   "carrier-1",
		SenderName: "Transports Petit",
		SenderType: domain.SenderCarrier,
		Content:    "Bien note, merci",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bien note, merci", a.Messages[len(a.Messages)-1].Content)
}

func TestMessages_AppendOnly(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemStore(), &stubClaimer{})

	created, err := svc.Create(context.Background(), createInput())
	require.NoError(t, err)
	snapshot := append([]domain.Message(nil), created.Messages...)

	proposed, err := svc.Propose(context.Background(), created.RequestID, proposeInput())
	require.NoError(t, err)
	require.Greater(t, len(proposed.Messages), len(snapshot))
	for i, m := range snapshot {
		assert.Equal(t, m.ID, proposed.Messages[i].ID)
		assert.Equal(t, m.Content, proposed.Messages[i].Content)
		assert.Equal(t, m.Timestamp, proposed.Messages[i].Timestamp)
	}

	accepted, err := svc.Accept(context.Background(), created.RequestID, appointment.AcceptInput{ConfirmedBy: "carrier-1"})
	require.NoError(t, err)
	require.Greater(t, len(accepted.Messages), len(proposed.Messages))
}

func TestPending_CacheReadThrough(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	cache := newStubCache()
	svc := newTestService(store, &stubClaimer{}, appointment.WithCache(cache))

	created, err := svc.Create(context.Background(), createInput())
	require.NoError(t, err)
	// Create invalidates; first read misses and fills the cache.
	first, err := svc.Pending(context.Background(), "org-ind", "")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, created.RequestID, first[0].RequestID)

	_, ok, err := cache.GetPending(context.Background(), "org-ind", "")
	require.NoError(t, err)
	assert.True(t, ok)

	// A transition invalidates the cached list.
	_, err = svc.Reject(context.Background(), created.RequestID, appointment.RejectInput{RejectedBy: "org-ind"})
	require.NoError(t, err)
	_, ok, err = cache.GetPending(context.Background(), "org-ind", "")
	require.NoError(t, err)
	assert.False(t, ok)

	second, err := svc.Pending(context.Background(), "org-ind", "")
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestPending_EmptyOrganizationBypassesCache(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	cache := newStubCache()
	svc := newTestService(store, &stubClaimer{}, appointment.WithCache(cache))

	created, err := svc.Create(context.Background(), createInput())
	require.NoError(t, err)

	// Unscoped lists are never cached: invalidation is keyed per
	// organization and could not reach them.
	first, err := svc.Pending(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, first, 1)

	_, ok, err := cache.GetPending(context.Background(), "", "")
	require.NoError(t, err)
	assert.False(t, ok)

	// So a transition is visible on the very next unscoped read.
	_, err = svc.Reject(context.Background(), created.RequestID, appointment.RejectInput{RejectedBy: "org-ind"})
	require.NoError(t, err)

	second, err := svc.Pending(context.Background(), "", "")
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestCancelOpenForOrder(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	svc := newTestService(store, &stubClaimer{})

	first, err := svc.Create(context.Background(), createInput())
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), createInput())
	require.NoError(t, err)
	// An already accepted request is left alone.
	accepted, err := svc.Create(context.Background(), createInput())
	require.NoError(t, err)
	_, err = svc.Accept(context.Background(), accepted.RequestID, appointment.AcceptInput{ConfirmedBy: "carrier-1"})
	require.NoError(t, err)

	n, err := svc.CancelOpenForOrder(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, id := range []string{first.RequestID, second.RequestID} {
		a, err := svc.Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, domain.AppointmentCancelled, a.Status)
		assert.Contains(t, a.Messages[len(a.Messages)-1].Content, "annulation de la commande")
	}
	a, err := svc.Get(context.Background(), accepted.RequestID)
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentAccepted, a.Status)
}

func TestAutoRoute_Preview(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemStore(), &stubClaimer{})

	res, err := svc.AutoRoute(*orderData(), domain.TypeLoading)
	require.NoError(t, err)
	assert.Equal(t, domain.RecipientIndustrial, res.TargetOrganizationType)

	bad := *orderData()
	bad.OrganizationID = ""
	_, err = svc.AutoRoute(bad, domain.TypeLoading)
	require.ErrorIs(t, err, apperr.ErrRoutingAmbiguous)
}
