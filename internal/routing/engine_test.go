package routing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romain-38530/rdv-planning/internal/apperr"
	"github.com/romain-38530/rdv-planning/internal/domain"
	"github.com/romain-38530/rdv-planning/internal/routing"
)

var testNow = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

func baseOrder() routing.OrderInfo {
	return routing.OrderInfo{
		OrderID:          "order-1",
		OrderReference:   "CMD-2025-001",
		OrganizationID:   "org-ind",
		OrganizationName: "Acier Lorraine",
		PickupSite: routing.SiteInfo{
			SiteID:           "site-pickup",
			SiteName:         "Usine Metz",
			OrganizationID:   "org-ind",
			OrganizationType: "industrial",
		},
		DeliverySite: routing.SiteInfo{
			SiteID:           "site-delivery",
			SiteName:         "Plateforme Lyon",
			OrganizationID:   "org-dest",
			OrganizationType: "recipient",
		},
	}
}

func delegation(ops ...string) *routing.DelegatedLogistics {
	return &routing.DelegatedLogistics{
		PartnerID:         "org-3pl",
		PartnerName:       "TransLog Services",
		PartnerType:       "3PL",
		ManagedOperations: ops,
		IsActive:          true,
	}
}

func TestDecide_LoadingDefaultIndustrial(t *testing.T) {
	t.Parallel()

	res, err := routing.Decide(baseOrder(), domain.TypeLoading, testNow)
	require.NoError(t, err)

	assert.Equal(t, "org-ind", res.TargetOrganizationID)
	assert.Equal(t, domain.RecipientIndustrial, res.TargetOrganizationType)
	assert.Equal(t, "site-pickup", res.TargetSiteID)
	assert.Equal(t, "auto", res.Routing.DeterminedBy)
	assert.Equal(t, "Chargement chez le donneur d'ordre", res.Routing.RoutingReason)
	assert.Equal(t, testNow, res.Routing.DeterminedAt)
}

func TestDecide_LoadingSupplierWithDelegateRoutesToLogistician(t *testing.T) {
	t.Parallel()

	order := baseOrder()
	order.PickupSite.OrganizationType = "supplier"
	order.Supplier = &routing.SupplierInfo{
		SupplierID:     "org-sup",
		SupplierName:   "Fonderie Nord",
		SupplierSiteID: "site-sup",
	}
	order.DelegatedLogistics = delegation("pickup")

	res, err := routing.Decide(order, domain.TypeLoading, testNow)
	require.NoError(t, err)

	// The delegate wins over both the supplier and the industrial.
	assert.Equal(t, "org-3pl", res.TargetOrganizationID)
	assert.Equal(t, domain.RecipientLogistician, res.TargetOrganizationType)
	assert.Equal(t, "site-sup", res.TargetSiteID)
	assert.Equal(t, "org-sup", res.Routing.SupplierID)
	assert.Equal(t, "org-3pl", res.Routing.DelegatedLogisticsID)
	assert.Contains(t, res.Routing.RoutingReason, "fournisseur")
}

func TestDecide_LoadingSupplierWithoutDelegateRoutesToSupplier(t *testing.T) {
	t.Parallel()

	order := baseOrder()
	order.PickupSite.OrganizationType = "supplier"
	order.Supplier = &routing.SupplierInfo{
		SupplierID:     "org-sup",
		SupplierName:   "Fonderie Nord",
		SupplierSiteID: "site-sup",
	}

	res, err := routing.Decide(order, domain.TypeLoading, testNow)
	require.NoError(t, err)

	assert.Equal(t, "org-sup", res.TargetOrganizationID)
	assert.Equal(t, domain.RecipientSupplier, res.TargetOrganizationType)
	assert.Equal(t, "Fonderie Nord", res.TargetOrganizationName)
}

func TestDecide_LoadingDelegatedPickup(t *testing.T) {
	t.Parallel()

	for _, ops := range [][]string{{"pickup"}, {"both"}, {"delivery", "pickup"}} {
		order := baseOrder()
		order.DelegatedLogistics = delegation(ops...)

		res, err := routing.Decide(order, domain.TypeLoading, testNow)
		require.NoError(t, err)
		assert.Equal(t, domain.RecipientLogistician, res.TargetOrganizationType, "ops=%v", ops)
		assert.Equal(t, "org-3pl", res.TargetOrganizationID)
	}
}

func TestDecide_LoadingDelegationNotCoveringPickupIgnored(t *testing.T) {
	t.Parallel()

	order := baseOrder()
	order.DelegatedLogistics = delegation("delivery")

	res, err := routing.Decide(order, domain.TypeLoading, testNow)
	require.NoError(t, err)
	assert.Equal(t, domain.RecipientIndustrial, res.TargetOrganizationType)
}

func TestDecide_InactiveDelegationIgnored(t *testing.T) {
	t.Parallel()

	order := baseOrder()
	order.DelegatedLogistics = delegation("both")
	order.DelegatedLogistics.IsActive = false

	res, err := routing.Decide(order, domain.TypeLoading, testNow)
	require.NoError(t, err)
	assert.Equal(t, domain.RecipientIndustrial, res.TargetOrganizationType)
}

func TestDecide_UnloadingDelegatedDelivery(t *testing.T) {
	t.Parallel()

	order := baseOrder()
	order.DeliverySite.OrganizationType = "industrial"
	order.DelegatedLogistics = delegation("delivery")

	res, err := routing.Decide(order, domain.TypeUnloading, testNow)
	require.NoError(t, err)
	assert.Equal(t, domain.RecipientLogistician, res.TargetOrganizationType)
	assert.Equal(t, "site-delivery", res.TargetSiteID)
	assert.Equal(t, "Livraison deleguee au logisticien 3PL", res.Routing.RoutingReason)
}

func TestDecide_UnloadingRecipientManagedSite(t *testing.T) {
	t.Parallel()

	order := baseOrder()
	order.DeliverySite.ManagedBy = "org-dest"

	res, err := routing.Decide(order, domain.TypeUnloading, testNow)
	require.NoError(t, err)
	assert.Equal(t, "org-dest", res.TargetOrganizationID)
	assert.Equal(t, domain.RecipientIndustrial, res.TargetOrganizationType)
}

func TestDecide_UnloadingDefaultIndustrial(t *testing.T) {
	t.Parallel()

	res, err := routing.Decide(baseOrder(), domain.TypeUnloading, testNow)
	require.NoError(t, err)
	assert.Equal(t, "org-ind", res.TargetOrganizationID)
	assert.Equal(t, "Livraison geree par le donneur d'ordre", res.Routing.RoutingReason)
}

func TestDecide_Ambiguous(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		order routing.OrderInfo
		typ   domain.AppointmentType
	}{
		{
			name: "missing donor organization",
			order: func() routing.OrderInfo {
				o := baseOrder()
				o.OrganizationID = ""
				return o
			}(),
			typ: domain.TypeLoading,
		},
		{
			name: "supplier site without supplier info",
			order: func() routing.OrderInfo {
				o := baseOrder()
				o.PickupSite.OrganizationType = "supplier"
				return o
			}(),
			typ: domain.TypeLoading,
		},
		{
			name:  "unknown type",
			order: baseOrder(),
			typ:   domain.AppointmentType("transfer"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := routing.Decide(tc.order, tc.typ, testNow)
			require.ErrorIs(t, err, apperr.ErrRoutingAmbiguous)
		})
	}
}

func TestDecide_Deterministic(t *testing.T) {
	t.Parallel()

	order := baseOrder()
	order.DelegatedLogistics = delegation("both")

	first, err := routing.Decide(order, domain.TypeLoading, testNow)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := routing.Decide(order, domain.TypeLoading, testNow)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestMessage(t *testing.T) {
	t.Parallel()

	res := routing.Result{
		TargetOrganizationName: "TransLog Services",
		TargetOrganizationType: domain.RecipientLogistician,
	}
	assert.Equal(t, "Demande de RDV envoyee a TransLog Services (logisticien delegue)", routing.Message(res))

	res.TargetOrganizationType = domain.RecipientSupplier
	assert.Contains(t, routing.Message(res), "(fournisseur)")

	res.TargetOrganizationType = domain.RecipientIndustrial
	assert.Contains(t, routing.Message(res), "(donneur d'ordre)")
}
