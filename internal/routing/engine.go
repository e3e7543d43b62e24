// Package routing determines which organization must receive and act on a
// carrier's appointment request: the industrial donor organization, a
// delegated logistics provider, or a supplier managing its own site.
package routing

import (
	"fmt"
	"time"

	"github.com/romain-38530/rdv-planning/internal/apperr"
	"github.com/romain-38530/rdv-planning/internal/domain"
)

// SiteInfo describes one side (pickup or delivery) of a transport order.
type SiteInfo struct {
	SiteID           string `json:"siteId,omitempty"`
	SiteName         string `json:"siteName,omitempty"`
	Address          string `json:"address,omitempty"`
	OrganizationID   string `json:"organizationId,omitempty"`
	OrganizationType string `json:"organizationType,omitempty"`
	// ManagedBy is the organization scheduling appointments for this site
	// when it differs from the donor organization.
	ManagedBy string `json:"managedBy,omitempty"`
}

// DelegatedLogistics describes an active logistics delegation contract.
type DelegatedLogistics struct {
	PartnerID         string   `json:"partnerId"`
	PartnerName       string   `json:"partnerName"`
	PartnerType       string   `json:"partnerType,omitempty"` // 3PL or 4PL
	ManagedOperations []string `json:"managedOperations,omitempty"`
	IsActive          bool     `json:"isActive"`
}

// SupplierInfo describes the supplier side of a loading order.
type SupplierInfo struct {
	SupplierID     string `json:"supplierId"`
	SupplierName   string `json:"supplierName"`
	SupplierSiteID string `json:"supplierSiteId,omitempty"`
}

// OrderInfo is the normalized order record the engine decides from.
type OrderInfo struct {
	OrderID        string `json:"orderId"`
	OrderReference string `json:"orderReference,omitempty"`

	// Donor (industrial) organization owning the order.
	OrganizationID   string `json:"organizationId"`
	OrganizationName string `json:"organizationName,omitempty"`

	PickupSite   SiteInfo `json:"pickupSite"`
	DeliverySite SiteInfo `json:"deliverySite"`

	DelegatedLogistics *DelegatedLogistics `json:"delegatedLogistics,omitempty"`
	Supplier           *SupplierInfo       `json:"supplier,omitempty"`
}

// Result fully determines the target fields of an appointment request.
type Result struct {
	TargetOrganizationID   string
	TargetOrganizationName string
	TargetOrganizationType domain.RecipientType
	TargetSiteID           string
	TargetSiteName         string
	Routing                domain.RDVRouting
}

const (
	siteTypeSupplier  = "supplier"
	siteTypeRecipient = "recipient"

	opPickup   = "pickup"
	opDelivery = "delivery"
	opBoth     = "both"
)

// Decide computes the single recipient of an appointment request for the
// given order and operation type. The decision is deterministic: same
// inputs, same target. Insufficient order information yields
// apperr.ErrRoutingAmbiguous so the caller can fall back to a manual target.
func Decide(order OrderInfo, typ domain.AppointmentType, now time.Time) (Result, error) {
	if !typ.Valid() {
		return Result{}, fmt.Errorf("%w: unknown appointment type %q", apperr.ErrRoutingAmbiguous, typ)
	}
	if order.OrganizationID == "" {
		return Result{}, fmt.Errorf("%w: missing donor organization id", apperr.ErrRoutingAmbiguous)
	}

	if typ == domain.TypeLoading {
		return decideLoading(order, now)
	}
	return decideUnloading(order, now)
}

func decideLoading(order OrderInfo, now time.Time) (Result, error) {
	base := baseRouting(order, now)

	// Chargement chez un fournisseur.
	if order.PickupSite.OrganizationType == siteTypeSupplier {
		if order.Supplier == nil || order.Supplier.SupplierID == "" {
			return Result{}, fmt.Errorf("%w: pickup site is a supplier site but supplier info is missing", apperr.ErrRoutingAmbiguous)
		}
		base.SupplierID = order.Supplier.SupplierID
		base.SupplierName = order.Supplier.SupplierName

		if d := activeDelegation(order, opPickup); d != nil {
			base.RoutingReason = "Chargement chez fournisseur avec logistique deleguee"
			base.DelegatedLogisticsID = d.PartnerID
			base.DelegatedLogisticsName = d.PartnerName
			return Result{
				TargetOrganizationID:   d.PartnerID,
				TargetOrganizationName: d.PartnerName,
				TargetOrganizationType: domain.RecipientLogistician,
				TargetSiteID:           order.Supplier.SupplierSiteID,
				TargetSiteName:         order.PickupSite.SiteName,
				Routing:                base,
			}, nil
		}

		base.RoutingReason = "Chargement chez fournisseur - RDV gere par le fournisseur"
		return Result{
			TargetOrganizationID:   order.Supplier.SupplierID,
			TargetOrganizationName: order.Supplier.SupplierName,
			TargetOrganizationType: domain.RecipientSupplier,
			TargetSiteID:           order.Supplier.SupplierSiteID,
			TargetSiteName:         order.PickupSite.SiteName,
			Routing:                base,
		}, nil
	}

	// Logistique deleguee active pour le chargement.
	if d := activeDelegation(order, opPickup); d != nil {
		base.RoutingReason = fmt.Sprintf("Chargement delegue au logisticien %s", partnerType(d))
		base.DelegatedLogisticsID = d.PartnerID
		base.DelegatedLogisticsName = d.PartnerName
		return Result{
			TargetOrganizationID:   d.PartnerID,
			TargetOrganizationName: d.PartnerName,
			TargetOrganizationType: domain.RecipientLogistician,
			TargetSiteID:           order.PickupSite.SiteID,
			TargetSiteName:         order.PickupSite.SiteName,
			Routing:                base,
		}, nil
	}

	// Cas par defaut: chargement chez le donneur d'ordre.
	base.RoutingReason = "Chargement chez le donneur d'ordre"
	return Result{
		TargetOrganizationID:   order.OrganizationID,
		TargetOrganizationName: order.OrganizationName,
		TargetOrganizationType: domain.RecipientIndustrial,
		TargetSiteID:           order.PickupSite.SiteID,
		TargetSiteName:         order.PickupSite.SiteName,
		Routing:                base,
	}, nil
}

func decideUnloading(order OrderInfo, now time.Time) (Result, error) {
	base := baseRouting(order, now)

	// Livraison chez un destinataire qui gere ses propres RDV.
	if order.DeliverySite.OrganizationType == siteTypeRecipient &&
		order.DeliverySite.ManagedBy != "" &&
		order.DeliverySite.ManagedBy != order.OrganizationID {
		base.RoutingReason = "Livraison chez destinataire - RDV gere par le destinataire"
		return Result{
			TargetOrganizationID: order.DeliverySite.ManagedBy,
			TargetOrganizationName: order.DeliverySite.SiteName,
			// Le destinataire est traite comme un industriel.
			TargetOrganizationType: domain.RecipientIndustrial,
			TargetSiteID:           order.DeliverySite.SiteID,
			TargetSiteName:         order.DeliverySite.SiteName,
			Routing:                base,
		}, nil
	}

	// Logistique deleguee active pour la livraison.
	if d := activeDelegation(order, opDelivery); d != nil {
		base.RoutingReason = fmt.Sprintf("Livraison deleguee au logisticien %s", partnerType(d))
		base.DelegatedLogisticsID = d.PartnerID
		base.DelegatedLogisticsName = d.PartnerName
		return Result{
			TargetOrganizationID:   d.PartnerID,
			TargetOrganizationName: d.PartnerName,
			TargetOrganizationType: domain.RecipientLogistician,
			TargetSiteID:           order.DeliverySite.SiteID,
			TargetSiteName:         order.DeliverySite.SiteName,
			Routing:                base,
		}, nil
	}

	// Cas par defaut: livraison geree par le donneur d'ordre.
	base.RoutingReason = "Livraison geree par le donneur d'ordre"
	return Result{
		TargetOrganizationID:   order.OrganizationID,
		TargetOrganizationName: order.OrganizationName,
		TargetOrganizationType: domain.RecipientIndustrial,
		TargetSiteID:           order.DeliverySite.SiteID,
		TargetSiteName:         order.DeliverySite.SiteName,
		Routing:                base,
	}, nil
}

func baseRouting(order OrderInfo, now time.Time) domain.RDVRouting {
	return domain.RDVRouting{
		DeterminedBy:           "auto",
		DeterminedAt:           now,
		OriginalIndustrialID:   order.OrganizationID,
		OriginalIndustrialName: order.OrganizationName,
	}
}

// activeDelegation returns the delegation contract when it is active and
// covers the given operation, nil otherwise.
func activeDelegation(order OrderInfo, op string) *DelegatedLogistics {
	d := order.DelegatedLogistics
	if d == nil || !d.IsActive || d.PartnerID == "" {
		return nil
	}
	for _, managed := range d.ManagedOperations {
		if managed == op || managed == opBoth {
			return d
		}
	}
	return nil
}

func partnerType(d *DelegatedLogistics) string {
	if d.PartnerType == "" {
		return "3PL"
	}
	return d.PartnerType
}
