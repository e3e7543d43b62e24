package handlers

import (
	"github.com/romain-38530/rdv-planning/internal/domain"
	"github.com/romain-38530/rdv-planning/internal/routing"
)

// Responses carry the full stored document; the domain types already hold
// the wire-format JSON tags, so no response DTOs are needed.

type createAppointmentRequest struct {
	OrderID        string                 `json:"orderId"`
	OrderReference string                 `json:"orderReference,omitempty"`
	Type           domain.AppointmentType `json:"type"`

	RequesterID   string               `json:"requesterId"`
	RequesterType domain.RequesterType `json:"requesterType"`
	RequesterName string               `json:"requesterName,omitempty"`
	CarrierName   string               `json:"carrierName,omitempty"`
	DriverName    string               `json:"driverName,omitempty"`
	DriverPhone   string               `json:"driverPhone,omitempty"`
	VehiclePlate  string               `json:"vehiclePlate,omitempty"`

	TargetOrganizationID   string               `json:"targetOrganizationId,omitempty"`
	TargetOrganizationName string               `json:"targetOrganizationName,omitempty"`
	TargetOrganizationType domain.RecipientType `json:"targetOrganizationType,omitempty"`
	TargetSiteID           string               `json:"targetSiteId,omitempty"`
	TargetSiteName         string               `json:"targetSiteName,omitempty"`

	PreferredDates []domain.PreferredDate `json:"preferredDates,omitempty"`
	Notes          string                 `json:"notes,omitempty"`

	OrderData *routing.OrderInfo `json:"orderData,omitempty"`
}

type autoRouteRequest struct {
	OrderData *routing.OrderInfo     `json:"orderData"`
	Type      domain.AppointmentType `json:"type"`
}

type autoRouteResponse struct {
	TargetOrganizationID   string               `json:"targetOrganizationId"`
	TargetOrganizationName string               `json:"targetOrganizationName,omitempty"`
	TargetOrganizationType domain.RecipientType `json:"targetOrganizationType"`
	TargetSiteID           string               `json:"targetSiteId,omitempty"`
	TargetSiteName         string               `json:"targetSiteName,omitempty"`
	RDVRouting             domain.RDVRouting    `json:"rdvRouting"`
}

type proposeSlotRequest struct {
	Date         string `json:"date"` // YYYY-MM-DD
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	DockID       string `json:"dockId,omitempty"`
	DockName     string `json:"dockName,omitempty"`
	ProposedBy   string `json:"proposedBy"`
	ProposerName string `json:"proposerName,omitempty"`
	Message      string `json:"message,omitempty"`
}

type acceptRequest struct {
	ConfirmedBy string `json:"confirmedBy"`
	SlotID      string `json:"slotId,omitempty"`
}

type rejectRequest struct {
	RejectedBy string `json:"rejectedBy"`
	Reason     string `json:"reason,omitempty"`
}

type addMessageRequest struct {
	SenderID   string            `json:"senderId"`
	SenderName string            `json:"senderName"`
	SenderType domain.SenderType `json:"senderType"`
	Content    string            `json:"content"`
}

type cancelBookingRequest struct {
	CancelledBy string `json:"cancelledBy,omitempty"`
	Reason      string `json:"reason,omitempty"`
}
