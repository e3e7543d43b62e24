package appointment

import (
	"time"

	"github.com/romain-38530/rdv-planning/internal/domain"
	"github.com/romain-38530/rdv-planning/internal/routing"
)

// CreateInput carries a new appointment request. When OrderData is set the
// routing engine determines the target; otherwise the caller-supplied
// target fields are used verbatim.
type CreateInput struct {
	OrderID        string
	OrderReference string
	Type           domain.AppointmentType

	RequesterID   string
	RequesterType domain.RequesterType
	RequesterName string
	CarrierName   string
	DriverName    string
	DriverPhone   string
	VehiclePlate  string

	TargetOrganizationID   string
	TargetOrganizationName string
	TargetOrganizationType domain.RecipientType
	TargetSiteID           string
	TargetSiteName         string

	PreferredDates []domain.PreferredDate
	Notes          string

	OrderData *routing.OrderInfo
}

// ProposeInput carries a slot proposal from the recipient.
type ProposeInput struct {
	Date         time.Time
	StartTime    string
	EndTime      string
	DockID       string
	DockName     string
	ProposedBy   string
	ProposerName string
	Message      string
}

// AcceptInput confirms the appointment, optionally claiming a slot.
type AcceptInput struct {
	ConfirmedBy string
	SlotID      string
}

// RejectInput declines the appointment with an optional reason.
type RejectInput struct {
	RejectedBy string
	Reason     string
}

// MessageInput appends a free-form message to the thread.
type MessageInput struct {
	SenderID   string
	SenderName string
	SenderType domain.SenderType
	Content    string
}
