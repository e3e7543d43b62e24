package domain

import "time"

type (
	// AppointmentStatus represents the lifecycle state of an appointment request.
	AppointmentStatus string
	// AppointmentType distinguishes loading from unloading operations.
	AppointmentType string
	// RequesterType identifies who files the appointment request.
	RequesterType string
	// RecipientType identifies the kind of organization an appointment is routed to.
	RecipientType string
	// SenderType identifies the author side of a thread message.
	SenderType string
)

// Message is a single entry in an appointment negotiation thread.
// The thread is append-only; entries are never edited or reordered.
type Message struct {
	ID         string     `json:"id"`
	SenderID   string     `json:"senderId"`
	SenderName string     `json:"senderName"`
	SenderType SenderType `json:"senderType"`
	Content    string     `json:"content"`
	Timestamp  time.Time  `json:"timestamp"`
}

// PreferredDate is one of the carrier's requested windows, in priority order.
type PreferredDate struct {
	Date      time.Time `json:"date"`
	StartTime string    `json:"startTime,omitempty"`
	EndTime   string    `json:"endTime,omitempty"`
	Priority  int       `json:"priority,omitempty"`
}

// ProposedSlot is the recipient's current slot proposal. Each propose call
// replaces it wholesale; only the message thread keeps earlier proposals.
type ProposedSlot struct {
	Date       time.Time `json:"date"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	DockID     string    `json:"dockId,omitempty"`
	DockName   string    `json:"dockName,omitempty"`
	ProposedBy string    `json:"proposedBy"`
	ProposedAt time.Time `json:"proposedAt"`
}

// ConfirmedSlot is the finalized slot recorded on acceptance.
type ConfirmedSlot struct {
	Date        time.Time `json:"date"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	DockID      string    `json:"dockId,omitempty"`
	BookingID   string    `json:"bookingId,omitempty"`
	ConfirmedBy string    `json:"confirmedBy"`
	ConfirmedAt time.Time `json:"confirmedAt"`
}

// RDVRouting is the audit snapshot of how the appointment target was determined.
type RDVRouting struct {
	DeterminedBy           string    `json:"determinedBy"`
	DeterminedAt           time.Time `json:"determinedAt"`
	RoutingReason          string    `json:"routingReason"`
	OriginalIndustrialID   string    `json:"originalIndustrialId,omitempty"`
	OriginalIndustrialName string    `json:"originalIndustrialName,omitempty"`
	DelegatedLogisticsID   string    `json:"delegatedLogisticsId,omitempty"`
	DelegatedLogisticsName string    `json:"delegatedLogisticsName,omitempty"`
	SupplierID             string    `json:"supplierId,omitempty"`
	SupplierName           string    `json:"supplierName,omitempty"`
}

// AppointmentRequest is a carrier's request for a loading or unloading
// rendez-vous, with its negotiation thread and slot linkage.
type AppointmentRequest struct {
	RequestID      string `json:"requestId"`
	OrderID        string `json:"orderId"`
	OrderReference string `json:"orderReference,omitempty"`

	Type   AppointmentType   `json:"type"`
	Status AppointmentStatus `json:"status"`

	RequesterID   string        `json:"requesterId"`
	RequesterType RequesterType `json:"requesterType"`
	RequesterName string        `json:"requesterName,omitempty"`
	CarrierName   string        `json:"carrierName,omitempty"`
	DriverName    string        `json:"driverName,omitempty"`
	DriverPhone   string        `json:"driverPhone,omitempty"`
	VehiclePlate  string        `json:"vehiclePlate,omitempty"`

	TargetOrganizationID   string        `json:"targetOrganizationId"`
	TargetOrganizationName string        `json:"targetOrganizationName,omitempty"`
	TargetOrganizationType RecipientType `json:"targetOrganizationType"`
	TargetSiteID           string        `json:"targetSiteId,omitempty"`
	TargetSiteName         string        `json:"targetSiteName,omitempty"`

	RDVRouting *RDVRouting `json:"rdvRouting,omitempty"`

	PreferredDates []PreferredDate `json:"preferredDates,omitempty"`
	ProposedSlot   *ProposedSlot   `json:"proposedSlot,omitempty"`
	ConfirmedSlot  *ConfirmedSlot  `json:"confirmedSlot,omitempty"`

	Messages []Message `json:"messages"`

	Notes           string     `json:"notes,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
	RespondedAt     *time.Time `json:"respondedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// Terminal reports whether the appointment status admits no further
// status-changing transition (cancel excepted, see the service).
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentAccepted || s == AppointmentRejected || s == AppointmentCancelled
}
