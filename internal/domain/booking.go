package domain

import "time"

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

// Booking is a confirmed occupation of a Slot by a specific carrier and
// vehicle. Carrier, driver and vehicle fields are copied from the
// appointment request at creation time so the booking stays a faithful
// audit record even if the carrier's records change later.
type Booking struct {
	BookingID string `json:"bookingId"`
	SlotID    string `json:"slotId"`
	DockID    string `json:"dockId"`
	SiteID    string `json:"siteId"`

	OrderID        string `json:"orderId,omitempty"`
	OrderReference string `json:"orderReference,omitempty"`

	CarrierID    string `json:"carrierId,omitempty"`
	CarrierName  string `json:"carrierName,omitempty"`
	DriverName   string `json:"driverName,omitempty"`
	DriverPhone  string `json:"driverPhone,omitempty"`
	VehiclePlate string `json:"vehiclePlate,omitempty"`

	Type   AppointmentType `json:"type,omitempty"`
	Status BookingStatus   `json:"status"`

	ScheduledDate      time.Time `json:"scheduledDate"`
	ScheduledStartTime string    `json:"scheduledStartTime"`
	ScheduledEndTime   string    `json:"scheduledEndTime"`

	ActualArrivalTime   *time.Time `json:"actualArrivalTime,omitempty"`
	ActualDepartureTime *time.Time `json:"actualDepartureTime,omitempty"`

	CreatedBy   string     `json:"createdBy,omitempty"`
	ConfirmedBy string     `json:"confirmedBy,omitempty"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`

	CancelledBy  string     `json:"cancelledBy,omitempty"`
	CancelledAt  *time.Time `json:"cancelledAt,omitempty"`
	CancelReason string     `json:"cancelReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
