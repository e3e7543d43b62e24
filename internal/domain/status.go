package domain

// List of possible appointment statuses
const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentProposed  AppointmentStatus = "proposed"
	AppointmentAccepted  AppointmentStatus = "accepted"
	AppointmentRejected  AppointmentStatus = "rejected"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// List of possible appointment types
const (
	TypeLoading   AppointmentType = "loading"
	TypeUnloading AppointmentType = "unloading"
)

// List of possible requester types
const (
	RequesterCarrier RequesterType = "carrier"
	RequesterDriver  RequesterType = "driver"
)

// List of possible appointment recipient organization types
const (
	RecipientIndustrial  RecipientType = "industrial"
	RecipientLogistician RecipientType = "logistician"
	RecipientSupplier    RecipientType = "supplier"
)

// List of possible message sender types
const (
	SenderCarrier    SenderType = "carrier"
	SenderIndustrial SenderType = "industrial"
	SenderSystem     SenderType = "system"
)

// List of possible slot statuses
const (
	SlotAvailable SlotStatus = "available"
	SlotReserved  SlotStatus = "reserved"
	SlotConfirmed SlotStatus = "confirmed"
	SlotBlocked   SlotStatus = "blocked"
	SlotCompleted SlotStatus = "completed"
	SlotCancelled SlotStatus = "cancelled"
)

// List of possible booking statuses
const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
	BookingNoShow     BookingStatus = "no_show"
)

var allowedAppointmentStatuses = [...]AppointmentStatus{
	AppointmentPending, AppointmentProposed, AppointmentAccepted,
	AppointmentRejected, AppointmentCancelled,
}

var allowedAppointmentTypes = [...]AppointmentType{
	TypeLoading, TypeUnloading,
}

var allowedSlotStatuses = [...]SlotStatus{
	SlotAvailable, SlotReserved, SlotConfirmed,
	SlotBlocked, SlotCompleted, SlotCancelled,
}

var allowedBookingStatuses = [...]BookingStatus{
	BookingPending, BookingConfirmed, BookingInProgress,
	BookingCompleted, BookingCancelled, BookingNoShow,
}

// Valid checks if the AppointmentStatus is valid
func (s AppointmentStatus) Valid() bool {
	for _, v := range allowedAppointmentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the AppointmentType is valid
func (t AppointmentType) Valid() bool {
	for _, v := range allowedAppointmentTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Valid checks if the SlotStatus is valid
func (s SlotStatus) Valid() bool {
	for _, v := range allowedSlotStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the BookingStatus is valid
func (s BookingStatus) Valid() bool {
	for _, v := range allowedBookingStatuses {
		if s == v {
			return true
		}
	}
	return false
}
