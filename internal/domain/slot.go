package domain

import "time"

// SlotStatus represents the availability state of a dock time slot.
type SlotStatus string

// Slot is a discrete bookable time window at a specific dock on a specific
// date. A slot can be claimed by at most one booking: the transition
// available -> confirmed is exclusive.
type Slot struct {
	SlotID string `json:"slotId"`
	DockID string `json:"dockId"`
	SiteID string `json:"siteId"`

	Date      time.Time `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Duration  int       `json:"duration"`

	Status SlotStatus `json:"status"`

	IsBlocked     bool       `json:"isBlocked"`
	BlockedReason string     `json:"blockedReason,omitempty"`
	BlockedBy     string     `json:"blockedBy,omitempty"`
	BlockedAt     *time.Time `json:"blockedAt,omitempty"`

	BookingID string `json:"bookingId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
