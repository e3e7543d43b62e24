package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/romain-38530/rdv-planning/internal/domain"
)

// SlotRepo persists dock time slots.
type SlotRepo struct {
	db *pgxpool.Pool
}

// NewSlotRepo creates a new SlotRepo.
func NewSlotRepo(db *pgxpool.Pool) *SlotRepo {
	return &SlotRepo{db: db}
}

const slotColumns = `
    slot_id, dock_id, site_id, date, start_time, end_time, duration,
    status, is_blocked, blocked_reason, blocked_by, blocked_at,
    booking_id, created_at, updated_at`

// Insert stores a new slot.
func (r *SlotRepo) Insert(ctx context.Context, s *domain.Slot) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO slots (
            slot_id, dock_id, site_id, date, start_time, end_time, duration,
            status, is_blocked, blocked_reason, blocked_by, blocked_at,
            booking_id, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
    `, s.SlotID, s.DockID, s.SiteID, s.Date, s.StartTime, s.EndTime, s.Duration,
		string(s.Status), s.IsBlocked, s.BlockedReason, s.BlockedBy, s.BlockedAt,
		s.BookingID, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert slot %q: %w", s.SlotID, err)
	}
	return nil
}

// Get returns the slot by id, or nil when absent.
func (r *SlotRepo) Get(ctx context.Context, slotID string) (*domain.Slot, error) {
	row := r.db.QueryRow(ctx, `SELECT `+slotColumns+` FROM slots WHERE slot_id = $1`, slotID)
	s, err := scanSlot(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot %q: %w", slotID, err)
	}
	return s, nil
}

// ClaimAvailable atomically transitions the slot from available to
// confirmed and attaches the booking id. The conditional update is the
// linearization point of the reservation: of two concurrent claims on the
// same slot exactly one observes status available and wins.
func (r *SlotRepo) ClaimAvailable(ctx context.Context, slotID, bookingID string, now time.Time) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE slots
        SET status = 'confirmed', booking_id = $2, updated_at = $3
        WHERE slot_id = $1 AND status = 'available'
    `, slotID, bookingID, now)
	if err != nil {
		return false, fmt.Errorf("claim slot %q: %w", slotID, err)
	}
	return ct.RowsAffected() == 1, nil
}

// UpdateStatus sets the slot status without touching the booking link.
func (r *SlotRepo) UpdateStatus(ctx context.Context, slotID string, status domain.SlotStatus, now time.Time) error {
	ct, err := r.db.Exec(ctx, `
        UPDATE slots SET status = $2, updated_at = $3 WHERE slot_id = $1
    `, slotID, string(status), now)
	if err != nil {
		return fmt.Errorf("update slot %q status: %w", slotID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("slot %q not found", slotID)
	}
	return nil
}

// Release puts the slot back to available and clears its booking link.
// Used by the booking cancellation flow, never by appointment cancellation.
func (r *SlotRepo) Release(ctx context.Context, slotID string, now time.Time) error {
	ct, err := r.db.Exec(ctx, `
        UPDATE slots SET status = 'available', booking_id = '', updated_at = $2
        WHERE slot_id = $1
    `, slotID, now)
	if err != nil {
		return fmt.Errorf("release slot %q: %w", slotID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("slot %q not found", slotID)
	}
	return nil
}

func scanSlot(row pgx.Row) (*domain.Slot, error) {
	var (
		s      domain.Slot
		status string
	)
	err := row.Scan(
		&s.SlotID, &s.DockID, &s.SiteID, &s.Date, &s.StartTime, &s.EndTime, &s.Duration,
		&status, &s.IsBlocked, &s.BlockedReason, &s.BlockedBy, &s.BlockedAt,
		&s.BookingID, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Status = domain.SlotStatus(status)
	return &s, nil
}
