package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/romain-38530/rdv-planning/internal/domain"
)

// BookingFilter carries optional filters for listing bookings.
// A nil field means "do not filter" on that attribute.
type BookingFilter struct {
	SiteID    *string
	DockID    *string
	Status    *domain.BookingStatus
	CarrierID *string
	Date      *time.Time
}

// BookingRepo persists bookings.
type BookingRepo struct {
	db *pgxpool.Pool
}

// NewBookingRepo creates a new BookingRepo.
func NewBookingRepo(db *pgxpool.Pool) *BookingRepo {
	return &BookingRepo{db: db}
}

const bookingColumns = `
    booking_id, slot_id, dock_id, site_id, order_id, order_reference,
    carrier_id, carrier_name, driver_name, driver_phone, vehicle_plate,
    type, status, scheduled_date, scheduled_start_time, scheduled_end_time,
    actual_arrival_time, actual_departure_time,
    created_by, confirmed_by, confirmed_at,
    cancelled_by, cancelled_at, cancel_reason, created_at, updated_at`

// Insert stores a new booking.
func (r *BookingRepo) Insert(ctx context.Context, b *domain.Booking) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO bookings (
            booking_id, slot_id, dock_id, site_id, order_id, order_reference,
            carrier_id, carrier_name, driver_name, driver_phone, vehicle_plate,
            type, status, scheduled_date, scheduled_start_time, scheduled_end_time,
            created_by, confirmed_by, confirmed_at, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
    `, b.BookingID, b.SlotID, b.DockID, b.SiteID, b.OrderID, b.OrderReference,
		b.CarrierID, b.CarrierName, b.DriverName, b.DriverPhone, b.VehiclePlate,
		string(b.Type), string(b.Status), b.ScheduledDate, b.ScheduledStartTime, b.ScheduledEndTime,
		b.CreatedBy, b.ConfirmedBy, b.ConfirmedAt, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert booking %q: %w", b.BookingID, err)
	}
	return nil
}

// Get returns the booking by id, or nil when absent.
func (r *BookingRepo) Get(ctx context.Context, bookingID string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE booking_id = $1`, bookingID)
	b, err := scanBooking(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking %q: %w", bookingID, err)
	}
	return b, nil
}

// List returns bookings matching the filter, ordered by schedule.
func (r *BookingRepo) List(ctx context.Context, f BookingFilter) ([]domain.Booking, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.SiteID != nil {
		add("site_id = $%d", *f.SiteID)
	}
	if f.DockID != nil {
		add("dock_id = $%d", *f.DockID)
	}
	if f.Status != nil {
		add("status = $%d", string(*f.Status))
	}
	if f.CarrierID != nil {
		add("carrier_id = $%d", *f.CarrierID)
	}
	if f.Date != nil {
		day := f.Date.Truncate(24 * time.Hour)
		add("scheduled_date >= $%d", day)
		add("scheduled_date < $%d", day.AddDate(0, 0, 1))
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY scheduled_date ASC, scheduled_start_time ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// CheckIn marks the carrier's arrival. Returns nil when the booking is absent.
func (r *BookingRepo) CheckIn(ctx context.Context, bookingID string, now time.Time) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `
        UPDATE bookings
        SET status = 'in_progress', actual_arrival_time = $2, updated_at = $2
        WHERE booking_id = $1
        RETURNING `+bookingColumns, bookingID, now)
	return r.scanMutated(row, bookingID)
}

// CheckOut marks the carrier's departure. Returns nil when the booking is absent.
func (r *BookingRepo) CheckOut(ctx context.Context, bookingID string, now time.Time) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `
        UPDATE bookings
        SET status = 'completed', actual_departure_time = $2, updated_at = $2
        WHERE booking_id = $1
        RETURNING `+bookingColumns, bookingID, now)
	return r.scanMutated(row, bookingID)
}

// Cancel marks the booking cancelled. Returns nil when the booking is absent.
func (r *BookingRepo) Cancel(ctx context.Context, bookingID, cancelledBy, reason string, now time.Time) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `
        UPDATE bookings
        SET status = 'cancelled', cancelled_by = $2, cancelled_at = $3,
            cancel_reason = $4, updated_at = $3
        WHERE booking_id = $1
        RETURNING `+bookingColumns, bookingID, cancelledBy, now, reason)
	return r.scanMutated(row, bookingID)
}

func (r *BookingRepo) scanMutated(row pgx.Row, bookingID string) (*domain.Booking, error) {
	b, err := scanBooking(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("mutate booking %q: %w", bookingID, err)
	}
	return b, nil
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var (
		b           domain.Booking
		typ, status string
	)
	err := row.Scan(
		&b.BookingID, &b.SlotID, &b.DockID, &b.SiteID, &b.OrderID, &b.OrderReference,
		&b.CarrierID, &b.CarrierName, &b.DriverName, &b.DriverPhone, &b.VehiclePlate,
		&typ, &status, &b.ScheduledDate, &b.ScheduledStartTime, &b.ScheduledEndTime,
		&b.ActualArrivalTime, &b.ActualDepartureTime,
		&b.CreatedBy, &b.ConfirmedBy, &b.ConfirmedAt,
		&b.CancelledBy, &b.CancelledAt, &b.CancelReason, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Type = domain.AppointmentType(typ)
	b.Status = domain.BookingStatus(status)
	return &b, nil
}
