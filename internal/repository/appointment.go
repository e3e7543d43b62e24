package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/romain-38530/rdv-planning/internal/domain"
)

// listLimit caps unbounded appointment list queries.
const listLimit = 100

// AppointmentFilter carries optional filters for listing appointment
// requests. A nil field means "do not filter" on that attribute.
type AppointmentFilter struct {
	OrganizationID *string
	RequesterID    *string
	OrderID        *string
	Status         *domain.AppointmentStatus
	Type           *domain.AppointmentType
}

// AppointmentRepo persists appointment requests. Embedded sub-documents
// (routing snapshot, preferred dates, slots, message thread) are stored as
// JSONB and replaced wholesale on every update.
type AppointmentRepo struct {
	db *pgxpool.Pool
}

// NewAppointmentRepo creates a new AppointmentRepo.
func NewAppointmentRepo(db *pgxpool.Pool) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

const appointmentColumns = `
    request_id, order_id, order_reference, type, status,
    requester_id, requester_type, requester_name,
    carrier_name, driver_name, driver_phone, vehicle_plate,
    target_organization_id, target_organization_name, target_organization_type,
    target_site_id, target_site_name,
    rdv_routing, preferred_dates, proposed_slot, confirmed_slot, messages,
    notes, rejection_reason, responded_at, created_at, updated_at`

// Insert stores a new appointment request.
func (r *AppointmentRepo) Insert(ctx context.Context, a *domain.AppointmentRequest) error {
	routingJSON, err := marshalOrNil(a.RDVRouting)
	if err != nil {
		return fmt.Errorf("marshal rdv routing: %w", err)
	}
	preferredJSON, err := marshalOrNil(a.PreferredDates)
	if err != nil {
		return fmt.Errorf("marshal preferred dates: %w", err)
	}
	messagesJSON, err := json.Marshal(a.Messages)
	if err != nil {
		return fmt.Errorf("marshal messages: %w", err)
	}

	_, err = r.db.Exec(ctx, `
        INSERT INTO appointment_requests (
            request_id, order_id, order_reference, type, status,
            requester_id, requester_type, requester_name,
            carrier_name, driver_name, driver_phone, vehicle_plate,
            target_organization_id, target_organization_name, target_organization_type,
            target_site_id, target_site_name,
            rdv_routing, preferred_dates, messages,
            notes, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)
    `,
		a.RequestID, a.OrderID, a.OrderReference, string(a.Type), string(a.Status),
		a.RequesterID, string(a.RequesterType), a.RequesterName,
		a.CarrierName, a.DriverName, a.DriverPhone, a.VehiclePlate,
		a.TargetOrganizationID, a.TargetOrganizationName, string(a.TargetOrganizationType),
		a.TargetSiteID, a.TargetSiteName,
		routingJSON, preferredJSON, messagesJSON,
		a.Notes, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert appointment %q: %w", a.RequestID, err)
	}
	return nil
}

// Get returns the appointment request by its request id, or nil when absent.
func (r *AppointmentRepo) Get(ctx context.Context, requestID string) (*domain.AppointmentRequest, error) {
	row := r.db.QueryRow(ctx, `SELECT `+appointmentColumns+`
        FROM appointment_requests WHERE request_id = $1`, requestID)

	a, err := scanAppointment(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment %q: %w", requestID, err)
	}
	return a, nil
}

// List returns appointment requests matching the filter, newest first,
// capped at 100 rows.
func (r *AppointmentRepo) List(ctx context.Context, f AppointmentFilter) ([]domain.AppointmentRequest, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.OrganizationID != nil {
		add("target_organization_id = $%d", *f.OrganizationID)
	}
	if f.RequesterID != nil {
		add("requester_id = $%d", *f.RequesterID)
	}
	if f.OrderID != nil {
		add("order_id = $%d", *f.OrderID)
	}
	if f.Status != nil {
		add("status = $%d", string(*f.Status))
	}
	if f.Type != nil {
		add("type = $%d", string(*f.Type))
	}

	query := `SELECT ` + appointmentColumns + ` FROM appointment_requests`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT %d", listLimit)

	return r.queryAppointments(ctx, query, args...)
}

// Pending returns open requests (pending or proposed), oldest first,
// optionally narrowed to a target organization and site.
func (r *AppointmentRepo) Pending(ctx context.Context, organizationID, siteID string) ([]domain.AppointmentRequest, error) {
	var (
		where = []string{"status IN ('pending','proposed')"}
		args  []any
	)
	if organizationID != "" {
		args = append(args, organizationID)
		where = append(where, fmt.Sprintf("target_organization_id = $%d", len(args)))
	}
	if siteID != "" {
		args = append(args, siteID)
		where = append(where, fmt.Sprintf("target_site_id = $%d", len(args)))
	}

	query := `SELECT ` + appointmentColumns + ` FROM appointment_requests WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY created_at ASC`

	return r.queryAppointments(ctx, query, args...)
}

// ByOrder returns all requests for an order, loading before unloading,
// newest first within a type.
func (r *AppointmentRepo) ByOrder(ctx context.Context, orderID string) ([]domain.AppointmentRequest, error) {
	query := `SELECT ` + appointmentColumns + `
        FROM appointment_requests
        WHERE order_id = $1
        ORDER BY type ASC, created_at DESC`
	return r.queryAppointments(ctx, query, orderID)
}

// OpenByOrder returns the pending or proposed requests attached to an order.
func (r *AppointmentRepo) OpenByOrder(ctx context.Context, orderID string) ([]domain.AppointmentRequest, error) {
	query := `SELECT ` + appointmentColumns + `
        FROM appointment_requests
        WHERE order_id = $1 AND status IN ('pending','proposed')
        ORDER BY created_at ASC`
	return r.queryAppointments(ctx, query, orderID)
}

// Update writes the mutated document back. Status, slots, thread and
// response fields are replaced wholesale; identity and requester fields
// never change after creation.
func (r *AppointmentRepo) Update(ctx context.Context, a *domain.AppointmentRequest) error {
	proposedJSON, err := marshalOrNil(a.ProposedSlot)
	if err != nil {
		return fmt.Errorf("marshal proposed slot: %w", err)
	}
	confirmedJSON, err := marshalOrNil(a.ConfirmedSlot)
	if err != nil {
		return fmt.Errorf("marshal confirmed slot: %w", err)
	}
	messagesJSON, err := json.Marshal(a.Messages)
	if err != nil {
		return fmt.Errorf("marshal messages: %w", err)
	}

	ct, err := r.db.Exec(ctx, `
        UPDATE appointment_requests
        SET status = $2,
            proposed_slot = $3,
            confirmed_slot = $4,
            messages = $5,
            rejection_reason = $6,
            responded_at = $7,
            updated_at = $8
        WHERE request_id = $1
    `, a.RequestID, string(a.Status), proposedJSON, confirmedJSON, messagesJSON,
		a.RejectionReason, a.RespondedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update appointment %q: %w", a.RequestID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("appointment %q not found", a.RequestID)
	}
	return nil
}

func (r *AppointmentRepo) queryAppointments(ctx context.Context, query string, args ...any) ([]domain.AppointmentRequest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query appointments: %w", err)
	}
	defer rows.Close()

	var out []domain.AppointmentRequest
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func scanAppointment(row pgx.Row) (*domain.AppointmentRequest, error) {
	var (
		a                                      domain.AppointmentRequest
		typ, status, requesterType, targetType string
		routingRaw, preferredRaw               []byte
		proposedRaw, confirmedRaw, messagesRaw []byte
	)

	err := row.Scan(
		&a.RequestID, &a.OrderID, &a.OrderReference, &typ, &status,
		&a.RequesterID, &requesterType, &a.RequesterName,
		&a.CarrierName, &a.DriverName, &a.DriverPhone, &a.VehiclePlate,
		&a.TargetOrganizationID, &a.TargetOrganizationName, &targetType,
		&a.TargetSiteID, &a.TargetSiteName,
		&routingRaw, &preferredRaw, &proposedRaw, &confirmedRaw, &messagesRaw,
		&a.Notes, &a.RejectionReason, &a.RespondedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Type = domain.AppointmentType(typ)
	a.Status = domain.AppointmentStatus(status)
	a.RequesterType = domain.RequesterType(requesterType)
	a.TargetOrganizationType = domain.RecipientType(targetType)

	if err := unmarshalInto(routingRaw, &a.RDVRouting); err != nil {
		return nil, fmt.Errorf("decode rdv routing: %w", err)
	}
	if len(preferredRaw) > 0 {
		if err := json.Unmarshal(preferredRaw, &a.PreferredDates); err != nil {
			return nil, fmt.Errorf("decode preferred dates: %w", err)
		}
	}
	if err := unmarshalInto(proposedRaw, &a.ProposedSlot); err != nil {
		return nil, fmt.Errorf("decode proposed slot: %w", err)
	}
	if err := unmarshalInto(confirmedRaw, &a.ConfirmedSlot); err != nil {
		return nil, fmt.Errorf("decode confirmed slot: %w", err)
	}
	if len(messagesRaw) > 0 {
		if err := json.Unmarshal(messagesRaw, &a.Messages); err != nil {
			return nil, fmt.Errorf("decode messages: %w", err)
		}
	}
	return &a, nil
}

// marshalOrNil encodes v to JSON, mapping nil pointers and empty slices to
// SQL NULL so optional sub-documents round-trip as absent.
func marshalOrNil(v any) ([]byte, error) {
	switch t := v.(type) {
	case *domain.RDVRouting:
		if t == nil {
			return nil, nil
		}
	case *domain.ProposedSlot:
		if t == nil {
			return nil, nil
		}
	case *domain.ConfirmedSlot:
		if t == nil {
			return nil, nil
		}
	case []domain.PreferredDate:
		if len(t) == 0 {
			return nil, nil
		}
	}
	return json.Marshal(v)
}

// unmarshalInto decodes raw JSONB into **T, leaving *T nil for SQL NULL.
func unmarshalInto[T any](raw []byte, dst **T) error {
	if len(raw) == 0 {
		return nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	*dst = &v
	return nil
}
