package handlers

import (
	"context"

	"github.com/romain-38530/rdv-planning/internal/domain"
	"github.com/romain-38530/rdv-planning/internal/repository"
	"github.com/romain-38530/rdv-planning/internal/routing"
	"github.com/romain-38530/rdv-planning/internal/service/appointment"
	"github.com/romain-38530/rdv-planning/internal/service/booking"
)

type appointmentUsecase interface {
	Create(ctx context.Context, in appointment.CreateInput) (*domain.AppointmentRequest, error)
	AutoRoute(order routing.OrderInfo, typ domain.AppointmentType) (routing.Result, error)
	Propose(ctx context.Context, requestID string, in appointment.ProposeInput) (*domain.AppointmentRequest, error)
	Accept(ctx context.Context, requestID string, in appointment.AcceptInput) (*domain.AppointmentRequest, error)
	Reject(ctx context.Context, requestID string, in appointment.RejectInput) (*domain.AppointmentRequest, error)
	Cancel(ctx context.Context, requestID string) (*domain.AppointmentRequest, error)
	AddMessage(ctx context.Context, requestID string, in appointment.MessageInput) (*domain.AppointmentRequest, error)
	Get(ctx context.Context, requestID string) (*domain.AppointmentRequest, error)
	List(ctx context.Context, f repository.AppointmentFilter) ([]domain.AppointmentRequest, error)
	Pending(ctx context.Context, organizationID, siteID string) ([]domain.AppointmentRequest, error)
	ByOrder(ctx context.Context, orderID string) ([]domain.AppointmentRequest, error)
}

// NewAppointmentUsecase wires an appointment.Service into an appointmentUsecase.
func NewAppointmentUsecase(svc *appointment.Service) appointmentUsecase {
	return svc
}

type bookingUsecase interface {
	Get(ctx context.Context, bookingID string) (*domain.Booking, error)
	List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, error)
	CheckIn(ctx context.Context, bookingID string) (*domain.Booking, error)
	CheckOut(ctx context.Context, bookingID string) (*domain.Booking, error)
	Cancel(ctx context.Context, bookingID, cancelledBy, reason string) (*domain.Booking, error)
}

// NewBookingUsecase wires a booking.Service into a bookingUsecase.
func NewBookingUsecase(svc *booking.Service) bookingUsecase {
	return svc
}
