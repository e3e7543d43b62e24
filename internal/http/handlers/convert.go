package handlers

import (
	"time"

	"github.com/romain-38530/rdv-planning/internal/routing"
	"github.com/romain-38530/rdv-planning/internal/service/appointment"
)

func (r createAppointmentRequest) toInput() appointment.CreateInput {
	return appointment.CreateInput{
		OrderID:        r.OrderID,
		OrderReference: r.OrderReference,
		Type:           r.Type,

		RequesterID:   r.RequesterID,
		RequesterType: r.RequesterType,
		RequesterName: r.RequesterName,
		CarrierName:   r.CarrierName,
		DriverName:    r.DriverName,
		DriverPhone:   r.DriverPhone,
		VehiclePlate:  r.VehiclePlate,

		TargetOrganizationID:   r.TargetOrganizationID,
		TargetOrganizationName: r.TargetOrganizationName,
		TargetOrganizationType: r.TargetOrganizationType,
		TargetSiteID:           r.TargetSiteID,
		TargetSiteName:         r.TargetSiteName,

		PreferredDates: r.PreferredDates,
		Notes:          r.Notes,

		OrderData: r.OrderData,
	}
}

func (r proposeSlotRequest) toInput() (appointment.ProposeInput, error) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return appointment.ProposeInput{}, err
	}
	return appointment.ProposeInput{
		Date:         date,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		DockID:       r.DockID,
		DockName:     r.DockName,
		ProposedBy:   r.ProposedBy,
		ProposerName: r.ProposerName,
		Message:      r.Message,
	}, nil
}

func routeResultToResponse(res routing.Result) autoRouteResponse {
	return autoRouteResponse{
		TargetOrganizationID:   res.TargetOrganizationID,
		TargetOrganizationName: res.TargetOrganizationName,
		TargetOrganizationType: res.TargetOrganizationType,
		TargetSiteID:           res.TargetSiteID,
		TargetSiteName:         res.TargetSiteName,
		RDVRouting:             res.Routing,
	}
}
