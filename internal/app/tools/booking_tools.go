package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/slotline/slotline-agent/internal/app/booking"
	"github.com/slotline/slotline-agent/internal/domain"
)

// The three booking tools wrap the booking service for the reasoning
// component. Descriptions are written for the model, not for code.

// ListServicesTool exposes the service catalog.
type ListServicesTool struct {
	svc *booking.Service
}

func NewListServicesTool(svc *booking.Service) *ListServicesTool {
	return &ListServicesTool{svc: svc}
}

func (t *ListServicesTool) Definition() domain.ToolDefinition {
	return domain.ToolDefinition{
		Name:        "ListServices",
		Description: "Get all offered services. No parameters needed. Returns the list of bookable service names.",
	}
}

func (t *ListServicesTool) SafeDefault() map[string]any {
	return map[string]any{"services": []string{}}
}

func (t *ListServicesTool) Call(ctx context.Context, tctx ToolContext, input map[string]any) (map[string]any, error) {
	return map[string]any{"services": t.svc.ListServices()}, nil
}

// CheckAvailabilityTool exposes free-slot lookup.
type CheckAvailabilityTool struct {
	svc *booking.Service
}

func NewCheckAvailabilityTool(svc *booking.Service) *CheckAvailabilityTool {
	return &CheckAvailabilityTool{svc: svc}
}

func (t *CheckAvailabilityTool) Definition() domain.ToolDefinition {
	return domain.ToolDefinition{
		Name:        "CheckAvailability",
		Description: "Check available time slots for a service on a date. Returns the list of free times; an empty list means nothing is available.",
		Parameters: map[string]domain.ToolParam{
			"service_type": {Type: "string", Description: "Name of the service, e.g. \"haircut\""},
			"date":         {Type: "string", Description: "Date in YYYY-MM-DD format"},
		},
		Required: []string{"service_type", "date"},
	}
}

func (t *CheckAvailabilityTool) SafeDefault() map[string]any {
	return map[string]any{"available": []string{}}
}

func (t *CheckAvailabilityTool) Call(ctx context.Context, tctx ToolContext, input map[string]any) (map[string]any, error) {
	service := getString(input, "service_type")
	date := getString(input, "date")

	available, err := t.svc.CheckAvailability(service, date)
	if err != nil {
		return nil, fmt.Errorf("CheckAvailability: %w", err)
	}

	return map[string]any{"available": available}, nil
}

// BookAppointmentTool exposes the booking commit.
type BookAppointmentTool struct {
	svc *booking.Service
}

func NewBookAppointmentTool(svc *booking.Service) *BookAppointmentTool {
	return &BookAppointmentTool{svc: svc}
}

func (t *BookAppointmentTool) Definition() domain.ToolDefinition {
	return domain.ToolDefinition{
		Name:        "BookAppointment",
		Description: "Finalize a booking for a service at a specific date and time under the user's name. Returns booked=true on success, booked=false if the slot is not available.",
		Parameters: map[string]domain.ToolParam{
			"service_type": {Type: "string", Description: "Name of the service, e.g. \"haircut\""},
			"date":         {Type: "string", Description: "Date in YYYY-MM-DD format"},
			"time":         {Type: "string", Description: "Time in HH:MM format"},
			"user_name":    {Type: "string", Description: "Full name to book under"},
		},
		Required: []string{"service_type", "date", "time", "user_name"},
	}
}

func (t *BookAppointmentTool) SafeDefault() map[string]any {
	return map[string]any{"booked": false}
}

func (t *BookAppointmentTool) Call(ctx context.Context, tctx ToolContext, input map[string]any) (map[string]any, error) {
	b, err := t.svc.BookAppointment(
		getString(input, "service_type"),
		getString(input, "date"),
		getString(input, "time"),
		getString(input, "user_name"),
	)
	if err != nil {
		// An unavailable slot is a domain outcome the model should see and
		// phrase for the user, not a fault.
		if errors.Is(err, domain.ErrSlotUnavailable) {
			return map[string]any{
				"booked": false,
				"reason": "slot not available",
			}, nil
		}
		return nil, fmt.Errorf("BookAppointment: %w", err)
	}

	return map[string]any{
		"booked":       true,
		"booking_id":   string(b.ID),
		"service_type": b.Service,
		"date":         b.Date,
		"time":         b.Time,
		"user_name":    b.UserName,
	}, nil
}
