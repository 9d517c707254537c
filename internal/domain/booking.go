package domain

import (
	"errors"
	"time"
)

// Booking is a confirmed appointment. It is created once by the booking
// service on a successful commit and never mutated afterwards.
type Booking struct {
	ID       BookingID
	Service  string
	Date     string // YYYY-MM-DD
	Time     string // HH:MM
	UserName string
	BookedAt time.Time
}

// SlotKey identifies the unit of booking: one (service, date, time) triple.
func SlotKey(service, date, timeOfDay string) string {
	return service + "|" + date + "|" + timeOfDay
}

func (b *Booking) SlotKey() string {
	return SlotKey(b.Service, b.Date, b.Time)
}

var (
	// ErrSlotUnavailable is the only domain-level failure of the booking
	// path: the requested time is not in the freshly recomputed
	// availability for that service and date.
	ErrSlotUnavailable = errors.New("slot unavailable")

	// ErrSlotTaken is returned by booking stores when a booking for the
	// same (service, date, time) already exists.
	ErrSlotTaken = errors.New("slot already booked")

	ErrSessionNotFound = errors.New("session not found")
)
