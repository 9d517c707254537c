package booking

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/slotline/slotline-agent/internal/domain"
)

// Service owns the slot catalog and the booking store. One instance per
// process, injected into whatever needs booking operations; there are no
// package globals.
type Service struct {
	catalog *Catalog
	store   domain.BookingStore

	// mu serializes the check-then-append sequence in BookAppointment so
	// two concurrent committers cannot both observe a slot as free.
	mu sync.Mutex

	now   func() time.Time
	newID func() string
}

func NewService(catalog *Catalog, store domain.BookingStore) *Service {
	return &Service{
		catalog: catalog,
		store:   store,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// ListServices returns all bookable services in catalog order.
func (s *Service) ListServices() []string {
	return s.catalog.Services()
}

// CheckAvailability returns the nominal slots for service/date minus the
// times already booked, preserving the nominal order. It never mutates
// state; an unknown service or date yields an empty list, not an error.
func (s *Service) CheckAvailability(service, date string) ([]string, error) {
	nominal := s.catalog.NominalSlots(service, date)
	if len(nominal) == 0 {
		return []string{}, nil
	}

	booked, err := s.store.ListBookings(service, date)
	if err != nil {
		return nil, fmt.Errorf("listing bookings for %s on %s: %w", service, date, err)
	}

	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[b.Time] = struct{}{}
	}

	available := make([]string, 0, len(nominal))
	for _, t := range nominal {
		if _, ok := taken[t]; !ok {
			available = append(available, t)
		}
	}
	return available, nil
}

// BookAppointment recomputes availability at commit time and appends a
// booking only if the requested time is still free. A stale caller view
// (the slot was taken between their check and this commit) fails with
// domain.ErrSlotUnavailable, as does a time that was never nominal.
func (s *Service) BookAppointment(service, date, timeOfDay, userName string) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	available, err := s.CheckAvailability(service, date)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(available, timeOfDay) {
		return nil, domain.ErrSlotUnavailable
	}

	b := &domain.Booking{
		ID:       domain.BookingID(s.newID()),
		Service:  service,
		Date:     date,
		Time:     timeOfDay,
		UserName: userName,
		BookedAt: s.now(),
	}

	if err := s.store.AppendBooking(b); err != nil {
		// A conflicting append can still surface from a store shared with
		// other processes; it is the same domain outcome as a stale view.
		if errors.Is(err, domain.ErrSlotTaken) {
			return nil, domain.ErrSlotUnavailable
		}
		return nil, fmt.Errorf("appending booking: %w", err)
	}

	return b, nil
}
