package memory

import (
	"sync"

	"github.com/slotline/slotline-agent/internal/domain"
)

// BookingStore is a process-memory, append-only booking log. It is NOT
// persistent: bookings are lost on restart. The slot index makes a second
// append for the same (service, date, time) fail with ErrSlotTaken even
// if the committer above it misbehaves.
type BookingStore struct {
	mu     sync.RWMutex
	log    []*domain.Booking
	bySlot map[string]*domain.Booking
}

func NewBookingStore() *BookingStore {
	return &BookingStore{
		bySlot: make(map[string]*domain.Booking),
	}
}

func (s *BookingStore) AppendBooking(b *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := b.SlotKey()
	if _, exists := s.bySlot[key]; exists {
		return domain.ErrSlotTaken
	}

	s.log = append(s.log, b)
	s.bySlot[key] = b
	return nil
}

// ListBookings returns the bookings for a service on a date, in the order
// they were committed.
func (s *BookingStore) ListBookings(service, date string) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Booking
	for _, b := range s.log {
		if b.Service == service && b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}
