package memory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/slotline/slotline-agent/internal/adapters/storage/memory"
	"github.com/slotline/slotline-agent/internal/domain"
)

func TestBookingStoreRejectsDuplicateSlot(t *testing.T) {
	store := memory.NewBookingStore()

	first := &domain.Booking{
		ID:       "b-1",
		Service:  "haircut",
		Date:     "2025-06-05",
		Time:     "10:00",
		UserName: "Alice",
		BookedAt: time.Now(),
	}
	if err := store.AppendBooking(first); err != nil {
		t.Fatalf("first append failed: %v", err)
	}

	dupe := &domain.Booking{
		ID:       "b-2",
		Service:  "haircut",
		Date:     "2025-06-05",
		Time:     "10:00",
		UserName: "Bob",
		BookedAt: time.Now(),
	}
	if err := store.AppendBooking(dupe); !errors.Is(err, domain.ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}

	got, err := store.ListBookings("haircut", "2025-06-05")
	if err != nil {
		t.Fatalf("ListBookings failed: %v", err)
	}
	if len(got) != 1 || got[0].UserName != "Alice" {
		t.Fatalf("expected only Alice's booking, got %v", got)
	}
}

func TestBookingStoreListFiltersByServiceAndDate(t *testing.T) {
	store := memory.NewBookingStore()

	bookings := []*domain.Booking{
		{ID: "b-1", Service: "haircut", Date: "2025-06-05", Time: "10:00"},
		{ID: "b-2", Service: "haircut", Date: "2025-06-03", Time: "09:00"},
		{ID: "b-3", Service: "consultation", Date: "2025-06-05", Time: "10:00"},
	}
	for _, b := range bookings {
		if err := store.AppendBooking(b); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	got, err := store.ListBookings("haircut", "2025-06-05")
	if err != nil {
		t.Fatalf("ListBookings failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "b-1" {
		t.Fatalf("expected only b-1, got %v", got)
	}
}
