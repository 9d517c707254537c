package booking_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/slotline/slotline-agent/internal/adapters/storage/memory"
	"github.com/slotline/slotline-agent/internal/app/booking"
	"github.com/slotline/slotline-agent/internal/domain"
)

func newTestService(t *testing.T) *booking.Service {
	t.Helper()
	return booking.NewService(booking.DefaultCatalog(), memory.NewBookingStore())
}

func TestListServicesKeepsCatalogOrder(t *testing.T) {
	svc := newTestService(t)

	got := svc.ListServices()
	want := []string{"consultation", "haircut"}

	if len(got) != len(want) {
		t.Fatalf("expected %d services, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected services %v, got %v", want, got)
		}
	}
}

func TestCheckAvailabilityNoBookings(t *testing.T) {
	svc := newTestService(t)

	got, err := svc.CheckAvailability("consultation", "2025-06-03")
	if err != nil {
		t.Fatalf("CheckAvailability failed: %v", err)
	}

	want := []string{"10:00", "11:00", "14:00"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestCheckAvailabilityUnknownInputsDegradeGracefully(t *testing.T) {
	svc := newTestService(t)

	for _, tc := range []struct {
		name, service, date string
	}{
		{"unknown service", "nonexistent-service", "2099-01-01"},
		{"unconfigured date", "consultation", "2099-01-01"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.CheckAvailability(tc.service, tc.date)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(got) != 0 {
				t.Fatalf("expected empty availability, got %v", got)
			}
		})
	}
}

func TestCheckAvailabilityIsIdempotent(t *testing.T) {
	svc := newTestService(t)

	first, err := svc.CheckAvailability("haircut", "2025-06-03")
	if err != nil {
		t.Fatalf("CheckAvailability failed: %v", err)
	}
	second, err := svc.CheckAvailability("haircut", "2025-06-03")
	if err != nil {
		t.Fatalf("CheckAvailability failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("availability changed between reads: %v then %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("availability changed between reads: %v then %v", first, second)
		}
	}
}

func TestBookAppointmentRemovesSlot(t *testing.T) {
	svc := newTestService(t)

	b, err := svc.BookAppointment("haircut", "2025-06-05", "10:00", "Alice")
	if err != nil {
		t.Fatalf("BookAppointment failed: %v", err)
	}
	if b.ID == "" {
		t.Fatal("expected a booking id")
	}
	if b.UserName != "Alice" {
		t.Fatalf("expected user Alice, got %q", b.UserName)
	}
	if b.BookedAt.IsZero() {
		t.Fatal("expected a booked_at timestamp")
	}

	got, err := svc.CheckAvailability("haircut", "2025-06-05")
	if err != nil {
		t.Fatalf("CheckAvailability failed: %v", err)
	}
	want := []string{"11:00", "14:00"}
	if len(got) != len(want) {
		t.Fatalf("expected %v after booking, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v after booking, got %v", want, got)
		}
	}
}

func TestBookAppointmentRejectsTakenSlot(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.BookAppointment("haircut", "2025-06-05", "10:00", "Alice"); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	_, err := svc.BookAppointment("haircut", "2025-06-05", "10:00", "Bob")
	if !errors.Is(err, domain.ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable, got %v", err)
	}
}

func TestBookAppointmentRejectsNeverNominalTime(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.BookAppointment("haircut", "2025-06-05", "23:59", "Alice")
	if !errors.Is(err, domain.ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable, got %v", err)
	}
}

func TestAvailabilityIsSubsetOfNominal(t *testing.T) {
	catalog := booking.DefaultCatalog()
	svc := booking.NewService(catalog, memory.NewBookingStore())

	if _, err := svc.BookAppointment("consultation", "2025-06-04", "10:00", "Carol"); err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	for _, service := range catalog.Services() {
		for _, date := range []string{"2025-06-03", "2025-06-04", "2025-06-05"} {
			nominal := catalog.NominalSlots(service, date)
			inNominal := make(map[string]bool, len(nominal))
			for _, tm := range nominal {
				inNominal[tm] = true
			}

			available, err := svc.CheckAvailability(service, date)
			if err != nil {
				t.Fatalf("CheckAvailability(%s, %s) failed: %v", service, date, err)
			}
			for _, tm := range available {
				if !inNominal[tm] {
					t.Fatalf("available time %s for %s on %s is not nominal", tm, service, date)
				}
			}
		}
	}
}

func TestConcurrentBookingOfOneSlotSucceedsOnce(t *testing.T) {
	svc := newTestService(t)

	const committers = 32

	var wg sync.WaitGroup
	results := make(chan error, committers)

	for i := 0; i < committers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.BookAppointment("consultation", "2025-06-03", "11:00", "racer")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrSlotUnavailable):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if successes != 1 {
		t.Fatalf("expected exactly 1 successful booking, got %d", successes)
	}
}
