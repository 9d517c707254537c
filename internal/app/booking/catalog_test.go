package booking_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/slotline/slotline-agent/internal/app/booking"
)

func TestCatalogUnknownServiceReturnsEmpty(t *testing.T) {
	c := booking.DefaultCatalog()

	if got := c.NominalSlots("massage", "2025-06-03"); len(got) != 0 {
		t.Fatalf("expected empty slots for unknown service, got %v", got)
	}
}

func TestCatalogAddServicePreservesOrder(t *testing.T) {
	c := booking.NewCatalog()
	c.AddService("b-service", map[string][]string{"2025-01-01": {"09:00"}})
	c.AddService("a-service", map[string][]string{"2025-01-01": {"10:00"}})
	// re-adding merges, must not duplicate or reorder
	c.AddService("b-service", map[string][]string{"2025-01-02": {"11:00"}})

	got := c.Services()
	want := []string{"b-service", "a-service"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	if slots := c.NominalSlots("b-service", "2025-01-02"); len(slots) != 1 || slots[0] != "11:00" {
		t.Fatalf("expected merged date slots, got %v", slots)
	}
}

func TestLoadCatalogFromJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	data := `[
  {"service": "consultation", "slots": {"2025-06-03": ["10:00", "11:00"]}},
  {"service": "haircut", "slots": {"2025-06-05": ["14:00"]}}
]`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("writing catalog fixture: %v", err)
	}

	c, err := booking.LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}

	services := c.Services()
	if len(services) != 2 || services[0] != "consultation" || services[1] != "haircut" {
		t.Fatalf("unexpected services: %v", services)
	}
	if slots := c.NominalSlots("haircut", "2025-06-05"); len(slots) != 1 || slots[0] != "14:00" {
		t.Fatalf("unexpected slots: %v", slots)
	}
}

func TestLoadCatalogRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(`{"not": "an array"}`), 0o600); err != nil {
		t.Fatalf("writing catalog fixture: %v", err)
	}

	if _, err := booking.LoadCatalog(path); err == nil {
		t.Fatal("expected an error for malformed catalog")
	}
}
