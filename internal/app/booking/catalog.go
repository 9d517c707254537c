package booking

import (
	"encoding/json"
	"fmt"
	"os"
)

// Catalog maps service -> date (YYYY-MM-DD) -> nominal time slots (HH:MM),
// the slots that exist in principle before subtracting bookings. It is
// built once at startup and read-only afterwards.
//
// Duplicate times within one date are a configuration error; the catalog
// does not dedupe them.
type Catalog struct {
	order []string
	slots map[string]map[string][]string
}

func NewCatalog() *Catalog {
	return &Catalog{
		slots: make(map[string]map[string][]string),
	}
}

// AddService registers a service and its per-date slots. Adding the same
// service twice merges the dates and keeps the original position.
func (c *Catalog) AddService(name string, days map[string][]string) {
	if _, exists := c.slots[name]; !exists {
		c.order = append(c.order, name)
		c.slots[name] = make(map[string][]string)
	}
	for date, times := range days {
		c.slots[name][date] = append([]string(nil), times...)
	}
}

// Services returns all configured service keys in insertion order.
func (c *Catalog) Services() []string {
	return append([]string(nil), c.order...)
}

// NominalSlots returns the configured slots for that service and date.
// An unknown service or an unconfigured date is not an error: it degrades
// to an empty list, since callers (the agent above all) probe exploratory
// combinations all the time.
func (c *Catalog) NominalSlots(service, date string) []string {
	days, ok := c.slots[service]
	if !ok {
		return []string{}
	}
	times, ok := days[date]
	if !ok {
		return []string{}
	}
	return append([]string(nil), times...)
}

// DefaultCatalog returns the built-in demo catalog. In a real deployment
// this would come from a calendar source or the catalog file.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	c.AddService("consultation", map[string][]string{
		"2025-06-03": {"10:00", "11:00", "14:00"},
		"2025-06-04": {"09:00", "10:00", "13:00"},
	})
	c.AddService("haircut", map[string][]string{
		"2025-06-03": {"09:00", "12:00", "15:00"},
		"2025-06-05": {"10:00", "11:00", "14:00"},
	})
	return c
}

type catalogEntry struct {
	Service string              `json:"service"`
	Slots   map[string][]string `json:"slots"`
}

// LoadCatalog reads a catalog from a JSON file shaped as an array of
// {"service": ..., "slots": {date: [times]}} entries. The array form keeps
// the service order stable.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var entries []catalogEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}

	c := NewCatalog()
	for _, e := range entries {
		if e.Service == "" {
			return nil, fmt.Errorf("catalog entry with empty service name")
		}
		c.AddService(e.Service, e.Slots)
	}
	return c, nil
}
