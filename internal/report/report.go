// Package report derives the filtered, grouped and totalled views of the
// service history shown on the reports screen.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

// UnknownTruckKey labels the group of services whose truck is not in the
// truck list.
const UnknownTruckKey = "truck not found"

const dayLayout = "2006-01-02"

var dateLayouts = []string{
	dayLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Filter selects services. Zero dates leave that side unbounded, an empty
// TruckID matches any truck and an empty or StatusAll status matches any status.
type Filter struct {
	StartDate time.Time
	EndDate   time.Time
	TruckID   string
	Status    models.ServiceStatus
}

// ParseFilter builds a Filter from user input. Dates are YYYY-MM-DD.
func ParseFilter(startDate, endDate, truckID, status string) (Filter, error) {
	var f Filter
	var err error
	if startDate = strings.TrimSpace(startDate); startDate != "" {
		if f.StartDate, err = time.Parse(dayLayout, startDate); err != nil {
			return Filter{}, fmt.Errorf("invalid start date %q: %w", startDate, err)
		}
	}
	if endDate = strings.TrimSpace(endDate); endDate != "" {
		if f.EndDate, err = time.Parse(dayLayout, endDate); err != nil {
			return Filter{}, fmt.Errorf("invalid end date %q: %w", endDate, err)
		}
	}
	if f.Status, err = models.ParseServiceStatus(status); err != nil {
		return Filter{}, err
	}
	f.TruckID = strings.TrimSpace(truckID)
	return f, nil
}

// Match reports whether s satisfies every active criterion.
func (f Filter) Match(s models.Service) bool {
	if !f.StartDate.IsZero() || !f.EndDate.IsZero() {
		day, ok := ParseDay(s.ServiceDate)
		if !ok {
			return false
		}
		if !f.StartDate.IsZero() && day.Before(truncateDay(f.StartDate)) {
			return false
		}
		if !f.EndDate.IsZero() && day.After(truncateDay(f.EndDate)) {
			return false
		}
	}
	if f.TruckID != "" && s.TruckID != f.TruckID {
		return false
	}
	if f.Status != "" && f.Status != models.StatusAll && s.Status != f.Status {
		return false
	}
	return true
}

// ParseDay reads a service date (plain date or timestamp) and returns its
// calendar day at midnight UTC.
func ParseDay(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return truncateDay(t), true
		}
	}
	return time.Time{}, false
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Apply returns the services matching f, in input order.
func Apply(services []models.Service, f Filter) []models.Service {
	out := make([]models.Service, 0, len(services))
	for _, s := range services {
		if f.Match(s) {
			out = append(out, s)
		}
	}
	return out
}

// Group accumulates the services of one "<brand> <model>" key.
type Group struct {
	Key     string
	Unknown bool
	Count   int
	Value   decimal.Decimal
	Meters  decimal.Decimal
}

// GroupByTruck groups services by the label of their truck. Groups come out in
// the order their key first appears; services whose truck is missing share the
// UnknownTruckKey group.
func GroupByTruck(services []models.Service, trucks []models.Truck) []Group {
	byID := make(map[string]models.Truck, len(trucks))
	for _, t := range trucks {
		byID[t.ID] = t
	}

	index := make(map[string]int)
	groups := make([]Group, 0)
	for _, s := range services {
		key, unknown := UnknownTruckKey, true
		if t, ok := byID[s.TruckID]; ok {
			key, unknown = t.Label(), false
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key, Unknown: unknown})
		}
		g := &groups[i]
		g.Count++
		g.Value = g.Value.Add(s.Value.Dec())
		g.Meters = g.Meters.Add(s.Meter.Dec())
	}
	return groups
}

// Totals are the grand totals of a service list.
type Totals struct {
	Count  int
	Value  decimal.Decimal
	Meters decimal.Decimal
}

// Summarize sums count, value and meters over services.
func Summarize(services []models.Service) Totals {
	t := Totals{Count: len(services)}
	for _, s := range services {
		t.Value = t.Value.Add(s.Value.Dec())
		t.Meters = t.Meters.Add(s.Meter.Dec())
	}
	return t
}

// Report is the full output of one aggregation pass.
type Report struct {
	Filter   Filter
	Services []models.Service
	Groups   []Group
	Totals   Totals
}

// Build filters services with f, then groups and totals the survivors.
func Build(services []models.Service, trucks []models.Truck, f Filter) Report {
	filtered := Apply(services, f)
	return Report{
		Filter:   f,
		Services: filtered,
		Groups:   GroupByTruck(filtered, trucks),
		Totals:   Summarize(filtered),
	}
}
