package report

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/ukydev/fleet-maintenance/internal/models"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases s, strips accents and collapses whitespace so
// "Caminhão  SCANIA" and "caminhao scania" compare equal.
func Normalize(s string) string {
	s = strings.ToLower(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if out, _, err := transform.String(t, s); err == nil {
		s = out
	}
	return strings.Join(strings.Fields(s), " ")
}

func containsTerm(field, term string) bool {
	return strings.Contains(Normalize(field), term)
}

// SearchTrucks returns trucks whose brand, model or year contains term.
// An empty term returns every truck.
func SearchTrucks(trucks []models.Truck, term string) []models.Truck {
	term = Normalize(term)
	if term == "" {
		return trucks
	}
	out := make([]models.Truck, 0, len(trucks))
	for _, t := range trucks {
		if containsTerm(t.Brand, term) || containsTerm(t.Model, term) || strings.Contains(strconv.Itoa(t.Year), term) {
			out = append(out, t)
		}
	}
	return out
}

// SearchServices returns services whose equipment, OF, or embedded truck brand
// or model contains term, restricted to status unless it is StatusAll or empty.
func SearchServices(services []models.Service, term string, status models.ServiceStatus) []models.Service {
	term = Normalize(term)
	out := make([]models.Service, 0, len(services))
	for _, s := range services {
		if status != "" && status != models.StatusAll && s.Status != status {
			continue
		}
		if term != "" && !serviceMatches(s, term) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func serviceMatches(s models.Service, term string) bool {
	if containsTerm(s.Equipment, term) || containsTerm(s.OF, term) {
		return true
	}
	if s.Truck != nil {
		return containsTerm(s.Truck.Brand, term) || containsTerm(s.Truck.Model, term)
	}
	return false
}
