package listregistrations

import (
	"strings"

	"ese-registration-workers/internal/models"
)

// Filter narrows a registration listing. Every set field must match.
type Filter struct {
	Search     string
	Category   string
	Panchayath string
	Status     string
}

func NewFilter(input *Input) Filter {
	return Filter{
		Search:     strings.ToLower(strings.TrimSpace(input.Search)),
		Category:   selection(input.Category),
		Panchayath: selection(input.Panchayath),
		Status:     selection(input.Status),
	}
}

// selection maps the "all" choice of a dropdown to no filter.
func selection(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}

func (f Filter) Matches(r *models.Registration) bool {
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	if f.Panchayath != "" && r.Panchayath != f.Panchayath {
		return false
	}
	if f.Status != "" && string(r.Status) != f.Status {
		return false
	}
	if f.Search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.FullName), f.Search) ||
		strings.Contains(strings.ToLower(r.UID), f.Search) ||
		strings.Contains(r.WhatsappNumber, f.Search) ||
		strings.Contains(r.MobileNumber, f.Search)
}

// Apply returns the matching rows in their original order.
func (f Filter) Apply(rows []models.Registration) []models.Registration {
	out := make([]models.Registration, 0, len(rows))
	for i := range rows {
		if f.Matches(&rows[i]) {
			out = append(out, rows[i])
		}
	}
	return out
}
