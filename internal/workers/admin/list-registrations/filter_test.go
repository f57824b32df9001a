package listregistrations

import (
	"testing"

	"ese-registration-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func filterRows() []models.Registration {
	return []models.Registration{
		{ID: "r1", UID: "ESE9876543210A", FullName: "Anas P", WhatsappNumber: "9876543210", MobileNumber: "9876543210",
			Category: "Food Processing", Panchayath: "Kottakkal", Status: models.StatusPending},
		{ID: "r2", UID: "ESE8123456789F", FullName: "Fathima K", WhatsappNumber: "8123456789", MobileNumber: "7012345678",
			Category: "Tailoring", Panchayath: "Kottakkal", Status: models.StatusApproved},
		{ID: "r3", UID: "ESE9447000000R", FullName: "Rahul M", WhatsappNumber: "9447000000", MobileNumber: "9447000000",
			Category: "Food Processing", Panchayath: "Vengara", Status: models.StatusRejected},
	}
}

func ids(rows []models.Registration) []string {
	out := []string{}
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func TestFilter_Apply(t *testing.T) {
	tests := []struct {
		name  string
		input Input
		want  []string
	}{
		{"no filters", Input{}, []string{"r1", "r2", "r3"}},
		{"all selections", Input{Category: "all", Panchayath: "All", Status: "all"}, []string{"r1", "r2", "r3"}},
		{"name case insensitive", Input{Search: "fath"}, []string{"r2"}},
		{"uid", Input{Search: "ese9447"}, []string{"r3"}},
		{"whatsapp", Input{Search: "98765"}, []string{"r1"}},
		{"mobile only", Input{Search: "70123"}, []string{"r2"}},
		{"category", Input{Category: "Food Processing"}, []string{"r1", "r3"}},
		{"category is exact", Input{Category: "food processing"}, []string{}},
		{"panchayath", Input{Panchayath: "Kottakkal"}, []string{"r1", "r2"}},
		{"status", Input{Status: "Rejected"}, []string{"r3"}},
		{"combined", Input{Search: "a", Category: "Food Processing", Panchayath: "Kottakkal"}, []string{"r1"}},
		{"no match", Input{Search: "zzz"}, []string{}},
		{"whitespace search", Input{Search: "   "}, []string{"r1", "r2", "r3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(NewFilter(&tt.input).Apply(filterRows())))
		})
	}
}

func TestFilter_KeepsOrderAndSource(t *testing.T) {
	rows := filterRows()

	got := NewFilter(&Input{Status: "Pending"}).Apply(rows)
	got[0].FullName = "changed"

	assert.Equal(t, "Anas P", rows[0].FullName)
	assert.Len(t, rows, 3)
}
