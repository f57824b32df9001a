package models

import "time"

// Panchayath is an administrative locality.
type Panchayath struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	MalayalamName string    `json:"malayalamName,omitempty" db:"malayalam_name"`
	District      string    `json:"district" db:"district"`
	IsActive      bool      `json:"isActive" db:"is_active"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// PanchayathPatch is a partial update; nil fields are left as stored.
type PanchayathPatch struct {
	Name          *string
	MalayalamName *string
	District      *string
	IsActive      *bool
}

func (p PanchayathPatch) Empty() bool {
	return p.Name == nil && p.MalayalamName == nil && p.District == nil && p.IsActive == nil
}
