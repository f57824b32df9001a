package models

import "time"

type RegistrationStatus string

const (
	StatusPending  RegistrationStatus = "Pending"
	StatusApproved RegistrationStatus = "Approved"
	StatusRejected RegistrationStatus = "Rejected"
)

// Valid reports whether s is one of the three stored statuses.
func (s RegistrationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func RegistrationStatuses() []string {
	return []string{string(StatusPending), string(StatusApproved), string(StatusRejected)}
}

// Registration is one applicant's submission.
type Registration struct {
	ID             string             `json:"id" db:"id"`
	UID            string             `json:"uid" db:"uid"`
	Category       string             `json:"category" db:"category"`
	FullName       string             `json:"fullName" db:"full_name"`
	Address        string             `json:"address" db:"address"`
	WhatsappNumber string             `json:"whatsappNumber" db:"whatsapp_number"`
	MobileNumber   string             `json:"mobileNumber" db:"mobile_number"`
	Email          string             `json:"email,omitempty" db:"email"`
	Panchayath     string             `json:"panchayath" db:"panchayath"`
	Ward           string             `json:"ward" db:"ward"`
	ProDetails     string             `json:"proDetails,omitempty" db:"pro_details"`
	Status         RegistrationStatus `json:"status" db:"status"`
	CreatedAt      time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time          `json:"updatedAt" db:"updated_at"`
}

// Phones returns the distinct phone numbers the registration claims.
func (r *Registration) Phones() []string {
	if r.MobileNumber == "" || r.MobileNumber == r.WhatsappNumber {
		return []string{r.WhatsappNumber}
	}
	return []string{r.WhatsappNumber, r.MobileNumber}
}
