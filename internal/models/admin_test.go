package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleAllows(t *testing.T) {
	tests := []struct {
		role   Role
		view   bool
		edit   bool
		delete bool
	}{
		{RoleSuper, true, true, true},
		{RoleLocal, true, true, false},
		{RoleUser, true, false, false},
		{Role("guest"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.view, tt.role.Allows(PermissionView))
			assert.Equal(t, tt.edit, tt.role.Allows(PermissionEdit))
			assert.Equal(t, tt.delete, tt.role.Allows(PermissionDelete))
			assert.False(t, tt.role.Allows(Permission("export")))
		})
	}
}

func TestRegistrationStatusValid(t *testing.T) {
	for _, s := range RegistrationStatuses() {
		assert.True(t, RegistrationStatus(s).Valid(), s)
	}
	assert.False(t, RegistrationStatus("pending").Valid())
	assert.False(t, RegistrationStatus("").Valid())
}

func TestRegistrationPhones(t *testing.T) {
	r := &Registration{WhatsappNumber: "9876543210", MobileNumber: "9876543210"}
	assert.Equal(t, []string{"9876543210"}, r.Phones())

	r.MobileNumber = "8876543210"
	assert.Equal(t, []string{"9876543210", "8876543210"}, r.Phones())

	r.MobileNumber = ""
	assert.Equal(t, []string{"9876543210"}, r.Phones())
}

func TestSessionValid(t *testing.T) {
	s := &Session{ID: "tok", Username: "admin", Role: RoleLocal, IsActive: true}
	assert.True(t, s.Valid())

	s.Role = "root"
	assert.False(t, s.Valid())

	var missing *Session
	assert.False(t, missing.Valid())
}
