package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidMobileNumber(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"9876543210", true},
		{"6000000000", true},
		{"987-654-3210", true},
		{"(987) 654 3210", true},
		{"1234567890", false},
		{"5876543210", false},
		{"98765432", false},
		{"98765432101", false},
		{"+919876543210", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidMobileNumber(tt.input))
		})
	}
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "9876543210", DigitsOnly("987-654-3210"))
	assert.Equal(t, "919876543210", DigitsOnly("+91 98765 43210"))
	assert.Equal(t, "", DigitsOnly("abc"))
}

func TestFormatAddress(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"collapses and trims", "  12  Main   St. ", "12 Main St."},
		{"tabs and newlines", "House 4\n\tWard 7 ", "House 4 Ward 7"},
		{"already clean", "Kottakkal", "Kottakkal"},
		{"only whitespace", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAddress(tt.input))
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("applicant@example.in"))
	assert.False(t, ValidateEmail("applicant@"))
	assert.False(t, ValidateEmail("not an email"))
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank(" \t"))
	assert.False(t, IsBlank(" a "))
}
