package submitregistration

import "ese-registration-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"category", "fullName", "address", "whatsappNumber", "panchayath", "ward"},
		Properties: map[string]validation.Property{
			"category": {
				Type:        "string",
				Description: "Category name the applicant registers under",
				MaxLength:   validation.IntPtr(200),
			},
			"fullName": {
				Type:      "string",
				MaxLength: validation.IntPtr(200),
			},
			"address": {
				Type:      "string",
				MaxLength: validation.IntPtr(1000),
			},
			"whatsappNumber": {
				Type:        "string",
				Description: "Primary phone number, also the duplicate key",
				MaxLength:   validation.IntPtr(20),
			},
			"mobileNumber": {
				Type:        "string",
				Description: "Defaults to the whatsapp number",
				MaxLength:   validation.IntPtr(20),
			},
			"email": {
				Type:      "string",
				MaxLength: validation.IntPtr(254),
			},
			"panchayath": {
				Type:      "string",
				MaxLength: validation.IntPtr(200),
			},
			"ward": {
				Type:      "string",
				MaxLength: validation.IntPtr(50),
			},
			"proDetails": {
				Type:        "string",
				Description: "Referrer or agent details",
				MaxLength:   validation.IntPtr(500),
			},
			"status": {
				Type: "string",
			},
		},
		AdditionalProperties: false,
	}
}
