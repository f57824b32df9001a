package adminlogin

import "ese-registration-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"username", "password"},
		Properties: map[string]validation.Property{
			"username": {
				Type:      "string",
				MinLength: validation.IntPtr(1),
				MaxLength: validation.IntPtr(100),
			},
			"password": {
				Type:      "string",
				MinLength: validation.IntPtr(1),
				MaxLength: validation.IntPtr(200),
			},
		},
		AdditionalProperties: false,
	}
}
