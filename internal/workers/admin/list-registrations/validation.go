package listregistrations

import (
	"ese-registration-workers/internal/common/validation"
	"ese-registration-workers/internal/models"
)

func GetInputSchema() validation.JSONSchema {
	statuses := append([]string{"", "all"}, models.RegistrationStatuses()...)

	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"sessionToken"},
		Properties: map[string]validation.Property{
			"sessionToken": {Type: "string", MaxLength: validation.IntPtr(100)},
			"search": {
				Type:        "string",
				Description: "Substring of name, application id or phone number",
				MaxLength:   validation.IntPtr(200),
			},
			"category":   {Type: "string", MaxLength: validation.IntPtr(200)},
			"panchayath": {Type: "string", MaxLength: validation.IntPtr(200)},
			"status":     {Type: "string", Enum: statuses},
		},
		AdditionalProperties: false,
	}
}
