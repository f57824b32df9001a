package updateregistrationstatus

import (
	"ese-registration-workers/internal/common/validation"
	"ese-registration-workers/internal/models"
)

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"sessionToken", "registrationId", "status"},
		Properties: map[string]validation.Property{
			"sessionToken":   {Type: "string", MaxLength: validation.IntPtr(100)},
			"registrationId": {Type: "string", MinLength: validation.IntPtr(1)},
			"status": {
				Type: "string",
				Enum: models.RegistrationStatuses(),
			},
		},
		AdditionalProperties: false,
	}
}
