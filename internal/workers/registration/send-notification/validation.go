package sendnotification

import (
	"ese-registration-workers/internal/common/validation"
	"ese-registration-workers/internal/models"
)

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"registrationId", "notificationType"},
		Properties: map[string]validation.Property{
			"registrationId": {
				Type:      "string",
				MinLength: validation.IntPtr(1),
			},
			"notificationType": {
				Type: "string",
				Enum: []string{
					string(models.NotificationRegistrationSubmitted),
					string(models.NotificationStatusChanged),
				},
			},
		},
		AdditionalProperties: false,
	}
}
