package checkregistrationstatus

import "ese-registration-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"phoneNumber"},
		Properties: map[string]validation.Property{
			"phoneNumber": {
				Type:        "string",
				Description: "Whatsapp or mobile number used at registration",
				MinLength:   validation.IntPtr(1),
				MaxLength:   validation.IntPtr(20),
			},
		},
		AdditionalProperties: false,
	}
}
