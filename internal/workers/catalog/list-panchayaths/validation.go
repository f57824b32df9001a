package listpanchayaths

import "ese-registration-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"activeOnly": {
				Type:        "boolean",
				Description: "Only list active panchayaths (default true)",
			},
			"district": {
				Type:      "string",
				MaxLength: validation.IntPtr(100),
			},
		},
		AdditionalProperties: false,
	}
}
