package adminlogout

import "ese-registration-workers/internal/common/validation"

// An empty token is accepted; logging out twice is not an error.
func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"sessionToken"},
		Properties: map[string]validation.Property{
			"sessionToken": {
				Type:      "string",
				MaxLength: validation.IntPtr(100),
			},
		},
		AdditionalProperties: false,
	}
}
