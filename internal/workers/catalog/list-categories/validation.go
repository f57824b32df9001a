package listcategories

import "ese-registration-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"division": {
				Type:      "string",
				MaxLength: validation.IntPtr(100),
			},
		},
		AdditionalProperties: false,
	}
}
