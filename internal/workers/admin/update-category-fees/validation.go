package updatecategoryfees

import "ese-registration-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"sessionToken", "categoryId"},
		Properties: map[string]validation.Property{
			"sessionToken": {Type: "string", MaxLength: validation.IntPtr(100)},
			"categoryId":   {Type: "string", MinLength: validation.IntPtr(1)},
			"actualFee": {
				Type:    "number",
				Minimum: validation.FloatPtr(0),
			},
			"offerFee": {
				Type:        "number",
				Description: "Discounted fee; zero makes the category free",
				Minimum:     validation.FloatPtr(0),
			},
		},
		AdditionalProperties: false,
	}
}
