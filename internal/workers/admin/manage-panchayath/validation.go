package managepanchayath

import "ese-registration-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"sessionToken", "action"},
		Properties: map[string]validation.Property{
			"sessionToken": {Type: "string", MaxLength: validation.IntPtr(100)},
			"action": {
				Type: "string",
				Enum: []string{ActionCreate, ActionUpdate, ActionDelete},
			},
			"panchayathId":  {Type: "string", Description: "Required for update and delete"},
			"name":          {Type: "string", MaxLength: validation.IntPtr(200)},
			"malayalamName": {Type: "string", MaxLength: validation.IntPtr(200)},
			"district":      {Type: "string", MaxLength: validation.IntPtr(100)},
			"isActive":      {Type: "boolean"},
		},
		AdditionalProperties: false,
	}
}
