package sendnotification

import (
	"fmt"
	"strings"

	"ese-registration-workers/internal/models"
)

var templates = map[models.NotificationType]models.NotificationTemplate{
	models.NotificationRegistrationSubmitted: {
		Type:    models.NotificationRegistrationSubmitted,
		Subject: "Registration received: {{uid}}",
		Body: "Dear {{fullName}}, your self-employment registration under {{category}} " +
			"({{panchayath}}) has been received. Application ID: {{uid}}. Status: {{status}}.",
	},
	models.NotificationStatusChanged: {
		Type:    models.NotificationStatusChanged,
		Subject: "Registration {{uid}} is now {{status}}",
		Body:    "Dear {{fullName}}, the status of your registration {{uid}} has changed to {{status}}.",
	},
}

func templateData(reg *models.Registration) map[string]interface{} {
	return map[string]interface{}{
		"uid":        reg.UID,
		"fullName":   reg.FullName,
		"category":   reg.Category,
		"panchayath": reg.Panchayath,
		"status":     reg.Status,
	}
}

// renderTemplate fills {{key}} placeholders from data and drops any left unfilled.
func renderTemplate(tmpl string, data map[string]interface{}) string {
	result := tmpl
	for k, v := range data {
		value := ""
		if s, ok := v.(string); ok {
			value = s
		} else if v != nil {
			value = fmt.Sprintf("%v", v)
		}
		result = strings.ReplaceAll(result, "{{"+k+"}}", value)
	}

	for {
		start := strings.Index(result, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], "}}")
		if end == -1 {
			break
		}
		result = result[:start] + result[start+end+2:]
	}
	return result
}
