package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SettingHandler serves the static site settings document. Updates are
// echoed back merged over the defaults; nothing is persisted.
type SettingHandler struct{}

func defaultSettings() gin.H {
	return gin.H{
		"general": gin.H{
			"siteName":        "Rental Prima",
			"siteDescription": "Find your perfect rental",
			"contactEmail":    "contact@rentalprima.example.com",
			"contactPhone":    "+1 (555) 123-4567",
			"address":         "123 Main St, New York, NY 10001",
		},
		"email": gin.H{
			"smtpHost":           "smtp.example.com",
			"smtpPort":           587,
			"fromEmail":          "notifications@rentalprima.example.com",
			"fromName":           "Rental Prima",
			"emailNotifications": true,
		},
		"security": gin.H{
			"twoFactorAuth": false,
			"loginAttempts": 5,
			"lockoutTime":   30,
			"passwordPolicy": gin.H{
				"minLength":        8,
				"requireUppercase": true,
				"requireLowercase": true,
				"requireNumbers":   true,
				"requireSymbols":   false,
			},
		},
	}
}

// GET /api/settings
func (h SettingHandler) Get(c *gin.Context) {
	RespondData(c, http.StatusOK, defaultSettings())
}

// PUT /api/settings
func (h SettingHandler) Update(c *gin.Context) {
	var body map[string]any
	if !BindJSONOrError(c, &body) {
		return
	}

	merged := defaultSettings()
	for k, v := range body {
		merged[k] = v
	}
	RespondData(c, http.StatusOK, merged)
}
