package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/mfg-tool-dashboard/internal/constants"
	"github.com/yukikurage/mfg-tool-dashboard/internal/logger"
)

var flashCategories = []string{
	constants.FlashSuccess,
	constants.FlashError,
	constants.FlashInfo,
}

// AddFlash queues a one-shot message for the next page the caller views
func AddFlash(c *gin.Context, category, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, category)
	if err := session.Save(); err != nil {
		logger.From(c.Request.Context()).Error("Failed to save flash message", "error", err)
	}
}

// Flashes pops all pending flash messages grouped by category
func Flashes(c *gin.Context) map[string][]string {
	session := sessions.Default(c)
	result := map[string][]string{}

	for _, category := range flashCategories {
		for _, flash := range session.Flashes(category) {
			if message, ok := flash.(string); ok {
				result[category] = append(result[category], message)
			}
		}
	}

	if len(result) > 0 {
		if err := session.Save(); err != nil {
			logger.From(c.Request.Context()).Error("Failed to save session after reading flashes", "error", err)
		}
	}
	return result
}
