package middleware

import (
	"bytes"
	"io"
	"strings"

	"github.com/domen5/TaskTrail-sub000/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ActivityMiddleware persists an activity record per authenticated
// mutating request. Must run after AuthMiddleware.
func ActivityMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		c.Next()

		user, ok := CurrentUser(c)
		if !ok {
			return
		}
		// reads are not worth auditing
		if c.Request.Method == "GET" {
			return
		}

		path := c.Request.URL.Path
		action := c.Request.Method + " " + path
		// credential payloads must not land in the audit trail
		if len(bodyBytes) > 0 && len(bodyBytes) < 2000 && !strings.Contains(path, "password") {
			action += " " + string(bodyBytes)
		}

		entry := models.ActivityLog{
			UserID:    user.ID,
			Method:    c.Request.Method,
			Path:      path,
			Action:    action,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}

		_ = db.Create(&entry).Error
	}
}
