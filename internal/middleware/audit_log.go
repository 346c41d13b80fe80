package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/laundry-service/internal/domain/model"
)

// NewAuditEntry builds an audit entry for the current request. Callers may set
// QuoteID or Fields before handing it to an AsyncLogger.
func NewAuditEntry(c *gin.Context, actionType, message string) *model.LogEntry {
	return &model.LogEntry{
		Timestamp:  time.Now().UTC(),
		Level:      "info",
		Message:    message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		Actor:      GetActor(c),
		ActionType: actionType,
	}
}

// AuditLog records a successful action such as a login, an optimization or a catalog change.
func AuditLog(al *AsyncLogger, c *gin.Context, actionType, message string, fields map[string]interface{}) {
	if al == nil {
		return
	}
	entry := NewAuditEntry(c, actionType, message)
	if len(fields) > 0 {
		entry.WithFields(fields)
	}
	al.Log(entry)
}

// AuditLogError records a failed action.
func AuditLogError(al *AsyncLogger, c *gin.Context, actionType, message string, err error, fields map[string]interface{}) {
	if al == nil {
		return
	}
	entry := NewAuditEntry(c, actionType, message)
	entry.Level = "error"
	if err != nil {
		entry.Error = err.Error()
	}
	if len(fields) > 0 {
		entry.WithFields(fields)
	}
	al.Log(entry)
}
