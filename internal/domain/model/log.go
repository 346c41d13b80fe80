package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Action types recorded in audit entries.
const (
	ActionOptimize      = "optimize"
	ActionUpdateCatalog = "update_catalog"
	ActionLogin         = "login"
	ActionReceipt       = "receipt"
)

// LogEntry is a request or audit record written to the log sink.
// Context that does not fit a named field goes into Fields.
type LogEntry struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Timestamp  time.Time              `bson:"timestamp" json:"timestamp"`
	Level      string                 `bson:"level" json:"level"`
	Message    string                 `bson:"message" json:"message"`
	RequestID  string                 `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Method     string                 `bson:"method,omitempty" json:"method,omitempty"`
	Path       string                 `bson:"path,omitempty" json:"path,omitempty"`
	StatusCode int                    `bson:"status_code,omitempty" json:"status_code,omitempty"`
	Duration   int64                  `bson:"duration_ms,omitempty" json:"duration_ms,omitempty"`
	IP         string                 `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent  string                 `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	Error      string                 `bson:"error,omitempty" json:"error,omitempty"`
	Actor      string                 `bson:"actor,omitempty" json:"actor,omitempty"`
	ActionType string                 `bson:"action_type,omitempty" json:"action_type,omitempty"`
	QuoteID    string                 `bson:"quote_id,omitempty" json:"quote_id,omitempty"`
	Fields     map[string]interface{} `bson:"fields,omitempty" json:"fields,omitempty"`
}

// WithField sets one entry in Fields, allocating the map when needed.
func (e *LogEntry) WithField(key string, value interface{}) *LogEntry {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// WithFields merges fields into Fields.
func (e *LogEntry) WithFields(fields map[string]interface{}) *LogEntry {
	for k, v := range fields {
		e.WithField(k, v)
	}
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	return e
}

// LogQueryOptions filters a log query.
type LogQueryOptions struct {
	RequestID  string
	Level      string
	ActionType string
	Path       string
	StartTime  *time.Time
	EndTime    *time.Time
	Limit      int
	Skip       int
}
