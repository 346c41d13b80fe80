package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LogEntryDocument is a request or audit record as stored in MongoDB.
type LogEntryDocument struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty"`
	Timestamp  time.Time              `bson:"timestamp"`
	Level      string                 `bson:"level"`
	Message    string                 `bson:"message"`
	RequestID  string                 `bson:"request_id,omitempty"`
	Method     string                 `bson:"method,omitempty"`
	Path       string                 `bson:"path,omitempty"`
	StatusCode int                    `bson:"status_code,omitempty"`
	Duration   int64                  `bson:"duration_ms,omitempty"`
	IP         string                 `bson:"ip,omitempty"`
	UserAgent  string                 `bson:"user_agent,omitempty"`
	Error      string                 `bson:"error,omitempty"`
	Actor      string                 `bson:"actor,omitempty"`
	ActionType string                 `bson:"action_type,omitempty"`
	QuoteID    string                 `bson:"quote_id,omitempty"`
	Fields     map[string]interface{} `bson:"fields,omitempty"`
}

// LogQueryOptions filters a log query. Zero values match everything.
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

// Filter builds the MongoDB filter for the options.
func (o LogQueryOptions) Filter() bson.M {
	filter := bson.M{}
	if o.RequestID != "" {
		filter["request_id"] = o.RequestID
	}
	if o.Level != "" {
		filter["level"] = o.Level
	}
	if o.ActionType != "" {
		filter["action_type"] = o.ActionType
	}
	if o.Path != "" {
		filter["path"] = o.Path
	}
	if o.StartTime != nil || o.EndTime != nil {
		timeFilter := bson.M{}
		if o.StartTime != nil {
			timeFilter["$gte"] = *o.StartTime
		}
		if o.EndTime != nil {
			timeFilter["$lte"] = *o.EndTime
		}
		filter["timestamp"] = timeFilter
	}
	return filter
}

// LogsRepository provides methods for log operations at the repository level.
type LogsRepository struct {
	collection *mongo.Collection
}

// NewLogsRepository creates a new logs repository.
func NewLogsRepository(db *MongoDB) *LogsRepository {
	return &LogsRepository{
		collection: db.Logs,
	}
}

func prepare(entry *LogEntryDocument) {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
}

// Create inserts a new log entry document.
func (r *LogsRepository) Create(ctx context.Context, entry *LogEntryDocument) error {
	prepare(entry)
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// CreateMany inserts multiple log entry documents in one unordered bulk write.
func (r *LogsRepository) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	if len(entries) == 0 {
		return nil
	}

	docs := make([]interface{}, len(entries))
	for i, entry := range entries {
		prepare(entry)
		docs[i] = entry
	}

	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	return err
}

// Query returns log entries matching opts, newest first.
func (r *LogsRepository) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if opts.Limit > 0 {
		findOptions.SetLimit(int64(opts.Limit))
	}
	if opts.Skip > 0 {
		findOptions.SetSkip(int64(opts.Skip))
	}

	cursor, err := r.collection.Find(ctx, opts.Filter(), findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var entries []*LogEntryDocument
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the number of log entries matching opts. Limit and Skip are ignored.
func (r *LogsRepository) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	return r.collection.CountDocuments(ctx, opts.Filter())
}
