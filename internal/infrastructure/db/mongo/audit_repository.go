package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/recipehub/web-gateway/internal/core/domain"
	"github.com/recipehub/web-gateway/internal/core/ports"
)

const auditCollection = "auth_events"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	db *mongo.Database
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{db: db}
}

type auditDoc struct {
	SessionID  string    `bson:"session_id"`
	Kind       string    `bson:"kind"`
	Username   string    `bson:"username,omitempty"`
	At         time.Time `bson:"at"`
	RecordedAt time.Time `bson:"recorded_at"`
}

// Insert persists one auth event to the auth_events collection.
func (r *AuditRepository) Insert(ctx context.Context, ev *domain.AuthEvent) error {
	doc := auditDoc{
		SessionID:  ev.SessionID,
		Kind:       string(ev.Kind),
		Username:   ev.Username,
		At:         ev.At.UTC(),
		RecordedAt: time.Now().UTC(),
	}

	if _, err := r.db.Collection(auditCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}

// Recent returns the newest auth events, most recent first. Feeds the admin
// dashboard's activity panel.
func (r *AuditRepository) Recent(ctx context.Context, limit int64) ([]domain.AuthEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	opts := options.Find().SetSort(bson.D{{Key: "at", Value: -1}}).SetLimit(limit)
	cur, err := r.db.Collection(auditCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find auth events: %w", err)
	}
	defer cur.Close(ctx)

	var events []domain.AuthEvent
	for cur.Next(ctx) {
		var doc auditDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode auth event: %w", err)
		}
		events = append(events, domain.AuthEvent{
			SessionID: doc.SessionID,
			Kind:      domain.AuthEventKind(doc.Kind),
			Username:  doc.Username,
			At:        doc.At,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate auth events: %w", err)
	}
	return events, nil
}
