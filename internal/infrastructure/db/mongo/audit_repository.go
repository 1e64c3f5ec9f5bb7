package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

const auditCollection = "audit_log"

// AuditRepository stores the mutation trail. The relational store stays the
// system of record; this collection is append-only.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ActorID   int64              `bson:"actor_id,omitempty"`
	Actor     string             `bson:"actor,omitempty"`
	Action    string             `bson:"action"`
	Entity    string             `bson:"entity"`
	EntityID  int64              `bson:"entity_id,omitempty"`
	Related   string             `bson:"related,omitempty"`
	RelatedID int64              `bson:"related_id,omitempty"`
	Detail    string             `bson:"detail,omitempty"`
	At        time.Time          `bson:"at"`
}

// EnsureIndexes creates the lookup index used when browsing an entity's history.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "entity", Value: 1}, {Key: "entity_id", Value: 1}, {Key: "at", Value: -1}},
		Options: options.Index().SetName("entity_history"),
	})
	if err != nil {
		return fmt.Errorf("create audit index: %w", err)
	}
	return nil
}

func (r *AuditRepository) Insert(ctx context.Context, e domain.AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := auditDoc{
		ActorID:   e.ActorID,
		Actor:     e.Actor,
		Action:    string(e.Action),
		Entity:    e.Entity,
		EntityID:  e.EntityID,
		Related:   e.Related,
		RelatedID: e.RelatedID,
		Detail:    e.Detail,
		At:        e.At,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// Ping checks the underlying client, used by readiness probes.
func (r *AuditRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, nil)
}
