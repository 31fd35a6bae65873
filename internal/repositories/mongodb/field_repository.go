package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ArowuTest/paymethods-config-backend/internal/models"
	"github.com/ArowuTest/paymethods-config-backend/internal/repositories"
)

var _ repositories.FieldRepository = (*FieldRepository)(nil)

// FieldRepository implements the repositories.FieldRepository interface
type FieldRepository struct {
	collection *mongo.Collection
}

// NewFieldRepository creates a new FieldRepository
func NewFieldRepository(db *mongo.Database) repositories.FieldRepository {
	return &FieldRepository{
		collection: db.Collection(FieldsCollection),
	}
}

// FindByEntities returns fields in insertion order so earlier rows keep precedence
func (r *FieldRepository) FindByEntities(ctx context.Context, entityIDs []primitive.ObjectID, txType models.TransactionType) ([]*models.Field, error) {
	if len(entityIDs) == 0 {
		return nil, nil
	}
	filter := bson.M{"entityId": bson.M{"$in": entityIDs}}
	if txType != "" {
		filter["transactionType"] = txType
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("find fields: %w", err)
	}
	defer cursor.Close(ctx)

	var fields []*models.Field
	if err := cursor.All(ctx, &fields); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	return fields, nil
}

// Replace deletes then inserts; it is not atomic
func (r *FieldRepository) Replace(ctx context.Context, providerID, methodID primitive.ObjectID, rows []*models.Field) error {
	filter := bson.M{"$or": bson.A{
		bson.M{"entityId": providerID, "entityType": models.EntityTypeProvider},
		bson.M{"entityId": methodID, "entityType": models.EntityTypeProviderMethod},
	}}
	if _, err := r.collection.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("delete fields: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}

	now := time.Now()
	docs := make([]interface{}, len(rows))
	for i, row := range rows {
		row.ID = primitive.NewObjectID()
		row.CreatedAt = now
		row.UpdatedAt = now
		for j := range row.Options {
			row.Options[j].ID = primitive.NewObjectID()
		}
		docs[i] = row
	}
	if _, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return fmt.Errorf("insert fields: %w", err)
	}
	return nil
}
