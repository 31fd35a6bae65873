package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ArowuTest/paymethods-config-backend/internal/models"
	"github.com/ArowuTest/paymethods-config-backend/internal/repositories"
)

var _ repositories.TransactionConfigRepository = (*TransactionConfigRepository)(nil)

// TransactionConfigRepository implements the repositories.TransactionConfigRepository interface
type TransactionConfigRepository struct {
	collection *mongo.Collection
}

// NewTransactionConfigRepository creates a new TransactionConfigRepository
func NewTransactionConfigRepository(db *mongo.Database) repositories.TransactionConfigRepository {
	return &TransactionConfigRepository{
		collection: db.Collection(TransactionConfigsCollection),
	}
}

// rowsPipeline joins configs with their method and provider
func rowsPipeline(filter repositories.ConfigFilter) mongo.Pipeline {
	match := bson.D{{Key: "isEnabled", Value: true}}
	if filter.Currency != "" {
		match = append(match, bson.E{Key: "currencyIso3", Value: filter.Currency})
	}

	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: ProviderMethodsCollection},
			{Key: "localField", Value: "providerMethodId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "method"},
		}}},
		{{Key: "$unwind", Value: "$method"}},
		{{Key: "$match", Value: bson.D{{Key: "method.isEnabled", Value: true}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: ProvidersCollection},
			{Key: "localField", Value: "method.providerId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "provider"},
		}}},
		{{Key: "$unwind", Value: "$provider"}},
		{{Key: "$match", Value: bson.D{{Key: "provider.isEnabled", Value: true}}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "providerId", Value: "$provider._id"},
			{Key: "providerCode", Value: "$provider.code"},
			{Key: "providerName", Value: "$provider.name"},
			{Key: "methodCode", Value: "$method.code"},
			{Key: "methodCountryAuthorities", Value: "$method.countryAuthorities"},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "method", Value: 0}, {Key: "provider", Value: 0}}}},
		{{Key: "$sort", Value: bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}}}},
	}
}

// FindRows returns joined config rows
func (r *TransactionConfigRepository) FindRows(ctx context.Context, filter repositories.ConfigFilter) ([]*models.TransactionConfigRow, error) {
	cursor, err := r.collection.Aggregate(ctx, rowsPipeline(filter))
	if err != nil {
		return nil, fmt.Errorf("aggregate transaction configs: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []*models.TransactionConfigRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode transaction configs: %w", err)
	}
	return rows, nil
}

// UpdateOrder writes every position in one bulk request
func (r *TransactionConfigRepository) UpdateOrder(ctx context.Context, txType models.TransactionType, methodIDs []primitive.ObjectID) error {
	if len(methodIDs) == 0 {
		return nil
	}
	now := time.Now()
	writes := make([]mongo.WriteModel, 0, len(methodIDs))
	for i, id := range methodIDs {
		writes = append(writes, mongo.NewUpdateManyModel().
			SetFilter(bson.M{"providerMethodId": id, "type": txType}).
			SetUpdate(bson.M{"$set": bson.M{"order": i, "updatedAt": now}}))
	}
	if _, err := r.collection.BulkWrite(ctx, writes); err != nil {
		return fmt.Errorf("update config order: %w", err)
	}
	return nil
}
