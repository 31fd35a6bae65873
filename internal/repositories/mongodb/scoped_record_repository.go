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

var _ repositories.ScopedRecordRepository = (*ScopedRecordRepository)(nil)

// ScopedRecordRepository stores credentials or bank accounts, one collection each
type ScopedRecordRepository struct {
	collection *mongo.Collection
}

// NewCredentialRepository creates a repository over the credentials collection
func NewCredentialRepository(db *mongo.Database) repositories.ScopedRecordRepository {
	return &ScopedRecordRepository{collection: db.Collection(CredentialsCollection)}
}

// NewBankAccountRepository creates a repository over the bank accounts collection
func NewBankAccountRepository(db *mongo.Database) repositories.ScopedRecordRepository {
	return &ScopedRecordRepository{collection: db.Collection(BankAccountsCollection)}
}

// FindByProvider returns the records of one provider in insertion order
func (r *ScopedRecordRepository) FindByProvider(ctx context.Context, providerID primitive.ObjectID) ([]*models.ScopedRecord, error) {
	return r.find(ctx, bson.M{"providerId": providerID})
}

// FindByProviders returns the records of several providers in insertion order
func (r *ScopedRecordRepository) FindByProviders(ctx context.Context, providerIDs []primitive.ObjectID) ([]*models.ScopedRecord, error) {
	if len(providerIDs) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"providerId": bson.M{"$in": providerIDs}})
}

func (r *ScopedRecordRepository) find(ctx context.Context, filter bson.M) ([]*models.ScopedRecord, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", r.collection.Name(), err)
	}
	defer cursor.Close(ctx)

	var records []*models.ScopedRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.collection.Name(), err)
	}
	return records, nil
}

// ReplaceForProvider deletes every record of the provider then inserts records
func (r *ScopedRecordRepository) ReplaceForProvider(ctx context.Context, providerID primitive.ObjectID, records []*models.ScopedRecord) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"providerId": providerID}); err != nil {
		return fmt.Errorf("delete %s: %w", r.collection.Name(), err)
	}
	if len(records) == 0 {
		return nil
	}

	now := time.Now()
	docs := make([]interface{}, len(records))
	for i, rec := range records {
		rec.ID = primitive.NewObjectID()
		rec.ProviderID = providerID
		rec.CreatedAt = now
		docs[i] = rec
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert %s: %w", r.collection.Name(), err)
	}
	return nil
}
