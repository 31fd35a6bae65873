package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ArowuTest/paymethods-config-backend/internal/models"
	"github.com/ArowuTest/paymethods-config-backend/internal/repositories"
)

var _ repositories.ProviderRepository = (*ProviderRepository)(nil)

// ProviderRepository implements the repositories.ProviderRepository interface
type ProviderRepository struct {
	providers *mongo.Collection
	methods   *mongo.Collection
}

// NewProviderRepository creates a new ProviderRepository
func NewProviderRepository(db *mongo.Database) repositories.ProviderRepository {
	return &ProviderRepository{
		providers: db.Collection(ProvidersCollection),
		methods:   db.Collection(ProviderMethodsCollection),
	}
}

// FindByCode finds a provider by its code
func (r *ProviderRepository) FindByCode(ctx context.Context, code string) (*models.Provider, error) {
	var provider models.Provider
	if err := r.providers.FindOne(ctx, bson.M{"code": code}).Decode(&provider); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("find provider %s: %w", code, err)
	}
	return &provider, nil
}

// FindMethods lists the methods of a provider in insertion order
func (r *ProviderRepository) FindMethods(ctx context.Context, providerID primitive.ObjectID) ([]*models.ProviderMethod, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1})
	cursor, err := r.methods.Find(ctx, bson.M{"providerId": providerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find provider methods: %w", err)
	}
	defer cursor.Close(ctx)

	var methods []*models.ProviderMethod
	if err := cursor.All(ctx, &methods); err != nil {
		return nil, fmt.Errorf("decode provider methods: %w", err)
	}
	return methods, nil
}

// FindMethodByID finds a provider method by ID
func (r *ProviderRepository) FindMethodByID(ctx context.Context, id primitive.ObjectID) (*models.ProviderMethod, error) {
	var method models.ProviderMethod
	if err := r.methods.FindOne(ctx, bson.M{"_id": id}).Decode(&method); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("find provider method: %w", err)
	}
	return &method, nil
}
