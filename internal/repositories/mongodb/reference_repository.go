package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ArowuTest/paymethods-config-backend/internal/models"
	"github.com/ArowuTest/paymethods-config-backend/internal/repositories"
)

var _ repositories.ReferenceRepository = (*ReferenceRepository)(nil)

// ReferenceRepository reads and seeds currencies and country authorities
type ReferenceRepository struct {
	currencies         *mongo.Collection
	countryAuthorities *mongo.Collection
}

// NewReferenceRepository creates a new ReferenceRepository
func NewReferenceRepository(db *mongo.Database) repositories.ReferenceRepository {
	return &ReferenceRepository{
		currencies:         db.Collection(CurrenciesCollection),
		countryAuthorities: db.Collection(CountryAuthoritiesCollection),
	}
}

// ListCurrencies returns every known currency
func (r *ReferenceRepository) ListCurrencies(ctx context.Context) ([]*models.Currency, error) {
	cursor, err := r.currencies.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find currencies: %w", err)
	}
	defer cursor.Close(ctx)

	var currencies []*models.Currency
	if err := cursor.All(ctx, &currencies); err != nil {
		return nil, fmt.Errorf("decode currencies: %w", err)
	}
	return currencies, nil
}

// ListCountryAuthorities returns every licensed country/authority pair
func (r *ReferenceRepository) ListCountryAuthorities(ctx context.Context) ([]models.CountryAuthority, error) {
	cursor, err := r.countryAuthorities.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find country authorities: %w", err)
	}
	defer cursor.Close(ctx)

	var pairs []models.CountryAuthority
	if err := cursor.All(ctx, &pairs); err != nil {
		return nil, fmt.Errorf("decode country authorities: %w", err)
	}
	return pairs, nil
}

// UpsertCurrency stores a currency keyed by its ISO code and reports whether it was new
func (r *ReferenceRepository) UpsertCurrency(ctx context.Context, currency *models.Currency) (bool, error) {
	res, err := r.currencies.UpdateOne(ctx,
		bson.M{"iso3": currency.Iso3},
		bson.M{"$set": bson.M{"iso3": currency.Iso3, "name": currency.Name}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, fmt.Errorf("upsert currency %s: %w", currency.Iso3, err)
	}
	return res.UpsertedCount > 0, nil
}

// UpsertCountryAuthority stores a country/authority pair and reports whether it was new
func (r *ReferenceRepository) UpsertCountryAuthority(ctx context.Context, pair models.CountryAuthority) (bool, error) {
	filter := bson.M{"country": pair.Country, "authority": pair.Authority}
	res, err := r.countryAuthorities.UpdateOne(ctx, filter, bson.M{"$set": filter}, options.Update().SetUpsert(true))
	if err != nil {
		return false, fmt.Errorf("upsert country authority %s:%s: %w", pair.Country, pair.Authority, err)
	}
	return res.UpsertedCount > 0, nil
}
