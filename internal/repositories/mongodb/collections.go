package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	ProvidersCollection          = "providers"
	ProviderMethodsCollection    = "provider_methods"
	FieldsCollection             = "fields"
	TransactionConfigsCollection = "transaction_configs"
	CredentialsCollection        = "credentials"
	BankAccountsCollection       = "bank_accounts"
	CurrenciesCollection         = "currencies"
	CountryAuthoritiesCollection = "country_authorities"
	AdminUsersCollection         = "admin_users"
)

var indexes = map[string][]mongo.IndexModel{
	ProvidersCollection: {
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	ProviderMethodsCollection: {
		{Keys: bson.D{{Key: "providerId", Value: 1}}},
	},
	FieldsCollection: {
		{Keys: bson.D{{Key: "entityId", Value: 1}, {Key: "entityType", Value: 1}, {Key: "transactionType", Value: 1}}},
	},
	TransactionConfigsCollection: {
		{Keys: bson.D{{Key: "providerMethodId", Value: 1}, {Key: "type", Value: 1}}},
		{Keys: bson.D{{Key: "currencyIso3", Value: 1}}},
	},
	CredentialsCollection: {
		{Keys: bson.D{{Key: "providerId", Value: 1}}},
	},
	BankAccountsCollection: {
		{Keys: bson.D{{Key: "providerId", Value: 1}}},
	},
	CurrenciesCollection: {
		{Keys: bson.D{{Key: "iso3", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	CountryAuthoritiesCollection: {
		{Keys: bson.D{{Key: "country", Value: 1}, {Key: "authority", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	AdminUsersCollection: {
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
}

// EnsureIndexes creates the indexes the repositories rely on. Existing indexes are left alone.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for name, idx := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}
