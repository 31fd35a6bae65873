package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ArowuTest/paymethods-config-backend/internal/models"
)

// ErrNotFound is returned when a lookup by key matches nothing
var ErrNotFound = errors.New("not found")

// ProviderRepository defines the interface for provider and provider method lookups
type ProviderRepository interface {
	FindByCode(ctx context.Context, code string) (*models.Provider, error)
	FindMethods(ctx context.Context, providerID primitive.ObjectID) ([]*models.ProviderMethod, error)
	FindMethodByID(ctx context.Context, id primitive.ObjectID) (*models.ProviderMethod, error)
}

// FieldRepository defines the interface for field definition operations
type FieldRepository interface {
	// FindByEntities returns the fields of the given entities for one transaction type.
	// An empty txType returns every type.
	FindByEntities(ctx context.Context, entityIDs []primitive.ObjectID, txType models.TransactionType) ([]*models.Field, error)
	// Replace drops the common fields of providerID and the specific fields of
	// methodID, then stores rows.
	Replace(ctx context.Context, providerID, methodID primitive.ObjectID, rows []*models.Field) error
}

// ConfigFilter narrows the transaction configs returned by FindRows
type ConfigFilter struct {
	Currency string
}

// TransactionConfigRepository defines the interface for transaction config operations
type TransactionConfigRepository interface {
	// FindRows returns enabled configs of enabled methods and providers, joined with
	// both and ordered by order then insertion.
	FindRows(ctx context.Context, filter ConfigFilter) ([]*models.TransactionConfigRow, error)
	// UpdateOrder sets order to the position of each method in methodIDs for configs of txType
	UpdateOrder(ctx context.Context, txType models.TransactionType, methodIDs []primitive.ObjectID) error
}

// ScopedRecordRepository defines the interface for credentials and bank accounts
type ScopedRecordRepository interface {
	FindByProvider(ctx context.Context, providerID primitive.ObjectID) ([]*models.ScopedRecord, error)
	FindByProviders(ctx context.Context, providerIDs []primitive.ObjectID) ([]*models.ScopedRecord, error)
	ReplaceForProvider(ctx context.Context, providerID primitive.ObjectID, records []*models.ScopedRecord) error
}

// ReferenceRepository defines the interface for currencies and country authorities
type ReferenceRepository interface {
	ListCurrencies(ctx context.Context) ([]*models.Currency, error)
	ListCountryAuthorities(ctx context.Context) ([]models.CountryAuthority, error)
	UpsertCurrency(ctx context.Context, currency *models.Currency) (bool, error)
	UpsertCountryAuthority(ctx context.Context, pair models.CountryAuthority) (bool, error)
}

// AdminUserRepository defines the interface for admin user operations
type AdminUserRepository interface {
	Create(ctx context.Context, adminUser *models.AdminUser) (*models.AdminUser, error)
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error)
}
