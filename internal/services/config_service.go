package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ArowuTest/paymethods-config-backend/internal/aggregator"
	"github.com/ArowuTest/paymethods-config-backend/internal/fields"
	"github.com/ArowuTest/paymethods-config-backend/internal/models"
	"github.com/ArowuTest/paymethods-config-backend/internal/repositories"
	"github.com/ArowuTest/paymethods-config-backend/internal/scoped"
)

// ConfigQuery scopes a read of the checkout configuration
type ConfigQuery struct {
	Country   string
	Authority string
	Currency  string
}

// ConfigService defines the interface for the checkout configuration read path
type ConfigService interface {
	GetConfigs(ctx context.Context, q ConfigQuery) ([]aggregator.CurrencyConfig, error)
}

type configService struct {
	configRepo      repositories.TransactionConfigRepository
	fieldRepo       repositories.FieldRepository
	credentialRepo  repositories.ScopedRecordRepository
	bankAccountRepo repositories.ScopedRecordRepository
	log             *logrus.Logger
}

// NewConfigService creates a new ConfigService implementation
func NewConfigService(
	configRepo repositories.TransactionConfigRepository,
	fieldRepo repositories.FieldRepository,
	credentialRepo repositories.ScopedRecordRepository,
	bankAccountRepo repositories.ScopedRecordRepository,
	log *logrus.Logger,
) ConfigService {
	return &configService{
		configRepo:      configRepo,
		fieldRepo:       fieldRepo,
		credentialRepo:  credentialRepo,
		bankAccountRepo: bankAccountRepo,
		log:             log,
	}
}

type fieldLookupKey struct {
	entityID   string
	entityType models.EntityType
	txType     models.TransactionType
}

// GetConfigs loads every row the scope can see, then hands one snapshot to the aggregator
func (s *configService) GetConfigs(ctx context.Context, q ConfigQuery) ([]aggregator.CurrencyConfig, error) {
	q.Country = strings.ToUpper(q.Country)
	q.Authority = strings.ToUpper(q.Authority)
	q.Currency = strings.ToUpper(q.Currency)

	stored, err := s.configRepo.FindRows(ctx, repositories.ConfigFilter{Currency: q.Currency})
	if err != nil {
		return nil, err
	}

	rows := make([]aggregator.ConfigRow, 0, len(stored))
	var entityIDs, providerIDs []primitive.ObjectID
	seen := make(map[primitive.ObjectID]struct{})
	remember := func(id primitive.ObjectID, to *[]primitive.ObjectID) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			*to = append(*to, id)
		}
	}
	for _, r := range stored {
		if !availableIn(r.MethodCountryAuthorities, q.Country, q.Authority) {
			continue
		}
		row, err := toConfigRow(r)
		if err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"provider": r.ProviderCode,
				"method":   r.MethodCode,
			}).Warn("Skipping transaction config with unreadable amount")
			continue
		}
		rows = append(rows, row)
		remember(r.ProviderMethodID, &entityIDs)
		remember(r.ProviderID, &providerIDs)
	}
	entityIDs = append(entityIDs, providerIDs...)

	storedFields, err := s.fieldRepo.FindByEntities(ctx, entityIDs, "")
	if err != nil {
		return nil, err
	}
	visible := make([]*models.Field, 0, len(storedFields))
	for _, f := range storedFields {
		if axisMatches(f.Country, q.Country) && axisMatches(f.Authority, q.Authority) {
			visible = append(visible, f)
		}
	}
	byEntity := make(map[fieldLookupKey][]*models.Field)
	for _, f := range mostSpecificFields(visible) {
		k := fieldLookupKey{entityID: f.EntityID.Hex(), entityType: f.EntityType, txType: f.TransactionType}
		byEntity[k] = append(byEntity[k], f)
	}

	credentials, err := s.recordsByProvider(ctx, s.credentialRepo, providerIDs)
	if err != nil {
		return nil, err
	}
	accounts, err := s.recordsByProvider(ctx, s.bankAccountRepo, providerIDs)
	if err != nil {
		return nil, err
	}

	configs, err := aggregator.Aggregate(aggregator.Input{
		Country:   q.Country,
		Authority: q.Authority,
		Rows:      rows,
		Fields: func(entityID string, entityType models.EntityType, txType models.TransactionType) []fields.Row {
			return fieldRows(byEntity[fieldLookupKey{entityID: entityID, entityType: entityType, txType: txType}])
		},
		Credentials:  func(providerID string) []scoped.Record { return credentials[providerID] },
		BankAccounts: func(providerID string) []scoped.Record { return accounts[providerID] },
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"country":    q.Country,
		"authority":  q.Authority,
		"currency":   q.Currency,
		"rows":       len(rows),
		"currencies": len(configs),
	}).Debug("Resolved checkout configs")
	return configs, nil
}

func (s *configService) recordsByProvider(ctx context.Context, repo repositories.ScopedRecordRepository, providerIDs []primitive.ObjectID) (map[string][]scoped.Record, error) {
	stored, err := repo.FindByProviders(ctx, providerIDs)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]*models.ScopedRecord)
	for _, r := range stored {
		grouped[r.ProviderID.Hex()] = append(grouped[r.ProviderID.Hex()], r)
	}
	out := make(map[string][]scoped.Record, len(grouped))
	for id, rs := range grouped {
		out[id] = toScopedRecords(rs)
	}
	return out, nil
}
