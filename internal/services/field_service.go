package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ArowuTest/paymethods-config-backend/internal/fields"
	"github.com/ArowuTest/paymethods-config-backend/internal/models"
	"github.com/ArowuTest/paymethods-config-backend/internal/repositories"
	"github.com/ArowuTest/paymethods-config-backend/internal/upsert"
)

// FieldScope selects one tier of stored fields. The zero value selects the
// default tier (no country, authority or currency).
type FieldScope struct {
	Country   string
	Authority string
	Currency  string
}

func (s FieldScope) matches(f *models.Field) bool {
	return strings.EqualFold(f.Country, s.Country) &&
		strings.EqualFold(f.Authority, s.Authority) &&
		strings.EqualFold(f.CurrencyIso3, s.Currency)
}

// FieldService defines the interface for administering provider fields
type FieldService interface {
	// GetProviderFields lists the fields of a provider and its methods for one tier
	GetProviderFields(ctx context.Context, providerCode string, scope FieldScope) ([]fields.EntityFieldList, error)
	// UpsertFields validates p and replaces the provider's common fields and the
	// method's specific fields. It returns the number of stored rows.
	UpsertFields(ctx context.Context, providerCode, methodID string, p *upsert.Payload) (int, error)
}

type fieldService struct {
	providerRepo  repositories.ProviderRepository
	fieldRepo     repositories.FieldRepository
	referenceRepo repositories.ReferenceRepository
	log           *logrus.Logger
}

// NewFieldService creates a new FieldService implementation
func NewFieldService(
	providerRepo repositories.ProviderRepository,
	fieldRepo repositories.FieldRepository,
	referenceRepo repositories.ReferenceRepository,
	log *logrus.Logger,
) FieldService {
	return &fieldService{
		providerRepo:  providerRepo,
		fieldRepo:     fieldRepo,
		referenceRepo: referenceRepo,
		log:           log,
	}
}

func (s *fieldService) GetProviderFields(ctx context.Context, providerCode string, scope FieldScope) ([]fields.EntityFieldList, error) {
	provider, err := findProvider(ctx, s.providerRepo, providerCode)
	if err != nil {
		return nil, err
	}
	methods, err := s.providerRepo.FindMethods(ctx, provider.ID)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(methods)+1)
	ids = append(ids, provider.ID)
	for _, m := range methods {
		ids = append(ids, m.ID)
	}

	stored, err := s.fieldRepo.FindByEntities(ctx, ids, "")
	if err != nil {
		return nil, err
	}
	tier := make([]*models.Field, 0, len(stored))
	for _, f := range stored {
		if scope.matches(f) {
			tier = append(tier, f)
		}
	}
	return fields.ByEntity(fieldRows(tier)).List(), nil
}

func (s *fieldService) UpsertFields(ctx context.Context, providerCode, methodID string, p *upsert.Payload) (int, error) {
	provider, err := findProvider(ctx, s.providerRepo, providerCode)
	if err != nil {
		return 0, err
	}
	method, err := findMethod(ctx, s.providerRepo, provider, methodID)
	if err != nil {
		return 0, err
	}

	if err := upsert.CheckShape(p); err != nil {
		return 0, err
	}
	known, err := s.known(ctx)
	if err != nil {
		return 0, err
	}
	if err := upsert.Validate(p, known); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"provider": provider.Code,
			"method":   method.Code,
		}).Warn("Rejected field upsert")
		return 0, err
	}

	rows := upsert.Flatten(p, provider.ID, method.ID)
	if err := s.fieldRepo.Replace(ctx, provider.ID, method.ID, rows); err != nil {
		return 0, err
	}

	s.log.WithFields(logrus.Fields{
		"provider": provider.Code,
		"method":   method.Code,
		"common":   len(p.Common),
		"specific": len(p.Specific),
		"fields":   len(rows),
	}).Info("Replaced provider fields")
	return len(rows), nil
}

// known loads reference data. Without seeded country authorities the pair check is skipped.
func (s *fieldService) known(ctx context.Context) (upsert.Known, error) {
	currencies, err := s.referenceRepo.ListCurrencies(ctx)
	if err != nil {
		return upsert.Known{}, err
	}
	cas, err := s.referenceRepo.ListCountryAuthorities(ctx)
	if err != nil {
		return upsert.Known{}, err
	}

	known := upsert.Known{Currencies: make([]string, 0, len(currencies))}
	for _, c := range currencies {
		known.Currencies = append(known.Currencies, c.Iso3)
	}
	if len(cas) > 0 {
		known.CountryAuthorities = cas
	}
	return known, nil
}
