package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ArowuTest/paymethods-config-backend/internal/models"
	"github.com/ArowuTest/paymethods-config-backend/internal/repositories"
)

type fakeProviderRepo struct {
	providers []*models.Provider
	methods   []*models.ProviderMethod
}

func (f *fakeProviderRepo) FindByCode(_ context.Context, code string) (*models.Provider, error) {
	for _, p := range f.providers {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeProviderRepo) FindMethods(_ context.Context, providerID primitive.ObjectID) ([]*models.ProviderMethod, error) {
	var out []*models.ProviderMethod
	for _, m := range f.methods {
		if m.ProviderID == providerID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeProviderRepo) FindMethodByID(_ context.Context, id primitive.ObjectID) (*models.ProviderMethod, error) {
	for _, m := range f.methods {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type fakeFieldRepo struct {
	fields   []*models.Field
	replaced int
}

func (f *fakeFieldRepo) FindByEntities(_ context.Context, ids []primitive.ObjectID, txType models.TransactionType) ([]*models.Field, error) {
	want := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []*models.Field
	for _, fd := range f.fields {
		if want[fd.EntityID] && (txType == "" || fd.TransactionType == txType) {
			out = append(out, fd)
		}
	}
	return out, nil
}

func (f *fakeFieldRepo) Replace(_ context.Context, providerID, methodID primitive.ObjectID, rows []*models.Field) error {
	kept := f.fields[:0]
	for _, fd := range f.fields {
		if fd.EntityID != providerID && fd.EntityID != methodID {
			kept = append(kept, fd)
		}
	}
	f.fields = append(kept, rows...)
	f.replaced++
	return nil
}

type fakeConfigRepo struct {
	rows    []*models.TransactionConfigRow
	ordered []primitive.ObjectID
	txType  models.TransactionType
}

func (f *fakeConfigRepo) FindRows(_ context.Context, filter repositories.ConfigFilter) ([]*models.TransactionConfigRow, error) {
	var out []*models.TransactionConfigRow
	for _, r := range f.rows {
		if filter.Currency == "" || r.CurrencyIso3 == filter.Currency {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeConfigRepo) UpdateOrder(_ context.Context, txType models.TransactionType, ids []primitive.ObjectID) error {
	f.txType = txType
	f.ordered = ids
	return nil
}

type fakeScopedRepo struct {
	records []*models.ScopedRecord
}

func (f *fakeScopedRepo) FindByProvider(_ context.Context, providerID primitive.ObjectID) ([]*models.ScopedRecord, error) {
	return f.FindByProviders(context.Background(), []primitive.ObjectID{providerID})
}

func (f *fakeScopedRepo) FindByProviders(_ context.Context, ids []primitive.ObjectID) ([]*models.ScopedRecord, error) {
	var out []*models.ScopedRecord
	for _, r := range f.records {
		for _, id := range ids {
			if r.ProviderID == id {
				out = append(out, r)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeScopedRepo) ReplaceForProvider(_ context.Context, providerID primitive.ObjectID, records []*models.ScopedRecord) error {
	kept := f.records[:0]
	for _, r := range f.records {
		if r.ProviderID != providerID {
			kept = append(kept, r)
		}
	}
	f.records = append(kept, records...)
	return nil
}

type fakeReferenceRepo struct {
	currencies []string
	cas        []models.CountryAuthority
}

func (f *fakeReferenceRepo) ListCurrencies(context.Context) ([]*models.Currency, error) {
	out := make([]*models.Currency, 0, len(f.currencies))
	for _, c := range f.currencies {
		out = append(out, &models.Currency{Iso3: c})
	}
	return out, nil
}

func (f *fakeReferenceRepo) ListCountryAuthorities(context.Context) ([]models.CountryAuthority, error) {
	return f.cas, nil
}

func (f *fakeReferenceRepo) UpsertCurrency(_ context.Context, c *models.Currency) (bool, error) {
	for _, known := range f.currencies {
		if known == c.Iso3 {
			return false, nil
		}
	}
	f.currencies = append(f.currencies, c.Iso3)
	return true, nil
}

func (f *fakeReferenceRepo) UpsertCountryAuthority(_ context.Context, pair models.CountryAuthority) (bool, error) {
	for _, known := range f.cas {
		if known == pair {
			return false, nil
		}
	}
	f.cas = append(f.cas, pair)
	return true, nil
}

type fakeAdminRepo struct {
	users []*models.AdminUser
}

func (f *fakeAdminRepo) Create(_ context.Context, u *models.AdminUser) (*models.AdminUser, error) {
	u.ID = primitive.NewObjectID()
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeAdminRepo) FindByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeAdminRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.AdminUser, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// fixture is one provider with two methods
type fixture struct {
	provider  *models.Provider
	card      *models.ProviderMethod
	wire      *models.ProviderMethod
	providers *fakeProviderRepo
}

func newFixture() *fixture {
	p := &models.Provider{ID: primitive.NewObjectID(), Code: "acme", Name: "Acme Pay", IsEnabled: true}
	card := &models.ProviderMethod{ID: primitive.NewObjectID(), ProviderID: p.ID, Code: "card", IsEnabled: true}
	wire := &models.ProviderMethod{
		ID:                 primitive.NewObjectID(),
		ProviderID:         p.ID,
		Code:               "wire",
		IsEnabled:          true,
		CountryAuthorities: []models.CountryAuthority{{Country: "GB", Authority: "FCA"}},
	}
	return &fixture{
		provider:  p,
		card:      card,
		wire:      wire,
		providers: &fakeProviderRepo{providers: []*models.Provider{p}, methods: []*models.ProviderMethod{card, wire}},
	}
}

func strPtr(s string) *string { return &s }
