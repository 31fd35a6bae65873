package upsert

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ArowuTest/paymethods-config-backend/internal/models"
)

// Flatten turns a validated payload into stored field rows. Common fields are
// attached to the provider, specific fields to the method, one row per
// (country, authority) x currency x field.
func Flatten(p *Payload, providerID, methodID primitive.ObjectID) []*models.Field {
	rows := make([]*models.Field, 0, p.TotalFields())

	for _, f := range p.Common {
		rows = append(rows, toRow(f, providerID, models.EntityTypeProvider, models.CountryAuthority{}, ""))
	}

	for _, s := range p.Specific {
		cas := s.Parameters.CountriesAuthorities
		if len(cas) == 0 {
			cas = []models.CountryAuthority{{}}
		}
		curs := s.Parameters.Currencies
		if len(curs) == 0 {
			curs = []string{""}
		}
		for _, ca := range cas {
			for _, cur := range curs {
				for _, f := range s.Fields {
					rows = append(rows, toRow(f, methodID, models.EntityTypeProviderMethod, ca, cur))
				}
			}
		}
	}
	return rows
}

func toRow(f Field, entityID primitive.ObjectID, entityType models.EntityType, ca models.CountryAuthority, currency string) *models.Field {
	row := &models.Field{
		EntityID:        entityID,
		EntityType:      entityType,
		Key:             f.Key,
		Name:            copyString(f.Name),
		DefaultValue:    copyString(f.DefaultValue),
		Type:            f.Type,
		TransactionType: f.TransactionType,
		IsMandatory:     f.IsMandatory,
		IsEnabled:       f.IsEnabled,
		Pattern:         f.Pattern,
		Country:         ca.Country,
		Authority:       ca.Authority,
		CurrencyIso3:    currency,
	}
	if len(f.Options) > 0 {
		row.Options = make([]models.FieldOption, 0, len(f.Options))
		for _, o := range f.Options {
			row.Options = append(row.Options, models.FieldOption{Key: o.Key, Value: o.Value, IsEnabled: o.IsEnabled})
		}
	}
	return row
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
