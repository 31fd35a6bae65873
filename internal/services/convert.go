package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ArowuTest/paymethods-config-backend/internal/aggregator"
	"github.com/ArowuTest/paymethods-config-backend/internal/fields"
	"github.com/ArowuTest/paymethods-config-backend/internal/models"
	"github.com/ArowuTest/paymethods-config-backend/internal/scoped"
)

// axisMatches treats an empty stored or requested value as a wildcard
func axisMatches(stored, requested string) bool {
	return stored == "" || requested == "" || strings.EqualFold(stored, requested)
}

// availableIn reports whether a method licensed for cas may be offered in country/authority
func availableIn(cas []models.CountryAuthority, country, authority string) bool {
	if len(cas) == 0 {
		return true
	}
	for _, ca := range cas {
		if axisMatches(ca.Country, country) && axisMatches(ca.Authority, authority) {
			return true
		}
	}
	return false
}

type fieldTierKey struct {
	entityID   primitive.ObjectID
	entityType models.EntityType
	txType     models.TransactionType
	key        string
	currency   string
}

func emptyAxes(f *models.Field) int {
	n := 0
	if f.Country == "" {
		n++
	}
	if f.Authority == "" {
		n++
	}
	return n
}

// mostSpecificFields keeps, for every key of an entity and currency tier, only the
// rows with the fewest empty country/authority axes. Input order is preserved.
// Rows must already match the requested country and authority.
func mostSpecificFields(stored []*models.Field) []*models.Field {
	best := make(map[fieldTierKey]int, len(stored))
	tierKey := func(f *models.Field) fieldTierKey {
		return fieldTierKey{
			entityID:   f.EntityID,
			entityType: f.EntityType,
			txType:     f.TransactionType,
			key:        strings.ToLower(f.Key),
			currency:   strings.ToUpper(f.CurrencyIso3),
		}
	}
	for _, f := range stored {
		k, n := tierKey(f), emptyAxes(f)
		if cur, ok := best[k]; !ok || n < cur {
			best[k] = n
		}
	}

	out := make([]*models.Field, 0, len(stored))
	for _, f := range stored {
		if emptyAxes(f) == best[tierKey(f)] {
			out = append(out, f)
		}
	}
	return out
}

// fieldRows expands stored fields into resolver rows, one per option
func fieldRows(stored []*models.Field) []fields.Row {
	rows := make([]fields.Row, 0, len(stored))
	for _, f := range stored {
		base := fields.Row{
			EntityID:        f.EntityID.Hex(),
			EntityType:      f.EntityType,
			Key:             f.Key,
			Name:            f.Name,
			DefaultValue:    f.DefaultValue,
			Type:            f.Type,
			TransactionType: f.TransactionType,
			IsMandatory:     f.IsMandatory,
			IsEnabled:       f.IsEnabled,
			Pattern:         f.Pattern,
			CurrencyIso3:    f.CurrencyIso3,
		}
		if len(f.Options) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, o := range f.Options {
			r := base
			r.OptionKey = o.Key
			r.OptionValue = o.Value
			r.OptionIsEnabled = o.IsEnabled
			rows = append(rows, r)
		}
	}
	return rows
}

func toScopedRecords(stored []*models.ScopedRecord) []scoped.Record {
	out := make([]scoped.Record, 0, len(stored))
	for _, r := range stored {
		out = append(out, scoped.Record{
			Parameters: scoped.Parameters{Authority: r.Authority, Country: r.Country, Currency: r.Currency},
			Payload:    scoped.Payload(r.Payload),
		})
	}
	return out
}

func fromScopedRecords(providerID primitive.ObjectID, records []scoped.Record) []*models.ScopedRecord {
	out := make([]*models.ScopedRecord, 0, len(records))
	for _, r := range records {
		out = append(out, &models.ScopedRecord{
			ProviderID: providerID,
			Authority:  strings.ToUpper(r.Parameters.Authority),
			Country:    strings.ToUpper(r.Parameters.Country),
			Currency:   strings.ToUpper(r.Parameters.Currency),
			Payload:    map[string]interface{}(r.Payload),
		})
	}
	return out
}

func toDecimal(d primitive.Decimal128) (decimal.Decimal, error) {
	return decimal.NewFromString(d.String())
}

func toConfigRow(r *models.TransactionConfigRow) (aggregator.ConfigRow, error) {
	minAmount, err := toDecimal(r.MinAmount)
	if err != nil {
		return aggregator.ConfigRow{}, fmt.Errorf("config %s: min amount: %w", r.ID.Hex(), err)
	}
	maxAmount, err := toDecimal(r.MaxAmount)
	if err != nil {
		return aggregator.ConfigRow{}, fmt.Errorf("config %s: max amount: %w", r.ID.Hex(), err)
	}
	return aggregator.ConfigRow{
		ProviderID:               r.ProviderID.Hex(),
		ProviderCode:             r.ProviderCode,
		ProviderName:             r.ProviderName,
		MethodID:                 r.ProviderMethodID.Hex(),
		CurrencyIso3:             r.CurrencyIso3,
		Type:                     r.Type,
		MinAmount:                minAmount,
		MaxAmount:                maxAmount,
		Period:                   r.Period,
		Order:                    r.Order,
		IsEnabled:                r.IsEnabled,
		PaymentAccountRequired:   r.PaymentAccountRequired,
		IsRequestDetailsRequired: r.IsRequestDetailsRequired,
	}, nil
}
