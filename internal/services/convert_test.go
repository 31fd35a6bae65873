package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ArowuTest/paymethods-config-backend/internal/models"
)

func TestAvailableIn(t *testing.T) {
	gb := []models.CountryAuthority{{Country: "GB", Authority: "FCA"}, {Country: "MT"}}

	assert.True(t, availableIn(nil, "CY", "CYSEC"))
	assert.True(t, availableIn(gb, "gb", "fca"))
	assert.True(t, availableIn(gb, "GB", ""))
	assert.True(t, availableIn(gb, "MT", "MFSA"))
	assert.False(t, availableIn(gb, "GB", "CYSEC"))
	assert.False(t, availableIn(gb, "CY", ""))
}

func TestFieldRows_ExpandsOptions(t *testing.T) {
	id := primitive.NewObjectID()
	rows := fieldRows([]*models.Field{
		{EntityID: id, Key: "bank", Options: []models.FieldOption{{Key: "a", IsEnabled: true}, {Key: "b"}}},
		{EntityID: id, Key: "iban"},
	})

	assert.Len(t, rows, 3)
	assert.Equal(t, "a", rows[0].OptionKey)
	assert.True(t, rows[0].OptionIsEnabled)
	assert.Equal(t, "b", rows[1].OptionKey)
	assert.Equal(t, "iban", rows[2].Key)
	assert.Equal(t, id.Hex(), rows[2].EntityID)
}

func TestMostSpecificFields(t *testing.T) {
	method := primitive.NewObjectID()
	row := func(key, country, authority, currency string) *models.Field {
		return &models.Field{
			EntityID:        method,
			EntityType:      models.EntityTypeProviderMethod,
			TransactionType: models.TransactionTypePayout,
			Key:             key,
			Country:         country,
			Authority:       authority,
			CurrencyIso3:    currency,
		}
	}
	wildcard := row("iban", "", "", "")
	scopedIban := row("iban", "GB", "FCA", "")
	wildcardUSD := row("iban", "", "", "USD")
	other := row("swift", "", "", "")

	got := mostSpecificFields([]*models.Field{wildcard, scopedIban, wildcardUSD, other})

	assert.Equal(t, []*models.Field{scopedIban, wildcardUSD, other}, got)
}
