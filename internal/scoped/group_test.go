package scoped

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/paymethods-config-backend/internal/models"
)

var (
	payloadP = Payload{"merchantId": "m-1", "secret": "s3cr3t"}
	payloadQ = Payload{"merchantId": "m-2", "secret": "other"}
)

func rec(authority, country, currency string, p Payload) Record {
	return Record{Parameters: Parameters{Authority: authority, Country: country, Currency: currency}, Payload: p}
}

func TestGroup_CompactsCurrencies(t *testing.T) {
	in := []Record{
		rec("CYSEC", "", "USD", payloadP),
		rec("CYSEC", "", "EUR", payloadP),
	}

	got := Group(in)

	require.Len(t, got, 1)
	assert.Equal(t, []models.CountryAuthority{{Authority: "CYSEC"}}, got[0].Parameters.CountryAuthorities)
	assert.Equal(t, []string{"USD", "EUR"}, got[0].Parameters.Currencies)
	assert.Equal(t, payloadP, got[0].Payload)

	assert.ElementsMatch(t, in, Ungroup(got))
}

func TestGroup_MergesBucketsWithEqualCurrencySets(t *testing.T) {
	in := []Record{
		rec("CYSEC", "CY", "USD", payloadP),
		rec("CYSEC", "CY", "EUR", payloadP),
		rec("FCA", "GB", "EUR", payloadP),
		rec("FCA", "GB", "USD", payloadP),
		rec("MFSA", "MT", "GBP", payloadP),
	}

	got := Group(in)

	require.Len(t, got, 2)
	assert.Equal(t, []models.CountryAuthority{
		{Country: "CY", Authority: "CYSEC"},
		{Country: "GB", Authority: "FCA"},
	}, got[0].Parameters.CountryAuthorities)
	assert.Equal(t, []string{"USD", "EUR"}, got[0].Parameters.Currencies)
	assert.Equal(t, []string{"GBP"}, got[1].Parameters.Currencies)

	assert.ElementsMatch(t, in, Ungroup(got))
}

func TestGroup_DifferentPayloadsNeverMerge(t *testing.T) {
	in := []Record{
		rec("CYSEC", "", "USD", payloadP),
		rec("CYSEC", "", "USD", payloadQ),
	}

	got := Group(in)

	require.Len(t, got, 2)
	assert.Equal(t, payloadP, got[0].Payload)
	assert.Equal(t, payloadQ, got[1].Payload)
}

func TestGroup_WildcardCurrencyKeptApart(t *testing.T) {
	in := []Record{
		rec("CYSEC", "", "", payloadP),
		rec("CYSEC", "", "USD", payloadP),
	}

	got := Group(in)

	require.Len(t, got, 2)
	assert.Equal(t, []string{}, got[0].Parameters.Currencies)
	assert.Equal(t, []string{"USD"}, got[1].Parameters.Currencies)
	assert.ElementsMatch(t, in, Ungroup(got))
}

func TestGroup_LeadingEmptyRecordStandsAlone(t *testing.T) {
	in := []Record{
		rec("", "", "", payloadP),
		rec("FCA", "", "", payloadP),
		rec("", "", "", payloadP),
	}

	got := Group(in)

	require.Len(t, got, 2)
	assert.True(t, got[0].Parameters.IsUnconditional())
	assert.Equal(t, []models.CountryAuthority{{Authority: "FCA"}, {}}, got[1].Parameters.CountryAuthorities)
	assert.Equal(t, []string{}, got[1].Parameters.Currencies)

	assert.ElementsMatch(t, in, Ungroup(got))
}

func TestGroup_LoneEmptyRecordIsBareObject(t *testing.T) {
	got := Group([]Record{rec("", "", "", payloadP)})

	require.Len(t, got, 1)
	b, err := json.Marshal(got[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"parameters":{},"payload":{"merchantId":"m-1","secret":"s3cr3t"}}`, string(b))
}

func TestGroup_DuplicatesSurviveRoundTrip(t *testing.T) {
	in := []Record{
		rec("CYSEC", "CY", "USD", payloadP),
		rec("CYSEC", "CY", "USD", payloadP),
		rec("FCA", "GB", "USD", payloadP),
		rec("FCA", "", "", payloadP),
		rec("FCA", "", "", payloadP),
	}

	assert.ElementsMatch(t, in, Ungroup(Group(in)))
}

func TestUngroup(t *testing.T) {
	t.Run("unconditional group yields one empty record", func(t *testing.T) {
		got := Ungroup([]RecordGroup{{Payload: payloadP}})
		assert.Equal(t, []Record{{Payload: payloadP}}, got)
	})

	t.Run("no currencies yields one record per pair", func(t *testing.T) {
		got := Ungroup([]RecordGroup{{
			Parameters: GroupParameters{
				CountryAuthorities: []models.CountryAuthority{{Country: "CY"}, {Authority: "FCA"}},
				Currencies:         []string{},
			},
			Payload: payloadP,
		}})
		assert.Equal(t, []Record{rec("", "CY", "", payloadP), rec("FCA", "", "", payloadP)}, got)
	})

	t.Run("currencies without pairs keep empty country and authority", func(t *testing.T) {
		groups := []RecordGroup{{
			Parameters: GroupParameters{Currencies: []string{"USD", "EUR"}},
			Payload:    payloadP,
		}}
		want := []Record{rec("", "", "USD", payloadP), rec("", "", "EUR", payloadP)}
		assert.Equal(t, want, Ungroup(groups))
		assert.ElementsMatch(t, want, Ungroup(Group(want)))
	})

	t.Run("decoded from JSON", func(t *testing.T) {
		var groups []RecordGroup
		err := json.Unmarshal([]byte(`[
			{"parameters":{},"payload":{"k":"v"}},
			{"parameters":{"countryAuthorities":[{"authority":"CYSEC"}],"currencies":["USD","EUR"]},"payload":{"k":"w"}}
		]`), &groups)
		require.NoError(t, err)

		got := Ungroup(groups)
		assert.Equal(t, []Record{
			{Payload: Payload{"k": "v"}},
			rec("CYSEC", "", "USD", Payload{"k": "w"}),
			rec("CYSEC", "", "EUR", Payload{"k": "w"}),
		}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Ungroup(nil))
	})
}
