// Package scoped converts between flat scoped records (credentials, bank accounts)
// and the compact grouped form edited by administrators.
package scoped

import (
	"encoding/json"

	"github.com/ArowuTest/paymethods-config-backend/internal/models"
)

// Parameters scope a record. An empty axis applies to every value of that axis.
type Parameters struct {
	Authority string `json:"authority,omitempty" yaml:"authority,omitempty"`
	Country   string `json:"country,omitempty" yaml:"country,omitempty"`
	Currency  string `json:"currency,omitempty" yaml:"currency,omitempty"`
}

// IsEmpty reports whether no axis is set
func (p Parameters) IsEmpty() bool {
	return p.Authority == "" && p.Country == "" && p.Currency == ""
}

func (p Parameters) countryAuthority() models.CountryAuthority {
	return models.CountryAuthority{Country: p.Country, Authority: p.Authority}
}

// Payload is the opaque detail of a record, compared structurally
type Payload map[string]interface{}

func (p Payload) clone() Payload {
	if p == nil {
		return nil
	}
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Record is one scoped credential or bank account
type Record struct {
	Parameters Parameters `json:"parameters"`
	Payload    Payload    `json:"payload"`
}

// GroupParameters is the compact scope of a Group. Both lists nil means the
// group applies unconditionally and serializes as {}.
type GroupParameters struct {
	CountryAuthorities []models.CountryAuthority `json:"countryAuthorities"`
	Currencies         []string                  `json:"currencies"`
}

// IsUnconditional reports whether neither list is set
func (p GroupParameters) IsUnconditional() bool {
	return p.CountryAuthorities == nil && p.Currencies == nil
}

func (p GroupParameters) MarshalJSON() ([]byte, error) {
	if p.IsUnconditional() {
		return []byte("{}"), nil
	}
	type plain GroupParameters
	out := plain(p)
	if out.CountryAuthorities == nil {
		out.CountryAuthorities = []models.CountryAuthority{}
	}
	if out.Currencies == nil {
		out.Currencies = []string{}
	}
	return json.Marshal(out)
}

// RecordGroup is the compact form of records sharing one payload
type RecordGroup struct {
	Parameters GroupParameters `json:"parameters"`
	Payload    Payload         `json:"payload"`
}

// payloadKey returns a comparison key for structural equality of payloads.
// encoding/json writes map keys sorted, so equal maps produce equal keys.
func payloadKey(p Payload) string {
	b, err := json.Marshal(p)
	if err != nil {
		// not representable as JSON; fall back to a key unique to this payload
		return "!" + err.Error()
	}
	return string(b)
}
