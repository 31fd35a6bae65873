// Package upsert validates the field write payload submitted by administrators and
// flattens it into stored field rows.
package upsert

import "github.com/ArowuTest/paymethods-config-backend/internal/models"

// Option is a selectable value of a submitted field
type Option struct {
	Key       string `json:"key" validate:"required"`
	Value     string `json:"value"`
	IsEnabled bool   `json:"isEnabled"`
}

// Field is a submitted field definition
type Field struct {
	Key             string                 `json:"key" validate:"required,max=128"`
	Name            *string                `json:"name,omitempty"`
	DefaultValue    *string                `json:"defaultValue,omitempty"`
	Type            string                 `json:"type" validate:"required"`
	TransactionType models.TransactionType `json:"transactionType" validate:"required,transaction_type"`
	IsMandatory     bool                   `json:"isMandatory"`
	IsEnabled       bool                   `json:"isEnabled"`
	Pattern         string                 `json:"pattern" validate:"omitempty,regexp"`
	Options         []Option               `json:"options" validate:"dive"`
}

// Parameters scope a group of specific fields
type Parameters struct {
	CountriesAuthorities []models.CountryAuthority `json:"countriesAuthorities"`
	Currencies           []string                  `json:"currencies" validate:"dive,len=3"`
}

// Specific is a group of method fields sharing one scope
type Specific struct {
	Parameters Parameters `json:"parameters"`
	Fields     []Field    `json:"fields" validate:"dive"`
}

// Payload is the body of a field write
type Payload struct {
	Common   []Field    `json:"common" validate:"dive"`
	Specific []Specific `json:"specific" validate:"dive"`
}

// Known holds the reference data a payload is checked against.
// A nil CountryAuthorities skips the country/authority existence check.
// MaxFields lowers the row ceiling; zero means models.MaxAllowedFields.
type Known struct {
	Currencies         []string
	CountryAuthorities []models.CountryAuthority
	MaxFields          int
}

func (k Known) maxFields() int {
	if k.MaxFields <= 0 || k.MaxFields > models.MaxAllowedFields {
		return models.MaxAllowedFields
	}
	return k.MaxFields
}

// TotalFields is the number of rows p expands into
func (p *Payload) TotalFields() int {
	total := len(p.Common)
	for _, s := range p.Specific {
		total += len(s.Fields) * atLeastOne(len(s.Parameters.Currencies)) * atLeastOne(len(s.Parameters.CountriesAuthorities))
	}
	return total
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
