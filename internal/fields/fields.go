// Package fields resolves tiered field definitions into the field list shown to
// checkout flows.
//
// Fields come in three tiers: common fields attached to a provider, default fields
// attached to a provider method, and currency-specific fields attached to a provider
// method for one currency. A more specific tier shadows a less specific one key by key.
package fields

import (
	"strings"

	"github.com/ArowuTest/paymethods-config-backend/internal/models"
)

// Row is one field definition joined with at most one of its options.
// A field with N options arrives as N rows sharing the same scalar columns.
type Row struct {
	EntityID        string
	EntityType      models.EntityType
	Key             string
	Name            *string
	DefaultValue    *string
	Type            string
	TransactionType models.TransactionType
	IsMandatory     bool
	IsEnabled       bool
	Pattern         string
	CurrencyIso3    string

	OptionKey       string
	OptionValue     string
	OptionIsEnabled bool
}

func (r Row) hasOption() bool {
	return r.OptionKey != "" && r.OptionIsEnabled
}

// Option is an enabled field option
type Option struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Field is a resolved field
type Field struct {
	Key          string   `json:"key"`
	Name         *string  `json:"name,omitempty"`
	DefaultValue *string  `json:"defaultValue,omitempty"`
	Type         string   `json:"type"`
	IsMandatory  bool     `json:"isMandatory"`
	IsEnabled    bool     `json:"isEnabled"`
	Pattern      string   `json:"pattern"`
	Options      []Option `json:"options"`
}

// fieldSet keeps fields by key in first-insertion order
type fieldSet struct {
	keys  []string
	byKey map[string]*Field
}

func newFieldSet() *fieldSet {
	return &fieldSet{byKey: make(map[string]*Field)}
}

// fold merges r into the set. The first row of a key fixes the scalar
// attributes; every row with an enabled option contributes that option.
func (s *fieldSet) fold(r Row) {
	f, ok := s.byKey[r.Key]
	if !ok {
		f = &Field{
			Key:          r.Key,
			Name:         r.Name,
			DefaultValue: r.DefaultValue,
			Type:         r.Type,
			IsMandatory:  r.IsMandatory,
			IsEnabled:    r.IsEnabled,
			Pattern:      r.Pattern,
			Options:      []Option{},
		}
		if f.Pattern == "" {
			f.Pattern = models.DefaultFieldPattern
		}
		s.keys = append(s.keys, r.Key)
		s.byKey[r.Key] = f
	}
	if r.hasOption() {
		f.Options = append(f.Options, Option{Key: r.OptionKey, Value: r.OptionValue})
	}
}

// set replaces the field stored under f.Key. A replaced key keeps its position.
func (s *fieldSet) set(f *Field) {
	if _, ok := s.byKey[f.Key]; !ok {
		s.keys = append(s.keys, f.Key)
	}
	s.byKey[f.Key] = f
}

func (s *fieldSet) has(key string) bool {
	_, ok := s.byKey[key]
	return ok
}

func (s *fieldSet) list() []Field {
	out := make([]Field, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, *s.byKey[k])
	}
	return out
}

func foldAll(rows []Row) *fieldSet {
	s := newFieldSet()
	for _, r := range rows {
		s.fold(r)
	}
	return s
}

// Resolve merges specific and common rows into the field list for currency.
//
// Specific rows without a currency are the defaults. Specific rows for currency
// replace the default of the same key wholesale, options included. Common rows
// only fill keys no specific row defines.
func Resolve(specific, common []Row, currency string) []Field {
	var defaultRows, currencyRows []Row
	for _, r := range specific {
		switch {
		case r.CurrencyIso3 == "":
			defaultRows = append(defaultRows, r)
		case currency != "" && strings.EqualFold(r.CurrencyIso3, currency):
			currencyRows = append(currencyRows, r)
		}
	}

	result := foldAll(defaultRows)

	overrides := foldAll(currencyRows)
	for _, k := range overrides.keys {
		result.set(overrides.byKey[k])
	}

	commons := foldAll(common)
	for _, k := range commons.keys {
		if !result.has(k) {
			result.set(commons.byKey[k])
		}
	}

	return result.list()
}
