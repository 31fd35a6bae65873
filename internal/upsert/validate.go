package upsert

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ArowuTest/paymethods-config-backend/internal/apperrors"
	"github.com/ArowuTest/paymethods-config-backend/internal/models"
)

// wildcard stands for "any" on an axis common fields are not scoped by
const wildcard = "*"

type fieldKey struct {
	key    string
	txType models.TransactionType
}

type comboKey struct {
	country   string
	authority string
	currency  string
	fieldKey
}

func (k comboKey) String() string {
	return strings.Join([]string{k.key, string(k.txType), k.country, k.authority, k.currency}, ":")
}

// Validate checks p and returns the first violation found. On success p has been
// canonicalized: countries, authorities and currencies are upper-cased and sorted.
//
// The cardinality guard runs first so the expanded duplicate check never walks an
// oversized payload.
func Validate(p *Payload, known Known) error {
	if total, limit := p.TotalFields(), known.maxFields(); total > limit {
		return apperrors.NewMaxAllowedFieldsExceeded("Max allowed fields count exceeded").
			WithMeta("total", strconv.Itoa(total)).
			WithMeta("max", strconv.Itoa(limit))
	}

	if err := checkCommonDuplicates(p.Common); err != nil {
		return err
	}
	if err := checkFieldShapes(p); err != nil {
		return err
	}

	Canonicalize(p)

	if err := checkParameterDuplicates(p.Specific); err != nil {
		return err
	}
	if err := checkGroupDuplicates(p.Specific); err != nil {
		return err
	}
	if err := checkCurrenciesExist(p.Specific, known.Currencies); err != nil {
		return err
	}
	if known.CountryAuthorities != nil {
		if err := checkCountryAuthoritiesExist(p.Specific, known.CountryAuthorities); err != nil {
			return err
		}
	}
	if err := checkExpandedDuplicates(p); err != nil {
		return err
	}
	return checkOptionDuplicates(p)
}

func canonicalFieldKey(f Field) fieldKey {
	return fieldKey{key: strings.ToLower(f.Key), txType: f.TransactionType}
}

func checkCommonDuplicates(common []Field) error {
	seen := make(map[fieldKey]struct{}, len(common))
	for _, f := range common {
		k := canonicalFieldKey(f)
		if _, ok := seen[k]; ok {
			return apperrors.NewConflict("Common fields contain duplicates").
				WithMeta("key", k.key+":"+string(k.txType))
		}
		seen[k] = struct{}{}
	}
	return nil
}

func checkFieldShapes(p *Payload) error {
	for _, f := range p.Common {
		if err := checkFieldShape(f); err != nil {
			return err
		}
	}
	for _, s := range p.Specific {
		for _, f := range s.Fields {
			if err := checkFieldShape(f); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkFieldShape enforces that payout and refund fields are labelled inputs while
// deposit fields carry a preset value.
func checkFieldShape(f Field) error {
	var err *apperrors.Error
	switch f.TransactionType {
	case models.TransactionTypeDeposit:
		switch {
		case f.DefaultValue == nil:
			err = apperrors.NewValidation("Deposit field must have `defaultValue` property")
		case f.Name != nil:
			err = apperrors.NewValidation("Deposit field can't have `name` property")
		}
	case models.TransactionTypePayout, models.TransactionTypeRefund:
		label := "Withdrawal"
		if f.TransactionType == models.TransactionTypeRefund {
			label = "Refund"
		}
		switch {
		case f.Name == nil || *f.Name == "":
			err = apperrors.NewValidation(label + " field must have `name` property")
		case f.DefaultValue != nil:
			err = apperrors.NewValidation(label + " field can't have `defaultValue` property")
		}
	default:
		err = apperrors.NewValidation(fmt.Sprintf("Unknown transaction type %q", f.TransactionType))
	}
	if err != nil {
		return err.WithMeta("key", f.Key)
	}
	return nil
}

// Canonicalize upper-cases and sorts the parameters of every specific group in place.
// Absent lists become empty so an omitted key and [] compare equal.
func Canonicalize(p *Payload) {
	for i := range p.Specific {
		params := &p.Specific[i].Parameters
		if params.CountriesAuthorities == nil {
			params.CountriesAuthorities = []models.CountryAuthority{}
		}
		if params.Currencies == nil {
			params.Currencies = []string{}
		}
		for j := range params.CountriesAuthorities {
			ca := &params.CountriesAuthorities[j]
			ca.Country = strings.ToUpper(ca.Country)
			ca.Authority = strings.ToUpper(ca.Authority)
		}
		sort.SliceStable(params.CountriesAuthorities, func(a, b int) bool {
			x, y := params.CountriesAuthorities[a], params.CountriesAuthorities[b]
			if x.Country != y.Country {
				return x.Country < y.Country
			}
			return x.Authority < y.Authority
		})
		for j := range params.Currencies {
			params.Currencies[j] = strings.ToUpper(params.Currencies[j])
		}
		sort.Strings(params.Currencies)
	}
}

func checkParameterDuplicates(specific []Specific) error {
	seen := make(map[string]struct{}, len(specific))
	for _, s := range specific {
		b, err := json.Marshal(s.Parameters)
		if err != nil {
			return fmt.Errorf("encoding parameters: %w", err)
		}
		k := string(b)
		if _, ok := seen[k]; ok {
			return apperrors.NewConflict("Parameters contain duplicates").WithMeta("parameters", k)
		}
		seen[k] = struct{}{}
	}
	return nil
}

func checkGroupDuplicates(specific []Specific) error {
	for _, s := range specific {
		cas := make(map[models.CountryAuthority]struct{}, len(s.Parameters.CountriesAuthorities))
		for _, ca := range s.Parameters.CountriesAuthorities {
			if _, ok := cas[ca]; ok {
				return apperrors.NewConflict("Countries authorities list contain duplicates").
					WithMeta("countryAuthority", ca.Country+":"+ca.Authority)
			}
			cas[ca] = struct{}{}
		}

		curs := make(map[string]struct{}, len(s.Parameters.Currencies))
		for _, cur := range s.Parameters.Currencies {
			if _, ok := curs[cur]; ok {
				return apperrors.NewConflict("Currencies list contain duplicates").WithMeta("currency", cur)
			}
			curs[cur] = struct{}{}
		}
	}
	return nil
}

func checkCurrenciesExist(specific []Specific, known []string) error {
	set := make(map[string]struct{}, len(known))
	for _, c := range known {
		set[strings.ToUpper(c)] = struct{}{}
	}
	for _, s := range specific {
		for _, cur := range s.Parameters.Currencies {
			if _, ok := set[cur]; !ok {
				return apperrors.NewNotFound("Currency not found").WithMeta("currency", cur)
			}
		}
	}
	return nil
}

func checkCountryAuthoritiesExist(specific []Specific, known []models.CountryAuthority) error {
	set := make(map[models.CountryAuthority]struct{}, len(known))
	for _, ca := range known {
		set[models.CountryAuthority{Country: strings.ToUpper(ca.Country), Authority: strings.ToUpper(ca.Authority)}] = struct{}{}
	}
	for _, s := range specific {
		for _, ca := range s.Parameters.CountriesAuthorities {
			if _, ok := set[ca]; !ok {
				return apperrors.NewNotFound("Country authority not found").
					WithMeta("countryAuthority", ca.Country+":"+ca.Authority)
			}
		}
	}
	return nil
}

// checkExpandedDuplicates expands every group to (country, authority) x currency x
// field and rejects any combination seen twice.
func checkExpandedDuplicates(p *Payload) error {
	seen := make(map[comboKey]struct{}, p.TotalFields())

	for _, f := range p.Common {
		k := comboKey{country: wildcard, authority: wildcard, currency: wildcard, fieldKey: canonicalFieldKey(f)}
		if _, ok := seen[k]; ok {
			return apperrors.NewConflict("Common fields contain duplicates").WithMeta("key", k.String())
		}
		seen[k] = struct{}{}
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
					k := comboKey{country: ca.Country, authority: ca.Authority, currency: cur, fieldKey: canonicalFieldKey(f)}
					if _, ok := seen[k]; ok {
						return apperrors.NewConflict("Specific fields contain duplicates").WithMeta("key", k.String())
					}
					seen[k] = struct{}{}
				}
			}
		}
	}
	return nil
}

func checkOptionDuplicates(p *Payload) error {
	check := func(f Field) error {
		seen := make(map[string]struct{}, len(f.Options))
		for _, o := range f.Options {
			k := strings.ToLower(o.Key)
			if _, ok := seen[k]; ok {
				return apperrors.NewConflict("Field options contain duplicates").
					WithMeta("key", f.Key).
					WithMeta("option", o.Key)
			}
			seen[k] = struct{}{}
		}
		return nil
	}

	for _, f := range p.Common {
		if err := check(f); err != nil {
			return err
		}
	}
	for _, s := range p.Specific {
		for _, f := range s.Fields {
			if err := check(f); err != nil {
				return err
			}
		}
	}
	return nil
}
