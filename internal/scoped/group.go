package scoped

import (
	"sort"

	"github.com/ArowuTest/paymethods-config-backend/internal/models"
)

type partition struct {
	payload Payload
	params  []Parameters
}

// bucketKey identifies a (country, authority) bucket. Records without a currency
// never share a bucket with records that name one.
type bucketKey struct {
	country   string
	authority string
	explicit  bool
}

type bucket struct {
	ca         models.CountryAuthority
	currencies []string
}

type compacted struct {
	cas        []models.CountryAuthority
	currencies []string
	sorted     []string
}

// Group compacts records into groups. Records are partitioned by payload first;
// inside a partition, (country, authority) buckets with equal currency lists are
// merged into one group.
//
// When a partition starts with a record that has no parameters at all, that record
// becomes a group of its own.
func Group(records []Record) []RecordGroup {
	parts := partitionByPayload(records)

	out := make([]RecordGroup, 0, len(parts))
	for _, part := range parts {
		params := part.params
		if len(params) > 0 && params[0].IsEmpty() {
			out = append(out, RecordGroup{Payload: part.payload.clone()})
			params = params[1:]
		}

		for _, c := range compact(bucketize(params)) {
			g := RecordGroup{Payload: part.payload.clone()}
			if !(len(c.cas) == 1 && c.cas[0] == (models.CountryAuthority{}) && len(c.currencies) == 0) {
				g.Parameters = GroupParameters{
					CountryAuthorities: c.cas,
					Currencies:         c.currencies,
				}
			}
			out = append(out, g)
		}
	}
	return out
}

func partitionByPayload(records []Record) []*partition {
	var parts []*partition
	index := make(map[string]*partition)
	for _, r := range records {
		k := payloadKey(r.Payload)
		p, ok := index[k]
		if !ok {
			p = &partition{payload: r.Payload}
			index[k] = p
			parts = append(parts, p)
		}
		p.params = append(p.params, r.Parameters)
	}
	return parts
}

func bucketize(params []Parameters) []*bucket {
	var buckets []*bucket
	index := make(map[bucketKey]*bucket)
	for _, p := range params {
		if p.Currency == "" {
			// every wildcard record keeps its own pair so duplicates survive a round trip
			buckets = append(buckets, &bucket{ca: p.countryAuthority()})
			continue
		}
		k := bucketKey{country: p.Country, authority: p.Authority, explicit: true}
		b, ok := index[k]
		if !ok {
			b = &bucket{ca: p.countryAuthority()}
			index[k] = b
			buckets = append(buckets, b)
		}
		b.currencies = append(b.currencies, p.Currency)
	}
	return buckets
}

func compact(buckets []*bucket) []*compacted {
	var out []*compacted
	for _, b := range buckets {
		sorted := sortedCopy(b.currencies)
		var target *compacted
		for _, c := range out {
			if equalStrings(c.sorted, sorted) {
				target = c
				break
			}
		}
		if target == nil {
			target = &compacted{currencies: append([]string{}, b.currencies...), sorted: sorted}
			out = append(out, target)
		}
		target.cas = append(target.cas, b.ca)
	}
	return out
}

func sortedCopy(in []string) []string {
	out := append([]string{}, in...)
	sort.Strings(out)
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Ungroup expands groups back into one record per (country, authority, currency).
func Ungroup(groups []RecordGroup) []Record {
	var out []Record
	for _, g := range groups {
		if g.Parameters.IsUnconditional() {
			out = append(out, Record{Payload: g.Payload.clone()})
			continue
		}

		cas := g.Parameters.CountryAuthorities
		if len(cas) == 0 {
			cas = []models.CountryAuthority{{}}
		}
		for _, ca := range cas {
			if len(g.Parameters.Currencies) == 0 {
				out = append(out, Record{
					Parameters: Parameters{Authority: ca.Authority, Country: ca.Country},
					Payload:    g.Payload.clone(),
				})
				continue
			}
			for _, cur := range g.Parameters.Currencies {
				out = append(out, Record{
					Parameters: Parameters{Authority: ca.Authority, Country: ca.Country, Currency: cur},
					Payload:    g.Payload.clone(),
				})
			}
		}
	}
	if out == nil {
		out = []Record{}
	}
	return out
}
