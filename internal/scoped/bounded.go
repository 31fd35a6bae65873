package scoped

import (
	"sort"
	"strings"
)

// MostSpecific returns the records matching scope, most specific first.
//
// A record matches when, on every axis, its value is empty or equals the scope's
// value. Records empty on fewer axes rank higher; ties keep input order.
func MostSpecific(records []Record, scope Parameters) []Record {
	type candidate struct {
		record  Record
		empties int
	}

	var matches []candidate
	for _, r := range records {
		empties, ok := matchAxes(r.Parameters, scope)
		if ok {
			matches = append(matches, candidate{record: r, empties: empties})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].empties < matches[j].empties
	})

	out := make([]Record, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.record)
	}
	return out
}

// Best returns the single most specific record matching scope
func Best(records []Record, scope Parameters) (Record, bool) {
	matches := MostSpecific(records, scope)
	if len(matches) == 0 {
		return Record{}, false
	}
	return matches[0], true
}

// BestTier returns every matching record tied at the highest specificity
func BestTier(records []Record, scope Parameters) []Record {
	matches := MostSpecific(records, scope)
	if len(matches) == 0 {
		return matches
	}
	top := emptyAxes(matches[0].Parameters)
	n := 1
	for n < len(matches) && emptyAxes(matches[n].Parameters) == top {
		n++
	}
	return matches[:n]
}

func matchAxes(p, scope Parameters) (int, bool) {
	empties := 0
	for _, pair := range [][2]string{
		{p.Authority, scope.Authority},
		{p.Country, scope.Country},
		{p.Currency, scope.Currency},
	} {
		switch {
		case pair[0] == "":
			empties++
		case !strings.EqualFold(pair[0], pair[1]):
			return 0, false
		}
	}
	return empties, true
}

func emptyAxes(p Parameters) int {
	n := 0
	if p.Authority == "" {
		n++
	}
	if p.Country == "" {
		n++
	}
	if p.Currency == "" {
		n++
	}
	return n
}
