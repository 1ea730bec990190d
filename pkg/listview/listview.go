// Package listview derives filtered, paginated and grouped views from an
// in-memory record collection. Every function is pure: inputs are never mutated
// and identical inputs always produce identical output.
package listview

import (
	"strings"
)

// All is the sentinel filter value that disables a dimension.
const All = "ALL"

// DefaultPageSize is used when a query does not carry a page size.
const DefaultPageSize = 10

// Spec describes how a record type takes part in the pipeline.
type Spec[T any] struct {
	// SearchFields returns the values the search term is matched against.
	SearchFields func(T) []string
	// Dimensions maps a filter name to the record value it compares.
	Dimensions map[string]func(T) string
	// Date returns the ISO date (or timestamp) used by the date range filter.
	Date func(T) string
}

// Query holds the user-entered predicates for one screen.
type Query struct {
	Search   string
	Filters  map[string]string
	From     string // YYYY-MM-DD, inclusive
	To       string // YYYY-MM-DD, inclusive
	Page     int
	PageSize int
}

// Result is the derived view model.
type Result[T any] struct {
	Items       []T
	Total       int
	TotalPages  int
	CurrentPage int
	PageSize    int
	Options     map[string][]string
}

// Derive filters records with q, paginates the filtered set and collects the
// distinct filter options over the unfiltered collection.
func Derive[T any](records []T, spec Spec[T], q Query) Result[T] {
	filtered := Filter(records, spec, q)
	page := Paginate(len(filtered), q.Page, q.PageSize)

	items := make([]T, page.End-page.Start)
	copy(items, filtered[page.Start:page.End])

	options := make(map[string][]string, len(spec.Dimensions))
	for name, value := range spec.Dimensions {
		options[name] = DistinctOptions(records, value)
	}

	return Result[T]{
		Items:       items,
		Total:       len(filtered),
		TotalPages:  page.TotalPages,
		CurrentPage: page.Number,
		PageSize:    page.Size,
		Options:     options,
	}
}

// Filter returns a new slice holding the records that satisfy every predicate in q.
func Filter[T any](records []T, spec Spec[T], q Query) []T {
	term := strings.ToLower(strings.TrimSpace(q.Search))
	from, to := DateKey(q.From), DateKey(q.To)

	out := make([]T, 0, len(records))
	for _, record := range records {
		if !matchesSearch(record, spec, term) {
			continue
		}
		if !matchesFilters(record, spec, q.Filters) {
			continue
		}
		if !matchesDateRange(record, spec, from, to) {
			continue
		}
		out = append(out, record)
	}
	return out
}

// Matches reports whether any of the fields contains term, ignoring case.
// An empty term matches everything.
func Matches(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func matchesSearch[T any](record T, spec Spec[T], term string) bool {
	if term == "" || spec.SearchFields == nil {
		return true
	}
	return Matches(term, spec.SearchFields(record)...)
}

func matchesFilters[T any](record T, spec Spec[T], filters map[string]string) bool {
	for name, want := range filters {
		if IsAll(want) {
			continue
		}
		value, ok := spec.Dimensions[name]
		if !ok {
			continue
		}
		if !strings.EqualFold(value(record), strings.TrimSpace(want)) {
			return false
		}
	}
	return true
}

func matchesDateRange[T any](record T, spec Spec[T], from, to string) bool {
	if spec.Date == nil || (from == "" && to == "") {
		return true
	}
	date := DateKey(spec.Date(record))
	if date == "" {
		return false
	}
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}

// IsAll reports whether a filter value disables its dimension.
func IsAll(value string) bool {
	value = strings.TrimSpace(value)
	return value == "" || strings.EqualFold(value, All)
}

// DistinctOptions collects the unique non-empty values of a field in first-seen
// order, prefixed with the All sentinel.
func DistinctOptions[T any](records []T, value func(T) string) []string {
	seen := make(map[string]struct{})
	options := []string{All}
	for _, record := range records {
		v := strings.TrimSpace(value(record))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		options = append(options, v)
	}
	return options
}
