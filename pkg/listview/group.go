package listview

import (
	"sort"
	"strings"
)

// DateKey strips the time-of-day part of an ISO date or timestamp.
func DateKey(value string) string {
	value = strings.TrimSpace(value)
	if i := strings.IndexAny(value, "T "); i >= 0 {
		value = value[:i]
	}
	return value
}

// GroupByDate buckets items by calendar date and returns the bucket keys in
// ascending order. Each item lands in exactly one bucket; order inside a bucket
// follows the input.
func GroupByDate[T any](items []T, date func(T) string) (map[string][]T, []string) {
	groups := make(map[string][]T)
	for _, item := range items {
		key := DateKey(date(item))
		groups[key] = append(groups[key], item)
	}

	sortedDates := make([]string, 0, len(groups))
	for key := range groups {
		sortedDates = append(sortedDates, key)
	}
	sort.Strings(sortedDates)

	return groups, sortedDates
}
