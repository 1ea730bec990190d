package listview

import (
	"sort"
	"strings"
)

// Cursor remembers the predicates last applied to a screen so that a change
// of search term, filter or date range sends the user back to page 1.
// A Cursor is not safe for concurrent use.
type Cursor struct {
	fingerprint string
	seen        bool
}

// Resolve returns q with its page reset to 1 when the predicates differ from
// the previous call. The first call keeps the requested page.
func (c *Cursor) Resolve(q Query) Query {
	fp := Fingerprint(q)
	if c.seen && fp != c.fingerprint {
		q.Page = 1
	}
	c.fingerprint = fp
	c.seen = true
	return q
}

// Fingerprint renders the predicates of q (everything except paging) in a
// canonical form.
func Fingerprint(q Query) string {
	names := make([]string, 0, len(q.Filters))
	for name, value := range q.Filters {
		if IsAll(value) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("q=")
	b.WriteString(strings.ToLower(strings.TrimSpace(q.Search)))
	for _, name := range names {
		b.WriteString("|")
		b.WriteString(name)
		b.WriteString("=")
		b.WriteString(strings.ToLower(strings.TrimSpace(q.Filters[name])))
	}
	b.WriteString("|from=")
	b.WriteString(DateKey(q.From))
	b.WriteString("|to=")
	b.WriteString(DateKey(q.To))
	return b.String()
}
