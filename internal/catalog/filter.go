package catalog

import "strings"

// Criteria narrows the visible catalog. The zero value matches nothing by size,
// use NewCriteria for the "All" default.
type Criteria struct {
	Size  Size
	Query string
}

// NewCriteria returns criteria that match the whole catalog
func NewCriteria() Criteria {
	return Criteria{Size: SizeAll}
}

// normalizedQuery returns the trimmed, lower-cased query
func (c Criteria) normalizedQuery() string {
	return strings.ToLower(strings.TrimSpace(c.Query))
}

// Matches reports whether an item passes both the size and the text criteria
func (c Criteria) Matches(item Item) bool {
	return c.matchSize(item) && matchQuery(item, c.normalizedQuery())
}

func (c Criteria) matchSize(item Item) bool {
	return c.Size == SizeAll || item.Size == c.Size
}

// matchQuery expects q already normalized
func matchQuery(item Item, q string) bool {
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(item.Name), q) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Filter returns the items matching c, in input order. The input slice is never modified.
func Filter(items []Item, c Criteria) []Item {
	q := c.normalizedQuery()
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if c.matchSize(item) && matchQuery(item, q) {
			out = append(out, item)
		}
	}
	return out
}
