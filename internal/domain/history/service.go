package history

import (
	"strings"
	"time"
)

// RecordView moves the product to the front of the list with a fresh
// timestamp and trims the list to limit entries.
func RecordView(entries []ViewedProduct, req RecordViewRequest, now time.Time, limit int) []ViewedProduct {
	key := req.Key()

	out := make([]ViewedProduct, 0, len(entries)+1)
	out = append(out, ViewedProduct{
		ProductID: key,
		Name:      req.Name,
		Price:     req.Price,
		Image:     req.Image,
		ViewedAt:  now,
	})
	for _, entry := range entries {
		if entry.ProductID != key {
			out = append(out, entry)
		}
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// RecordSearch puts query at the front as given, replacing any entry that
// differs only in case, and trims the list to limit entries.
func RecordSearch(queries []string, query string, limit int) []string {
	out := make([]string, 0, len(queries)+1)
	out = append(out, query)
	for _, existing := range queries {
		if !strings.EqualFold(existing, query) {
			out = append(out, existing)
		}
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// CloneViewed returns a copy of entries that shares no backing array
func CloneViewed(entries []ViewedProduct) []ViewedProduct {
	out := make([]ViewedProduct, len(entries))
	copy(out, entries)
	return out
}

// CloneSearches returns a copy of queries that shares no backing array
func CloneSearches(queries []string) []string {
	out := make([]string, len(queries))
	copy(out, queries)
	return out
}
