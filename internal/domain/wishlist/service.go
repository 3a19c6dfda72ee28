package wishlist

import "time"

// Add appends the requested product unless it is already saved
func Add(entries []Entry, req AddToWishlistRequest, now time.Time) []Entry {
	key := req.Key()
	if Contains(entries, key) {
		return Clone(entries)
	}

	out := Clone(entries)
	return append(out, Entry{
		ProductID: key,
		Name:      req.Name,
		Price:     req.Price,
		Image:     req.Image,
		AddedAt:   now,
	})
}

// Remove drops the entry for productID
func Remove(entries []Entry, productID string) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.ProductID != productID {
			out = append(out, entry)
		}
	}
	return out
}

// Toggle removes the product when saved and adds it otherwise
func Toggle(entries []Entry, req AddToWishlistRequest, now time.Time) []Entry {
	if Contains(entries, req.Key()) {
		return Remove(entries, req.Key())
	}
	return Add(entries, req, now)
}

// Contains reports whether productID is saved
func Contains(entries []Entry, productID string) bool {
	return Find(entries, productID) != nil
}

// Find returns a copy of the entry for productID, or nil
func Find(entries []Entry, productID string) *Entry {
	for _, entry := range entries {
		if entry.ProductID == productID {
			found := entry
			return &found
		}
	}
	return nil
}

// Clone returns a copy of entries that shares no backing array
func Clone(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
