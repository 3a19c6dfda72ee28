// internal/domain/cart/service.go
package cart

// The functions below never modify the slice they are given; each returns a
// fresh slice so earlier snapshots of the cart stay intact.

// AddLine merges the request into the cart. An existing line with the same
// identity key absorbs the quantity; failing that, the first line of the same
// product does, whatever its variant. Otherwise a new line is appended.
func AddLine(lines []Line, req AddLineRequest) []Line {
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	key := IdentityKey(req.ProductID, req.Variant)
	idx := indexOfKey(lines, key)
	if idx < 0 {
		idx = indexOfProduct(lines, req.ProductID)
	}

	out := clone(lines)
	if idx >= 0 {
		out[idx].Quantity += quantity
		return out
	}

	return append(out, Line{
		ID:        key,
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		Quantity:  quantity,
		Image:     req.Image,
		Variant:   req.Variant,
	})
}

// RemoveLine drops every line of the product, whatever its variant
func RemoveLine(lines []Line, productID string) []Line {
	out := make([]Line, 0, len(lines))
	for _, line := range lines {
		if line.ProductID != productID {
			out = append(out, line)
		}
	}
	return out
}

// SetQuantity updates the line addressed by key, which may be an identity key
// or a bare product ID. Exact identity matches win; a product ID resolves to
// the first line of that product. Quantity <= 0 deletes the line, and a key
// that matches nothing leaves the cart unchanged.
func SetQuantity(lines []Line, key string, quantity int) []Line {
	idx := Resolve(lines, key)
	if idx < 0 {
		return clone(lines)
	}

	if quantity <= 0 {
		out := make([]Line, 0, len(lines)-1)
		out = append(out, lines[:idx]...)
		return append(out, lines[idx+1:]...)
	}

	out := clone(lines)
	out[idx].Quantity = quantity
	return out
}

// Resolve returns the index of the line addressed by key, or -1
func Resolve(lines []Line, key string) int {
	if idx := indexOfKey(lines, key); idx >= 0 {
		return idx
	}
	return indexOfProduct(lines, key)
}

// TotalItemCount sums quantities across all lines
func TotalItemCount(lines []Line) int {
	total := 0
	for _, line := range lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice sums price * quantity across all lines
func TotalPrice(lines []Line) float64 {
	var total float64
	for _, line := range lines {
		total += line.Subtotal()
	}
	return total
}

// CalculateTotals computes all totals from one view of the lines
func CalculateTotals(lines []Line) Totals {
	return Totals{
		ItemCount:     len(lines),
		TotalQuantity: TotalItemCount(lines),
		SubTotal:      TotalPrice(lines),
	}
}

// Clone returns a copy of lines that shares no backing array
func Clone(lines []Line) []Line {
	return clone(lines)
}

func clone(lines []Line) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}

func indexOfKey(lines []Line, key string) int {
	for i, line := range lines {
		if line.ID == key {
			return i
		}
	}
	return -1
}

func indexOfProduct(lines []Line, productID string) int {
	for i, line := range lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}
