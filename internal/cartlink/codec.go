// Package cartlink encodes a cart snapshot into a shareable URL path segment
// and reconstructs cart contents from it. The format is deliberately tiny:
// comma-joined "sku:qty" tokens, resolved against the catalog on both sides
// so stale links degrade instead of failing.
package cartlink

import (
	"sort"
	"strconv"
	"strings"

	"github.com/hdtbpedro/web-shop-direct/internal/domain"
)

// ProductResolver is the catalog lookup the codec needs.
type ProductResolver interface {
	BySKU(sku string) (domain.Product, bool)
}

// Entry is one decoded cart line.
type Entry struct {
	SKU      string
	Quantity int
}

// Encode serializes the given sku→quantity map into a path segment. Entries
// whose SKU does not resolve in the catalog are skipped. SKUs are emitted in
// sorted order so the same cart always yields the same segment.
func Encode(items map[string]int, resolver ProductResolver) string {
	skus := make([]string, 0, len(items))
	for sku := range items {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	tokens := make([]string, 0, len(skus))
	for _, sku := range skus {
		if _, ok := resolver.BySKU(sku); !ok {
			continue
		}
		tokens = append(tokens, sku+":"+strconv.Itoa(items[sku]))
	}

	return strings.Join(tokens, ",")
}

// Decode parses a path segment back into cart entries. Per-token failures are
// swallowed: a quantity that does not parse defaults to 1, quantities clamp
// to a minimum of 1, and tokens whose SKU does not resolve are dropped.
// Decode never returns an error; worst case is fewer entries.
func Decode(segment string, resolver ProductResolver) []Entry {
	if segment == "" {
		return nil
	}

	var entries []Entry
	for _, token := range strings.Split(segment, ",") {
		sku, qtyText, _ := strings.Cut(token, ":")

		product, ok := resolver.BySKU(sku)
		if !ok {
			continue
		}

		qty, err := strconv.Atoi(qtyText)
		if err != nil {
			qty = 1
		}
		if qty < 1 {
			qty = 1
		}

		entries = append(entries, Entry{SKU: product.SKU, Quantity: qty})
	}

	return entries
}
