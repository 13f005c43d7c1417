// Package checkout turns a cart into a human-readable order summary and a
// WhatsApp deep link the customer can open to finish the purchase.
package checkout

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/hdtbpedro/web-shop-direct/internal/domain"
)

// ErrUnconfiguredChannel means the configured phone number contains no digits,
// so no deep link can be built. Callers surface this by disabling checkout,
// not by failing the request pipeline.
var ErrUnconfiguredChannel = errors.New("whatsapp number not configured")

// ProductResolver is the catalog lookup the builder needs.
type ProductResolver interface {
	BySKU(sku string) (domain.Product, bool)
}

// BuildSummary formats the cart into display lines: a header, one line per
// resolvable entry, a total, and (when non-empty) the shareable cart link.
// Entries whose SKU does not resolve are skipped, matching how Total is
// computed.
func BuildSummary(items map[string]int, resolver ProductResolver, cartLink string) []string {
	skus := make([]string, 0, len(items))
	for sku := range items {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	lines := []string{"Olá! Quero finalizar minha compra:"}
	total := 0.0
	for _, sku := range skus {
		product, ok := resolver.BySKU(sku)
		if !ok {
			continue
		}
		qty := items[sku]
		subtotal := product.Price * float64(qty)
		total += subtotal
		lines = append(lines, fmt.Sprintf("• %s (SKU: %s) — %dx %s = %s",
			product.Name, product.SKU, qty, FormatBRL(product.Price), FormatBRL(subtotal)))
	}
	lines = append(lines, fmt.Sprintf("Total: %s", FormatBRL(total)))

	if cartLink != "" {
		lines = append(lines, fmt.Sprintf("Carrinho: %s", cartLink))
	}

	return lines
}

// BuildDeepLink produces a wa.me URI prefilled with the summary text. The
// phone number is reduced to its digits first; with no digits left there is
// no destination and ErrUnconfiguredChannel is returned.
func BuildDeepLink(phoneNumber, text string) (string, error) {
	digits := onlyDigits(phoneNumber)
	if digits == "" {
		return "", ErrUnconfiguredChannel
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, url.QueryEscape(text)), nil
}

func onlyDigits(v string) string {
	var b strings.Builder
	for _, r := range v {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
