package domain

// Product is a catalog entry. ID is the opaque identity assigned at creation
// and never reused; SKU is the business key shown to customers and must be
// unique (case-insensitively) across the catalog.
type Product struct {
	ID          string   `json:"id"`
	SKU         string   `json:"sku"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	ImageURLs   []string `json:"imageUrls"`
}
