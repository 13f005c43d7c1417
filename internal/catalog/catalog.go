package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/hdtbpedro/web-shop-direct/internal/domain"
	"github.com/hdtbpedro/web-shop-direct/internal/store"
)

var (
	ErrDuplicateSKU    = errors.New("sku already in use")
	ErrProductNotFound = errors.New("product not found")
)

// ProductInput carries everything a product needs except its identity.
type ProductInput struct {
	SKU         string   `json:"sku"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	ImageURLs   []string `json:"imageUrls"`
}

// Service is the authoritative product list. Every mutation persists the full
// catalog snapshot before returning; on persist failure the in-memory state is
// rolled back so callers never observe a half-applied mutation.
type Service struct {
	mu       sync.RWMutex
	products []domain.Product
	store    store.Store
	newID    func() string
	loaded   bool
	sfg      singleflight.Group // collapses concurrent initial loads
}

func NewService(st store.Store) *Service {
	return &Service{
		store: st,
		newID: func() string { return uuid.New().String() },
	}
}

// Load reads the persisted catalog, installing and persisting the built-in
// seed when the store holds nothing (or an empty array). Safe to call more
// than once; only the first call touches the store.
func (s *Service) Load(ctx context.Context) error {
	_, err, _ := s.sfg.Do("load", func() (interface{}, error) {
		s.mu.RLock()
		alreadyLoaded := s.loaded
		s.mu.RUnlock()
		if alreadyLoaded {
			return nil, nil
		}

		products, err := s.readSnapshot(ctx)
		if err != nil {
			return nil, err
		}

		if len(products) == 0 {
			products = seedProducts(s.newID)
			if err := s.persistSnapshot(ctx, products); err != nil {
				return nil, fmt.Errorf("failed to persist seed catalog: %w", err)
			}
		}

		s.mu.Lock()
		s.products = products
		s.loaded = true
		s.mu.Unlock()
		return nil, nil
	})
	return err
}

// Add creates a product with a fresh id and prepends it to the catalog.
func (s *Service) Add(ctx context.Context, input ProductInput) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.skuAvailable(input.SKU, "") {
		return domain.Product{}, ErrDuplicateSKU
	}

	product := domain.Product{
		ID:          s.newID(),
		SKU:         input.SKU,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURLs:   input.ImageURLs,
	}

	previous := s.products
	s.products = append([]domain.Product{product}, s.products...)

	if err := s.persistSnapshot(ctx, s.products); err != nil {
		s.products = previous
		return domain.Product{}, err
	}

	return product, nil
}

// Update replaces every field of the product except its id.
func (s *Service) Update(ctx context.Context, id string, input ProductInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := -1
	for i, p := range s.products {
		if p.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return ErrProductNotFound
	}

	if !s.skuAvailable(input.SKU, id) {
		return ErrDuplicateSKU
	}

	previous := s.products[index]
	s.products[index] = domain.Product{
		ID:          id,
		SKU:         input.SKU,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURLs:   input.ImageURLs,
	}

	if err := s.persistSnapshot(ctx, s.products); err != nil {
		s.products[index] = previous
		return err
	}

	return nil
}

// Delete removes the product with the given id. Deleting an absent id is a
// no-op. Carts referencing the deleted SKU are left alone; their entries
// simply stop resolving.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := -1
	for i, p := range s.products {
		if p.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return nil
	}

	previous := s.products
	s.products = append(append([]domain.Product{}, s.products[:index]...), s.products[index+1:]...)

	if err := s.persistSnapshot(ctx, s.products); err != nil {
		s.products = previous
		return err
	}

	return nil
}

// IsSKUAvailable reports whether no product other than excludeID holds the
// given SKU, compared case-insensitively. Pass an empty excludeID for creates.
func (s *Service) IsSKUAvailable(sku, excludeID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.skuAvailable(sku, excludeID)
}

// Products returns a copy of the current catalog.
func (s *Service) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]domain.Product, len(s.products))
	copy(snapshot, s.products)
	return snapshot
}

// BySKU resolves a product by SKU, case-insensitively.
func (s *Service) BySKU(sku string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if strings.EqualFold(p.SKU, sku) {
			return p, true
		}
	}
	return domain.Product{}, false
}

// ByID resolves a product by its opaque id.
func (s *Service) ByID(id string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// skuAvailable is the lock-free core of IsSKUAvailable; callers hold s.mu.
func (s *Service) skuAvailable(sku, excludeID string) bool {
	for _, p := range s.products {
		if strings.EqualFold(p.SKU, sku) {
			return excludeID != "" && p.ID == excludeID
		}
	}
	return true
}

func (s *Service) readSnapshot(ctx context.Context) ([]domain.Product, error) {
	raw, err := s.store.Get(ctx, store.KeyProducts)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var products []domain.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return products, nil
}

func (s *Service) persistSnapshot(ctx context.Context, products []domain.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := s.store.Set(ctx, store.KeyProducts, string(raw)); err != nil {
		return fmt.Errorf("failed to persist catalog: %w", err)
	}
	return nil
}
