package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/hdtbpedro/web-shop-direct/internal/domain"
	"github.com/hdtbpedro/web-shop-direct/internal/store"
)

// ProductResolver is the slice of the catalog the cart needs: SKU lookup for
// pricing. Consumers define this interface, not the catalog implementation.
type ProductResolver interface {
	BySKU(sku string) (domain.Product, bool)
}

// Service holds the cart, a sku→quantity map where every stored quantity is
// at least 1. Every mutation persists the full snapshot before returning; on
// persist failure the in-memory change is rolled back.
//
// Adding an unknown SKU is accepted: the entry is stored and counted, it just
// never resolves to a price until a matching product exists. Count therefore
// sums all raw quantities while Total only sums resolvable ones.
type Service struct {
	mu       sync.RWMutex
	items    map[string]int
	store    store.Store
	resolver ProductResolver
}

func NewService(st store.Store, resolver ProductResolver) *Service {
	return &Service{
		items:    make(map[string]int),
		store:    st,
		resolver: resolver,
	}
}

// Load reads the persisted cart, defaulting to empty when nothing is stored.
func (s *Service) Load(ctx context.Context) error {
	raw, err := s.store.Get(ctx, store.KeyCart)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read cart: %w", err)
	}

	items := make(map[string]int)
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return fmt.Errorf("failed to decode cart: %w", err)
	}

	// Drop anything below the quantity floor rather than trusting old blobs.
	for sku, qty := range items {
		if qty < 1 {
			delete(items, sku)
		}
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// Add increments the quantity for sku by qty. A non-positive resulting
// quantity deletes the key, so a negative qty behaves as repeated Decrement.
func (s *Service) Add(ctx context.Context, sku string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setQuantity(ctx, sku, s.items[sku]+qty)
}

// Decrement lowers the quantity for sku by one, deleting the key at zero.
func (s *Service) Decrement(ctx context.Context, sku string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setQuantity(ctx, sku, s.items[sku]-1)
}

// Remove deletes the sku unconditionally. Removing an absent sku is a no-op.
func (s *Service) Remove(ctx context.Context, sku string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setQuantity(ctx, sku, 0)
}

// Clear resets the cart to empty.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.items
	s.items = make(map[string]int)

	if err := s.persistSnapshot(ctx); err != nil {
		s.items = previous
		return err
	}
	return nil
}

// Items returns a copy of the sku→quantity map.
func (s *Service) Items() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(map[string]int, len(s.items))
	for sku, qty := range s.items {
		snapshot[sku] = qty
	}
	return snapshot
}

// Count sums all stored quantities, including entries whose SKU no longer
// resolves in the catalog.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, qty := range s.items {
		count += qty
	}
	return count
}

// Total sums quantity×price over the entries that resolve in the catalog;
// dangling SKUs contribute nothing.
func (s *Service) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0.0
	for sku, qty := range s.items {
		if product, ok := s.resolver.BySKU(sku); ok {
			total += product.Price * float64(qty)
		}
	}
	return total
}

// setQuantity is the single write path: quantities ≤ 0 delete the key, the
// snapshot is persisted, and the previous state restored on failure. Callers
// hold s.mu.
func (s *Service) setQuantity(ctx context.Context, sku string, qty int) error {
	previous, existed := s.items[sku]

	if qty <= 0 {
		delete(s.items, sku)
	} else {
		s.items[sku] = qty
	}

	if err := s.persistSnapshot(ctx); err != nil {
		if existed {
			s.items[sku] = previous
		} else {
			delete(s.items, sku)
		}
		return err
	}
	return nil
}

func (s *Service) persistSnapshot(ctx context.Context) error {
	raw, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.store.Set(ctx, store.KeyCart, string(raw)); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}
