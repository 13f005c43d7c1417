package cartlink

import (
	"context"
	"fmt"
	"sync"
)

// CartReplacer is the slice of the cart the applier mutates.
type CartReplacer interface {
	Clear(ctx context.Context) error
	Add(ctx context.Context, sku string, qty int) error
}

type applyState int

const (
	stateIdle applyState = iota
	stateApplying
	stateApplied
)

// Applier turns a decoded segment into a full cart replacement exactly once
// per segment. Re-applying the segment last applied is a no-op; a different
// segment re-arms the machine. This guards against the same link being
// processed twice by repeated triggers on an unchanged route.
type Applier struct {
	mu       sync.Mutex
	state    applyState
	segment  string
	cart     CartReplacer
	resolver ProductResolver
}

func NewApplier(cart CartReplacer, resolver ProductResolver) *Applier {
	return &Applier{
		cart:     cart,
		resolver: resolver,
	}
}

// Apply clears the cart and rebuilds it from the segment: a replacement, not
// a merge. It reports whether the segment was applied; false means it was
// already the last segment applied.
func (a *Applier) Apply(ctx context.Context, segment string) (bool, error) {
	a.mu.Lock()
	if a.state == stateApplied && a.segment == segment {
		a.mu.Unlock()
		return false, nil
	}
	if a.state == stateApplying {
		a.mu.Unlock()
		return false, nil
	}
	a.state = stateApplying
	a.segment = segment
	a.mu.Unlock()

	if err := a.apply(ctx, segment); err != nil {
		a.mu.Lock()
		a.state = stateIdle
		a.segment = ""
		a.mu.Unlock()
		return false, err
	}

	a.mu.Lock()
	a.state = stateApplied
	a.mu.Unlock()
	return true, nil
}

func (a *Applier) apply(ctx context.Context, segment string) error {
	if err := a.cart.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	for _, entry := range Decode(segment, a.resolver) {
		if err := a.cart.Add(ctx, entry.SKU, entry.Quantity); err != nil {
			return fmt.Errorf("failed to add %q: %w", entry.SKU, err)
		}
	}
	return nil
}
