package cartlink

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCart struct {
	items  map[string]int
	clears int
	err    error
}

func newMockCart() *mockCart {
	return &mockCart{items: make(map[string]int)}
}

func (m *mockCart) Clear(context.Context) error {
	if m.err != nil {
		return m.err
	}
	m.items = make(map[string]int)
	m.clears++
	return nil
}

func (m *mockCart) Add(_ context.Context, sku string, qty int) error {
	if m.err != nil {
		return m.err
	}
	m.items[sku] += qty
	return nil
}

func TestApplier_ReplacesCart(t *testing.T) {
	cart := newMockCart()
	cart.items["OLD"] = 5
	applier := NewApplier(cart, abResolver())

	applied, err := applier.Apply(context.Background(), "A:2,B:1")
	require.NoError(t, err)
	assert.True(t, applied)

	// Replacement, not merge: the old entry is gone
	assert.Equal(t, map[string]int{"A": 2, "B": 1}, cart.items)
	assert.Equal(t, 1, cart.clears)
}

func TestApplier_SameSegmentAppliesOnce(t *testing.T) {
	cart := newMockCart()
	applier := NewApplier(cart, abResolver())
	ctx := context.Background()

	applied, err := applier.Apply(ctx, "A:2")
	require.NoError(t, err)
	assert.True(t, applied)

	// Simulate the cart drifting after the first application
	require.NoError(t, cart.Add(ctx, "A", 1))

	applied, err = applier.Apply(ctx, "A:2")
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, map[string]int{"A": 3}, cart.items, "re-application must not touch the cart")
}

func TestApplier_NewSegmentRearms(t *testing.T) {
	cart := newMockCart()
	applier := NewApplier(cart, abResolver())
	ctx := context.Background()

	applied, err := applier.Apply(ctx, "A:2")
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = applier.Apply(ctx, "B:1")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, map[string]int{"B": 1}, cart.items)
}

func TestApplier_ErrorReturnsToIdle(t *testing.T) {
	cart := newMockCart()
	cart.err = assert.AnError
	applier := NewApplier(cart, abResolver())
	ctx := context.Background()

	_, err := applier.Apply(ctx, "A:2")
	require.Error(t, err)

	// After a failure the same segment is retryable
	cart.err = nil
	applied, err := applier.Apply(ctx, "A:2")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, map[string]int{"A": 2}, cart.items)
}
