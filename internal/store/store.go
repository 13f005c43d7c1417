package store

import (
	"context"
	"errors"
)

// Keys under which the storefront persists its state. The layout mirrors a
// single flat namespace of string blobs.
const (
	KeyProducts         = "products"
	KeyCart             = "cart"
	KeyWhatsAppNumber   = "whatsappNumber"
	KeyAdminCredentials = "adminCredentials"
	KeyAdminSession     = "adminSession"
)

// ErrKeyNotFound is returned by Get when the key has never been written or
// has been removed.
var ErrKeyNotFound = errors.New("key not found")

// Store is the persistence surface for all storefront state. Implementations
// store opaque string blobs; callers own the encoding.
type Store interface {
	// Get returns the blob stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set writes the blob under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}
