package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/hdtbpedro/web-shop-direct/internal/store"
)

// Settings holds the checkout channel configuration: the WhatsApp number the
// deep link targets, persisted as a plain digit string.
type Settings struct {
	store store.Store
}

func NewSettings(st store.Store) *Settings {
	return &Settings{store: st}
}

// WhatsAppNumber returns the configured number, empty when none is set.
func (s *Settings) WhatsAppNumber(ctx context.Context) (string, error) {
	number, err := s.store.Get(ctx, store.KeyWhatsAppNumber)
	if errors.Is(err, store.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read whatsapp number: %w", err)
	}
	return number, nil
}

// SetWhatsAppNumber stores the number reduced to its digits.
func (s *Settings) SetWhatsAppNumber(ctx context.Context, number string) error {
	if err := s.store.Set(ctx, store.KeyWhatsAppNumber, onlyDigits(number)); err != nil {
		return fmt.Errorf("failed to persist whatsapp number: %w", err)
	}
	return nil
}
