// Package auth gates the admin surface. Credentials are stored and compared
// in plaintext: this is demo-grade admin protection, not a security boundary.
// The Gate interface boundary exists so a real scheme can replace it without
// touching catalog or cart code.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hdtbpedro/web-shop-direct/internal/store"
)

const (
	defaultUsername = "admin"
	defaultPassword = "admin123"

	// SessionTTL is how long a login stays valid.
	SessionTTL = 24 * time.Hour
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type session struct {
	Token   string `json:"token"`
	Expires int64  `json:"expires"` // epoch millis
}

// Gate implements the admin login flow over the store.
type Gate struct {
	store store.Store
	now   func() time.Time
}

func NewGate(st store.Store) *Gate {
	return &Gate{
		store: st,
		now:   time.Now,
	}
}

// Seed installs the default credentials when none are stored yet.
func (g *Gate) Seed(ctx context.Context) error {
	_, err := g.store.Get(ctx, store.KeyAdminCredentials)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrKeyNotFound) {
		return fmt.Errorf("failed to read credentials: %w", err)
	}
	return g.SetCredentials(ctx, defaultUsername, defaultPassword)
}

// Login compares the given credentials against the stored ones and, on match,
// opens a session valid for SessionTTL. The returned token identifies the
// session on subsequent requests.
func (g *Gate) Login(ctx context.Context, username, password string) (string, error) {
	raw, err := g.store.Get(ctx, store.KeyAdminCredentials)
	if errors.Is(err, store.ErrKeyNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("failed to read credentials: %w", err)
	}

	var creds credentials
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return "", fmt.Errorf("failed to decode credentials: %w", err)
	}

	if username != creds.Username || password != creds.Password {
		return "", ErrInvalidCredentials
	}

	sess := session{
		Token:   uuid.New().String(),
		Expires: g.now().Add(SessionTTL).UnixMilli(),
	}
	rawSess, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("failed to encode session: %w", err)
	}
	if err := g.store.Set(ctx, store.KeyAdminSession, string(rawSess)); err != nil {
		return "", fmt.Errorf("failed to persist session: %w", err)
	}

	return sess.Token, nil
}

// Authenticated reports whether token matches a live session. Expired
// sessions are removed on sight.
func (g *Gate) Authenticated(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}

	raw, err := g.store.Get(ctx, store.KeyAdminSession)
	if err != nil {
		return false
	}

	var sess session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return false
	}

	if sess.Expires <= g.now().UnixMilli() {
		_ = g.store.Remove(ctx, store.KeyAdminSession)
		return false
	}

	return sess.Token == token
}

// Logout closes the current session. Idempotent.
func (g *Gate) Logout(ctx context.Context) error {
	if err := g.store.Remove(ctx, store.KeyAdminSession); err != nil {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}

// SetCredentials replaces the stored credentials.
func (g *Gate) SetCredentials(ctx context.Context, username, password string) error {
	raw, err := json.Marshal(credentials{Username: username, Password: password})
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	if err := g.store.Set(ctx, store.KeyAdminCredentials, string(raw)); err != nil {
		return fmt.Errorf("failed to persist credentials: %w", err)
	}
	return nil
}
