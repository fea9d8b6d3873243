package session

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/alexedwards/scs/postgresstore"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"

	"github.com/newsnotes/internal/config"
)

const userIDKey = "uid"

// Manager keeps the logged-in user id in a cookie-backed server-side session
type Manager struct {
	sm *scs.SessionManager
}

// NewStore returns the PostgreSQL session store, or an in-process store when
// db is nil
func NewStore(db *sql.DB) scs.Store {
	if db == nil {
		return memstore.New()
	}
	return postgresstore.New(db)
}

// NewManager creates a session manager with the configured cookie settings
func NewManager(cfg config.SessionConfig, store scs.Store) *Manager {
	sm := scs.New()
	sm.Store = store
	sm.Lifetime = cfg.Lifetime
	sm.IdleTimeout = cfg.IdleTimeout
	sm.Cookie.Name = cfg.CookieName
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = cfg.SecureCookie
	return &Manager{sm: sm}
}

// LoadAndSave loads the session for every request and writes it back
func (m *Manager) LoadAndSave(next http.Handler) http.Handler {
	return m.sm.LoadAndSave(next)
}

// UserID returns the logged-in user id, or "" for an anonymous request
func (m *Manager) UserID(ctx context.Context) string {
	return m.sm.GetString(ctx, userIDKey)
}

// Login binds userID to a fresh session token
func (m *Manager) Login(ctx context.Context, userID string) error {
	if err := m.sm.RenewToken(ctx); err != nil {
		return err
	}
	m.sm.Put(ctx, userIDKey, userID)
	return nil
}

// Logout destroys the session
func (m *Manager) Logout(ctx context.Context) error {
	return m.sm.Destroy(ctx)
}
