package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"transport-report-be/models"
	"transport-report-be/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Session is the result of a successful login
type Session struct {
	ID        string          `json:"-"`
	Token     string          `json:"token"`
	Identity  models.Identity `json:"user"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

// Manager owns the session lifecycle: Login creates and persists a
// session, Hydrate restores its identity from a token, Logout clears it.
type Manager struct {
	directory *Directory
	store     Store
	secret    string
	ttl       time.Duration
	log       *zap.Logger
}

func NewManager(directory *Directory, store Store, secret string, ttl time.Duration, log *zap.Logger) *Manager {
	return &Manager{
		directory: directory,
		store:     store,
		secret:    secret,
		ttl:       ttl,
		log:       log.With(zap.String("component", "session")),
	}
}

// TTL is how long a session stays valid after login
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

func (m *Manager) Login(ctx context.Context, email, password string, role models.Role) (*Session, error) {
	identity, ok := m.directory.Lookup(email, password, role)
	if !ok {
		m.log.Info("login rejected", zap.String("email", email), zap.String("role", string(role)))
		return nil, ErrInvalidCredentials
	}
	if !role.Valid() {
		m.log.Warn("login requested an unknown role", zap.String("email", email), zap.String("requested", string(role)))
	} else if role != identity.Role {
		m.log.Warn("login role differs from account role",
			zap.String("email", email),
			zap.String("requested", string(role)),
			zap.String("account", string(identity.Role)))
	}

	sessionID := uuid.NewString()
	token, err := utils.GenerateToken(sessionID, m.secret, m.ttl)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	if err := m.store.Save(ctx, sessionID, identity, m.ttl); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	m.log.Info("login succeeded", zap.String("user_id", identity.ID), zap.String("session_id", sessionID))
	return &Session{
		ID:        sessionID,
		Token:     token,
		Identity:  identity,
		ExpiresAt: time.Now().Add(m.ttl),
	}, nil
}

// Hydrate returns the identity for a token without re-authenticating
func (m *Manager) Hydrate(ctx context.Context, token string) (models.Identity, error) {
	sessionID, err := utils.ParseToken(token, m.secret)
	if err != nil {
		return models.Identity{}, ErrNoSession
	}
	return m.store.Load(ctx, sessionID)
}

// Logout clears the stored session. An invalid token is a no-op.
func (m *Manager) Logout(ctx context.Context, token string) error {
	sessionID, err := utils.ParseToken(token, m.secret)
	if err != nil {
		return nil
	}
	if err := m.store.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	m.log.Info("logout", zap.String("session_id", sessionID))
	return nil
}
