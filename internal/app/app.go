package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"caremap/pkg/auth"
	"caremap/pkg/domain"
	"caremap/pkg/store"
)

// Config holds runtime configuration for the core application.
type Config struct {
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	JWTSecret     string
	SessionTTL    time.Duration

	// Store and Sessions override the defaults built from the settings
	// above; tests inject in-memory implementations here.
	Store    store.Store
	Sessions store.SessionStore
}

// App is the core application service wiring storage, sessions, and the
// ownership rules together.
type App struct {
	store    store.Store
	sessions store.SessionStore
}

// New constructs the application with database storage and JWT sessions.
func New(cfg Config) (*App, error) {
	dataStore := cfg.Store
	if dataStore == nil {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("database URL required")
		}
		var err error
		dataStore, err = store.NewGormStore(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("init postgres store: %w", err)
		}
	}

	sessionStore := cfg.Sessions
	if sessionStore == nil {
		if strings.TrimSpace(cfg.JWTSecret) == "" {
			return nil, fmt.Errorf("jwtSecret is required")
		}
		if strings.TrimSpace(cfg.RedisAddr) == "" {
			return nil, fmt.Errorf("redisAddr is required for token revocation")
		}
		revoker := store.NewRedisTokenRevoker(cfg.RedisAddr, cfg.RedisPassword)
		jwtStore, err := store.NewJWTSessionStore(cfg.JWTSecret, cfg.SessionTTL, revoker, store.JWTOptions{})
		if err != nil {
			return nil, fmt.Errorf("init jwt session store: %w", err)
		}
		sessionStore = jwtStore
	}

	return &App{
		store:    dataStore,
		sessions: sessionStore,
	}, nil
}

// Register creates a new user. Email uniqueness is an exact, case-sensitive
// match; the password is stored only as its bcrypt hash.
func (a *App) Register(name, email, password string) (domain.User, error) {
	exists, err := a.store.HasUserEmail(email)
	if err != nil {
		return domain.User{}, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return domain.User{}, ErrEmailTaken
	}
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	user, err := a.store.CreateUser(domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		// The unique index wins when a concurrent registration slipped past
		// the pre-check.
		if errors.Is(err, store.ErrDuplicate) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and issues a session token carrying the user ID.
func (a *App) Login(email, password string) (string, error) {
	user, ok, err := a.store.GetUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		return "", ErrUnknownEmail
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	token, err := a.sessions.NewSession(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Logout revokes the presented token until its natural expiry.
func (a *App) Logout(token string) error {
	return a.sessions.DeleteSession(token)
}

// UserIDFromToken resolves the authenticated principal from a bearer token.
// The token must verify and the user must still exist.
func (a *App) UserIDFromToken(token string) (uint, bool) {
	userID, ok, err := a.sessions.GetUserIDByToken(token)
	if err != nil || !ok {
		return 0, false
	}
	_, found, err := a.store.GetUserByID(userID)
	if err != nil || !found {
		return 0, false
	}
	return userID, true
}
