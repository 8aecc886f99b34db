package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/octabyte/hostel-gommon/enums"
	"github.com/octabyte/hostel-gommon/models"
	"github.com/octabyte/hostel-gommon/utils/logger"
	"go.uber.org/zap"
)

var ErrNoSession = errors.New("session token is empty")

// LogoutControl is the UI element that shows who is logged in.
type LogoutControl interface {
	SetLabel(label string)
}

// View gives the manager access to the logout control, if the current UI
// has one.
type View interface {
	LogoutControl() (LogoutControl, bool)
}

// Observer is told about every session transition. Implementations must not
// block for long; they run on the caller's goroutine.
type Observer interface {
	SessionChanged(ctx context.Context, event enums.SessionEvent, s models.Session)
}

// Manager owns the current session and keeps it in sync with a Store.
// Transitions are serialized with their store writes, so memory and store
// agree once concurrent Set, Clear and Invalidate calls return.
type Manager struct {
	// writeMu orders transitions; mu guards current for readers.
	writeMu   sync.Mutex
	mu        sync.RWMutex
	current   models.Session
	store     Store
	view      View
	observers []Observer
	now       func() time.Time
}

type Option func(*Manager)

func WithView(v View) Option {
	return func(m *Manager) {
		m.view = v
	}
}

func WithObserver(o Observer) Option {
	return func(m *Manager) {
		if o != nil {
			m.observers = append(m.observers, o)
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{store: store, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func LogoutLabel(email string) string {
	return fmt.Sprintf("Logout (%s)", email)
}

// Initialize restores a persisted session. Both the token and the user must
// be present; a user that is not a JSON object is treated as no session.
// Only storage failures are returned.
func (m *Manager) Initialize(ctx context.Context) error {
	s, err := m.restore(ctx)
	if err != nil || s.Empty() {
		return err
	}
	user := s.User

	if s.Expired(m.now()) {
		logger.LogWarn("restored session token has expired", zap.String("email", user.Email()))
	} else {
		logger.LogDebug("session restored", zap.String("email", user.Email()))
	}

	m.showLoggedIn(user.Email())
	m.notify(ctx, enums.SessionEventRestore, s)
	return nil
}

func (m *Manager) restore(ctx context.Context) (models.Session, error) {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	token, hasToken, err := m.store.Get(ctx, KeyAccessToken)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to read stored token: %w", err)
	}
	rawUser, hasUser, err := m.store.Get(ctx, KeyUser)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to read stored user: %w", err)
	}
	if !hasToken || !hasUser || token == "" {
		return models.Session{}, nil
	}

	user, err := models.ParseProfile([]byte(rawUser))
	if err != nil {
		logger.LogWarn("ignoring stored session with malformed user", zap.Error(err))
		return models.Session{}, nil
	}

	s := models.Session{Token: token, User: user}
	m.mu.Lock()
	m.current = s
	m.mu.Unlock()
	return s, nil
}

func (m *Manager) showLoggedIn(email string) {
	if m.view == nil {
		return
	}
	control, ok := m.view.LogoutControl()
	if !ok || control == nil {
		return
	}
	control.SetLabel(LogoutLabel(email))
}

// Set installs a freshly issued session and persists it. The in-memory
// session is updated even when persisting fails.
func (m *Manager) Set(ctx context.Context, token string, user models.Profile) error {
	if token == "" {
		return ErrNoSession
	}
	s := models.Session{Token: token, User: user}

	if err := m.set(ctx, s); err != nil {
		return err
	}
	m.notify(ctx, enums.SessionEventLogin, s)
	return nil
}

func (m *Manager) set(ctx context.Context, s models.Session) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.mu.Lock()
	m.current = s
	m.mu.Unlock()

	userJSON, err := s.User.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := m.store.Set(ctx, KeyAccessToken, s.Token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	if err := m.store.Set(ctx, KeyUser, string(userJSON)); err != nil {
		return fmt.Errorf("failed to persist user: %w", err)
	}
	return nil
}

// Clear ends the session at the user's request.
func (m *Manager) Clear(ctx context.Context) error {
	return m.clear(ctx, enums.SessionEventLogout)
}

// Invalidate ends the session because the backend rejected its token.
func (m *Manager) Invalidate(ctx context.Context) error {
	return m.clear(ctx, enums.SessionEventUnauthorized)
}

func (m *Manager) clear(ctx context.Context, event enums.SessionEvent) error {
	m.writeMu.Lock()
	m.mu.Lock()
	previous := m.current
	m.current = models.Session{}
	m.mu.Unlock()

	err := m.store.Delete(ctx, KeyAccessToken, KeyUser)
	m.writeMu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to remove stored session: %w", err)
	}

	m.notify(ctx, event, previous)
	return nil
}

func (m *Manager) notify(ctx context.Context, event enums.SessionEvent, s models.Session) {
	for _, o := range m.observers {
		o.SessionChanged(ctx, event, s)
	}
}

func (m *Manager) Current() models.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *Manager) Token() string {
	return m.Current().Token
}

func (m *Manager) User() models.Profile {
	return m.Current().User
}

func (m *Manager) Authenticated() bool {
	return !m.Current().Empty()
}
