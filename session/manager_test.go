package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/octabyte/hostel-gommon/enums"
	"github.com/octabyte/hostel-gommon/models"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordedEvent struct {
	event enums.SessionEvent
	email string
}

type recordingObserver struct {
	events []recordedEvent
}

func (o *recordingObserver) SessionChanged(_ context.Context, event enums.SessionEvent, s models.Session) {
	o.events = append(o.events, recordedEvent{event: event, email: s.User.Email()})
}

type fakeControl struct {
	label string
}

func (c *fakeControl) SetLabel(label string) {
	c.label = label
}

type fakeView struct {
	control *fakeControl
}

func (v *fakeView) LogoutControl() (LogoutControl, bool) {
	if v.control == nil {
		return nil, false
	}
	return v.control, true
}

type failingStore struct {
	*MemoryStore
}

func (s *failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}

type ManagerTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *MemoryStore
	observer *recordingObserver
	logs     *observer.ObservedLogs
	restore  *zap.Logger
}

func (s *ManagerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewMemoryStore()
	s.observer = &recordingObserver{}

	core, logs := observer.New(zapcore.DebugLevel)
	s.logs = logs
	s.restore = zap.L()
	zap.ReplaceGlobals(zap.New(core))
}

func (s *ManagerTestSuite) TearDownTest() {
	zap.ReplaceGlobals(s.restore)
}

func (s *ManagerTestSuite) seed(token, user string) {
	if token != "" {
		s.Require().NoError(s.store.Set(s.ctx, KeyAccessToken, token))
	}
	if user != "" {
		s.Require().NoError(s.store.Set(s.ctx, KeyUser, user))
	}
}

func (s *ManagerTestSuite) TestInitializeWithEmptyStore() {
	m := NewManager(s.store, WithObserver(s.observer))
	s.Require().NoError(m.Initialize(s.ctx))
	s.False(m.Authenticated())
	s.Empty(s.observer.events)
}

func (s *ManagerTestSuite) TestInitializeNeedsBothKeys() {
	s.seed("T1", "")
	m := NewManager(s.store)
	s.Require().NoError(m.Initialize(s.ctx))
	s.False(m.Authenticated())

	s.store = NewMemoryStore()
	s.seed("", `{"email":"a@x.com"}`)
	m = NewManager(s.store)
	s.Require().NoError(m.Initialize(s.ctx))
	s.False(m.Authenticated())
}

func (s *ManagerTestSuite) TestInitializeRestoresSessionAndLabelsLogout() {
	s.seed("T1", `{"email":"a@x.com","role":"student","id":"42"}`)
	view := &fakeView{control: &fakeControl{}}
	m := NewManager(s.store, WithView(view), WithObserver(s.observer))

	s.Require().NoError(m.Initialize(s.ctx))

	s.True(m.Authenticated())
	s.Equal("T1", m.Token())
	s.Equal("a@x.com", m.User().Email())
	s.Equal(enums.RoleStudent, m.User().Role())
	s.Equal("Logout (a@x.com)", view.control.label)
	s.Equal([]recordedEvent{{enums.SessionEventRestore, "a@x.com"}}, s.observer.events)
}

func (s *ManagerTestSuite) TestInitializeToleratesMissingControl() {
	s.seed("T1", `{"email":"a@x.com"}`)
	m := NewManager(s.store, WithView(&fakeView{}))

	s.NotPanics(func() {
		s.Require().NoError(m.Initialize(s.ctx))
	})
	s.True(m.Authenticated())
}

func (s *ManagerTestSuite) TestInitializeTreatsMalformedUserAsAbsent() {
	for _, raw := range []string{`{"email":`, `"just a string"`, `[1,2]`} {
		s.Run(raw, func() {
			s.store = NewMemoryStore()
			s.seed("T1", raw)
			m := NewManager(s.store)

			s.Require().NoError(m.Initialize(s.ctx))
			s.False(m.Authenticated())

			_, found, _ := s.store.Get(s.ctx, KeyUser)
			s.True(found, "storage is left untouched")
		})
	}
	s.NotEmpty(s.logs.FilterMessage("ignoring stored session with malformed user").All())
}

func (s *ManagerTestSuite) TestInitializeWarnsOnExpiredToken() {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, models.TokenClaims{
		Email: "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)),
		},
	}).SignedString([]byte("test-secret"))
	s.Require().NoError(err)
	s.seed(token, `{"email":"a@x.com"}`)

	m := NewManager(s.store)
	s.Require().NoError(m.Initialize(s.ctx))

	s.True(m.Authenticated(), "expired tokens are still restored")
	s.Len(s.logs.FilterMessage("restored session token has expired").All(), 1)
}

func (s *ManagerTestSuite) TestInitializePropagatesStoreErrors() {
	m := NewManager(&failingStore{MemoryStore: NewMemoryStore()})
	s.Error(m.Initialize(s.ctx))
}

func (s *ManagerTestSuite) TestSetPersistsAcrossManagers() {
	m := NewManager(s.store, WithObserver(s.observer))
	user, err := models.ParseProfile([]byte(`{"email":"a@x.com","id":"7"}`))
	s.Require().NoError(err)

	s.Require().NoError(m.Set(s.ctx, "T1", user))
	s.Equal("T1", m.Token())

	token, _, _ := s.store.Get(s.ctx, KeyAccessToken)
	s.Equal("T1", token)
	rawUser, _, _ := s.store.Get(s.ctx, KeyUser)
	s.JSONEq(`{"email":"a@x.com","id":"7"}`, rawUser)

	reloaded := NewManager(s.store)
	s.Require().NoError(reloaded.Initialize(s.ctx))
	s.Equal("T1", reloaded.Token())
	s.Equal("7", reloaded.User().ID())
	s.Equal([]recordedEvent{{enums.SessionEventLogin, "a@x.com"}}, s.observer.events)
}

func (s *ManagerTestSuite) TestSetRejectsEmptyToken() {
	m := NewManager(s.store)
	s.ErrorIs(m.Set(s.ctx, "", nil), ErrNoSession)
	s.False(m.Authenticated())
}

func (s *ManagerTestSuite) TestClearAndInvalidate() {
	tests := []struct {
		name  string
		end   func(*Manager) error
		event enums.SessionEvent
	}{
		{"clear", func(m *Manager) error { return m.Clear(s.ctx) }, enums.SessionEventLogout},
		{"invalidate", func(m *Manager) error { return m.Invalidate(s.ctx) }, enums.SessionEventUnauthorized},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.store = NewMemoryStore()
			obs := &recordingObserver{}
			m := NewManager(s.store, WithObserver(obs))
			s.Require().NoError(m.Set(s.ctx, "T1", models.Profile(`{"email":"a@x.com"}`)))

			s.Require().NoError(tt.end(m))

			s.False(m.Authenticated())
			s.Nil(m.User())
			_, found, _ := s.store.Get(s.ctx, KeyAccessToken)
			s.False(found)
			_, found, _ = s.store.Get(s.ctx, KeyUser)
			s.False(found)
			s.Equal(recordedEvent{tt.event, "a@x.com"}, obs.events[len(obs.events)-1])
		})
	}
}

func (s *ManagerTestSuite) TestConcurrentTransitionsKeepStoreInSync() {
	m := NewManager(s.store)
	user := models.Profile(`{"email":"a@x.com"}`)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = m.Set(s.ctx, fmt.Sprintf("T%d", i), user)
		}(i)
		go func() {
			defer wg.Done()
			_ = m.Invalidate(s.ctx)
		}()
	}
	wg.Wait()

	stored, found, err := s.store.Get(s.ctx, KeyAccessToken)
	s.Require().NoError(err)
	if m.Authenticated() {
		s.True(found)
		s.Equal(m.Token(), stored)
	} else {
		s.False(found)
	}
}

func TestManagerTestSuite(t *testing.T) {
	suite.Run(t, new(ManagerTestSuite))
}
