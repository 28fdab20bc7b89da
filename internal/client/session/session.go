// Package session holds who is using the client right now.
//
// A Session starts Uninitialized and Init moves it to Anonymous or
// Authenticated exactly once. After that only Login moves it to
// Authenticated, and only Logout or Expire move it back to Anonymous.
// Consumers read it through Snapshot, or Access for the guard.
package session

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/tijarah/internal/client/access"
	"github.com/dmitrijs2005/tijarah/internal/client/models"
	"github.com/dmitrijs2005/tijarah/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"
)

// State is the coarse session state.
type State int

const (
	StateUninitialized State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "uninitialized"
	}
}

// CredentialStore is the part of the credential store the session drives.
type CredentialStore interface {
	Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	Logout(ctx context.Context)
	LoadUser(ctx context.Context) (*models.User, error)
	Token(ctx context.Context) string
	ProfileImageURL(ctx context.Context, userID int64) (string, error)
}

// ErrClosed is returned by Login after the last Release.
var ErrClosed = errors.New("session closed")

// View is an immutable copy of the session state.
type View struct {
	State           State
	Loading         bool
	User            *models.User
	ProfileImage    string
	IsAuthenticated bool
	IsAdmin         bool
}

// Session is safe for concurrent use.
type Session struct {
	store   CredentialStore
	logger  logging.Logger
	closers []io.Closer
	now     func() time.Time

	mu           sync.RWMutex
	state        State
	loading      bool
	user         *models.User
	profileImage string
	// gen changes on every identity change so that late profile image
	// results for a previous user are dropped.
	gen    uint64
	refs   int
	closed bool

	initOnce sync.Once
	logins   singleflight.Group
	pending  sync.WaitGroup
}

// Option configures a Session.
type Option func(*Session)

// WithCloser registers a resource closed by the last Release, in
// registration order.
func WithCloser(c io.Closer) Option {
	return func(s *Session) { s.closers = append(s.closers, c) }
}

// WithClock replaces time.Now when checking token expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New returns an Uninitialized session holding one reference.
func New(store CredentialStore, logger logging.Logger, opts ...Option) *Session {
	if logger == nil {
		logger = logging.Nop()
	}
	s := &Session{
		store:   store,
		logger:  logger.With("component", "session"),
		now:     time.Now,
		state:   StateUninitialized,
		loading: true,
		refs:    1,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Init reads the credential store once. A cached user without a token, a
// token without a user, or a token already past its exp claim are evicted and
// the session starts Anonymous. If the store cannot be read the session also
// starts Anonymous but nothing is evicted. Calls after the first do nothing.
func (s *Session) Init(ctx context.Context) {
	s.initOnce.Do(func() {
		user, err := s.store.LoadUser(ctx)
		token := s.store.Token(ctx)

		switch {
		case err != nil:
			s.logger.Warn(ctx, "credential store unreadable, starting signed out", "err", err)
			user = nil
		case user == nil && token == "":
		case user == nil || token == "":
			s.logger.Warn(ctx, "evicting incomplete cached session", "has_user", user != nil, "has_token", token != "")
			s.store.Logout(ctx)
			user = nil
		case tokenExpired(token, s.now()):
			s.logger.Info(ctx, "cached token expired, signing out", "user_id", user.UserID)
			s.store.Logout(ctx)
			user = nil
		}

		s.mu.Lock()
		s.loading = false
		if user != nil {
			s.setUserLocked(user)
		} else {
			s.state = StateAnonymous
		}
		s.mu.Unlock()

		if user != nil {
			s.RefreshProfileImage(ctx)
		}
	})
}

// Login signs in through the credential store. Concurrent calls for the same
// login are collapsed into one request and share its result. On failure the
// state is left as it was and the error is returned unchanged.
func (s *Session) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return nil, ErrClosed
	}

	key := strings.ToLower(strings.TrimSpace(creds.Login))
	v, err, _ := s.logins.Do(key, func() (any, error) {
		resp, err := s.store.Login(ctx, creds)
		if err != nil {
			return nil, err
		}
		u := resp.User
		s.mu.Lock()
		s.loading = false
		s.setUserLocked(&u)
		s.mu.Unlock()

		s.RefreshProfileImage(ctx)
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.AuthResponse), nil
}

// Logout clears the credential store and then the in-memory state.
func (s *Session) Logout(ctx context.Context) {
	s.store.Logout(ctx)
	s.reset()
}

// Expire is the transition taken when the API rejects the session token. It
// is installed as the transport's session-expired handler.
func (s *Session) Expire(ctx context.Context) {
	s.mu.RLock()
	authed := s.state == StateAuthenticated
	s.mu.RUnlock()
	if !authed {
		return
	}
	s.logger.Info(ctx, "session expired")
	s.Logout(ctx)
}

// Reload re-reads the signed-in user from the credential store after it was
// updated there. It does nothing unless Authenticated, and falls back to
// Anonymous if the store no longer has the user. A read failure leaves the
// session as it is.
func (s *Session) Reload(ctx context.Context) {
	s.mu.RLock()
	authed := s.state == StateAuthenticated
	s.mu.RUnlock()
	if !authed {
		return
	}

	u, err := s.store.LoadUser(ctx)
	if err != nil {
		s.logger.Warn(ctx, "reload signed-in user", "err", err)
		return
	}
	if u == nil {
		s.logger.Warn(ctx, "signed-in user vanished from the store")
		s.Logout(ctx)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user != nil && s.user.UserID == u.UserID {
		s.user = u
	}
}

// RefreshProfileImage fetches the user's primary image in the background.
// Failures clear the image and are logged. Results for a user who is no
// longer signed in are dropped.
func (s *Session) RefreshProfileImage(ctx context.Context) {
	s.mu.RLock()
	user, gen := s.user, s.gen
	s.mu.RUnlock()
	if user == nil {
		return
	}
	userID := user.UserID

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		url, err := s.store.ProfileImageURL(ctx, userID)

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen != gen {
			return
		}
		if err != nil {
			s.logger.Warn(ctx, "profile image refresh failed", "user_id", userID, "err", err)
			s.profileImage = ""
			return
		}
		s.profileImage = url
	}()
}

// Wait blocks until background refreshes have finished.
func (s *Session) Wait() {
	s.pending.Wait()
}

// Token implements client.TokenSource. It reads the credential store so the
// persisted token stays the single source.
func (s *Session) Token(ctx context.Context) string {
	return s.store.Token(ctx)
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := View{
		State:        s.state,
		Loading:      s.loading,
		ProfileImage: s.profileImage,
	}
	if s.user != nil {
		u := *s.user
		v.User = &u
		v.IsAuthenticated = true
		v.IsAdmin = models.IsAdmin(&u)
	}
	return v
}

// Access is the view the authorization guard evaluates.
func (s *Session) Access() access.Snapshot {
	v := s.Snapshot()
	return access.Snapshot{Loading: v.Loading, Authenticated: v.IsAuthenticated, Admin: v.IsAdmin}
}

// User is the signed-in user, nil when anonymous.
func (s *Session) User() *models.User {
	return s.Snapshot().User
}

// IsAdmin reports whether the signed-in user has elevated capability.
func (s *Session) IsAdmin() bool {
	return s.Snapshot().IsAdmin
}

// Retain adds a reference.
func (s *Session) Retain() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refs++
}

// Release drops a reference. The last one waits for background work and
// closes the registered resources.
func (s *Session) Release() error {
	s.mu.Lock()
	if s.refs == 0 {
		s.mu.Unlock()
		return ErrClosed
	}
	s.refs--
	if s.refs > 0 {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.Wait()

	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Session) setUserLocked(u *models.User) {
	s.state = StateAuthenticated
	s.user = u
	s.profileImage = ""
	s.gen++
}

func (s *Session) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateAnonymous
	s.loading = false
	s.user = nil
	s.profileImage = ""
	s.gen++
}

// tokenExpired reads the exp claim without verifying the signature; the API
// is the one that verifies. Tokens that are not JWTs or carry no exp never
// count as expired here.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(now)
}
