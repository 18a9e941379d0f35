// Package session holds the user who is logged in.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/stellarburgers/burger/cmd/burger/state/lifecycle"
	apiauth "github.com/stellarburgers/burger/pkg/api/types/auth"
	"github.com/stellarburgers/burger/pkg/utils/pointer"
)

const storeName = "session"

// ErrNotAuthenticated is returned by operations requiring a user when no one is logged in.
var ErrNotAuthenticated = errors.New("not logged in")

type State int

const (
	Anonymous State = iota
	Loading
	Authenticated

	// Error is anonymous with a recorded error.
	Error
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Client is the part of rest.BurgerClient used by Store.
type Client interface {
	GetUser(ctx context.Context) (apiauth.User, error)
	Login(ctx context.Context, email string, password string) (apiauth.User, apiauth.Tokens, error)
	Register(ctx context.Context, name string, email string, password string) (apiauth.User, apiauth.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	UpdateUser(ctx context.Context, patch apiauth.UserPatch) (apiauth.User, error)
}

// ProfileForm is the desired profile. Empty Password means "unchanged".
type ProfileForm struct {
	Name     string
	Email    string
	Password string
}

type Snapshot struct {
	State State

	// User is nil unless authenticated.
	User   *apiauth.User
	Status lifecycle.Status
}

func (s Snapshot) IsAuthenticated() bool {
	return s.User != nil
}

type Store struct {
	client   Client
	keyring  *Keyring
	observer lifecycle.Observer
	seq      lifecycle.Sequence

	mu     sync.Mutex
	user   *apiauth.User
	status lifecycle.Status
}

type Option func(*Store) *Store

func WithObserver(o lifecycle.Observer) Option {
	return func(s *Store) *Store {
		s.observer = o
		return s
	}
}

// New creates a session store.
//
// client should authenticate with keyring.
func New(client Client, keyring *Keyring, options ...Option) *Store {
	s := &Store{client: client, keyring: keyring}
	for _, opt := range options {
		s = opt(s)
	}
	return s
}

// Keyring returns the credentials of this session.
func (s *Store) Keyring() *Keyring {
	return s.keyring
}

// begin starts an operation and returns its request number.
func (s *Store) begin(operation string) uint64 {
	s.mu.Lock()
	n := s.seq.Next()
	s.status = lifecycle.Pending()
	s.mu.Unlock()
	s.observer.Notify(storeName, operation, lifecycle.Pending())
	return n
}

// settle applies the result of request n, unless it is superseded.
func (s *Store) settle(operation string, n uint64, status lifecycle.Status, update func()) bool {
	s.mu.Lock()
	if !s.seq.Latest(n) {
		s.mu.Unlock()
		return false
	}
	s.status = status
	if update != nil {
		update()
	}
	s.mu.Unlock()
	s.observer.Notify(storeName, operation, status)
	return true
}

// Rehydrate recovers the session from stored credentials.
//
// Failure leaves the session anonymous and is not recorded as the error of the store.
// The error is returned for logging.
func (s *Store) Rehydrate(ctx context.Context) error {
	has, err := s.keyring.HasRefreshToken()
	if err != nil || !has {
		s.mu.Lock()
		s.user = nil
		s.mu.Unlock()
		return err
	}

	n := s.begin("rehydrate")
	user, err := s.client.GetUser(ctx)
	if err != nil {
		s.settle("rehydrate", n, lifecycle.Status{Phase: lifecycle.Idle}, func() { s.user = nil })
		return err
	}
	s.settle("rehydrate", n, lifecycle.Fulfilled(), func() { s.user = &user })
	return nil
}

func (s *Store) Login(ctx context.Context, email string, password string) (apiauth.User, error) {
	n := s.begin("login")
	user, tokens, err := s.client.Login(ctx, email, password)
	return s.authenticate("login", n, user, tokens, err)
}

func (s *Store) Register(ctx context.Context, name string, email string, password string) (apiauth.User, error) {
	n := s.begin("register")
	user, tokens, err := s.client.Register(ctx, name, email, password)
	return s.authenticate("register", n, user, tokens, err)
}

func (s *Store) authenticate(operation string, n uint64, user apiauth.User, tokens apiauth.Tokens, err error) (apiauth.User, error) {
	if err == nil && s.seq.Latest(n) {
		err = s.keyring.store(tokens)
	}
	if err != nil {
		s.settle(operation, n, lifecycle.Rejected(err), func() { s.user = nil })
		return apiauth.User{}, err
	}
	s.settle(operation, n, lifecycle.Fulfilled(), func() { s.user = &user })
	return user, nil
}

// Logout invalidates the session on the server, and forgets it locally.
//
// Local credentials and the user are cleared even if the server fails.
// Then the error is recorded and returned.
func (s *Store) Logout(ctx context.Context) error {
	n := s.begin("logout")

	var remote error
	refresh, ok, err := s.keyring.refreshToken()
	if err != nil {
		remote = err
	} else if ok {
		remote = s.client.Logout(ctx, refresh)
	}
	local := s.keyring.forget()

	// the user is dropped even when superseded.
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if err := errors.Join(remote, local); err != nil {
		s.settle("logout", n, lifecycle.Rejected(err), nil)
		return err
	}
	s.settle("logout", n, lifecycle.Fulfilled(), nil)
	return nil
}

// UpdateProfile sends fields of form which differ from the current user.
//
// When nothing differs, it returns the current user without requests.
// On failure, the user is kept. The password is not kept in any case.
func (s *Store) UpdateProfile(ctx context.Context, form ProfileForm) (apiauth.User, error) {
	s.mu.Lock()
	current := s.user
	s.mu.Unlock()
	if current == nil {
		return apiauth.User{}, ErrNotAuthenticated
	}

	patch := diff(*current, form)
	if patch.Empty() {
		return *current, nil
	}

	n := s.begin("updateProfile")
	user, err := s.client.UpdateUser(ctx, patch)
	if err != nil {
		s.settle("updateProfile", n, lifecycle.Rejected(err), nil)
		return apiauth.User{}, err
	}
	s.settle("updateProfile", n, lifecycle.Fulfilled(), func() { s.user = &user })
	return user, nil
}

func diff(current apiauth.User, form ProfileForm) apiauth.UserPatch {
	patch := apiauth.UserPatch{}
	if form.Name != "" && form.Name != current.Name {
		patch.Name = pointer.Ref(form.Name)
	}
	if form.Email != "" && form.Email != current.Email {
		patch.Email = pointer.Ref(form.Email)
	}
	if form.Password != "" {
		patch.Password = pointer.Ref(form.Password)
	}
	return patch
}

func (s *Store) User() (apiauth.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return apiauth.User{}, false
	}
	return *s.user, true
}

func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{Status: s.status}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}

	switch {
	case s.status.IsLoading():
		snap.State = Loading
	case s.user != nil:
		snap.State = Authenticated
	case s.status.Phase == lifecycle.Failed:
		snap.State = Error
	default:
		snap.State = Anonymous
	}
	return snap
}
