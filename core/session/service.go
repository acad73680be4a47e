package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/megatechsolutions/superadmin/core"
)

var NowFunc = time.Now // mockable

type (
	// Repository persists the single session record.
	// Implementations must treat a corrupted record as absent: clear it and
	// report ErrNoSession, never a fatal error.
	Repository interface {
		GetSession() (User, error)
		PutSession(User) error
		ClearSession() error
	}

	// Notifier surfaces transient, auto-dismissing notifications (the
	// dashboard's toasts).
	Notifier interface {
		Success(msg string)
		Error(msg string)
	}

	// LoginResult is the outcome of a successful credential check.
	// When the account requires two-factor verification no session exists
	// yet; the caller must complete the challenge via CompleteLogin.
	LoginResult struct {
		User              User
		TwoFactorRequired bool
		UserID            string
	}

	// Store is the single source of truth for "who is logged in".
	//
	// Its state machine is:
	//   Unchecked -> Checked+Unauthenticated   (Restore)
	//             -> Checked+Authenticated     (Login / CompleteLogin)
	//             -> Checked+Unauthenticated   (Logout)
	// Unchecked is the only initial state; authChecked never reverts.
	Store struct {
		mu          sync.Mutex
		usr         *User
		authChecked bool
		loading     bool

		repo       Repository
		dir        Directory
		notifier   Notifier
		loginDelay time.Duration
	}
)

func NewStore(repo Repository, dir Directory, notifier Notifier, conf *core.Config) *Store {
	return &Store{
		repo:       repo,
		dir:        dir,
		notifier:   notifier,
		loginDelay: conf.Auth.LoginDelay,
	}
}

// Restore loads the persisted session record, if any. It is invoked once at
// application start; later calls are no-ops. It always terminates with
// authChecked set, whether a valid, corrupted or absent record was found.
func (s *Store) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.authChecked {
		return
	}
	if usr, err := s.repo.GetSession(); err == nil {
		s.usr = &usr
	}
	s.authChecked = true
}

// Login validates the identifier/password pair against the directory.
// On mismatch no state is mutated and nothing is persisted. Only one attempt
// may be in flight at a time; concurrent calls fail with ErrLoginInFlight.
func (s *Store) Login(identifier, password string) (LoginResult, error) {
	identifier = core.CleanString(identifier, true /* lower */)
	if identifier == "" || password == "" {
		return LoginResult{}, core.NewValidationError(errors.New("identifier and password are required"))
	}

	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return LoginResult{}, ErrLoginInFlight
	}
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	// stand-in for the upstream credential check round-trip
	time.Sleep(s.loginDelay)

	cred, err := s.dir.Lookup(identifier)
	if err != nil {
		s.notifier.Error("Invalid credentials")
		return LoginResult{}, ErrInvalidCredentials
	}
	if err = cred.CheckPassword(password); err != nil {
		s.notifier.Error("Invalid credentials")
		return LoginResult{}, ErrInvalidCredentials
	}

	if cred.TwoFactorEnabled {
		return LoginResult{TwoFactorRequired: true, UserID: cred.ID}, nil
	}

	usr, err := s.establish(cred)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{User: usr}, nil
}

// CompleteLogin establishes the session for an account that passed its
// two-factor challenge.
func (s *Store) CompleteLogin(userID string) (User, error) {
	cred, err := s.dir.LookupID(userID)
	if err != nil {
		return User{}, err
	}
	return s.establish(cred)
}

func (s *Store) establish(cred Credential) (User, error) {
	usr := cred.User(NowFunc())
	if err := s.repo.PutSession(usr); err != nil {
		return User{}, errors.Wrap(err, "persisting session")
	}

	s.mu.Lock()
	s.usr = &usr
	s.mu.Unlock()

	s.notifier.Success(fmt.Sprintf("Welcome back, %s", usr.Name))
	return usr, nil
}

// Logout clears the in-memory and persisted session unconditionally and
// reports the login route as the navigation target. Idempotent.
func (s *Store) Logout() string {
	s.mu.Lock()
	s.usr = nil
	s.mu.Unlock()

	_ = s.repo.ClearSession()
	s.notifier.Success("Logged out")
	return LoginRoute
}

// UpdateUser shallow-merges the patch into the current session record and
// re-persists it. Without a current user it is a silent no-op; the returned
// flag tells callers whether anything was applied.
func (s *Store) UpdateUser(patch UserPatch) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.usr == nil {
		return User{}, false
	}
	if patch.Name != nil {
		s.usr.Name = *patch.Name
	}
	if patch.Role != nil {
		s.usr.Role = *patch.Role
	}
	if patch.Department != nil {
		s.usr.Department = *patch.Department
	}
	if patch.Permissions != nil {
		s.usr.Permissions = patch.Permissions
	}
	if err := s.repo.PutSession(*s.usr); err != nil {
		s.notifier.Error("Could not save profile changes")
	}
	return *s.usr, true
}

// Current returns the authenticated user, if any.
func (s *Store) Current() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.usr == nil {
		return User{}, false
	}
	return *s.usr, true
}

// AuthChecked reports whether the initial restore attempt has completed.
func (s *Store) AuthChecked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authChecked
}

// Loading reports whether a login attempt is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
