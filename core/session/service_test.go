package session_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/megatechsolutions/superadmin/core"
	"github.com/megatechsolutions/superadmin/core/session"
	"github.com/megatechsolutions/superadmin/storage/localstore"
)

type testNotifier struct {
	successes []string
	errors    []string
}

func (n *testNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *testNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

func setup(t *testing.T) (*session.Store, session.Repository, *localstore.Store, *testNotifier) {
	store, err := localstore.Open(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("localstore.Open() failed, %v", err)
	}
	repo := localstore.NewSessionRepository(store)
	notifier := new(testNotifier)
	sessStore := session.NewStore(repo, session.DemoDirectory(), notifier, new(core.Config))
	return sessStore, repo, store, notifier
}

func Test_Store_Restore(t *testing.T) {
	t.Run("no record", func(t *testing.T) {
		sessStore, _, _, _ := setup(t)

		assert.False(t, sessStore.AuthChecked())
		sessStore.Restore()
		assert.True(t, sessStore.AuthChecked())
		_, ok := sessStore.Current()
		assert.False(t, ok)
	})

	t.Run("persisted record", func(t *testing.T) {
		sessStore, repo, _, _ := setup(t)

		want := session.User{
			ID:          "SA001",
			Email:       "admin@megatechsolutions.org",
			Name:        "Dr. Adewale Ogunleye",
			Role:        "super_admin",
			Permissions: []string{"all"},
			LastLogin:   time.Now().UTC().Truncate(time.Second),
		}
		if err := repo.PutSession(want); err != nil {
			t.Fatalf("PutSession() failed, %v", err)
		}

		sessStore.Restore()
		usr, ok := sessStore.Current()
		assert.True(t, ok)
		assert.Equal(t, want, usr)
	})

	t.Run("corrupted record reads as absent", func(t *testing.T) {
		sessStore, repo, store, _ := setup(t)

		// not a session record shape
		if err := store.Put(localstore.KeySession, 42); err != nil {
			t.Fatalf("Put() failed, %v", err)
		}

		sessStore.Restore()
		assert.True(t, sessStore.AuthChecked())
		_, ok := sessStore.Current()
		assert.False(t, ok)

		// the corrupted value was cleared, not left behind
		_, err := repo.GetSession()
		assert.Equal(t, session.ErrNoSession, err)
	})

	t.Run("second restore is a no-op", func(t *testing.T) {
		sessStore, repo, _, _ := setup(t)

		sessStore.Restore()
		_, ok := sessStore.Current()
		assert.False(t, ok)

		// a record appearing later must not resurrect a session
		if err := repo.PutSession(session.User{ID: "SA001"}); err != nil {
			t.Fatalf("PutSession() failed, %v", err)
		}
		sessStore.Restore()
		_, ok = sessStore.Current()
		assert.False(t, ok)
	})
}

func Test_Store_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		sessStore, repo, _, notifier := setup(t)
		sessStore.Restore()

		res, err := sessStore.Login("admin@megatechsolutions.org", session.DemoSecret)
		if err != nil {
			t.Fatalf("Login() failed, %v", err)
		}
		assert.False(t, res.TwoFactorRequired)
		assert.Equal(t, "SA001", res.User.ID)
		assert.Equal(t, "Dr. Adewale Ogunleye", res.User.Name)
		assert.Equal(t, "super_admin", res.User.Role)

		usr, ok := sessStore.Current()
		assert.True(t, ok)
		assert.Equal(t, res.User, usr)
		assert.Contains(t, notifier.successes, "Welcome back, Dr. Adewale Ogunleye")

		// the session survives a restart
		persisted, err := repo.GetSession()
		if err != nil {
			t.Fatalf("GetSession() failed, %v", err)
		}
		assert.Equal(t, res.User, persisted)
	})

	t.Run("identifier is cleaned", func(t *testing.T) {
		sessStore, _, _, _ := setup(t)
		sessStore.Restore()

		res, err := sessStore.Login("  ADMIN@MegaTechSolutions.ORG  ", session.DemoSecret)
		if err != nil {
			t.Fatalf("Login() failed, %v", err)
		}
		assert.Equal(t, "SA001", res.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		sessStore, repo, _, notifier := setup(t)
		sessStore.Restore()

		_, err := sessStore.Login("admin@megatechsolutions.org", "letmein")
		assert.Equal(t, session.ErrInvalidCredentials, err)
		assert.Contains(t, notifier.errors, "Invalid credentials")

		_, ok := sessStore.Current()
		assert.False(t, ok)
		_, err = repo.GetSession()
		assert.Equal(t, session.ErrNoSession, err)
	})

	t.Run("unknown account", func(t *testing.T) {
		sessStore, _, _, notifier := setup(t)
		sessStore.Restore()

		_, err := sessStore.Login("nobody@megatechsolutions.org", session.DemoSecret)
		assert.Equal(t, session.ErrInvalidCredentials, err)
		assert.Contains(t, notifier.errors, "Invalid credentials")
	})

	t.Run("empty input", func(t *testing.T) {
		sessStore, _, _, _ := setup(t)
		sessStore.Restore()

		_, err := sessStore.Login("", "")
		_, ok := err.(*core.ValidationError)
		assert.True(t, ok, "want a validation error, got %v", err)

		_, err = sessStore.Login("admin@megatechsolutions.org", "")
		_, ok = err.(*core.ValidationError)
		assert.True(t, ok, "want a validation error, got %v", err)
	})

	t.Run("one attempt at a time", func(t *testing.T) {
		store, err := localstore.Open(filepath.Join(t.TempDir(), "store.json"))
		if err != nil {
			t.Fatalf("localstore.Open() failed, %v", err)
		}
		conf := new(core.Config)
		conf.Auth.LoginDelay = 200 * time.Millisecond
		sessStore := session.NewStore(
			localstore.NewSessionRepository(store), session.DemoDirectory(), new(testNotifier), conf)
		sessStore.Restore()

		done := make(chan struct{})
		go func() {
			defer close(done)
			if _, err := sessStore.Login("admin@megatechsolutions.org", session.DemoSecret); err != nil {
				t.Errorf("Login() failed, %v", err)
			}
		}()

		time.Sleep(50 * time.Millisecond)
		assert.True(t, sessStore.Loading())
		_, err = sessStore.Login("admin@megatechsolutions.org", session.DemoSecret)
		assert.Equal(t, session.ErrLoginInFlight, err)

		<-done
		assert.False(t, sessStore.Loading())
	})

	t.Run("two-factor account defers the session", func(t *testing.T) {
		sessStore, repo, _, _ := setup(t)
		sessStore.Restore()

		res, err := sessStore.Login("ops@megatechsolutions.org", session.DemoSecret)
		if err != nil {
			t.Fatalf("Login() failed, %v", err)
		}
		assert.True(t, res.TwoFactorRequired)
		assert.Equal(t, "SA002", res.UserID)

		// nothing established or persisted until the challenge passes
		_, ok := sessStore.Current()
		assert.False(t, ok)
		_, err = repo.GetSession()
		assert.Equal(t, session.ErrNoSession, err)

		usr, err := sessStore.CompleteLogin(res.UserID)
		if err != nil {
			t.Fatalf("CompleteLogin() failed, %v", err)
		}
		assert.Equal(t, "Ngozi Eze", usr.Name)
		_, ok = sessStore.Current()
		assert.True(t, ok)
	})
}

func Test_Store_Logout(t *testing.T) {
	sessStore, repo, _, _ := setup(t)
	sessStore.Restore()

	if _, err := sessStore.Login("admin@megatechsolutions.org", session.DemoSecret); err != nil {
		t.Fatalf("Login() failed, %v", err)
	}

	assert.Equal(t, session.LoginRoute, sessStore.Logout())
	_, ok := sessStore.Current()
	assert.False(t, ok)
	_, err := repo.GetSession()
	assert.Equal(t, session.ErrNoSession, err)

	// idempotent; authChecked never reverts
	assert.Equal(t, session.LoginRoute, sessStore.Logout())
	assert.True(t, sessStore.AuthChecked())
}

func Test_Store_UpdateUser(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	t.Run("no session is a silent no-op", func(t *testing.T) {
		sessStore, _, _, _ := setup(t)
		sessStore.Restore()

		_, ok := sessStore.UpdateUser(session.UserPatch{Name: strPtr("Someone Else")})
		assert.False(t, ok)
	})

	t.Run("shallow merge", func(t *testing.T) {
		sessStore, repo, _, _ := setup(t)
		sessStore.Restore()

		res, err := sessStore.Login("admin@megatechsolutions.org", session.DemoSecret)
		if err != nil {
			t.Fatalf("Login() failed, %v", err)
		}

		usr, ok := sessStore.UpdateUser(session.UserPatch{
			Department:  strPtr("Engineering"),
			Permissions: []string{"schools", "tickets"},
		})
		assert.True(t, ok)
		assert.Equal(t, res.User.Name, usr.Name) // untouched
		assert.Equal(t, "Engineering", usr.Department)
		assert.Equal(t, []string{"schools", "tickets"}, usr.Permissions)

		persisted, err := repo.GetSession()
		if err != nil {
			t.Fatalf("GetSession() failed, %v", err)
		}
		assert.Equal(t, usr, persisted)
	})
}
