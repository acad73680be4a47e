package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/megatechsolutions/superadmin/core/session"
)

func Test_Guard_Decide(t *testing.T) {
	t.Run("loading before restore", func(t *testing.T) {
		sessStore, _, _, _ := setup(t)
		guard := session.NewGuard(sessStore)

		assert.Equal(t, session.DecisionLoading, guard.Decide())
		// still loading, still no redirect
		assert.Equal(t, session.DecisionLoading, guard.Decide())
	})

	t.Run("redirects exactly once", func(t *testing.T) {
		sessStore, _, _, _ := setup(t)
		sessStore.Restore()
		guard := session.NewGuard(sessStore)

		assert.Equal(t, session.DecisionRedirect, guard.Decide())
		assert.Equal(t, session.DecisionNone, guard.Decide())
		assert.Equal(t, session.DecisionNone, guard.Decide())
	})

	t.Run("renders for an authenticated user", func(t *testing.T) {
		sessStore, _, _, _ := setup(t)
		sessStore.Restore()
		if _, err := sessStore.Login("admin@megatechsolutions.org", session.DemoSecret); err != nil {
			t.Fatalf("Login() failed, %v", err)
		}
		guard := session.NewGuard(sessStore)

		assert.Equal(t, session.DecisionRender, guard.Decide())
		assert.Equal(t, session.DecisionRender, guard.Decide())
	})

	t.Run("redirects again after logout on a fresh guard", func(t *testing.T) {
		sessStore, _, _, _ := setup(t)
		sessStore.Restore()
		if _, err := sessStore.Login("admin@megatechsolutions.org", session.DemoSecret); err != nil {
			t.Fatalf("Login() failed, %v", err)
		}

		guard := session.NewGuard(sessStore)
		assert.Equal(t, session.DecisionRender, guard.Decide())

		sessStore.Logout()
		assert.Equal(t, session.DecisionRedirect, guard.Decide())
		assert.Equal(t, session.DecisionNone, guard.Decide())

		// each guarded entry point carries its own redirect memory
		assert.Equal(t, session.DecisionRedirect, session.NewGuard(sessStore).Decide())
	})
}
