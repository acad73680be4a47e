package session

import "sync"

// Decision is the outcome of one guard evaluation.
type Decision int

const (
	// DecisionLoading: the initial restore has not completed; show a neutral
	// loading state, do not redirect.
	DecisionLoading Decision = iota
	// DecisionRedirect: no user is present; issue the single navigation to
	// the login entry point and render nothing.
	DecisionRedirect
	// DecisionNone: the redirect was already issued by this guard; render
	// nothing and do not navigate again.
	DecisionNone
	// DecisionRender: a user is present; render the protected content.
	DecisionRender
)

// Guard gates protected content on session state. It is a pure function of
// the store's state plus one piece of "redirect issued" memory; the single
// navigation itself is the caller's job.
type Guard struct {
	store *Store

	mu         sync.Mutex
	redirected bool
}

func NewGuard(store *Store) *Guard {
	return &Guard{store: store}
}

// Decide returns exactly one of the four decisions. DecisionRedirect is
// returned at most once per guard instance; repeated evaluations while the
// redirect is pending yield DecisionNone.
func (g *Guard) Decide() Decision {
	if !g.store.AuthChecked() {
		return DecisionLoading
	}
	if _, ok := g.store.Current(); ok {
		return DecisionRender
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.redirected {
		return DecisionNone
	}
	g.redirected = true
	return DecisionRedirect
}
