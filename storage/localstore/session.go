package localstore

import (
	"github.com/megatechsolutions/superadmin/core/session"
)

type sessionRepository struct {
	store *Store
}

func NewSessionRepository(store *Store) session.Repository {
	return &sessionRepository{store: store}
}

func (repo *sessionRepository) GetSession() (session.User, error) {
	var usr session.User
	if err := repo.store.Get(KeySession, &usr); err != nil {
		// absent or corrupted-and-cleared: either way, no session
		return session.User{}, session.ErrNoSession
	}
	return usr, nil
}

func (repo *sessionRepository) PutSession(usr session.User) error {
	return repo.store.Put(KeySession, usr)
}

func (repo *sessionRepository) ClearSession() error {
	return repo.store.Remove(KeySession)
}
