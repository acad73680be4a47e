// Package localstore is a JSON-file-backed key-value store standing in for
// the portal's durable client storage: each key holds one JSON-serialized
// collection, read and rewritten wholesale on every mutation. There is no
// partial update and no schema versioning, matching the storage contract the
// portal was written against.
package localstore

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"sync"

	"github.com/pkg/errors"
)

// Storage keys. Each store owns exactly one key.
const (
	KeySession  = "super_admin"
	KeyTickets  = "super_admin_tickets"
	KeySchools  = "schools"
	KeyAdmins   = "admins"
	KeyStudents = "all_students"
)

var ErrKeyNotFound = errors.New("key not found")

type Store struct {
	path string

	mu   sync.Mutex
	data map[string]json.RawMessage
}

// Open loads the datastore file. A missing file starts empty; an unreadable
// one is discarded and started over, the same fail-open policy applied to
// individual corrupted values.
func Open(path string) (*Store, error) {
	s := &Store{path: path, data: make(map[string]json.RawMessage)}

	raw, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading datastore")
	}
	if err = json.Unmarshal(raw, &s.data); err != nil {
		s.data = make(map[string]json.RawMessage)
	}
	return s, nil
}

// Get unmarshals the value under key into v. A corrupted value is cleared
// and reported as absent, never as a fatal error.
func (s *Store) Get(key string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.data[key]
	if !ok {
		return ErrKeyNotFound
	}
	if err := json.Unmarshal(raw, v); err != nil {
		delete(s.data, key)
		_ = s.flush()
		return ErrKeyNotFound
	}
	return nil
}

// Put serializes v under key and rewrites the datastore file wholesale.
func (s *Store) Put(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "serializing %q", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	return s.flush()
}

// Remove deletes the key. Removing an absent key is a no-op.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.flush()
}

// flush rewrites the whole file. Callers hold s.mu. Last-writer-wins across
// processes; there is no cross-process locking.
func (s *Store) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return errors.Wrap(err, "serializing datastore")
	}
	return errors.Wrap(ioutil.WriteFile(s.path, raw, 0600), "writing datastore")
}
