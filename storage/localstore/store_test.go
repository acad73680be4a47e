package localstore

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func openStore(t *testing.T) (*Store, string) {
	path := filepath.Join(t.TempDir(), "store.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed, %v", err)
	}
	return s, path
}

func Test_Store_Open(t *testing.T) {
	t.Run("missing file starts empty", func(t *testing.T) {
		s, _ := openStore(t)

		var v map[string]string
		assert.Equal(t, ErrKeyNotFound, s.Get("anything", &v))
	})

	t.Run("unreadable file is discarded", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "store.json")
		if err := ioutil.WriteFile(path, []byte("{not json"), 0600); err != nil {
			t.Fatalf("WriteFile() failed, %v", err)
		}

		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() failed, %v", err)
		}
		var v map[string]string
		assert.Equal(t, ErrKeyNotFound, s.Get("anything", &v))
	})

	t.Run("reopen sees persisted keys", func(t *testing.T) {
		s, path := openStore(t)
		if err := s.Put(KeySchools, []string{"Greenfield Academy"}); err != nil {
			t.Fatalf("Put() failed, %v", err)
		}

		reopened, err := Open(path)
		if err != nil {
			t.Fatalf("Open() failed, %v", err)
		}
		var schools []string
		if err = reopened.Get(KeySchools, &schools); err != nil {
			t.Fatalf("Get() failed, %v", err)
		}
		assert.Equal(t, []string{"Greenfield Academy"}, schools)
	})
}

func Test_Store_Get_corruptedValue(t *testing.T) {
	s, path := openStore(t)

	type record struct {
		Name string `json:"name"`
	}
	// a value that cannot unmarshal into the expected shape
	if err := s.Put(KeySession, "not-a-record"); err != nil {
		t.Fatalf("Put() failed, %v", err)
	}

	var rec record
	assert.Equal(t, ErrKeyNotFound, s.Get(KeySession, &rec))

	// cleared for good, in memory and on disk
	assert.Equal(t, ErrKeyNotFound, s.Get(KeySession, &rec))
	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed, %v", err)
	}
	assert.Equal(t, ErrKeyNotFound, reopened.Get(KeySession, &rec))
}

func Test_Store_Put_rewritesWholesale(t *testing.T) {
	s, path := openStore(t)

	if err := s.Put(KeyTickets, []int{1, 2}); err != nil {
		t.Fatalf("Put() failed, %v", err)
	}
	if err := s.Put(KeyTickets, []int{3}); err != nil {
		t.Fatalf("Put() failed, %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed, %v", err)
	}
	var tickets []int
	if err = reopened.Get(KeyTickets, &tickets); err != nil {
		t.Fatalf("Get() failed, %v", err)
	}
	assert.Equal(t, []int{3}, tickets)
}

func Test_Store_Remove(t *testing.T) {
	s, _ := openStore(t)

	if err := s.Put(KeyAdmins, []string{"Chiamaka Okafor"}); err != nil {
		t.Fatalf("Put() failed, %v", err)
	}
	if err := s.Remove(KeyAdmins); err != nil {
		t.Fatalf("Remove() failed, %v", err)
	}
	var admins []string
	assert.Equal(t, ErrKeyNotFound, s.Get(KeyAdmins, &admins))

	// removing an absent key is a no-op
	assert.NoError(t, s.Remove(KeyAdmins))
	assert.NoError(t, s.Remove("never-written"))
}
