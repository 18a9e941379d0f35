// Package credentials holds opaque credentials of the burger API.
//
// There are two tiers.
// The long-lived tier survives restarts of the process (FileStore).
// The short-lived tier lives only as long as the process (MemoryStore).
//
// Values are opaque. Nothing in this package parses them.
package credentials

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/stellarburgers/burger/cmd/burger/config/open"
	yaml "gopkg.in/yaml.v3"
)

// well-known keys.
const (
	RefreshToken = "refreshToken"
	AccessToken  = "accessToken"
)

// Store is a key-value store of credentials.
type Store interface {
	// Get returns the value for key.
	//
	// The second result is false when the key is absent.
	Get(key string) (string, bool, error)

	// Set stores value for key.
	Set(key string, value string) error

	// Delete removes key. Removing an absent key is not an error.
	Delete(key string) error
}

type memoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore returns a Store living in process memory.
func NewMemoryStore() Store {
	return &memoryStore{values: map[string]string{}}
}

func (m *memoryStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryStore) Set(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// FileStore is a Store persisted in a yaml file.
//
// One file can hold credentials of many profiles, like
//
//	default:
//	    refreshToken: "..."
//	staging:
//	    refreshToken: "..."
//
// FileStore reads the file on each Get, so changes by other processes are visible.
type FileStore struct {
	mu      sync.Mutex
	path    string
	profile string
}

var _ Store = &FileStore{}

var ErrBrokenFile = errors.New("credentials file is broken")

// NewFileStore returns a Store backed by the file at path, scoped to profile.
//
// The file is created on the first Set.
func NewFileStore(path string, profile string) *FileStore {
	return &FileStore{path: path, profile: profile}
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) load() (map[string]map[string]string, error) {
	content := map[string]map[string]string{}
	buf, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return content, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(buf, &content); err != nil {
		return nil, fmt.Errorf("%w (%s): %w", ErrBrokenFile, f.path, err)
	}
	if content == nil {
		content = map[string]map[string]string{}
	}
	return content, nil
}

func (f *FileStore) save(content map[string]map[string]string) error {
	buf, err := yaml.Marshal(content)
	if err != nil {
		return err
	}
	return open.WriteFileSafely(f.path, buf)
}

func (f *FileStore) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	content, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := content[f.profile][key]
	return v, ok, nil
}

func (f *FileStore) Set(key string, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	content, err := f.load()
	if err != nil {
		return err
	}
	values, ok := content[f.profile]
	if !ok || values == nil {
		values = map[string]string{}
		content[f.profile] = values
	}
	values[key] = value
	return f.save(content)
}

func (f *FileStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	content, err := f.load()
	if err != nil {
		return err
	}
	values, ok := content[f.profile]
	if !ok {
		return nil
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	if len(values) == 0 {
		delete(content, f.profile)
	}
	return f.save(content)
}
