package wallet

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// SessionKey is the fixed slot every adapter and manager persists the
// active connection record under.
const SessionKey = "wallet-connection"

// SessionStore is a single-slot durable store for connection records. Load
// returns (nil, nil) when the key holds nothing.
type SessionStore interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
	Clear(key string) error
}

// MemoryStore keeps sessions in process memory. It is the default store
// and suits tests and short-lived programs.
type MemoryStore struct {
	mu    sync.Mutex
	slots map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: map[string][]byte{}}
}

// Load implements SessionStore.
func (s *MemoryStore) Load(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, exists := s.slots[key]
	if !exists {
		return nil, nil
	}
	copied := make([]byte, len(value))
	copy(copied, value)
	return copied, nil
}

// Save implements SessionStore.
func (s *MemoryStore) Save(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]byte, len(value))
	copy(copied, value)
	s.slots[key] = copied
	return nil
}

// Clear implements SessionStore.
func (s *MemoryStore) Clear(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.slots, key)
	return nil
}

// FileStore persists sessions as a JSON object in a single file, created
// with owner-only permissions since records identify wallet accounts.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a FileStore backed by the given file. The file and
// its directory are created lazily on the first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load implements SessionStore.
func (s *FileStore) Load(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.readSlots()
	if err != nil {
		return nil, err
	}
	value, exists := slots[key]
	if !exists {
		return nil, nil
	}
	return value, nil
}

// Save implements SessionStore.
func (s *FileStore) Save(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.readSlots()
	if err != nil {
		slots = map[string]json.RawMessage{}
	}
	slots[key] = json.RawMessage(value)
	return s.writeSlots(slots)
}

// Clear implements SessionStore.
func (s *FileStore) Clear(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.readSlots()
	if err != nil || len(slots) == 0 {
		return nil
	}
	if _, exists := slots[key]; !exists {
		return nil
	}
	delete(slots, key)
	return s.writeSlots(slots)
}

func (s *FileStore) readSlots() (map[string]json.RawMessage, error) {
	content, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, err
	}

	slots := map[string]json.RawMessage{}
	if len(content) == 0 {
		return slots, nil
	}
	if err := json.Unmarshal(content, &slots); err != nil {
		// A mangled store file counts as empty rather than fatal.
		return map[string]json.RawMessage{}, nil
	}
	return slots, nil
}

func (s *FileStore) writeSlots(slots map[string]json.RawMessage) error {
	encoded, err := json.Marshal(slots)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, encoded, 0o600)
}

// saveRecord persists a connection record to the fixed session slot.
func saveRecord(store SessionStore, record ConnectionRecord) error {
	if store == nil {
		return nil
	}
	encoded, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return store.Save(SessionKey, encoded)
}

// loadRecord restores the persisted connection record. Corrupt or invalid
// data is cleared and reported as absent, never as an error.
func loadRecord(store SessionStore) (ConnectionRecord, bool) {
	if store == nil {
		return ConnectionRecord{}, false
	}

	raw, err := store.Load(SessionKey)
	if err != nil || len(raw) == 0 {
		return ConnectionRecord{}, false
	}

	var record ConnectionRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		clearRecord(store)
		return ConnectionRecord{}, false
	}
	if err := record.Validate(); err != nil {
		clearRecord(store)
		return ConnectionRecord{}, false
	}

	return record, true
}

// clearRecord drops the persisted session slot, best-effort.
func clearRecord(store SessionStore) {
	if store == nil {
		return
	}
	_ = store.Clear(SessionKey)
}
