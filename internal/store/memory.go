// =============================
// File: internal/store/memory.go
// =============================
package store

import (
	"sync"

	"github.com/gagliardetto/solana-go"

	"github.com/rovshanmuradov/curve-engine/internal/curve"
)

// MemoryStore is an in-process CurveStore used in tests and by the CLI's dry
// runs. Records are held as encoded bytes so the codec path is exercised the
// same way as with Pebble.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[solana.PublicKey][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[solana.PublicKey][]byte)}
}

func (s *MemoryStore) Load(addr solana.PublicKey) (*curve.State, error) {
	s.mu.RLock()
	data, ok := s.records[addr]
	s.mu.RUnlock()
	if !ok {
		return nil, curve.ErrNotInitialized
	}
	return curve.Unmarshal(data)
}

func (s *MemoryStore) Save(addr solana.PublicKey, st *curve.State) error {
	data, err := st.Marshal()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.records[addr] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Exists(addr solana.PublicKey) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[addr]
	return ok, nil
}

func (s *MemoryStore) Close() error { return nil }

var _ CurveStore = (*MemoryStore)(nil)
