// =============================
// File: internal/store/pebble.go
// =============================
package store

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/gagliardetto/solana-go"

	"github.com/rovshanmuradov/curve-engine/internal/curve"
)

// PebbleStore keeps curve records in a Pebble database, one key per derived
// address.
type PebbleStore struct {
	db *pebble.DB
}

// NewPebbleStore opens (or creates) the database at path.
func NewPebbleStore(path string) (*PebbleStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open pebble db at %s: %w", path, err)
	}
	return &PebbleStore{db: db}, nil
}

// Close closes the underlying database.
func (s *PebbleStore) Close() error { return s.db.Close() }

func curveKey(addr solana.PublicKey) []byte {
	return append([]byte("curve:"), addr.Bytes()...)
}

// Load reads and decodes the record at addr.
func (s *PebbleStore) Load(addr solana.PublicKey) (*curve.State, error) {
	val, closer, err := s.db.Get(curveKey(addr))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, curve.ErrNotInitialized
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get curve record %s: %w", addr, err)
	}
	defer closer.Close()

	return curve.Unmarshal(val)
}

// Save encodes and writes the record at addr. The write is synced so a
// committed transition survives a crash.
func (s *PebbleStore) Save(addr solana.PublicKey, st *curve.State) error {
	data, err := st.Marshal()
	if err != nil {
		return err
	}
	if err := s.db.Set(curveKey(addr), data, pebble.Sync); err != nil {
		return fmt.Errorf("failed to save curve record %s: %w", addr, err)
	}
	return nil
}

// Exists reports whether a record is stored at addr.
func (s *PebbleStore) Exists(addr solana.PublicKey) (bool, error) {
	_, closer, err := s.db.Get(curveKey(addr))
	if errors.Is(err, pebble.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check curve record %s: %w", addr, err)
	}
	closer.Close()
	return true, nil
}

var _ CurveStore = (*PebbleStore)(nil)
