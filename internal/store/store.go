package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/bitcorise/earnbot/internal/domain"
)

// Snapshot is the full durable state: every account and every payout
// request. It is serialized as a single JSON document and rewritten in full
// after each mutation. Account keys are the string form of the Telegram
// user ID; payout keys are request IDs.
type Snapshot struct {
	Accounts map[string]*domain.Account       `json:"users"`
	Payouts  map[string]*domain.PayoutRequest `json:"payout_requests"`
}

func newSnapshot() *Snapshot {
	return &Snapshot{
		Accounts: make(map[string]*domain.Account),
		Payouts:  make(map[string]*domain.PayoutRequest),
	}
}

// Store owns the snapshot and its on-disk file. All access goes through
// View/Update so the stats reader and the bot dispatcher never observe a
// half-applied mutation.
type Store struct {
	path string

	mu    sync.RWMutex
	state *Snapshot
}

// Open loads the snapshot file at path. A missing file is not an error:
// the store starts empty and the file is created on the first mutation.
func Open(path string) (*Store, error) {
	s := &Store{path: path, state: newSnapshot()}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Info("no snapshot file, starting fresh", "path", path)
			return s, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	if err := json.Unmarshal(data, s.state); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.state.Accounts == nil {
		s.state.Accounts = make(map[string]*domain.Account)
	}
	if s.state.Payouts == nil {
		s.state.Payouts = make(map[string]*domain.PayoutRequest)
	}
	for id, req := range s.state.Payouts {
		req.ID = id
	}

	slog.Info("snapshot loaded",
		"path", path,
		"accounts", len(s.state.Accounts),
		"payout_requests", len(s.state.Payouts),
	)
	return s, nil
}

// Update runs fn against the snapshot under the write lock and, if fn
// succeeds, rewrites the file. A returned error from fn skips the write.
func (s *Store) Update(fn func(*Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.state); err != nil {
		return err
	}
	return s.save()
}

// View runs fn against the snapshot under the read lock.
func (s *Store) View(fn func(*Snapshot)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}

// Flush forces a write of the current snapshot, used at shutdown.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
