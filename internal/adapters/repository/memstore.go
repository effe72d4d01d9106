package repository

import (
	"context"
	"hash/fnv"
	"sync"
)

// defaultShardCount spreads candidate sessions across independently
// locked shards so concurrent appends for different candidates never
// contend.
const defaultShardCount = 16

// shard holds the sessions whose candidate IDs hash to it.
type shard struct {
	mu       sync.RWMutex
	sessions map[string][]Step
}

// MemStore is an in-memory, sharded session store. Appends for the same
// candidate are serialized by the shard lock, so step order follows
// append order.
type MemStore struct {
	shards []*shard
	size   int
	sizeMu sync.Mutex
}

// StoreOption applies a configuration option to the MemStore.
type StoreOption func(*MemStore)

// WithShardCount sets the number of session shards.
func WithShardCount(n int) StoreOption {
	return func(s *MemStore) {
		if n > 0 {
			s.shards = make([]*shard, n)
		}
	}
}

// NewMemStore creates an in-memory session store.
func NewMemStore(opts ...StoreOption) *MemStore {
	s := &MemStore{
		shards: make([]*shard, defaultShardCount),
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	for i := range s.shards {
		s.shards[i] = &shard{sessions: make(map[string][]Step)}
	}

	return s
}

// shardFor hashes the candidate ID onto a shard.
func (s *MemStore) shardFor(candidateID string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(candidateID))
	return s.shards[h.Sum32()%uint32(len(s.shards))]
}

// Append adds a step to the candidate's session.
func (s *MemStore) Append(_ context.Context, candidateID string, step Step) error {
	if candidateID == "" {
		return ErrEmptyCandidateID
	}

	sh := s.shardFor(candidateID)
	sh.mu.Lock()
	_, existed := sh.sessions[candidateID]
	sh.sessions[candidateID] = append(sh.sessions[candidateID], step)
	sh.mu.Unlock()

	if !existed {
		s.sizeMu.Lock()
		s.size++
		s.sizeMu.Unlock()
	}
	return nil
}

// Session returns a copy of the candidate's steps in append order.
func (s *MemStore) Session(_ context.Context, candidateID string) ([]Step, error) {
	if candidateID == "" {
		return nil, ErrEmptyCandidateID
	}

	sh := s.shardFor(candidateID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	steps, ok := sh.sessions[candidateID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	out := make([]Step, len(steps))
	copy(out, steps)
	return out, nil
}

// Count returns the number of tracked candidates.
func (s *MemStore) Count(_ context.Context) int {
	s.sizeMu.Lock()
	defer s.sizeMu.Unlock()
	return s.size
}
