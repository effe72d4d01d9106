// Package attempts caches scored attempts so orchestrator retries are
// idempotent: rescoring is deterministic, but serving the cached result
// keeps retry latency flat and telemetry honest.
package attempts

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/linguaport/quickscore/internal/domain/model"
)

// Cache stores results keyed by attempt ID.
type Cache interface {
	// Lookup returns the cached result for id, if any.
	Lookup(ctx context.Context, id string) (model.Result, bool)

	// Remember stores the result for id. Re-remembering an id overwrites.
	Remember(ctx context.Context, id string, result model.Result)

	// Forget removes an id, allowing a fresh score on the next request.
	Forget(ctx context.Context, id string)

	Size() int64
}

// node is a single entry in the eviction list.
type node struct {
	id     string
	result model.Result
	next   *node
}

// reset clears the node state for reuse.
func (n *node) reset() {
	n.id = ""
	n.result = model.Result{}
	n.next = nil
}

// inMemoryCache implements Cache with a bounded map plus a linked list
// for LIFO eviction, reusing nodes through a sync.Pool.
// maxSize <= 0 means unbounded (no eviction).
type inMemoryCache struct {
	mu       sync.RWMutex
	entries  map[string]*node
	head     *node
	maxSize  int
	size     atomic.Int64
	nodePool sync.Pool
}

// defaultMaxSize bounds the cache when no option overrides it.
const defaultMaxSize = 10000

// NewInMemoryCache creates a new in-memory attempt cache.
func NewInMemoryCache(opts ...Option) Cache {
	c := &inMemoryCache{
		maxSize: defaultMaxSize,
	}

	// Apply all options
	for _, opt := range opts {
		opt(c)
	}

	c.entries = make(map[string]*node)
	if c.maxSize > 0 {
		c.nodePool = sync.Pool{
			New: func() interface{} {
				return &node{}
			},
		}
	}

	return c
}

// Lookup returns the cached result for id, if any.
func (c *inMemoryCache) Lookup(_ context.Context, id string) (model.Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n, ok := c.entries[id]
	if !ok || n == nil {
		return model.Result{}, false
	}
	return n.result, true
}

// Remember stores the result for id, evicting the oldest entry when the
// bounded cache is full.
func (c *inMemoryCache) Remember(_ context.Context, id string, result model.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[id]; ok && existing != nil {
		existing.result = result
		return
	}

	if c.maxSize <= 0 {
		// Unbounded mode keeps a bare node with no list membership.
		c.entries[id] = &node{id: id, result: result}
		c.size.Add(1)
		return
	}

	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	n := c.nodePool.Get().(*node)
	n.id = id
	n.result = result
	n.next = c.head

	c.head = n
	c.entries[id] = n
	c.size.Add(1)
}

// Forget removes an id from the cache.
func (c *inMemoryCache) Forget(_ context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[id]
	if !ok {
		return
	}
	delete(c.entries, id)
	c.size.Add(-1)

	if c.maxSize <= 0 || n == nil {
		return
	}

	// Unlink from the eviction list and recycle the node.
	if c.head == n {
		c.head = n.next
	} else {
		current := c.head
		for current != nil && current.next != n {
			current = current.next
		}
		if current != nil {
			current.next = n.next
		}
	}
	n.reset()
	c.nodePool.Put(n)
}

// evictOldest removes the tail of the list. Must be called with c.mu held.
func (c *inMemoryCache) evictOldest() {
	if len(c.entries) == 0 || c.head == nil {
		return
	}

	// Single entry: drop the head.
	if c.head.next == nil {
		delete(c.entries, c.head.id)
		c.head.reset()
		c.nodePool.Put(c.head)
		c.head = nil
		c.size.Add(-1)
		return
	}

	// Walk to the second-to-last node.
	prev := c.head
	for prev.next.next != nil {
		prev = prev.next
	}

	tail := prev.next
	prev.next = nil
	delete(c.entries, tail.id)
	tail.reset()
	c.nodePool.Put(tail)
	c.size.Add(-1)
}

// Size returns the current number of cached attempts.
func (c *inMemoryCache) Size() int64 {
	return c.size.Load()
}
