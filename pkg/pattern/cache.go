package pattern

import (
	"sync"
	"sync/atomic"

	"github.com/qckfx/tree-hugger-js/pkg/tree"
)

// DefaultCacheSize is the default maximum number of compiled patterns
// kept in a Cache.
const DefaultCacheSize = 256

// Cache memoizes compiled predicates by pattern string. Compilation is
// pure, so caching is transparent; it only saves re-parsing hot
// patterns. Entries are bounded with least-recently-used eviction so a
// long-lived server cannot accumulate every pattern it ever saw.
type Cache struct {
	table      *Table
	mu         sync.Mutex
	entries    map[string]*cacheEntry
	head       *cacheEntry // Most recently used.
	tail       *cacheEntry // Least recently used.
	maxEntries int

	hits   atomic.Int64
	misses atomic.Int64
}

// cacheEntry is a doubly-linked list node for LRU tracking.
type cacheEntry struct {
	pattern string
	pred    tree.Predicate
	prev    *cacheEntry
	next    *cacheEntry
}

// NewCache creates a predicate cache over the given alias table,
// bounded at DefaultCacheSize entries. A nil table means the built-in
// table.
func NewCache(table *Table) *Cache {
	return NewCacheSize(table, DefaultCacheSize)
}

// NewCacheSize creates a predicate cache bounded at maxEntries.
// Non-positive sizes fall back to DefaultCacheSize.
func NewCacheSize(table *Table, maxEntries int) *Cache {
	if table == nil {
		table = DefaultTable()
	}

	if maxEntries <= 0 {
		maxEntries = DefaultCacheSize
	}

	return &Cache{
		table:      table,
		entries:    make(map[string]*cacheEntry),
		maxEntries: maxEntries,
	}
}

// Predicate returns the compiled predicate for pattern, compiling and
// caching it on first use.
func (c *Cache) Predicate(pattern string) tree.Predicate {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[pattern]; ok {
		c.hits.Add(1)
		c.moveToFront(entry)

		return entry.pred
	}

	c.misses.Add(1)

	compiled := CompilePattern(pattern, c.table)

	for len(c.entries) >= c.maxEntries && c.tail != nil {
		c.evictTail()
	}

	entry := &cacheEntry{pattern: pattern, pred: compiled}
	c.entries[pattern] = entry
	c.addToFront(entry)

	return compiled
}

// Stats returns the number of cache hits and misses.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Len returns the number of cached patterns.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

func (c *Cache) moveToFront(entry *cacheEntry) {
	if entry == c.head {
		return
	}

	c.removeFromList(entry)
	c.addToFront(entry)
}

func (c *Cache) addToFront(entry *cacheEntry) {
	entry.prev = nil
	entry.next = c.head

	if c.head != nil {
		c.head.prev = entry
	}

	c.head = entry

	if c.tail == nil {
		c.tail = entry
	}
}

func (c *Cache) removeFromList(entry *cacheEntry) {
	if entry.prev != nil {
		entry.prev.next = entry.next
	} else {
		c.head = entry.next
	}

	if entry.next != nil {
		entry.next.prev = entry.prev
	} else {
		c.tail = entry.prev
	}
}

// evictTail removes the least recently used entry.
func (c *Cache) evictTail() {
	victim := c.tail
	if victim == nil {
		return
	}

	c.removeFromList(victim)
	delete(c.entries, victim.pattern)
}
