package glyphcache

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// nilIndex terminates both the global list and local chains.
const nilIndex int32 = -1

// DefaultCapacity is the default global byte budget.
const DefaultCapacity = 2 << 20

// Config holds configuration for Cache.
type Config struct {
	// Capacity is the global byte budget shared by all fonts.
	// Default: DefaultCapacity
	Capacity int

	// Logger receives eviction and rejection diagnostics. Nil is silent.
	Logger *slog.Logger
}

// DefaultConfig returns the default cache configuration.
func DefaultConfig() Config {
	return Config{Capacity: DefaultCapacity}
}

// item is one arena slot. A live item is linked into the global list and
// into exactly one local chain; a free slot is on the free list.
type item struct {
	glyph Glyph
	size  int

	// global list links (recency order)
	gPrev, gNext int32
	// local chain links (unordered)
	lPrev, lNext int32

	owner *Local
	live  bool
}

// Local is the per-font index of resident glyphs.
// It is created by Cache.NewLocal and is only valid with that cache.
type Local struct {
	cache *Cache
	id    uint32
	head  int32
	count int
}

// ID returns the identifier the cache assigned to this local index.
func (l *Local) ID() uint32 {
	return l.id
}

// Stats holds cache statistics.
type Stats struct {
	Hits       uint64
	Misses     uint64
	Insertions uint64
	Evictions  uint64
	// Rejected counts glyphs too large to be cached at all.
	Rejected uint64

	Items    int
	Bytes    int
	Capacity int
}

// Cache is a byte-budgeted LRU of glyph bitmaps with per-font local chains.
//
// Cache is safe for concurrent use: one mutex serializes every operation,
// so an item is never observable in one structure but not the other.
type Cache struct {
	mu sync.Mutex

	items []item
	free  []int32

	head, tail int32
	count      int
	bytes      int
	capacity   int

	locals  map[uint32]*Local
	nextID  uint32
	logger  *slog.Logger
	counter struct {
		hits, misses, insertions, evictions, rejected atomic.Uint64
	}
}

// New creates a glyph cache with the given configuration.
func New(cfg Config) *Cache {
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Cache{
		head:     nilIndex,
		tail:     nilIndex,
		capacity: cfg.Capacity,
		locals:   make(map[uint32]*Local),
		logger:   logger,
	}
}

// NewLocal creates an empty local index for one font instance.
func (c *Cache) NewLocal() *Local {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	l := &Local{cache: c, id: c.nextID, head: nilIndex}
	c.locals[l.id] = l
	return l
}

// ReleaseLocal clears l and forgets it. l must not be used afterwards.
func (c *Cache) ReleaseLocal(l *Local) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.own(l)
	c.clearLocalLocked(l)
	delete(c.locals, l.id)
}

// Get looks up the glyph for ch at phase in the local chain of l.
// A hit moves the item to the head of the global list.
func (c *Cache) Get(l *Local, ch rune, phase Phase) (Glyph, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.own(l)
	idx := c.findLocked(l, ch, phase)
	if idx == nilIndex {
		c.counter.misses.Add(1)
		return Glyph{}, false
	}
	c.counter.hits.Add(1)
	c.moveToFront(idx)
	return c.items[idx].glyph, true
}

// Put inserts a freshly rasterized glyph for the font owning l.
// It reports false if the glyph alone exceeds the cache capacity; such a
// glyph is not cached and must be rasterized again on every request.
func (c *Cache) Put(l *Local, g Glyph) bool {
	size := g.Footprint()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.own(l)
	if size > c.capacity {
		c.counter.rejected.Add(1)
		c.logger.Warn("glyphcache: glyph larger than cache capacity",
			"char", string(g.Char), "bytes", size, "capacity", c.capacity)
		return false
	}

	if old := c.findLocked(l, g.Char, g.Phase); old != nilIndex {
		c.removeLocked(old)
	}

	idx := c.alloc()
	it := &c.items[idx]
	it.glyph = g
	it.size = size
	it.owner = l
	it.live = true

	c.linkLocal(l, idx)
	c.linkGlobal(idx)
	c.count++
	c.bytes += size
	c.counter.insertions.Add(1)

	for c.bytes > c.capacity && c.tail != nilIndex {
		victim := c.tail
		c.logger.Debug("glyphcache: evict",
			"char", string(c.items[victim].glyph.Char),
			"font", c.items[victim].owner.id,
			"bytes", c.items[victim].size)
		c.removeLocked(victim)
		c.counter.evictions.Add(1)
	}
	return true
}

// ClearLocal removes every glyph of one font from both structures.
func (c *Cache) ClearLocal(l *Local) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.own(l)
	c.clearLocalLocked(l)
}

// Clear empties the global list and every local chain.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for idx := c.head; idx != nilIndex; {
		next := c.items[idx].gNext
		owner := c.items[idx].owner
		owner.head = nilIndex
		owner.count = 0
		c.items[idx] = item{}
		idx = next
	}
	c.items = c.items[:0]
	c.free = c.free[:0]
	c.head, c.tail = nilIndex, nilIndex
	c.count = 0
	c.bytes = 0
}

// Len returns the number of resident glyphs.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Bytes returns the total footprint of resident glyphs.
func (c *Cache) Bytes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bytes
}

// Capacity returns the global byte budget.
func (c *Cache) Capacity() int {
	return c.capacity
}

// LocalLen returns the number of resident glyphs of one font.
func (c *Cache) LocalLen(l *Local) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.own(l)
	return l.count
}

// Stats returns cache statistics.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	items, bytes := c.count, c.bytes
	c.mu.Unlock()

	return Stats{
		Hits:       c.counter.hits.Load(),
		Misses:     c.counter.misses.Load(),
		Insertions: c.counter.insertions.Load(),
		Evictions:  c.counter.evictions.Load(),
		Rejected:   c.counter.rejected.Load(),
		Items:      items,
		Bytes:      bytes,
		Capacity:   c.capacity,
	}
}

func (c *Cache) own(l *Local) {
	if l == nil || l.cache != c {
		panic("glyphcache: local index does not belong to this cache")
	}
}

// findLocked scans the local chain. Chains stay small (tens of glyphs per
// font), so the scan is linear.
func (c *Cache) findLocked(l *Local, ch rune, phase Phase) int32 {
	for idx := l.head; idx != nilIndex; idx = c.items[idx].lNext {
		g := &c.items[idx].glyph
		if g.Char == ch && g.Phase == phase {
			return idx
		}
	}
	return nilIndex
}

func (c *Cache) clearLocalLocked(l *Local) {
	for idx := l.head; idx != nilIndex; {
		next := c.items[idx].lNext
		c.unlinkGlobal(idx)
		c.bytes -= c.items[idx].size
		c.count--
		c.release(idx)
		idx = next
	}
	l.head = nilIndex
	l.count = 0
}

// removeLocked unlinks idx from its local chain and the global list,
// subtracts its footprint and frees the slot.
func (c *Cache) removeLocked(idx int32) {
	c.unlinkLocal(idx)
	c.unlinkGlobal(idx)
	c.bytes -= c.items[idx].size
	c.count--
	c.release(idx)
}

func (c *Cache) alloc() int32 {
	if n := len(c.free); n > 0 {
		idx := c.free[n-1]
		c.free = c.free[:n-1]
		return idx
	}
	c.items = append(c.items, item{})
	return int32(len(c.items) - 1) //nolint:gosec // arena is far below 2^31 items
}

func (c *Cache) release(idx int32) {
	c.items[idx] = item{}
	c.free = append(c.free, idx)
}

func (c *Cache) linkGlobal(idx int32) {
	it := &c.items[idx]
	it.gPrev = nilIndex
	it.gNext = c.head
	if c.head != nilIndex {
		c.items[c.head].gPrev = idx
	}
	c.head = idx
	if c.tail == nilIndex {
		c.tail = idx
	}
}

func (c *Cache) unlinkGlobal(idx int32) {
	it := &c.items[idx]
	if it.gPrev != nilIndex {
		c.items[it.gPrev].gNext = it.gNext
	} else {
		c.head = it.gNext
	}
	if it.gNext != nilIndex {
		c.items[it.gNext].gPrev = it.gPrev
	} else {
		c.tail = it.gPrev
	}
	it.gPrev, it.gNext = nilIndex, nilIndex
}

func (c *Cache) moveToFront(idx int32) {
	if idx == c.head {
		return
	}
	c.unlinkGlobal(idx)
	c.linkGlobal(idx)
}

func (c *Cache) linkLocal(l *Local, idx int32) {
	it := &c.items[idx]
	it.lPrev = nilIndex
	it.lNext = l.head
	if l.head != nilIndex {
		c.items[l.head].lPrev = idx
	}
	l.head = idx
	l.count++
}

func (c *Cache) unlinkLocal(idx int32) {
	it := &c.items[idx]
	l := it.owner
	if it.lPrev != nilIndex {
		c.items[it.lPrev].lNext = it.lNext
	} else {
		l.head = it.lNext
	}
	if it.lNext != nilIndex {
		c.items[it.lNext].lPrev = it.lPrev
	}
	it.lPrev, it.lNext = nilIndex, nilIndex
	l.count--
}
