package glyphcache

import (
	"math/rand/v2"
	"sync"
	"testing"
)

// box returns a w x h glyph for ch with full coverage.
func box(ch rune, w, h int) Glyph {
	cov := make([]byte, w*h)
	for i := range cov {
		cov[i] = 0xFF
	}
	return Glyph{Char: ch, Width: w, Height: h, Advance: w, Coverage: cov}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Capacity != DefaultCapacity {
		t.Errorf("Capacity = %d, want %d", cfg.Capacity, DefaultCapacity)
	}
	c := New(Config{})
	if c.Capacity() != DefaultCapacity {
		t.Errorf("zero Capacity should default to %d, got %d", DefaultCapacity, c.Capacity())
	}
}

func TestGlyphFootprint(t *testing.T) {
	g := box('A', 10, 12)
	if got := g.Footprint(); got != HeaderSize+120 {
		t.Errorf("Footprint() = %d, want %d", got, HeaderSize+120)
	}
	if g.At(3, 4) != 0xFF || g.At(-1, 0) != 0 || g.At(10, 0) != 0 {
		t.Error("At() returned unexpected coverage")
	}
}

func TestCache_PutGet(t *testing.T) {
	c := New(DefaultConfig())
	l := c.NewLocal()

	if _, ok := c.Get(l, 'A', 0); ok {
		t.Fatal("Get before Put should miss")
	}
	if !c.Put(l, box('A', 8, 8)) {
		t.Fatal("Put should cache a small glyph")
	}
	g, ok := c.Get(l, 'A', 0)
	if !ok {
		t.Fatal("Get after Put should hit")
	}
	if g.Width != 8 || g.Char != 'A' {
		t.Errorf("Get returned %+v", g)
	}
	if _, ok := c.Get(l, 'A', 1); ok {
		t.Error("a different phase must be a different entry")
	}

	s := c.Stats()
	if s.Hits != 1 || s.Misses != 2 || s.Insertions != 1 || s.Items != 1 {
		t.Errorf("Stats() = %+v", s)
	}
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestCache_PutReplaces(t *testing.T) {
	c := New(DefaultConfig())
	l := c.NewLocal()

	c.Put(l, box('x', 4, 4))
	c.Put(l, box('x', 6, 6))

	if c.Len() != 1 || c.LocalLen(l) != 1 {
		t.Errorf("Len() = %d, LocalLen() = %d, want 1, 1", c.Len(), c.LocalLen(l))
	}
	if c.Bytes() != HeaderSize+36 {
		t.Errorf("Bytes() = %d, want %d", c.Bytes(), HeaderSize+36)
	}
	if g, _ := c.Get(l, 'x', 0); g.Width != 6 {
		t.Errorf("Get returned width %d, want 6", g.Width)
	}
}

func TestCache_LocalsAreIndependent(t *testing.T) {
	c := New(DefaultConfig())
	a, b := c.NewLocal(), c.NewLocal()
	if a.ID() == b.ID() {
		t.Fatal("locals must get distinct IDs")
	}

	c.Put(a, box('q', 2, 2))
	if _, ok := c.Get(b, 'q', 0); ok {
		t.Error("glyph of font a must not be visible through font b")
	}
}

func TestCache_OversizedGlyphNotCached(t *testing.T) {
	c := New(Config{Capacity: 100})
	l := c.NewLocal()

	if c.Put(l, box('W', 20, 20)) {
		t.Error("Put of a glyph larger than capacity should report false")
	}
	if c.Len() != 0 || c.Bytes() != 0 {
		t.Errorf("oversized glyph changed the cache: len=%d bytes=%d", c.Len(), c.Bytes())
	}
	if s := c.Stats(); s.Rejected != 1 {
		t.Errorf("Rejected = %d, want 1", s.Rejected)
	}
}

func TestCache_EvictsColdestOnFifthInsert(t *testing.T) {
	g := box('a', 10, 10)
	c := New(Config{Capacity: 4 * g.Footprint()})
	l := c.NewLocal()

	chars := []rune{'a', 'b', 'c', 'd', 'e'}
	for i, ch := range chars[:4] {
		c.Put(l, box(ch, 10, 10))
		if c.Len() != i+1 {
			t.Fatalf("after %d inserts Len() = %d", i+1, c.Len())
		}
	}
	if s := c.Stats(); s.Evictions != 0 {
		t.Fatalf("no eviction expected before the 5th insert, got %d", s.Evictions)
	}

	c.Put(l, box('e', 10, 10))

	if s := c.Stats(); s.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", s.Evictions)
	}
	if _, ok := c.Get(l, 'a', 0); ok {
		t.Error("coldest glyph 'a' should have been evicted")
	}
	if c.LocalLen(l) != 4 {
		t.Errorf("LocalLen() = %d, want 4 (evicted item removed from its chain)", c.LocalLen(l))
	}
	for _, ch := range chars[1:] {
		if _, ok := c.Get(l, ch, 0); !ok {
			t.Errorf("glyph %q should be resident", ch)
		}
	}
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestCache_GetRefreshesRecency(t *testing.T) {
	g := box('a', 10, 10)
	c := New(Config{Capacity: 3 * g.Footprint()})
	l := c.NewLocal()

	c.Put(l, box('a', 10, 10))
	c.Put(l, box('b', 10, 10))
	c.Put(l, box('c', 10, 10))
	c.Get(l, 'a', 0) // 'b' becomes the coldest
	c.Put(l, box('d', 10, 10))

	if _, ok := c.Get(l, 'b', 0); ok {
		t.Error("'b' should have been evicted")
	}
	if _, ok := c.Get(l, 'a', 0); !ok {
		t.Error("'a' was refreshed and should be resident")
	}
}

func TestCache_EvictionCascadesAcrossFonts(t *testing.T) {
	g := box('a', 10, 10)
	c := New(Config{Capacity: 2 * g.Footprint()})
	f1, f2 := c.NewLocal(), c.NewLocal()

	c.Put(f1, box('a', 10, 10))
	c.Put(f2, box('b', 10, 10))
	c.Put(f2, box('c', 10, 10))

	if c.LocalLen(f1) != 0 {
		t.Errorf("font 1 chain should have been pruned, LocalLen = %d", c.LocalLen(f1))
	}
	if c.LocalLen(f2) != 2 {
		t.Errorf("font 2 LocalLen = %d, want 2", c.LocalLen(f2))
	}
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestCache_ClearLocal(t *testing.T) {
	c := New(DefaultConfig())
	f1, f2 := c.NewLocal(), c.NewLocal()

	for _, ch := range "abc" {
		c.Put(f1, box(ch, 5, 5))
	}
	for _, ch := range "xy" {
		c.Put(f2, box(ch, 7, 7))
	}

	c.ClearLocal(f1)

	if c.LocalLen(f1) != 0 {
		t.Errorf("LocalLen(f1) = %d, want 0", c.LocalLen(f1))
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if want := 2 * (HeaderSize + 49); c.Bytes() != want {
		t.Errorf("Bytes() = %d, want %d", c.Bytes(), want)
	}
	for _, ch := range "xy" {
		if _, ok := c.Get(f2, ch, 0); !ok {
			t.Errorf("font 2 glyph %q should survive", ch)
		}
	}
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestCache_Clear(t *testing.T) {
	c := New(DefaultConfig())
	f1, f2 := c.NewLocal(), c.NewLocal()
	c.Put(f1, box('a', 3, 3))
	c.Put(f2, box('b', 3, 3))

	c.Clear()

	if c.Len() != 0 || c.Bytes() != 0 {
		t.Errorf("after Clear Len=%d Bytes=%d", c.Len(), c.Bytes())
	}
	if c.LocalLen(f1) != 0 || c.LocalLen(f2) != 0 {
		t.Error("Clear must empty every local chain")
	}
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}

	// The cache stays usable.
	c.Put(f1, box('z', 3, 3))
	if _, ok := c.Get(f1, 'z', 0); !ok {
		t.Error("Put after Clear should be retrievable")
	}
}

func TestCache_ReleaseLocal(t *testing.T) {
	c := New(DefaultConfig())
	l := c.NewLocal()
	c.Put(l, box('a', 3, 3))
	c.ReleaseLocal(l)
	if c.Len() != 0 {
		t.Errorf("Len() = %d after ReleaseLocal, want 0", c.Len())
	}
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestCache_ForeignLocalPanics(t *testing.T) {
	tests := []struct {
		name string
		op   func(c *Cache, l *Local)
	}{
		{"Put", func(c *Cache, l *Local) { c.Put(l, box('a', 1, 1)) }},
		{"Get", func(c *Cache, l *Local) { c.Get(l, 'a', 0) }},
		{"ClearLocal", func(c *Cache, l *Local) { c.ClearLocal(l) }},
		{"ReleaseLocal", func(c *Cache, l *Local) { c.ReleaseLocal(l) }},
		{"LocalLen", func(c *Cache, l *Local) { c.LocalLen(l) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := New(DefaultConfig()), New(DefaultConfig())
			l := a.NewLocal()
			a.Put(l, box('a', 1, 1))
			mine := b.NewLocal()
			b.Put(mine, box('b', 1, 1))

			func() {
				defer func() {
					if recover() == nil {
						t.Errorf("%s with another cache's local index should panic", tt.name)
					}
				}()
				tt.op(b, l)
			}()

			if b.Len() != 1 || b.LocalLen(mine) != 1 || a.LocalLen(l) != 1 {
				t.Errorf("caches changed: b.Len %d, b local %d, a local %d", b.Len(), b.LocalLen(mine), a.LocalLen(l))
			}
			if err := b.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestCache_RandomOperationsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	c := New(Config{Capacity: 4096})
	locals := []*Local{c.NewLocal(), c.NewLocal(), c.NewLocal()}

	for i := 0; i < 5000; i++ {
		l := locals[rng.IntN(len(locals))]
		ch := rune('a' + rng.IntN(26))
		switch op := rng.IntN(10); {
		case op < 5:
			c.Put(l, box(ch, 1+rng.IntN(20), 1+rng.IntN(20)))
		case op < 9:
			c.Get(l, ch, Phase(rng.IntN(2)))
		case op == 9 && rng.IntN(20) == 0:
			c.ClearLocal(l)
		}
		if c.Bytes() > c.Capacity() {
			t.Fatalf("step %d: Bytes() = %d exceeds capacity %d", i, c.Bytes(), c.Capacity())
		}
		if i%97 == 0 {
			if err := c.Validate(); err != nil {
				t.Fatalf("step %d: %v", i, err)
			}
		}
	}
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New(Config{Capacity: 8192})
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		l := c.NewLocal()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				ch := rune('a' + i%26)
				if _, ok := c.Get(l, ch, 0); !ok {
					c.Put(l, box(ch, 8, 8))
				}
			}
		}()
	}
	wg.Wait()
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
}

func BenchmarkCacheGetHit(b *testing.B) {
	c := New(DefaultConfig())
	l := c.NewLocal()
	for ch := 'a'; ch <= 'z'; ch++ {
		c.Put(l, box(ch, 12, 12))
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(l, 'm', 0)
	}
}

func BenchmarkCachePutEvict(b *testing.B) {
	c := New(Config{Capacity: 64 * (HeaderSize + 144)})
	l := c.NewLocal()
	g := box('a', 12, 12)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Char = rune(i % 1024)
		c.Put(l, g)
	}
}
