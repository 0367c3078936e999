package glyphcache

import "fmt"

// InvariantError reports an inconsistency between the global list and the
// local chains. It indicates a bug in the cache, never a caller error.
type InvariantError struct {
	Index  int32
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("glyphcache: invariant violated at item %d: %s", e.Index, e.Reason)
}

// Validate walks both structures and checks that every resident item is
// in exactly one local chain and appears exactly once in the global list,
// and that the byte total matches and stays within capacity.
func (c *Cache) Validate() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	inGlobal := make(map[int32]bool, c.count)
	bytes := 0
	prev := nilIndex
	for idx := c.head; idx != nilIndex; idx = c.items[idx].gNext {
		it := &c.items[idx]
		switch {
		case inGlobal[idx]:
			return &InvariantError{Index: idx, Reason: "global list contains a cycle"}
		case !it.live:
			return &InvariantError{Index: idx, Reason: "free slot linked into global list"}
		case it.gPrev != prev:
			return &InvariantError{Index: idx, Reason: "broken global back link"}
		case it.owner == nil:
			return &InvariantError{Index: idx, Reason: "item without local chain"}
		}
		inGlobal[idx] = true
		bytes += it.size
		prev = idx
	}
	if prev != c.tail {
		return &InvariantError{Index: prev, Reason: "global tail mismatch"}
	}
	if len(inGlobal) != c.count {
		return &InvariantError{Index: nilIndex, Reason: fmt.Sprintf("global list holds %d items, count is %d", len(inGlobal), c.count)}
	}
	if bytes != c.bytes {
		return &InvariantError{Index: nilIndex, Reason: fmt.Sprintf("byte total %d, recorded %d", bytes, c.bytes)}
	}
	if c.bytes > c.capacity {
		return &InvariantError{Index: nilIndex, Reason: fmt.Sprintf("byte total %d exceeds capacity %d", c.bytes, c.capacity)}
	}

	inLocal := make(map[int32]bool, c.count)
	for _, l := range c.locals {
		n := 0
		lprev := nilIndex
		for idx := l.head; idx != nilIndex; idx = c.items[idx].lNext {
			it := &c.items[idx]
			switch {
			case inLocal[idx]:
				return &InvariantError{Index: idx, Reason: "item reachable from more than one local position"}
			case !inGlobal[idx]:
				return &InvariantError{Index: idx, Reason: "local item missing from global list"}
			case it.owner != l:
				return &InvariantError{Index: idx, Reason: "item linked into a foreign local chain"}
			case it.lPrev != lprev:
				return &InvariantError{Index: idx, Reason: "broken local back link"}
			}
			inLocal[idx] = true
			lprev = idx
			n++
		}
		if n != l.count {
			return &InvariantError{Index: nilIndex, Reason: fmt.Sprintf("local %d holds %d items, count is %d", l.id, n, l.count)}
		}
	}
	for idx := range inGlobal {
		if !inLocal[idx] {
			return &InvariantError{Index: idx, Reason: "global item missing from its local chain"}
		}
	}
	return nil
}
