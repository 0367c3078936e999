// Package cache provides a generic bounded LRU cache.
//
// It backs the small lookup tables of textflow: the face table of the
// font registry and the per-word hyphenation point cache.
//
//	c := cache.New[string, int](100)
//	c.Set("key", 42)
//	value, ok := c.Get("key")
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
