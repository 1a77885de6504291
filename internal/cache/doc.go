// Package cache provides the bounded LRU cache used to memoize surface
// layouts.
//
// Layout computation is a pure function of its key, so a cached value is
// always identical to a freshly computed one; the cache only saves work for
// resources that are created or resized repeatedly with the same shape.
//
//	c := cache.New[tiler.Shape, tiler.Layout](256)
//	c.Set(shape, layout)
//	l, ok := c.Get(shape)
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
