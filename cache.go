package re2compat

import (
	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/rs/zerolog"
)

type patternKind uint8

const (
	textPattern patternKind = iota
	bytesPattern
)

func (k patternKind) String() string {
	if k == bytesPattern {
		return "bytes"
	}
	return "text"
}

func kindOf[T Text]() patternKind {
	var zero T
	if _, ok := any(zero).([]byte); ok {
		return bytesPattern
	}
	return textPattern
}

type cacheKey struct {
	kind    patternKind
	pattern string
	flags   Flag
}

// patternCache maps keys to compiled patterns, a *Pattern[string] or a
// *Pattern[[]byte] depending on the key kind. It is not safe for concurrent
// use.
type patternCache struct {
	lru *simplelru.LRU[cacheKey, any]
}

func newPatternCache(size int, log zerolog.Logger) (*patternCache, error) {
	lru, err := simplelru.NewLRU[cacheKey, any](size, func(key cacheKey, _ any) {
		log.Debug().
			Str("pattern", key.pattern).
			Stringer("kind", key.kind).
			Msg("evicted compiled pattern")
	})
	if err != nil {
		return nil, err
	}
	return &patternCache{lru: lru}, nil
}

func getPattern[T Text](c *patternCache, key cacheKey) *Pattern[T] {
	v, ok := c.lru.Get(key)
	if !ok {
		return nil
	}
	p, _ := v.(*Pattern[T])
	return p
}

func putPattern[T Text](c *patternCache, key cacheKey, p *Pattern[T]) {
	c.lru.Add(key, p)
}

func (c *patternCache) len() int {
	return c.lru.Len()
}

func (c *patternCache) purge() {
	c.lru.Purge()
}
