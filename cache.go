package regx

import (
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/coregx/regx/meta"
)

// Cache shares compiled patterns between callers. Entries expire after a
// period without being stored again; concurrent compiles of the same pattern
// and options are collapsed into one. Compile errors are not cached.
//
// A Cache is safe for concurrent use.
//
// Example:
//
//	c := regx.NewCache(10*time.Minute, meta.DefaultConfig())
//	re, err := c.Get(`\d{5}`, "X")
type Cache struct {
	entries *cache.Cache
	group   singleflight.Group
	config  meta.Config
}

// NewCache creates a cache whose entries live for ttl (cache.NoExpiration
// keeps them forever). Every pattern is compiled with config.
func NewCache(ttl time.Duration, config meta.Config) *Cache {
	return &Cache{
		entries: cache.New(ttl, max(ttl, 0)),
		config:  config,
	}
}

func cacheKey(pattern, opts string) string {
	return opts + "\x00" + pattern
}

// Get returns the compiled form of pattern under opts, compiling it on a
// miss.
func (c *Cache) Get(pattern, opts string) (*Regex, error) {
	key := cacheKey(pattern, opts)
	if v, ok := c.entries.Get(key); ok {
		return v.(*Regex), nil
	}
	v, err, _ := c.group.Do(key, func() (any, error) {
		if v, ok := c.entries.Get(key); ok {
			return v, nil
		}
		re, err := CompileFlagsWithConfig(pattern, opts, c.config)
		if err != nil {
			return nil, err
		}
		c.entries.SetDefault(key, re)
		return re, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Regex), nil
}

// MustGet is like Get but panics if the pattern is invalid.
func (c *Cache) MustGet(pattern, opts string) *Regex {
	re, err := c.Get(pattern, opts)
	if err != nil {
		panic("regx: Cache.Get(`" + pattern + "`): " + err.Error())
	}
	return re
}

// Len returns the number of cached patterns, including expired ones not yet
// cleaned up.
func (c *Cache) Len() int {
	return c.entries.ItemCount()
}

// Flush removes every entry.
func (c *Cache) Flush() {
	c.entries.Flush()
}
