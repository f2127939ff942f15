package regx

import (
	"sync"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGet(t *testing.T) {
	c := NewCache(cache.NoExpiration, DefaultConfig())

	a, err := c.Get(`\d+`, "")
	require.NoError(t, err)
	b, err := c.Get(`\d+`, "")
	require.NoError(t, err)
	assert.Same(t, a, b)

	// Options are part of the key.
	x, err := c.Get(`\d+`, "X")
	require.NoError(t, err)
	assert.NotSame(t, a, x)
	assert.Equal(t, 2, c.Len())

	c.Flush()
	assert.Equal(t, 0, c.Len())
	d, err := c.Get(`\d+`, "")
	require.NoError(t, err)
	assert.NotSame(t, a, d)
}

func TestCacheErrorsNotCached(t *testing.T) {
	c := NewCache(time.Minute, DefaultConfig())

	_, err := c.Get(`(`, "")
	assert.ErrorIs(t, err, ErrPatternSyntax)
	_, err = c.Get(`a`, "Z")
	assert.ErrorIs(t, err, ErrPatternSyntax)
	assert.Equal(t, 0, c.Len())

	assert.Panics(t, func() { c.MustGet(`[`, "") })
}

func TestCacheConcurrentGet(t *testing.T) {
	c := NewCache(time.Minute, DefaultConfig())
	patterns := []string{`\w+@\w+`, `(a|b)*c`, `\p{IsGreek}+`, `[0-9]{3}-[0-9]{4}`}

	const workers = 16
	results := make([][]*Regex, workers)
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, p := range patterns {
				re, err := c.Get(p, "")
				if !assert.NoError(t, err) {
					return
				}
				results[w] = append(results[w], re)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, len(patterns), c.Len())
	for w := 1; w < workers; w++ {
		require.Len(t, results[w], len(patterns))
		for i := range patterns {
			assert.Same(t, results[0][i], results[w][i])
		}
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(20*time.Millisecond, DefaultConfig())
	a := c.MustGet(`abc`, "")
	time.Sleep(50 * time.Millisecond)
	b := c.MustGet(`abc`, "")
	assert.NotSame(t, a, b)
}
