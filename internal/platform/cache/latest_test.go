package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLatest_Empty(t *testing.T) {
	t.Parallel()

	l := NewLatest[string]()
	v, ok := l.Load()

	assert.False(t, ok)
	assert.Equal(t, "", v)
}

func TestLatest_StoreReplaces(t *testing.T) {
	t.Parallel()

	l := NewLatest[*int]()
	a, b := 1, 2

	l.Store(&a)
	l.Store(&b)

	v, ok := l.Load()
	assert.True(t, ok)
	assert.Equal(t, 2, *v)
}

func TestLatest_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	l := NewLatest[int]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			l.Store(n)
		}(i)
		go func() {
			defer wg.Done()
			_, _ = l.Load()
		}()
	}
	wg.Wait()

	v, ok := l.Load()
	assert.True(t, ok)
	assert.GreaterOrEqual(t, v, 0)
	assert.Less(t, v, 50)
}
