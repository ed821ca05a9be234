package helpers

import (
	"fmt"
	"sync"
	"sync/atomic"
)

type PoolStats struct {
	Creates  int64
	Releases int64
	Hits     int64
}

func (s PoolStats) String() string {
	return fmt.Sprint("creates: ", s.Creates, ", releases: ", s.Releases, ", hits: ", s.Hits)
}

const _poolCapacity = 256

// CreatePool returns get/release/stats closures over a bounded ring of
// reusable values. Released values beyond the capacity are dropped.
func CreatePool[T any](create func() T, reset func(*T)) (func() *T, func(*T), func() PoolStats) {
	available := [_poolCapacity]*T{}
	start := 0
	size := 0

	lock := sync.Mutex{}

	var creates, releases, hits atomic.Int64

	get := func() *T {
		lock.Lock()
		if size > 0 {
			result := available[start]
			available[start] = nil
			start = (start + 1) % _poolCapacity
			size--
			lock.Unlock()

			hits.Add(1)
			return result
		}
		lock.Unlock()

		creates.Add(1)
		result := create()
		return &result
	}

	release := func(t *T) {
		releases.Add(1)
		reset(t)

		lock.Lock()
		defer lock.Unlock()
		if size < _poolCapacity {
			available[(start+size)%_poolCapacity] = t
			size++
		}
	}

	stats := func() PoolStats {
		return PoolStats{creates.Load(), releases.Load(), hits.Load()}
	}

	return get, release, stats
}
