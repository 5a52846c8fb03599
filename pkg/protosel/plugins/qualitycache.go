// Package plugins holds concrete protosel.Protocol implementations: one
// per link kind the demo node can select between. Each plugin's Init
// takes a short round-trip measurement (or none, for mem) and converts
// it into a protosel.ProtoCaps cost model.
package plugins

import (
	"container/heap"
	"hash/fnv"
	"sync"
	"time"

	"github.com/HiC4Sh1e/ucx/pkg/transport"
)

const qualityShardCount = 32

// qualityShard is one bucket of the cache: its own mutex and map, so
// concurrent probes against different targets don't contend.
type qualityShard struct {
	mu sync.RWMutex
	m  map[string]qualityEntry
}

type qualityEntry struct {
	value    transport.Quality
	expireAt int64 // unix nano; 0 = no expiry
}

// QualityCache holds the most recently measured Quality per probe
// target, so a plugin's Init does not re-dial on every selection
// lookup. It is a sharded map (FNV-1a over the target string picks the
// shard) with a background expiry sweep driven by a min-heap: the same
// two ideas urands-ttmesh's memkv.Store used for its general byte-slice
// store, reshaped around this cache's one job. Entries are
// transport.Quality values held directly, not []byte blobs a caller
// JSON-encodes and copies on every read, and there is no
// GETDEL/UPDATE/TTL-introspection surface, because nothing here ever
// needs one.
type QualityCache struct {
	shards [qualityShardCount]*qualityShard
	ttl    time.Duration

	expMu sync.Mutex
	expq  expiryQueue

	wake      chan struct{}
	closeCh   chan struct{}
	closeOnce sync.Once
}

// NewQualityCache returns a cache whose entries expire after ttl. A
// non-positive ttl disables expiry (entries live until overwritten or
// the cache is closed).
func NewQualityCache(ttl time.Duration) *QualityCache {
	c := &QualityCache{
		ttl:     ttl,
		wake:    make(chan struct{}, 1),
		closeCh: make(chan struct{}),
	}
	for i := range c.shards {
		c.shards[i] = &qualityShard{m: make(map[string]qualityEntry)}
	}
	go c.expirer()
	return c
}

func (c *QualityCache) shardFor(target string) *qualityShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(target))
	return c.shards[h.Sum32()%qualityShardCount]
}

// SetQuality records a measurement for target.
func (c *QualityCache) SetQuality(target string, q transport.Quality) {
	var expireAt int64
	if c.ttl > 0 {
		expireAt = time.Now().Add(c.ttl).UnixNano()
	}

	sh := c.shardFor(target)
	sh.mu.Lock()
	sh.m[target] = qualityEntry{value: q, expireAt: expireAt}
	sh.mu.Unlock()

	if expireAt == 0 {
		return
	}
	c.expMu.Lock()
	heap.Push(&c.expq, expiryItem{target: target, expireAt: expireAt})
	c.expMu.Unlock()
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// GetQuality returns the last measurement for target, if one is cached
// and not expired. Expiry is also checked here rather than relying
// solely on the background sweep, so a slow sweep tick never serves a
// stale reading.
func (c *QualityCache) GetQuality(target string) (transport.Quality, bool) {
	sh := c.shardFor(target)
	sh.mu.RLock()
	e, ok := sh.m[target]
	sh.mu.RUnlock()
	if !ok {
		return transport.Quality{}, false
	}
	if e.expireAt != 0 && time.Now().UnixNano() >= e.expireAt {
		return transport.Quality{}, false
	}
	return e.value, true
}

// Close stops the background expiry sweep. Safe to call more than once.
func (c *QualityCache) Close() {
	c.closeOnce.Do(func() { close(c.closeCh) })
}

func (c *QualityCache) expirer() {
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()
	for {
		c.expMu.Lock()
		wait := time.Hour
		if c.expq.Len() > 0 {
			if d := time.Until(time.Unix(0, c.expq[0].expireAt)); d > 0 {
				wait = d
			} else {
				wait = 0
			}
		}
		c.expMu.Unlock()
		timer.Reset(wait)

		select {
		case <-c.closeCh:
			return
		case <-c.wake:
			continue
		case <-timer.C:
			c.sweep()
		}
	}
}

func (c *QualityCache) sweep() {
	now := time.Now().UnixNano()
	c.expMu.Lock()
	defer c.expMu.Unlock()
	for c.expq.Len() > 0 && c.expq[0].expireAt <= now {
		item := heap.Pop(&c.expq).(expiryItem)
		sh := c.shardFor(item.target)
		sh.mu.Lock()
		if e, ok := sh.m[item.target]; ok && e.expireAt == item.expireAt {
			delete(sh.m, item.target)
		}
		sh.mu.Unlock()
	}
}

// expiryItem/expiryQueue is a min-heap over expireAt, so the sweep
// always pops whichever entry is due next.
type expiryItem struct {
	target   string
	expireAt int64
}

type expiryQueue []expiryItem

func (q expiryQueue) Len() int           { return len(q) }
func (q expiryQueue) Less(i, j int) bool { return q[i].expireAt < q[j].expireAt }
func (q expiryQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *expiryQueue) Push(x any) { *q = append(*q, x.(expiryItem)) }

func (q *expiryQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
