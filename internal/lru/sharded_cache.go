// Package lru caches encoded response bodies. Keys are 64 bit hashes, see Key.
package lru

import (
	"encoding/binary"
	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	"sync"
)

var ErrIllegalCapacity = errors.New("illegal lru cache capacity")
var ErrInvalidSharding = errors.New("invalid sharding")

type OnEvict func(k uint64, v []byte)

type Cache interface {
	Add(key uint64, value []byte) bool
	Get(key uint64) ([]byte, bool)
	Remove(key uint64)
	Purge()
}

var _ Cache = (*ShardedCache)(nil)
var _ Cache = NullCache{}

type ShardedCache struct {
	maxBytes uint64
	capacity uint64
	shards   []*lruShard
}

func NewShardedCache(shards int, maxTotalBytes uint64, onEvict OnEvict) (*ShardedCache, error) {
	if maxTotalBytes <= 2 {
		return nil, ErrIllegalCapacity
	}

	if shards < 1 {
		return nil, ErrInvalidSharding
	}

	c := ShardedCache{
		maxBytes: maxTotalBytes,
		capacity: uint64(shards),
		shards:   make([]*lruShard, shards),
	}

	shardMaxBytes := maxTotalBytes / c.capacity
	for i := range c.shards {
		c.shards[i] = newLruShard(shardMaxBytes, onEvict)
	}

	return &c, nil
}

// Add value to cache under key and returns true if eviction happened
func (c *ShardedCache) Add(key uint64, value []byte) bool {
	_, evicted := c.getShard(key).add(key, value)
	return evicted > 0
}

func (c *ShardedCache) Get(key uint64) ([]byte, bool) {
	return c.getShard(key).get(key)
}

func (c *ShardedCache) Remove(key uint64) {
	c.getShard(key).remove(key)
}

func (c *ShardedCache) Purge() {
	var wg sync.WaitGroup

	wg.Add(len(c.shards))
	for i := range c.shards {
		go func(i int) {
			defer wg.Done()
			c.shards[i].purge()
		}(i)
	}

	wg.Wait()
}

func (c *ShardedCache) Count() int {
	var count int64
	for i := range c.shards {
		count += c.shards[i].count()
	}
	return int(count)
}

func (c *ShardedCache) Bytes() uint64 {
	var total uint64
	for i := range c.shards {
		total += c.shards[i].bytes()
	}
	return total
}

func (c *ShardedCache) getShard(key uint64) *lruShard {
	bs := make([]byte, 8)
	binary.LittleEndian.PutUint64(bs, key)
	hash := xxhash.Sum64(bs)
	return c.shards[hash%c.capacity]
}

// Key hashes parts into a cache key. Parts are separated so that
// ("ab", "c") and ("a", "bc") do not collide.
func Key(parts ...string) uint64 {
	d := xxhash.New()
	for _, p := range parts {
		_, _ = d.WriteString(p)
		_, _ = d.Write([]byte{0})
	}
	return d.Sum64()
}
