package lru

import (
	"container/list"
	"sync"
)

type lruShard struct {
	mu         sync.RWMutex
	lmu        sync.Mutex
	totalBytes uint64
	elemsCount int64
	maxBytes   uint64
	evictList  *list.List
	elems      map[uint64]*list.Element
	onEvict    OnEvict
}

func newLruShard(maxBytes uint64, onEvict OnEvict) *lruShard {
	return &lruShard{
		maxBytes:  maxBytes,
		evictList: list.New(),
		elems:     make(map[uint64]*list.Element),
		onEvict:   onEvict,
	}
}

type entry struct {
	key   uint64
	value []byte
}

func (ls *lruShard) get(key uint64) ([]byte, bool) {
	ls.mu.RLock()
	defer ls.mu.RUnlock()

	if elem, ok := ls.elems[key]; ok {
		ls.lmu.Lock()
		ls.evictList.MoveToFront(elem)
		ls.lmu.Unlock()
		return elem.Value.(*entry).value, true
	}

	return nil, false
}

// add stores value under key and reports how many entries were evicted to
// make room. Values larger than the shard budget are not stored at all.
func (ls *lruShard) add(key uint64, value []byte) (stored bool, evicted int) {
	size := uint64(len(value))
	if size > ls.maxBytes {
		return false, 0
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	// replacing an entry frees its bytes first
	if elem, ok := ls.elems[key]; ok {
		ls.removeElementUnderLock(elem)
	}

	for ls.totalBytes+size > ls.maxBytes {
		evictedKey, evictedValue, ok := ls.removeOldestUnderLock()
		if !ok {
			break
		}
		evicted++
		if ls.onEvict != nil {
			ls.onEvict(evictedKey, evictedValue)
		}
	}

	ls.lmu.Lock()
	elem := ls.evictList.PushFront(&entry{
		key:   key,
		value: value,
	})
	ls.lmu.Unlock()

	ls.totalBytes += size
	ls.elemsCount++
	ls.elems[key] = elem

	return true, evicted
}

func (ls *lruShard) purge() {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	for k := range ls.elems {
		delete(ls.elems, k)
	}

	ls.totalBytes = 0
	ls.elemsCount = 0

	ls.lmu.Lock()
	ls.evictList.Init()
	ls.lmu.Unlock()
}

func (ls *lruShard) remove(key uint64) ([]byte, bool) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	elem, ok := ls.elems[key]
	if !ok {
		return nil, false
	}

	_, value := ls.removeElementUnderLock(elem)
	return value, true
}

func (ls *lruShard) removeOldestUnderLock() (uint64, []byte, bool) {
	ls.lmu.Lock()
	elem := ls.evictList.Back()
	ls.lmu.Unlock()

	if elem == nil {
		return 0, nil, false
	}

	k, v := ls.removeElementUnderLock(elem)
	return k, v, true
}

func (ls *lruShard) removeElementUnderLock(elem *list.Element) (uint64, []byte) {
	ls.lmu.Lock()
	ls.evictList.Remove(elem)
	ls.lmu.Unlock()

	kv := elem.Value.(*entry)
	delete(ls.elems, kv.key)
	ls.totalBytes -= uint64(len(kv.value))
	ls.elemsCount--
	return kv.key, kv.value
}

func (ls *lruShard) count() int64 {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	return ls.elemsCount
}

func (ls *lruShard) bytes() uint64 {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	return ls.totalBytes
}
