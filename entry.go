package scmboard

import (
	"github.com/tidwall/btree"
)

const castPanic = "how could dataset item not be of type *entry"

type entry struct {
	seq    uint64
	record Record
}

func byInsertionOrder(a, b interface{}) bool {
	i1, i2 := a.(*entry), b.(*entry)
	return i1.seq < i2.seq
}

func newEntryTree() *btree.BTree {
	return btree.NewNonConcurrent(byInsertionOrder)
}

func mustEntry(item interface{}) *entry {
	ent, ok := item.(*entry)
	if !ok {
		panic(castPanic)
	}
	return ent
}
