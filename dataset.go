package scmboard

import (
	"github.com/pkg/errors"
	"github.com/tidwall/btree"
)

var ErrDatasetNotFound = errors.New("dataset not found")
var ErrItemNotFound = errors.New("item not found")

const (
	Inventory  = "inventory"
	Suppliers  = "suppliers"
	Revenue    = "revenue"
	Orders     = "orders"
	Employees  = "employees"
	Warehouses = "warehouses"
	Expenses   = "expenses"
)

// Datasets lists the recognized dataset names in canonical order.
var Datasets = []string{Inventory, Suppliers, Revenue, Orders, Employees, Warehouses, Expenses}

func IsDataset(name string) bool {
	for _, n := range Datasets {
		if n == name {
			return true
		}
	}
	return false
}

// dataset keeps its records in a btree ordered by insertion sequence, so
// appends land at the end and a removed entry can be put back where it was.
type dataset struct {
	name     string
	entries  *btree.BTree
	nextSeq  uint64
	maxID    int64
	revision uint64
}

func newDataset(name string) *dataset {
	return &dataset{
		name:    name,
		entries: newEntryTree(),
	}
}

func (ds *dataset) append(r Record) *entry {
	ds.nextSeq++
	ent := &entry{seq: ds.nextSeq, record: r}
	ds.entries.Set(ent)
	ds.observe(r)
	ds.revision++
	return ent
}

func (ds *dataset) observe(r Record) {
	if n, ok := numericID(r); ok && n > ds.maxID {
		ds.maxID = n
	}
}

// removeFirst drops the first record, in insertion order, whose id equals id.
func (ds *dataset) removeFirst(id string) (*entry, error) {
	var found *entry

	ds.entries.Ascend(nil, func(item interface{}) bool {
		ent := mustEntry(item)
		if recID, ok := ent.record.ID(); ok && recID == id {
			found = ent
			return false
		}
		return true
	})

	if found == nil {
		return nil, errors.Wrapf(ErrItemNotFound, "id %s in dataset %s", id, ds.name)
	}

	ds.entries.Delete(found)
	ds.revision++

	return found, nil
}

func (ds *dataset) remove(ent *entry) {
	if ds.entries.Delete(ent) != nil {
		ds.revision++
	}
}

func (ds *dataset) restore(ent *entry) {
	ds.entries.Set(ent)
	ds.revision++
}

func (ds *dataset) records() []Record {
	result := make([]Record, 0, ds.entries.Len())
	ds.entries.Ascend(nil, func(item interface{}) bool {
		result = append(result, mustEntry(item).record)
		return true
	})
	return result
}

func (ds *dataset) len() int {
	return ds.entries.Len()
}
