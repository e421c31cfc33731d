package scmboard

import (
	"context"
	"github.com/pkg/errors"
)

var ErrTxIsReadOnly = errors.New("transaction is read only")

type undo func()

type Tx struct {
	s        *Store
	ctx      context.Context
	readOnly bool
	undos    []undo
}

func (x *Tx) dataset(name string) (*dataset, error) {
	ds, ok := x.s.datasets[name]
	if !ok {
		return nil, errors.Wrapf(ErrDatasetNotFound, "%s", name)
	}
	return ds, nil
}

func (x *Tx) Get(name string) ([]Record, error) {
	ds, err := x.dataset(name)
	if err != nil {
		return nil, err
	}

	return ds.records(), nil
}

func (x *Tx) Len(name string) (int, error) {
	ds, err := x.dataset(name)
	if err != nil {
		return 0, err
	}

	return ds.len(), nil
}

func (x *Tx) Revision(name string) (uint64, error) {
	ds, err := x.dataset(name)
	if err != nil {
		return 0, err
	}

	return ds.revision, nil
}

// Insert appends r to the named dataset, assigning an id when r has none,
// and returns the stored record.
func (x *Tx) Insert(name string, r Record) (Record, error) {
	if x.readOnly {
		return Record{}, ErrTxIsReadOnly
	}

	if err := x.ctx.Err(); err != nil {
		return Record{}, err
	}

	ds, err := x.dataset(name)
	if err != nil {
		return Record{}, err
	}

	if r.IsZero() {
		return Record{}, errors.Wrap(ErrRecordMalformed, "empty record")
	}

	if err := x.s.validate(name, r); err != nil {
		return Record{}, err
	}

	if _, ok := r.ID(); !ok {
		r, err = r.withID(x.s.ids.next(ds))
		if err != nil {
			return Record{}, errors.Wrapf(err, "could not assign id in dataset %s", name)
		}
	}

	ent := ds.append(r)
	x.undos = append(x.undos, func() { ds.remove(ent) })

	return r, nil
}

// Delete removes the first record whose id matches and returns it.
func (x *Tx) Delete(name, id string) (Record, error) {
	if x.readOnly {
		return Record{}, ErrTxIsReadOnly
	}

	if err := x.ctx.Err(); err != nil {
		return Record{}, err
	}

	ds, err := x.dataset(name)
	if err != nil {
		return Record{}, err
	}

	ent, err := ds.removeFirst(id)
	if err != nil {
		return Record{}, err
	}

	x.undos = append(x.undos, func() { ds.restore(ent) })

	return ent.record, nil
}

func (x *Tx) Rollback() error {
	if x.readOnly {
		return nil
	}

	for i := len(x.undos) - 1; i >= 0; i-- {
		x.undos[i]()
	}

	x.undos = nil

	return nil
}

func (x *Tx) Commit() error {
	x.undos = nil
	return nil
}
