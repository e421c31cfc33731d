package scmboard

import (
	"context"
	"github.com/pkg/errors"
	"sync"
)

var ErrStoreClosed = errors.New("store already closed")

type Store struct {
	mu       sync.RWMutex
	cfg      *Config
	ids      idGenerator
	datasets map[string]*dataset
	seed     map[string][]Record
	closed   bool
}

type UserCallback func(tx *Tx) error

type Closer func() error

func NullCloser() error { return nil }

// New builds a store holding the recognized datasets, filled from seed.
// The seed is copied, later changes to it do not reach the store.
func New(seed Seed, cfg *Config) (*Store, Closer, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	s := &Store{
		datasets: make(map[string]*dataset, len(Datasets)),
		seed:     make(map[string][]Record, len(Datasets)),
	}

	if err := cfg.applyTo(s); err != nil {
		return nil, NullCloser, err
	}

	if err := s.load(seed.Clone()); err != nil {
		return nil, NullCloser, err
	}

	return s, s.close, nil
}

func (s *Store) load(seed Seed) error {
	for name := range seed {
		if !IsDataset(name) {
			return errors.Wrapf(ErrDatasetNotFound, "seed contains unknown dataset %s", name)
		}
	}

	for _, name := range Datasets {
		ds := newDataset(name)

		records := make([]Record, 0, len(seed[name]))
		for i, m := range seed[name] {
			r, err := NewRecord(m)
			if err != nil {
				return errors.Wrapf(err, "seed record %d of %s", i, name)
			}
			ds.observe(r)
			records = append(records, r)
		}

		for i := range records {
			if _, ok := records[i].ID(); !ok && s.cfg.AssignSeedIDs {
				withID, err := records[i].withID(s.ids.next(ds))
				if err != nil {
					return errors.Wrapf(err, "seed record %d of %s", i, name)
				}
				records[i] = withID
			}
			ds.append(records[i])
		}

		ds.revision = 0
		s.datasets[name] = ds
		s.seed[name] = records
	}

	return nil
}

func (s *Store) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	s.datasets = nil
	s.seed = nil
	s.closed = true

	return nil
}

func (s *Store) begin(ctx context.Context, readOnly bool) (*Tx, error) {
	if s.closed {
		return nil, ErrStoreClosed
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Tx{s: s, ctx: ctx, readOnly: readOnly}, nil
}

func (s *Store) View(ctx context.Context, cb UserCallback) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, err := s.begin(ctx, true)
	if err != nil {
		return err
	}

	if err := cb(tx); err != nil {
		return err
	}

	return tx.Commit()
}

// Update runs cb in a writable transaction. Every mutation cb made is undone
// when it returns an error.
func (s *Store) Update(ctx context.Context, cb UserCallback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.begin(ctx, false)
	if err != nil {
		return err
	}

	if err := cb(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Wrap(err, rbErr.Error())
		}

		return err
	}

	return tx.Commit()
}

func (s *Store) Get(ctx context.Context, name string) ([]Record, error) {
	var result []Record
	err := s.View(ctx, func(tx *Tx) error {
		records, err := tx.Get(name)
		result = records
		return err
	})

	return result, err
}

// Insert appends r to the named dataset and returns the updated sequence.
func (s *Store) Insert(ctx context.Context, name string, r Record) ([]Record, error) {
	var result []Record
	err := s.Update(ctx, func(tx *Tx) error {
		if _, err := tx.Insert(name, r); err != nil {
			return err
		}

		records, err := tx.Get(name)
		result = records
		return err
	})

	return result, err
}

// Delete removes the first record with the given id and returns the updated
// sequence.
func (s *Store) Delete(ctx context.Context, name, id string) ([]Record, error) {
	var result []Record
	err := s.Update(ctx, func(tx *Tx) error {
		if _, err := tx.Delete(name, id); err != nil {
			return err
		}

		records, err := tx.Get(name)
		result = records
		return err
	})

	return result, err
}

// Snapshot returns the records the dataset was seeded with. It never
// reflects inserts or deletes.
func (s *Store) Snapshot(name string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	records, ok := s.seed[name]
	if !ok {
		return nil, errors.Wrapf(ErrDatasetNotFound, "%s", name)
	}

	result := make([]Record, len(records))
	copy(result, records)

	return result, nil
}

func (s *Store) Revision(name string) (uint64, error) {
	var rev uint64
	err := s.View(context.Background(), func(tx *Tx) error {
		r, err := tx.Revision(name)
		rev = r
		return err
	})

	return rev, err
}

func (s *Store) Datasets() []string {
	names := make([]string, len(Datasets))
	copy(names, Datasets)
	return names
}
