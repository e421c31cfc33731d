package scmboard

import (
	"github.com/pkg/errors"
)

var ErrInvalidConfig = errors.New("invalid store config")

type IDStrategy string
type ValidationMode string

const (
	CounterIDs   IDStrategy = "counter"
	TimestampIDs IDStrategy = "timestamp"
	UUIDs        IDStrategy = "uuid"
)

const (
	ValidationOff    ValidationMode = "off"
	ValidationWarn   ValidationMode = "warn"
	ValidationStrict ValidationMode = "strict"
)

// ValidationWarning is called in warn mode for every record that does not
// match the conventional shape of its dataset. The record is stored anyway.
type ValidationWarning func(dataset string, r Record, err error)

type Config struct {
	IDStrategy          IDStrategy
	Validation          ValidationMode
	AssignSeedIDs       bool
	OnValidationWarning ValidationWarning
}

func (cfg *Config) applyTo(s *Store) error {
	switch cfg.IDStrategy {
	case "":
		cfg.IDStrategy = CounterIDs
	case CounterIDs, TimestampIDs, UUIDs:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown id strategy %q", cfg.IDStrategy)
	}

	switch cfg.Validation {
	case "":
		cfg.Validation = ValidationWarn
	case ValidationOff, ValidationWarn, ValidationStrict:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown validation mode %q", cfg.Validation)
	}

	if cfg.OnValidationWarning == nil {
		cfg.OnValidationWarning = func(string, Record, error) {}
	}

	s.cfg = cfg
	s.ids = newIDGenerator(cfg.IDStrategy)

	return nil
}
