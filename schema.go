package scmboard

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"strconv"
	"strings"
)

var ErrRecordInvalid = errors.New("record does not match dataset schema")

type FieldKind string

const (
	StringField FieldKind = "string"
	NumberField FieldKind = "number"
)

type Field struct {
	Name string
	Kind FieldKind
}

// Schema is the conventional shape of the records of one dataset.
type Schema struct {
	Dataset string
	Fields  []Field
}

var schemas = map[string]Schema{
	Inventory: {Dataset: Inventory, Fields: []Field{
		{"item", StringField}, {"quantity", NumberField}, {"reorderLevel", NumberField}, {"unitPrice", NumberField},
	}},
	Suppliers: {Dataset: Suppliers, Fields: []Field{
		{"name", StringField}, {"rating", NumberField}, {"deliveries", NumberField}, {"region", StringField}, {"contact", StringField},
	}},
	Revenue: {Dataset: Revenue, Fields: []Field{
		{"month", StringField}, {"sales", NumberField}, {"profit", NumberField},
	}},
	Orders: {Dataset: Orders, Fields: []Field{
		{"customer", StringField}, {"item", StringField}, {"quantity", NumberField}, {"status", StringField}, {"date", StringField},
	}},
	Employees: {Dataset: Employees, Fields: []Field{
		{"name", StringField}, {"department", StringField}, {"performance", NumberField}, {"efficiency", NumberField},
	}},
	Warehouses: {Dataset: Warehouses, Fields: []Field{
		{"location", StringField}, {"capacity", NumberField}, {"used", NumberField},
	}},
	Expenses: {Dataset: Expenses, Fields: []Field{
		{"month", StringField}, {"logistics", NumberField}, {"maintenance", NumberField}, {"salaries", NumberField},
	}},
}

func SchemaFor(name string) (Schema, bool) {
	s, ok := schemas[name]
	return s, ok
}

// Validate checks that every conventional field is present with the right
// kind. Numbers may also arrive as numeric strings. Extra fields are allowed.
func (s Schema) Validate(r Record) error {
	var problems []string

	for _, f := range s.Fields {
		res := gjson.GetBytes(r.raw, f.Name)
		if !res.Exists() || res.Type == gjson.Null {
			problems = append(problems, f.Name+" is missing")
			continue
		}

		switch f.Kind {
		case NumberField:
			if !isNumber(res) {
				problems = append(problems, f.Name+" must be a number")
			}
		case StringField:
			if res.Type != gjson.String {
				problems = append(problems, f.Name+" must be a string")
			}
		}
	}

	if len(problems) > 0 {
		return errors.Wrapf(ErrRecordInvalid, "%s: %s", s.Dataset, strings.Join(problems, ", "))
	}

	return nil
}

func isNumber(res gjson.Result) bool {
	switch res.Type {
	case gjson.Number:
		return true
	case gjson.String:
		_, err := strconv.ParseFloat(strings.TrimSpace(res.Str), 64)
		return err == nil
	}
	return false
}

func (s *Store) validate(name string, r Record) error {
	if s.cfg.Validation == ValidationOff {
		return nil
	}

	schema, ok := SchemaFor(name)
	if !ok {
		return nil
	}

	err := schema.Validate(r)
	if err == nil {
		return nil
	}

	if s.cfg.Validation == ValidationStrict {
		return err
	}

	s.cfg.OnValidationWarning(name, r, err)

	return nil
}
