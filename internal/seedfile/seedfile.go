// Package seedfile reads and writes dashboard seeds as JSON or TOML.
package seedfile

import (
	"bytes"
	"github.com/denismitr/scmboard"
	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var ErrUnsupportedFormat = errors.New("unsupported seed file format")
var ErrUnknownDataset = errors.New("unknown dataset in seed file")

type Format string

const (
	JSON Format = "json"
	TOML Format = "toml"
)

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".toml":
		return TOML, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedFormat, "extension of %s", path)
	}
}

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case JSON:
		return JSON, nil
	case TOML:
		return TOML, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedFormat, "%q", s)
	}
}

func Load(path string) (scmboard.Seed, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open seed file %s", path)
	}
	defer f.Close()

	sd, err := Read(f, format)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read seed file %s", path)
	}

	return sd, nil
}

func Read(r io.Reader, format Format) (scmboard.Seed, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "could not read seed")
	}

	sd := scmboard.Seed{}
	switch format {
	case JSON:
		if err := json.Unmarshal(bytes.TrimSpace(b), &sd); err != nil {
			return nil, errors.Wrap(err, "could not unmarshal json seed")
		}
	case TOML:
		if err := toml.Unmarshal(b, &sd); err != nil {
			return nil, errors.Wrap(err, "could not unmarshal toml seed")
		}
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}

	for name := range sd {
		if !scmboard.IsDataset(name) {
			return nil, errors.Wrapf(ErrUnknownDataset, "%q", name)
		}
	}

	return sd, nil
}

// Write encodes seed in the given format. Datasets come out in canonical order
// for json; toml sorts table keys itself.
func Write(w io.Writer, seed scmboard.Seed, format Format) error {
	var (
		b   []byte
		err error
	)

	switch format {
	case JSON:
		b, err = encodeJSON(seed)
	case TOML:
		b, err = toml.Marshal(seed)
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}

	if err != nil {
		return errors.Wrapf(err, "could not encode seed as %s", format)
	}

	if _, err := w.Write(b); err != nil {
		return errors.Wrap(err, "could not write seed")
	}

	return nil
}

func encodeJSON(seed scmboard.Seed) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	first := true
	for _, name := range scmboard.Datasets {
		records, ok := seed[name]
		if !ok {
			continue
		}

		if !first {
			buf.WriteString(",\n")
		}
		first = false

		b, err := json.MarshalIndent(records, "  ", "  ")
		if err != nil {
			return nil, err
		}

		buf.WriteString("  ")
		buf.WriteString(`"` + name + `": `)
		buf.Write(b)
	}
	buf.WriteString("\n}\n")

	return buf.Bytes(), nil
}
