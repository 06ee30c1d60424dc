// Package codec persists exported collections as JSON, YAML or a
// checksummed binary dump.
//
// Every format carries the same record list a collection produces with its
// MarshalJSON method, so a file written in one format can be converted to
// another without knowing which collection produced it.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"prioq/pkg/datastruct/collection"

	"github.com/ghodss/yaml"
)

func Marshal(v any, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(v, "", "  ")
	case FormatYAML:
		return yaml.Marshal(v)
	case FormatDump:
		buf := &bytes.Buffer{}
		if err := EncodeDump(buf, v); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: unknown format %q", collection.ErrInvalidArgument, format)
}

// Unmarshal decodes data into v. Malformed input of any format is reported
// as collection.ErrCorruptData.
func Unmarshal(data []byte, v any, format Format) error {
	switch format {
	case FormatJSON:
		return unmarshalJSON(data, v)
	case FormatYAML:
		// converted here rather than by yaml.Unmarshal, which drops the
		// wrapped error chain of v's UnmarshalJSON
		jsonData, err := yaml.YAMLToJSON(data)
		if err != nil {
			return fmt.Errorf("%w: yaml: %v", collection.ErrCorruptData, err)
		}
		return unmarshalJSON(jsonData, v)
	case FormatDump:
		return DecodeDump(bytes.NewReader(data), v)
	}
	return fmt.Errorf("%w: unknown format %q", collection.ErrInvalidArgument, format)
}

func unmarshalJSON(data []byte, v any) error {
	err := json.Unmarshal(data, v)
	if err == nil || errors.Is(err, collection.ErrCorruptData) {
		return err
	}
	return fmt.Errorf("%w: json: %v", collection.ErrCorruptData, err)
}

// EncodeDump writes v as a single JSON payload inside the dump container.
func EncodeDump(w io.Writer, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	enc := NewEncoder(w)
	if err = enc.WriteHeader(); err != nil {
		return fmt.Errorf("dump write header error: %v", err)
	}
	if err = enc.WritePayload(payload); err != nil {
		return fmt.Errorf("dump write payload error: %v", err)
	}
	if err = enc.WriteEOF(); err != nil {
		return fmt.Errorf("dump write EOF error: %v", err)
	}
	return nil
}

// DecodeDump verifies the container read from r and decodes its payload into v.
// The checksum is verified before v is touched.
func DecodeDump(r io.Reader, v any) error {
	dec := NewDecoder(r)
	if err := dec.ReadHeader(); err != nil {
		return err
	}
	payload, err := dec.ReadPayload()
	if err != nil {
		return err
	}
	if err = dec.ReadEOF(); err != nil {
		return err
	}
	return unmarshalJSON(payload, v)
}
