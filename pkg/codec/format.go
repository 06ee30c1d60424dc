package codec

import (
	"fmt"
	"path/filepath"
	"prioq/pkg/datastruct/collection"
	"strings"
)

// Format names an encoding of exported collection records.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	// FormatDump is the checksummed binary container written by Encoder.
	FormatDump Format = "dump"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "dump":
		return FormatDump, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", collection.ErrInvalidArgument, s)
}

// FormatOf picks a format from the file extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".dump", ".pqd":
		return FormatDump, nil
	}
	return "", fmt.Errorf("%w: cannot infer format of %q", collection.ErrInvalidArgument, path)
}
