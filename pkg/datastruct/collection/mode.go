package collection

import (
	"fmt"
	"strings"
)

// ExtractMode selects what an extraction or export surfaces for each entry.
type ExtractMode int

const (
	ExtractData     ExtractMode = 1
	ExtractPriority ExtractMode = 2
	ExtractBoth                 = ExtractData | ExtractPriority
)

// Item pairs a datum with its priority.
type Item[T any] struct {
	Data     T   `json:"data"`
	Priority int `json:"priority"`
}

// Named is one position of a name-keyed ordered result.
type Named struct {
	Name  string
	Value any
}

func (m ExtractMode) String() string {
	switch m {
	case ExtractData:
		return "data"
	case ExtractPriority:
		return "priority"
	case ExtractBoth:
		return "both"
	}
	return fmt.Sprintf("ExtractMode(%d)", int(m))
}

// Validate reports ErrInvalidArgument for anything outside data, priority and both.
func (m ExtractMode) Validate() error {
	switch m {
	case ExtractData, ExtractPriority, ExtractBoth:
		return nil
	}
	return fmt.Errorf("%w: extraction mode %d", ErrInvalidArgument, int(m))
}

// ParseExtractMode accepts the names printed by String.
func ParseExtractMode(s string) (ExtractMode, error) {
	for _, m := range []ExtractMode{ExtractData, ExtractPriority, ExtractBoth} {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: extraction mode %q", ErrInvalidArgument, s)
}

// Select shapes a datum and its priority according to mode.
// The mode must already be valid.
func Select[T any](mode ExtractMode, data T, priority int) any {
	switch mode {
	case ExtractPriority:
		return priority
	case ExtractBoth:
		return Item[T]{Data: data, Priority: priority}
	default:
		return data
	}
}
