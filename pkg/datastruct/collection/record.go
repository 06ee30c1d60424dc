package collection

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// LegacyDefaultPriority is applied to queue records that carry no priority field.
const LegacyDefaultPriority = 1

// Record is the exported form of one entry. Name is only set by named collections.
type Record[T any] struct {
	Name     string `json:"name,omitempty"`
	Data     T      `json:"data"`
	Priority int    `json:"priority"`
}

// wireRecord keeps raw fields so missing and null can be told apart.
type wireRecord struct {
	Named    bool            `json:"-"`
	Name     string          `json:"name" validate:"required_if=Named true"`
	Data     json.RawMessage `json:"data" validate:"required"`
	Priority *int            `json:"priority"`
}

// DecodeOptions controls how raw records are checked while decoding.
type DecodeOptions struct {
	// Named requires every record to carry a non-empty name.
	Named bool
	// DefaultPriority is used for records without a priority field.
	DefaultPriority int
	// Validate is reused when set, otherwise a new validator is created.
	Validate *validator.Validate
}

// DecodeRecords parses a JSON array of records. Any shape problem is reported
// as ErrCorruptData.
func DecodeRecords[T any](data []byte, opts DecodeOptions) ([]Record[T], error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: expected a sequence of records: %v", ErrCorruptData, err)
	}
	validate := opts.Validate
	if validate == nil {
		validate = validator.New()
	}
	records := make([]Record[T], 0, len(raw))
	for i, msg := range raw {
		w := wireRecord{Named: opts.Named}
		if err := json.Unmarshal(msg, &w); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrCorruptData, i, err)
		}
		if err := validate.Struct(&w); err != nil {
			return nil, fmt.Errorf("%w: record %d: %s", ErrCorruptData, i, formatValidationError(err))
		}
		rec := Record[T]{Name: w.Name, Priority: opts.DefaultPriority}
		if w.Priority != nil {
			rec.Priority = *w.Priority
		}
		if err := json.Unmarshal(w.Data, &rec.Data); err != nil {
			return nil, fmt.Errorf("%w: record %d data: %v", ErrCorruptData, i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func formatValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}
	e := fieldErrs[0]
	switch e.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("'%s' is required", e.Field())
	default:
		return fmt.Sprintf("'%s' failed validation '%s'", e.Field(), e.Tag())
	}
}
