// Package config loads prioq settings and the named priority lists declared in
// a YAML file.
//
// Values are resolved from, highest precedence first: overrides set on the
// Loader (CLI flags), PRIOQ_ environment variables, the config file and the
// built-in defaults.
package config

import (
	"errors"
	"fmt"
	"prioq/pkg/datastruct/collection"
	"prioq/pkg/datastruct/prioritylist"
	"prioq/pkg/util/log"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const EnvPrefix = "PRIOQ"

type Properties struct {
	DebugMode bool `yaml:"debugMode" mapstructure:"debugMode"`
	// LIFO is the tie-break rule of lists built by PriorityList.
	LIFO bool `yaml:"lifo" mapstructure:"lifo"`
	// Format is the default encoding used when a file extension says nothing.
	Format string `yaml:"format" mapstructure:"format" validate:"oneof=json yaml dump"`
	// DefaultPriority applies to list entries without a priority.
	DefaultPriority int `yaml:"defaultPriority" mapstructure:"defaultPriority"`
	// Lists are keyed by lower-case name.
	Lists map[string][]ListEntry `yaml:"lists,omitempty" mapstructure:"lists" validate:"dive,dive"`
}

type ListEntry struct {
	Name     string `yaml:"name" mapstructure:"name" validate:"required"`
	Value    any    `yaml:"value" mapstructure:"value"`
	Priority *int   `yaml:"priority,omitempty" mapstructure:"priority"`
}

func Default() *Properties {
	return &Properties{
		DebugMode:       false,
		LIFO:            true,
		Format:          "yaml",
		DefaultPriority: prioritylist.DefaultPriority,
	}
}

type ValidationError struct {
	Field   string
	Tag     string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (e ValidationErrors) Unwrap() error {
	return collection.ErrInvalidArgument
}

type Loader struct {
	v         *viper.Viper
	validator *validator.Validate
	overrides map[string]interface{}
}

func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return &Loader{
		v:         v,
		validator: validator.New(),
		overrides: make(map[string]interface{}),
	}
}

// SetOverride sets a value that wins over the file and the environment.
func (l *Loader) SetOverride(key string, value interface{}) {
	l.overrides[key] = value
}

// Load reads path, or only defaults and environment when path is empty.
func (l *Loader) Load(path string) (*Properties, error) {
	l.setDefaults()
	if path != "" {
		l.v.SetConfigFile(path)
		if err := l.v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
	}
	for key, value := range l.overrides {
		l.v.Set(key, value)
	}

	props := &Properties{}
	if err := l.v.Unmarshal(props); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	props.Format = strings.ToLower(props.Format)
	if err := l.Validate(props); err != nil {
		return nil, err
	}
	return props, nil
}

func (l *Loader) Validate(props *Properties) error {
	err := l.validator.Struct(props)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("validation error: %w", err)
	}
	errs := make(ValidationErrors, 0, len(validationErrs))
	for _, e := range validationErrs {
		errs = append(errs, ValidationError{
			Field:   e.Namespace(),
			Tag:     e.Tag(),
			Value:   e.Value(),
			Message: formatValidationError(e),
		})
	}
	return errs
}

func (l *Loader) setDefaults() {
	defaults := Default()
	l.v.SetDefault("debugMode", defaults.DebugMode)
	l.v.SetDefault("lifo", defaults.LIFO)
	l.v.SetDefault("format", defaults.Format)
	l.v.SetDefault("defaultPriority", defaults.DefaultPriority)
}

func formatValidationError(e validator.FieldError) string {
	field := strings.TrimPrefix(e.Namespace(), "Properties.")
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("'%s' is required", field)
	case "oneof":
		return fmt.Sprintf("'%s' must be one of [%s] (got '%v')", field, e.Param(), e.Value())
	default:
		return fmt.Sprintf("'%s' failed validation '%s'", field, e.Tag())
	}
}

// Load is NewLoader().Load(path).
func Load(path string) (*Properties, error) {
	return NewLoader().Load(path)
}

// ListNames returns the configured list names in lexical order.
func (p *Properties) ListNames() []string {
	names := make([]string, 0, len(p.Lists))
	for name := range p.Lists {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// PriorityList builds the named list. Entries are inserted in file order, so
// a repeated entry name keeps its last value.
func (p *Properties) PriorityList(name string) (*prioritylist.PriorityList[any], error) {
	entries, ok := p.Lists[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: list %q", collection.ErrNotFound, name)
	}
	pl := prioritylist.New[any]()
	pl.SetLIFO(p.LIFO)
	for _, e := range entries {
		priority := p.DefaultPriority
		if e.Priority != nil {
			priority = *e.Priority
		}
		pl.Insert(e.Name, e.Value, priority)
	}
	return pl, nil
}

// ApplyLogLevel switches the global logger to debug or error level.
func (p *Properties) ApplyLogLevel() {
	if p.DebugMode {
		log.SetLevel(log.LevelDebug)
	} else {
		log.SetLevel(log.LevelError)
	}
}

func (p *Properties) DisplayConfigs() {
	log.Info("debug mode: %t", p.DebugMode)
	if p.LIFO {
		log.Info("tie-break: lifo")
	} else {
		log.Info("tie-break: fifo")
	}
	log.Info("default format: %s, default priority: %d", p.Format, p.DefaultPriority)
	for _, name := range p.ListNames() {
		log.Info("list %s: %d entries", name, len(p.Lists[name]))
	}
}
