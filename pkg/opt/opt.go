package opt

import (
	"net/url"
	"strconv"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// A generic option type, which can set options on a generation request
type Opt func(*Options) error

// Options is the set of applied options. Scalar values are held as strings,
// other values (such as a toolkit) are held as-is.
type Options struct {
	url.Values
	any map[string]any
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	SystemPromptKey = "system-prompt"
	TemperatureKey  = "temperature"
	MaxTokensKey    = "max-tokens"
	ToolChoiceKey   = "tool-choice"
	ToolkitKey      = "toolkit"
	LimitKey        = "limit"
	OffsetKey       = "offset"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Apply returns a structure of applied options
func Apply(o ...Opt) (*Options, error) {
	opts := &Options{
		Values: make(url.Values),
		any:    make(map[string]any),
	}
	for _, opt := range o {
		if opt == nil {
			continue
		}
		if err := opt(opts); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// GetString returns the trimmed value for key, or empty string if not set
func (o *Options) GetString(key string) string {
	if values, ok := o.Values[key]; ok && len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}

// GetFloat64 returns the float64 value for key, or 0 if not set or invalid
func (o *Options) GetFloat64(key string) float64 {
	if v, err := strconv.ParseFloat(o.GetString(key), 64); err == nil {
		return v
	}
	return 0
}

// GetUint returns the uint value for key, or 0 if not set or invalid
func (o *Options) GetUint(key string) uint {
	if v, err := strconv.ParseUint(o.GetString(key), 10, 64); err == nil {
		return uint(v)
	}
	return 0
}

// Get returns a value set with SetAny, or nil
func (o *Options) Get(key string) any {
	return o.any[key]
}

// Query returns the scalar values for the given keys as query parameters,
// skipping keys which are not set
func (o *Options) Query(keys ...string) url.Values {
	result := make(url.Values, len(keys))
	for _, key := range keys {
		if values, ok := o.Values[key]; ok && len(values) > 0 {
			result[key] = values
		}
	}
	return result
}

// Has returns true if the key exists
func (o *Options) Has(key string) bool {
	if _, ok := o.Values[key]; ok {
		return true
	}
	_, ok := o.any[key]
	return ok
}

////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// Error returns an option that always returns an error
func Error(err error) Opt {
	return func(*Options) error {
		return err
	}
}

// NoOp returns an option which does nothing
func NoOp() Opt {
	return func(*Options) error {
		return nil
	}
}

// WithOpts combines multiple options into a single option
func WithOpts(options ...Opt) Opt {
	return func(o *Options) error {
		for _, opt := range options {
			if opt == nil {
				continue
			}
			if err := opt(o); err != nil {
				return err
			}
		}
		return nil
	}
}

func SetString(key, value string) Opt {
	return func(o *Options) error {
		o.Values.Set(key, value)
		return nil
	}
}

func SetUint(key string, value uint) Opt {
	return func(o *Options) error {
		o.Values.Set(key, strconv.FormatUint(uint64(value), 10))
		return nil
	}
}

func SetFloat64(key string, value float64) Opt {
	return func(o *Options) error {
		o.Values.Set(key, strconv.FormatFloat(value, 'f', -1, 64))
		return nil
	}
}

func SetAny(key string, value any) Opt {
	return func(o *Options) error {
		o.any[key] = value
		return nil
	}
}
