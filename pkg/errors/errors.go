package errors

import (
	"fmt"
)

// ParseError reports a configuration file that could not be read or
// decoded. Line is zero when the position is unknown.
type ParseError struct {
	Path string
	Line int
	Err  error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	return &ParseError{Path: path, Line: line, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	where := e.Path
	if e.Line > 0 {
		where = fmt.Sprintf("%s line %d", e.Path, e.Line)
	}
	return fmt.Sprintf("cannot parse %s: %v", where, e.Err)
}

func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError names the configuration field, in its YAML form, and the
// rule it broke.
type ValidationError struct {
	Field string
	Rule  string
	Err   error
}

// NewValidationError constructs a ValidationError. An empty field means the
// configuration as a whole.
func NewValidationError(field, rule string, err error) error {
	return &ValidationError{Field: field, Rule: rule, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	target := e.Field
	if target == "" {
		target = "configuration"
	}
	switch {
	case e.Rule != "":
		return fmt.Sprintf("invalid %s: rule %q not satisfied", target, e.Rule)
	case e.Err != nil:
		return fmt.Sprintf("invalid %s: %v", target, e.Err)
	default:
		return "invalid " + target
	}
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// StorageError represents a failed read or write against a local key-value store.
type StorageError struct {
	Driver string
	Op     string
	Key    string
	Err    error
}

// NewStorageError constructs a StorageError for the given driver operation.
func NewStorageError(driver, op, key string, err error) error {
	return &StorageError{Driver: driver, Op: op, Key: key, Err: err}
}

func (e *StorageError) Error() string {
	if e == nil {
		return ""
	}
	if e.Key != "" {
		return fmt.Sprintf("storage error [%s] %s %q: %v", e.Driver, e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("storage error [%s] %s: %v", e.Driver, e.Op, e.Err)
}

// Unwrap exposes the root error.
func (e *StorageError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PreferenceError reports a stored preference that could not be read or decoded.
// The caller has already fallen back to the default value when it sees one.
type PreferenceError struct {
	Key   string
	Value string
	Err   error
}

// NewPreferenceError constructs a PreferenceError.
func NewPreferenceError(key, value string, err error) error {
	return &PreferenceError{Key: key, Value: value, Err: err}
}

func (e *PreferenceError) Error() string {
	if e == nil {
		return ""
	}
	if e.Value != "" {
		return fmt.Sprintf("preference error: %s=%q: %v", e.Key, e.Value, e.Err)
	}
	return fmt.Sprintf("preference error: %s: %v", e.Key, e.Err)
}

// Unwrap exposes the underlying error.
func (e *PreferenceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// RemoteError indicates a failed call against the hosted to-do backend.
type RemoteError struct {
	Function string
	Message  string
	Err      error
}

// NewRemoteError constructs a RemoteError for the given backend function path.
func NewRemoteError(function string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &RemoteError{Function: function, Message: message, Err: err}
}

func (e *RemoteError) Error() string {
	if e == nil {
		return ""
	}
	if e.Function != "" {
		return fmt.Sprintf("remote error [%s]: %s", e.Function, e.Message)
	}
	return fmt.Sprintf("remote error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *RemoteError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
