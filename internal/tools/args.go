package tools

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Args are one invocation's decoded arguments. HTTP callers send a JSON
// object, so numbers arrive as float64; CLI callers pass strings. The
// accessors below accept both.
type Args map[string]any

// ArgError is a local validation failure, reported before any fetch.
type ArgError struct {
	msg string
}

func (e *ArgError) Error() string { return e.msg }

func argErrorf(format string, a ...any) *ArgError {
	return &ArgError{msg: fmt.Sprintf(format, a...)}
}

// String reads a required string argument. Missing or blank values are an
// ArgError.
func (a Args) String(key string) (string, error) {
	raw, ok := a[key]
	if !ok {
		return "", argErrorf("%s is required", key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", argErrorf("%s must be a string", key)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", argErrorf("%s is required", key)
	}
	return s, nil
}

// OptionalString reads a string argument, returning "" when absent.
func (a Args) OptionalString(key string) (string, error) {
	raw, ok := a[key]
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", argErrorf("%s must be a string", key)
	}
	return strings.TrimSpace(s), nil
}

// Int reads an integer argument, returning def when absent. Fractional
// numbers are rejected rather than truncated.
func (a Args) Int(key string, def int) (int, error) {
	raw, ok := a[key]
	if !ok || raw == nil {
		return def, nil
	}
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, argErrorf("%s must be a whole number", key)
		}
		return int(v), nil
	case int:
		return v, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, argErrorf("%s must be an integer", key)
		}
		return n, nil
	default:
		return 0, argErrorf("%s must be an integer", key)
	}
}

// clampInt bounds n to [lo, hi].
func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
