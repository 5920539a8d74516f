// Package timeutil canonicalizes heterogeneous time representations into
// floating-point seconds. Accepted forms: plain numbers, 1/2/3-component
// slices ((s), (m,s), (h,m,s)) and clock strings like "01:01:33.045" where a
// comma works as a decimal point.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
)

// Normalize converts v to seconds when it denotes a time. nil stays nil and
// values of any other type are returned unchanged; callers that need a typed
// result use Seconds or OptSeconds instead.
func Normalize(v any) any {
	if v == nil {
		return v
	}
	if f, ok := numeric(v); ok {
		return f
	}
	if parts, ok := components(v); ok {
		if f, ok := fromComponents(parts); ok {
			return f
		}
		return v
	}
	if s, ok := v.(string); ok {
		if f, err := parseClock(s); err == nil {
			return f
		}
		return v
	}
	return v
}

// Seconds converts v to seconds and fails for values that cannot denote a
// time. A nil v is an error here; use OptSeconds where "unset" is meaningful.
func Seconds(v any) (float64, error) {
	p, err := OptSeconds(v)
	if err != nil {
		return 0, err
	}
	if p == nil {
		return 0, fmt.Errorf("time value is unset")
	}
	return *p, nil
}

// OptSeconds converts v to seconds, mapping nil to nil.
func OptSeconds(v any) (*float64, error) {
	if v == nil {
		return nil, nil
	}
	if p, ok := v.(*float64); ok {
		return p, nil
	}
	if f, ok := numeric(v); ok {
		return &f, nil
	}
	if parts, ok := components(v); ok {
		if f, ok := fromComponents(parts); ok {
			return &f, nil
		}
		return nil, fmt.Errorf("time components must have 1 to 3 elements, got %d", len(parts))
	}
	if s, ok := v.(string); ok {
		f, err := parseClock(s)
		if err != nil {
			return nil, err
		}
		return &f, nil
	}
	return nil, fmt.Errorf("cannot interpret %T as a time", v)
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	}
	return 0, false
}

func components(v any) ([]float64, bool) {
	switch parts := v.(type) {
	case []float64:
		return parts, true
	case []int:
		out := make([]float64, len(parts))
		for i, p := range parts {
			out[i] = float64(p)
		}
		return out, true
	}
	return nil, false
}

func fromComponents(parts []float64) (float64, bool) {
	switch len(parts) {
	case 1:
		return parts[0], true
	case 2:
		return 60*parts[0] + parts[1], true
	case 3:
		return 3600*parts[0] + 60*parts[1] + parts[2], true
	}
	return 0, false
}

func parseClock(s string) (float64, error) {
	s = strings.ReplaceAll(s, ",", ".")
	if !strings.Contains(s, ":") {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, fmt.Errorf("parse time %q: %w", s, err)
		}
		return f, nil
	}
	fields := strings.Split(s, ":")
	parts := make([]float64, 0, len(fields))
	for _, field := range fields {
		f, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return 0, fmt.Errorf("parse time %q: %w", s, err)
		}
		parts = append(parts, f)
	}
	f, ok := fromComponents(parts)
	if !ok {
		return 0, fmt.Errorf("parse time %q: expected mm:ss or hh:mm:ss", s)
	}
	return f, nil
}
