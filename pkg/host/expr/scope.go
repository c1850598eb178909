package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// Scope holds the values expressions read from.
type Scope map[string]any

// Lookup resolves a dotted path. An exact key match wins over traversal so
// flattened keys such as "cta.headline" work too.
func (s Scope) Lookup(path string) (any, bool) {
	path = strings.TrimSpace(path)
	if len(s) == 0 || path == "" {
		return nil, false
	}
	if v, ok := s[path]; ok {
		return v, true
	}

	var current any = map[string]any(s)
	for _, part := range strings.Split(path, ".") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, false
		}
		switch typed := current.(type) {
		case map[string]any:
			next, ok := typed[part]
			if !ok {
				return nil, false
			}
			current = next
		case Scope:
			next, ok := typed[part]
			if !ok {
				return nil, false
			}
			current = next
		case map[string]string:
			next, ok := typed[part]
			if !ok {
				return nil, false
			}
			current = next
		default:
			return nil, false
		}
	}
	return current, true
}

// Truthy reports whether value counts as set.
func Truthy(value any) bool {
	if value == nil {
		return false
	}
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return strings.TrimSpace(v) != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case float32:
		return v != 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

// looseEqual compares after coercing right-hand literals to the type of the
// other side, so `count == 3` matches an int and `enabled == true` matches
// the string "true".
func looseEqual(left, right any) bool {
	if left == nil || right == nil {
		return left == nil && right == nil
	}
	if b, ok := right.(bool); ok {
		got, _ := coerceBool(left)
		return got == b
	}
	if b, ok := left.(bool); ok {
		got, _ := coerceBool(right)
		return got == b
	}
	if rn, ok := coerceNumber(right); ok {
		if ln, ok := coerceNumber(left); ok {
			return ln == rn
		}
	}
	return coerceString(left) == coerceString(right)
}

func coerceBool(value any) (bool, bool) {
	if value == nil {
		return false, false
	}
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err == nil {
			return parsed, true
		}
		return strings.TrimSpace(v) != "", true
	default:
		return Truthy(value), true
	}
}

func coerceNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func coerceString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(value)
	}
}
