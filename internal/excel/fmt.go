package excel

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Fmt flattens any decoded JSON value to a clean cell string: lists become
// bulleted lines, objects become "key: value" lines with keys sorted for
// stable output.
func Fmt(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		var parts []string
		for _, item := range v {
			if s := Fmt(item); s != "" {
				parts = append(parts, "• "+s)
			}
		}
		return strings.Join(parts, "\n")
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			if truthy(v[k]) {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		lines := make([]string, 0, len(keys))
		for _, k := range keys {
			lines = append(lines, k+": "+Fmt(v[k]))
		}
		return strings.Join(lines, "\n")
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asList(v any) []any {
	l, _ := v.([]any)
	return l
}

func joinList(v any, sep string) string {
	items := asList(v)
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if s := Fmt(item); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}
