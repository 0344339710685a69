package archive

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// listSeparator joins list-valued attributes into one cell for tabular use.
const listSeparator = ", "

// Extract walks path key by key through a resolved tree and returns the value
// at the end as a string. The second result is false when the tree is absent,
// a key is missing, or an intermediate value is not a mapping; those are
// expected conditions, not errors.
//
// A list at the end of the path is flattened by joining its stringified
// elements with ", ". That projection is lossy on purpose: the result feeds
// one column of a report, not a round-trippable encoding.
func Extract(tree Value, path ...string) (string, bool) {
	if tree == nil {
		return "", false
	}
	current := tree
	for _, key := range path {
		m, ok := current.(map[any]any)
		if !ok {
			return "", false
		}
		current, ok = m[key]
		if !ok {
			return "", false
		}
	}

	if list, ok := current.([]any); ok {
		parts := make([]string, len(list))
		for i, item := range list {
			parts[i] = formatScalar(item)
		}
		return strings.Join(parts, listSeparator), true
	}
	return formatScalar(current), true
}

func formatScalar(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case uint64:
		return strconv.FormatUint(s, 10)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	case time.Time:
		return s.Format(time.RFC3339)
	default:
		return fmt.Sprint(s)
	}
}
