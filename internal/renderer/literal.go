package renderer

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/tacogips/clismith/internal/canon"
)

// literalStyle describes how a target spells constant values in source.
type literalStyle struct {
	escape   func(string) string
	null     string
	trueLit  string
	falseLit string
	list     func(items []string) string
	object   func(pairs []string) string
	pair     func(key, value string) string
	// textItems quotes list and map values whatever their type.
	textItems bool
}

func (s literalStyle) quote(v string) string {
	return `"` + s.escape(v) + `"`
}

// literal renders v, a plain default value, as a source literal. typ is the
// declared canonical type and decides how integral numbers are spelled.
func (s literalStyle) literal(v interface{}, typ canon.Type) (string, error) {
	switch val := v.(type) {
	case nil:
		return s.null, nil
	case string:
		return s.quote(val), nil
	case bool:
		if val {
			return s.trueLit, nil
		}
		return s.falseLit, nil
	case int:
		if typ == canon.Float {
			return formatFloat(float64(val))
		}
		return strconv.Itoa(val), nil
	case int64:
		if typ == canon.Float {
			return formatFloat(float64(val))
		}
		return strconv.FormatInt(val, 10), nil
	case float64:
		if typ == canon.Integer && val == math.Trunc(val) && math.Abs(val) < 1<<53 {
			return strconv.FormatInt(int64(val), 10), nil
		}
		return formatFloat(val)
	case []interface{}:
		items := make([]string, len(val))
		for i, item := range val {
			lit, err := s.item(item)
			if err != nil {
				return "", err
			}
			items[i] = lit
		}
		return s.list(items), nil
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, len(keys))
		for i, k := range keys {
			lit, err := s.item(val[k])
			if err != nil {
				return "", err
			}
			pairs[i] = s.pair(s.quote(k), lit)
		}
		return s.object(pairs), nil
	default:
		return "", fmt.Errorf("unsupported default value of type %T", v)
	}
}

func (s literalStyle) item(v interface{}) (string, error) {
	if s.textItems {
		return s.quote(display(v)), nil
	}
	return s.literal(v, canon.String)
}

func formatFloat(f float64) (string, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "", fmt.Errorf("non-finite default %v", f)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s, nil
}

// display renders v the way a user would type it on the command line.
func display(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case []interface{}:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = display(item)
		}
		return strings.Join(parts, ",")
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + "=" + display(val[k])
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(val)
	}
}

func joinWith(open, sep, close string) func([]string) string {
	return func(items []string) string {
		return open + strings.Join(items, sep) + close
	}
}

func colonPair(key, value string) string {
	return key + ": " + value
}
