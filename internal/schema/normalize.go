package schema

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"

	"github.com/tacogips/clismith/internal/config"
)

// normalizer copies a raw document into fresh config values, rejecting
// cycles. Identity of every container on the current path is tracked; a
// container reachable from itself is reported once and replaced by nil.
type normalizer struct {
	onPath map[uintptr]bool
	errs   SchemaErrors
}

// normalize returns a private copy of raw as a *config.Mapping tree.
// Accepted inputs are *config.Mapping and map[string]interface{} trees with
// slices and scalars as leaves. Programmatic maps are visited in sorted key
// order.
func normalize(raw interface{}) (*config.Mapping, SchemaErrors) {
	n := &normalizer{onPath: make(map[uintptr]bool)}
	v := n.value(raw, "")
	if len(n.errs) > 0 {
		return nil, n.errs
	}
	m, ok := v.(*config.Mapping)
	if !ok {
		return nil, SchemaErrors{{
			Kind:   KindType,
			Path:   "",
			Reason: fmt.Sprintf("document must be a mapping, got %s", describe(raw)),
		}}
	}
	return m, nil
}

func (n *normalizer) enter(id uintptr, path string) bool {
	if n.onPath[id] {
		n.errs = append(n.errs, &SchemaError{
			Kind:   KindCycle,
			Path:   path,
			Reason: "value refers back to one of its own ancestors",
		})
		return false
	}
	n.onPath[id] = true
	return true
}

func (n *normalizer) leave(id uintptr) {
	delete(n.onPath, id)
}

func (n *normalizer) value(v interface{}, path string) interface{} {
	switch val := v.(type) {
	case nil:
		return nil
	case *config.Mapping:
		if val == nil {
			return nil
		}
		id := reflect.ValueOf(val).Pointer()
		if !n.enter(id, path) {
			return nil
		}
		defer n.leave(id)
		out := &config.Mapping{}
		for _, e := range val.Entries() {
			out.Add(e.Key, n.value(e.Value, joinPath(path, e.Key)))
		}
		return out
	case map[string]interface{}:
		if val == nil {
			return nil
		}
		id := reflect.ValueOf(val).Pointer()
		if !n.enter(id, path) {
			return nil
		}
		defer n.leave(id)
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := &config.Mapping{}
		for _, k := range keys {
			out.Add(k, n.value(val[k], joinPath(path, k)))
		}
		return out
	case []interface{}:
		if len(val) > 0 {
			id := reflect.ValueOf(val).Pointer()
			if !n.enter(id, path) {
				return nil
			}
			defer n.leave(id)
		}
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = n.value(item, joinPath(path, strconv.Itoa(i)))
		}
		return out
	case []string:
		out := make([]interface{}, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out
	case map[string]string:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := &config.Mapping{}
		for _, k := range keys {
			out.Add(k, val[k])
		}
		return out
	case string, bool, int, float64:
		return val
	case int8, int16, int32, int64:
		return int(reflect.ValueOf(val).Int())
	case uint, uint8, uint16, uint32, uint64:
		u := reflect.ValueOf(val).Uint()
		if u > math.MaxInt {
			return float64(u)
		}
		return int(u)
	case float32:
		return float64(val)
	default:
		n.errs = append(n.errs, &SchemaError{
			Kind:   KindType,
			Path:   path,
			Reason: fmt.Sprintf("unsupported value of Go type %T", v),
		})
		return nil
	}
}

// describe names the JSON-ish kind of a document value for messages.
func describe(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case *config.Mapping, map[string]interface{}, map[string]string:
		return "a mapping"
	case []interface{}, []string:
		return "a sequence"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "an integer"
	case float32, float64:
		return "a number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
