package bitrix

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
)

// Encode flattens a parameter map into PHP-style bracketed form values, the
// shape Bitrix24 webhook endpoints expect:
//
//	filter[PHONE]=+79991234567
//	fields[PHONE][0][VALUE]=+79991234567
//
// Map keys are emitted in sorted order so the wire form is deterministic.
func Encode(params map[string]any) url.Values {
	vals := url.Values{}
	for _, key := range sortedKeys(params) {
		encodeInto(vals, key, params[key])
	}
	return vals
}

func encodeInto(vals url.Values, prefix string, v any) {
	switch t := v.(type) {
	case map[string]any:
		for _, key := range sortedKeys(t) {
			encodeInto(vals, prefix+"["+key+"]", t[key])
		}
	case []any:
		for i, item := range t {
			encodeInto(vals, prefix+"["+strconv.Itoa(i)+"]", item)
		}
	case []string:
		for i, item := range t {
			vals.Set(prefix+"["+strconv.Itoa(i)+"]", item)
		}
	case string:
		vals.Set(prefix, t)
	case int:
		vals.Set(prefix, strconv.Itoa(t))
	case int64:
		vals.Set(prefix, strconv.FormatInt(t, 10))
	case float64:
		vals.Set(prefix, strconv.FormatFloat(t, 'f', -1, 64))
	case bool:
		vals.Set(prefix, strconv.FormatBool(t))
	default:
		vals.Set(prefix, fmt.Sprint(t))
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
