package fetchx

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// undefined marks a value that was not provided at all, as opposed to nil
// which means an explicit null.
type undefined struct{}

func (undefined) String() string { return "" }

// Undefined can be used as a parameter or header value to mean "not provided".
// Headers set to Undefined are left untouched by the merge, query parameters
// set to Undefined are omitted.
var Undefined any = undefined{}

// Param is a single query parameter.
type Param struct {
	Key   string
	Value any
}

// Params is an ordered list of query parameters. Order is preserved in the
// serialized query string.
type Params []Param

// NewParams builds Params from alternating key/value arguments.
// A trailing key without a value is treated as Undefined.
//
// Example:
//
//	fetchx.NewParams("version", 2, "format", "json")
func NewParams(pairs ...any) Params {
	p := make(Params, 0, (len(pairs)+1)/2)
	for i := 0; i < len(pairs); i += 2 {
		key := Stringify(pairs[i])
		value := Undefined
		if i+1 < len(pairs) {
			value = pairs[i+1]
		}
		p = p.Set(key, value)
	}
	return p
}

// ParamsFromMap converts a map into Params with keys sorted alphabetically.
func ParamsFromMap(m map[string]any) Params {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	p := make(Params, 0, len(keys))
	for _, k := range keys {
		p = append(p, Param{Key: k, Value: m[k]})
	}
	return p
}

// Set returns Params with key set to value. An existing key keeps its
// position and gets the new value.
func (p Params) Set(key string, value any) Params {
	for i := range p {
		if p[i].Key == key {
			p[i].Value = value
			return p
		}
	}
	return append(p, Param{Key: key, Value: value})
}

// Get returns the value stored under key.
func (p Params) Get(key string) (any, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}
	return nil, false
}

// QuerySerializer turns query parameters into a query string (without the
// leading "?"). It must not have side effects.
type QuerySerializer func(Params) (string, error)

var formReplacer = strings.NewReplacer("%2A", "*", "~", "%7E")

// DefaultQuerySerializer serializes parameters the way URLSearchParams does:
// nil and Undefined values are skipped, everything else is converted with
// Stringify and form-encoded. Repeated keys keep the first position and the
// last value.
//
// Map and struct values are sent as JSON text (filter={"a":1}). APIs that
// expect deepObject (filter[a]=1) or exploded arrays need a custom
// QuerySerializer, see WithQuerySerializer.
func DefaultQuerySerializer(params Params) (string, error) {
	var (
		keys   []string
		values = make(map[string]string, len(params))
	)

	for _, param := range params {
		if isNull(param.Value) || param.Value == Undefined {
			continue
		}
		if _, seen := values[param.Key]; !seen {
			keys = append(keys, param.Key)
		}
		values[param.Key] = Stringify(param.Value)
	}

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(formEncode(k))
		b.WriteByte('=')
		b.WriteString(formEncode(values[k]))
	}
	return b.String(), nil
}

func formEncode(s string) string {
	return formReplacer.Replace(url.QueryEscape(s))
}

// Stringify converts a value to its natural string form: slices are
// comma-joined, maps and structs are JSON-encoded, numbers use their
// shortest representation. nil and nil pointers give "".
func Stringify(v any) string {
	if isNull(v) {
		return ""
	}

	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case json.Number:
		return x.String()
	case fmt.Stringer:
		return x.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return ""
		}
		return Stringify(rv.Elem().Interface())
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = Stringify(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	case reflect.Map, reflect.Struct:
		if data, err := json.Marshal(v); err == nil {
			return string(data)
		}
	}
	return fmt.Sprint(v)
}

// isNull reports whether v is nil or a nil pointer.
func isNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
