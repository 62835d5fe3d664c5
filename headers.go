package fetchx

import (
	"net/http"
	"sort"
)

// Headers is a header source. A nil value removes the header from the merged
// set, Undefined leaves it alone and any other value is converted with
// Stringify. A []string value sets a multi-valued header.
type Headers map[string]any

// HeadersFromHTTP converts an http.Header into a header source.
func HeadersFromHTTP(h http.Header) Headers {
	out := make(Headers, len(h))
	for k, v := range h {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// MergeHeaders merges header sources ordered from lowest to highest priority.
// Header names are compared case-insensitively.
func MergeHeaders(sources ...Headers) http.Header {
	merged := make(http.Header)

	for _, source := range sources {
		keys := make([]string, 0, len(source))
		for k := range source {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			switch v := source[k].(type) {
			case undefined:
			case []string:
				merged.Del(k)
				for _, item := range v {
					merged.Add(k, item)
				}
			default:
				if isNull(v) {
					merged.Del(k)
					continue
				}
				merged.Set(k, Stringify(v))
			}
		}
	}

	return merged
}
