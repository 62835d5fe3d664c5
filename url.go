package fetchx

import (
	"net/url"
	"strings"
)

// componentReplacer turns url.QueryEscape output into encodeURIComponent form:
// spaces as %20 and the sub-delims !'()* left as they are.
var componentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodePathValue percent-encodes a path parameter value. Reserved URL
// characters, spaces and non-ASCII code points are all escaped.
func EncodePathValue(v any) string {
	return componentReplacer.Replace(url.QueryEscape(Stringify(v)))
}

// BuildURL joins baseURL and pathTemplate, substitutes every {name}
// placeholder found in pathParams and appends the serialized query.
//
// Only the first occurrence of each placeholder is replaced. Placeholders
// without a matching parameter are kept verbatim.
func BuildURL(baseURL, pathTemplate string, pathParams map[string]any, query Params, serialize QuerySerializer) (string, error) {
	path := baseURL + pathTemplate
	for name, value := range pathParams {
		path = strings.Replace(path, "{"+name+"}", EncodePathValue(value), 1)
	}

	if serialize == nil {
		serialize = DefaultQuerySerializer
	}
	if query == nil {
		query = Params{}
	}

	qs, err := serialize(query)
	if err != nil {
		return "", err
	}
	if qs != "" {
		path += "?" + qs
	}

	return path, nil
}
