package fetchx_test

import (
	"net/http"
	"testing"

	"github.com/seb7887/gofw/fetchx"
	"github.com/stretchr/testify/assert"
)

func TestMergeHeaders_PriorityOrder(t *testing.T) {
	merged := fetchx.MergeHeaders(
		fetchx.Headers{"Content-Type": "application/json", "X-A": "defaults"},
		fetchx.Headers{"X-A": "config", "X-B": "config"},
		fetchx.Headers{"X-B": "call"},
	)

	assert.Equal(t, "application/json", merged.Get("Content-Type"))
	assert.Equal(t, "config", merged.Get("X-A"))
	assert.Equal(t, "call", merged.Get("X-B"))
}

func TestMergeHeaders_NilRemovesEarlierValue(t *testing.T) {
	merged := fetchx.MergeHeaders(
		fetchx.Headers{"X-Key": "a"},
		fetchx.Headers{"X-Key": "b"},
		fetchx.Headers{"X-Key": nil},
	)

	_, present := merged["X-Key"]
	assert.False(t, present)
}

func TestMergeHeaders_NilThenSetAgain(t *testing.T) {
	merged := fetchx.MergeHeaders(
		fetchx.Headers{"X-Key": "a"},
		fetchx.Headers{"X-Key": nil},
		fetchx.Headers{"X-Key": "c"},
	)

	assert.Equal(t, "c", merged.Get("X-Key"))
}

func TestMergeHeaders_UndefinedIsNoOp(t *testing.T) {
	merged := fetchx.MergeHeaders(
		fetchx.Headers{"X-Key": "a"},
		fetchx.Headers{"X-Key": fetchx.Undefined, "X-Other": fetchx.Undefined},
	)

	assert.Equal(t, "a", merged.Get("X-Key"))
	_, present := merged["X-Other"]
	assert.False(t, present)
}

func TestMergeHeaders_CaseInsensitive(t *testing.T) {
	merged := fetchx.MergeHeaders(
		fetchx.Headers{"Content-Type": "application/json"},
		fetchx.Headers{"content-type": "text/plain"},
		fetchx.Headers{"AUTHORIZATION": "Bearer x"},
		fetchx.Headers{"authorization": nil},
	)

	assert.Equal(t, []string{"text/plain"}, merged.Values("Content-Type"))
	assert.Empty(t, merged.Get("Authorization"))
	assert.Len(t, merged, 1)
}

func TestMergeHeaders_OverwritesInsteadOfAppending(t *testing.T) {
	merged := fetchx.MergeHeaders(
		fetchx.Headers{"Accept": "text/html"},
		fetchx.Headers{"Accept": "application/json"},
	)

	assert.Equal(t, []string{"application/json"}, merged.Values("Accept"))
}

func TestMergeHeaders_CoercesValues(t *testing.T) {
	merged := fetchx.MergeHeaders(fetchx.Headers{
		"X-Int":   42,
		"X-Bool":  false,
		"X-Multi": []string{"a", "b"},
	})

	assert.Equal(t, "42", merged.Get("X-Int"))
	assert.Equal(t, "false", merged.Get("X-Bool"))
	assert.Equal(t, []string{"a", "b"}, merged.Values("X-Multi"))
}

func TestMergeHeaders_NoSources(t *testing.T) {
	assert.Empty(t, fetchx.MergeHeaders())
}

func TestHeadersFromHTTP(t *testing.T) {
	h := http.Header{}
	h.Add("X-Multi", "a")
	h.Add("X-Multi", "b")

	merged := fetchx.MergeHeaders(fetchx.HeadersFromHTTP(h))

	assert.Equal(t, []string{"a", "b"}, merged.Values("X-Multi"))
}
