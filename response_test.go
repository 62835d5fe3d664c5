package fetchx_test

import (
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/seb7887/gofw/fetchx"
	"github.com/seb7887/gofw/fetchx/fetchxtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_NoContentIsNeverRead(t *testing.T) {
	body := fetchxtest.NewTrackingBody(`{"ignored":true}`)
	resp := &http.Response{StatusCode: http.StatusNoContent, Header: http.Header{}, Body: body}

	res, err := fetchx.Resolve(resp, fetchx.ParseJSON)

	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.True(t, res.Empty())
	assert.Equal(t, map[string]any{}, res.Data())
	assert.Nil(t, res.ErrorBody())
	assert.False(t, body.WasRead())
	assert.True(t, body.WasClosed())
}

func TestResolve_ZeroContentLengthFailure(t *testing.T) {
	body := fetchxtest.NewTrackingBody("")
	resp := &http.Response{
		StatusCode: http.StatusNotFound,
		Header:     http.Header{"Content-Length": {"0"}},
		Body:       body,
	}

	res, err := fetchx.Resolve(resp, fetchx.ParseJSON)

	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.True(t, res.Empty())
	assert.Equal(t, map[string]any{}, res.ErrorBody())
	assert.Nil(t, res.Data())
	assert.False(t, body.WasRead())
}

func TestResolve_ParseModes(t *testing.T) {
	header := http.Header{"Content-Type": {"application/json"}}

	t.Run("json", func(t *testing.T) {
		res, err := fetchx.Resolve(fetchxtest.NewResponse(200, header, `{"id":1,"tags":["a"]}`), fetchx.ParseJSON)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"id": float64(1), "tags": []any{"a"}}, res.Data())
	})

	t.Run("text", func(t *testing.T) {
		res, err := fetchx.Resolve(fetchxtest.NewResponse(200, header, `{"id":1}`), fetchx.ParseText)
		require.NoError(t, err)
		assert.Equal(t, `{"id":1}`, res.Data())
	})

	t.Run("blob", func(t *testing.T) {
		res, err := fetchx.Resolve(fetchxtest.NewResponse(200, header, "abc"), fetchx.ParseBlob)
		require.NoError(t, err)
		blob, ok := res.Data().(fetchx.Blob)
		require.True(t, ok)
		assert.Equal(t, "application/json", blob.Type)
		assert.Equal(t, 3, blob.Size())
		assert.Equal(t, "abc", blob.Text())
	})

	t.Run("arrayBuffer", func(t *testing.T) {
		res, err := fetchx.Resolve(fetchxtest.NewResponse(200, header, "abc"), fetchx.ParseArrayBuffer)
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), res.Data())
	})

	t.Run("stream", func(t *testing.T) {
		resp := fetchxtest.NewResponse(200, header, "chunked")
		res, err := fetchx.Resolve(resp, fetchx.ParseStream)
		require.NoError(t, err)

		stream, ok := res.Data().(io.ReadCloser)
		require.True(t, ok)
		data, err := io.ReadAll(stream)
		require.NoError(t, err)
		assert.Equal(t, "chunked", string(data))
		assert.NoError(t, stream.Close())
	})

	t.Run("unknown mode reads text", func(t *testing.T) {
		res, err := fetchx.Resolve(fetchxtest.NewResponse(200, header, "plain"), fetchx.ParseAs(99))
		require.NoError(t, err)
		assert.Equal(t, "plain", res.Data())
	})
}

func TestResolve_InvalidJSONOnSuccess(t *testing.T) {
	_, err := fetchx.Resolve(fetchxtest.NewResponse(200, nil, "not json"), fetchx.ParseJSON)

	var reqErr *fetchx.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, fetchx.CauseDecodeResponse, reqErr.Cause)
	assert.Equal(t, 200, reqErr.StatusCode())
}

func TestResolve_ErrorBodies(t *testing.T) {
	t.Run("default response with JSON body", func(t *testing.T) {
		resp := fetchxtest.JSONResponse(500, map[string]any{"message": "An unexpected error occurred"})

		res, err := fetchx.Resolve(resp, fetchx.ParseJSON)

		require.NoError(t, err)
		assert.False(t, res.OK())
		assert.Equal(t, 500, res.StatusCode())
		errBody, ok := res.ErrorBody().(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "An unexpected error occurred", errBody["message"])
		assert.Nil(t, res.Data())
	})

	t.Run("text fallback", func(t *testing.T) {
		res, err := fetchx.Resolve(fetchxtest.NewResponse(502, nil, "Bad Gateway"), fetchx.ParseJSON)

		require.NoError(t, err)
		assert.Equal(t, "Bad Gateway", res.ErrorBody())
	})

	t.Run("parse mode does not apply to errors", func(t *testing.T) {
		res, err := fetchx.Resolve(fetchxtest.NewResponse(400, nil, `{"code":"bad"}`), fetchx.ParseText)

		require.NoError(t, err)
		assert.Equal(t, map[string]any{"code": "bad"}, res.ErrorBody())
	})
}

func TestResolve_BodyCanBeReadAgain(t *testing.T) {
	resp := fetchxtest.NewResponse(200, nil, `{"a":1}`)

	res, err := fetchx.Resolve(resp, fetchx.ParseJSON)
	require.NoError(t, err)

	data, err := io.ReadAll(res.Response.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))
}

func TestResolve_ExactlyOneVariant(t *testing.T) {
	for _, status := range []int{200, 201, 204, 299, 300, 400, 404, 500} {
		res, err := fetchx.Resolve(fetchxtest.NewResponse(status, nil, `{}`), fetchx.ParseJSON)
		require.NoError(t, err)

		hasData := res.Data() != nil
		hasErr := res.ErrorBody() != nil
		assert.NotEqual(t, hasData, hasErr, "status %d", status)
		assert.Equal(t, status >= 200 && status < 300, res.OK(), "status %d", status)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestResolve_ReadError(t *testing.T) {
	resp := &http.Response{StatusCode: 200, Header: http.Header{}, Body: io.NopCloser(failingReader{})}

	_, err := fetchx.Resolve(resp, fetchx.ParseJSON)

	var reqErr *fetchx.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, fetchx.CauseReadBody, reqErr.Cause)
}

func TestResolve_NilResponse(t *testing.T) {
	_, err := fetchx.Resolve(nil, fetchx.ParseJSON)

	assert.ErrorIs(t, err, fetchx.ErrNilResponse)
}

func TestParseParseAs(t *testing.T) {
	for _, mode := range []fetchx.ParseAs{fetchx.ParseJSON, fetchx.ParseText, fetchx.ParseBlob, fetchx.ParseArrayBuffer, fetchx.ParseStream} {
		parsed, err := fetchx.ParseParseAs(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, parsed)
	}

	_, err := fetchx.ParseParseAs("xml")
	assert.Error(t, err)
}
