package dispatch_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/seb7887/gofw/fetchx"
	"github.com/seb7887/gofw/fetchx/dispatch"
	"github.com/seb7887/gofw/fetchx/fetchxtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestRun_AgainstAPIServer(t *testing.T) {
	server := fetchxtest.NewAPIServer([]fetchxtest.Route{
		{
			Method: http.MethodGet,
			Path:   "/blogposts/:post_id",
			Handler: func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"slug": c.Param("post_id")})
			},
		},
		{
			Method: http.MethodDelete,
			Path:   "/blogposts/:post_id",
			Handler: func(c *gin.Context) {
				c.Status(http.StatusNoContent)
			},
		},
	})
	defer server.Close()

	client := fetchx.NewClient(fetchx.WithBaseURL(server.URL))
	pool := dispatch.NewPool(4, 8)
	defer pool.Stop()

	jobs := []dispatch.Job{
		{Method: http.MethodGet, Path: "/blogposts/{post_id}", Key: "a", Options: []fetchx.RequestOption{
			fetchx.WithPathParams(map[string]any{"post_id": "a"}),
		}},
		{Method: http.MethodGet, Path: "/blogposts/{post_id}", Key: "b", Options: []fetchx.RequestOption{
			fetchx.WithPathParams(map[string]any{"post_id": "b"}),
		}},
		{Method: http.MethodDelete, Path: "/blogposts/{post_id}", Key: "a", Options: []fetchx.RequestOption{
			fetchx.WithPathParams(map[string]any{"post_id": "a"}),
		}},
		{Method: http.MethodGet, Path: "/missing"},
	}

	outcomes, err := dispatch.Run(context.Background(), client, pool, jobs)

	require.NoError(t, err)
	require.Len(t, outcomes, 4)
	assert.Equal(t, map[string]any{"slug": "a"}, outcomes[0].Result.Data())
	assert.Equal(t, map[string]any{"slug": "b"}, outcomes[1].Result.Data())
	assert.True(t, outcomes[2].Result.Empty())

	assert.False(t, outcomes[3].Result.OK())
	assert.Equal(t, map[string]any{"code": float64(404), "message": "Not Found"}, outcomes[3].Result.ErrorBody())
}

func TestRun_CombinesErrors(t *testing.T) {
	refused := errors.New("connection refused")
	mockTransport := &fetchxtest.MockTransport{
		Func: func(_ context.Context, req *http.Request) (*http.Response, error) {
			if req.URL.Path == "/down" {
				return nil, refused
			}
			return fetchxtest.NewResponse(http.StatusOK, nil, `{}`), nil
		},
	}
	client := fetchx.NewClient(fetchx.WithTransport(mockTransport))
	pool := dispatch.NewPool(2, 2)
	defer pool.Stop()

	outcomes, err := dispatch.Run(context.Background(), client, pool, []dispatch.Job{
		{Method: http.MethodGet, Path: "/down"},
		{Method: http.MethodGet, Path: "/up"},
		{Method: http.MethodPost, Path: "/down"},
	})

	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.ErrorIs(t, err, refused)
	assert.Contains(t, err.Error(), "GET /down")
	assert.Contains(t, err.Error(), "POST /down")

	assert.ErrorIs(t, outcomes[0].Err, refused)
	assert.Nil(t, outcomes[1].Err)
	assert.True(t, outcomes[1].Result.OK())
}

func TestRun_StoppedPool(t *testing.T) {
	client := fetchx.NewClient(fetchx.WithTransport(&fetchxtest.MockTransport{}))
	pool := dispatch.NewPool(1, 1)
	pool.Stop()

	outcomes, err := dispatch.Run(context.Background(), client, pool, []dispatch.Job{{Method: http.MethodGet, Path: "/x"}})

	assert.ErrorIs(t, err, dispatch.ErrPoolStopped)
	assert.ErrorIs(t, outcomes[0].Err, dispatch.ErrPoolStopped)
}
