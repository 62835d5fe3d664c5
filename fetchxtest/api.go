package fetchxtest

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
)

// Route is a fake API endpoint.
type Route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

// NewAPIServer starts an HTTP server serving routes with gin. Unknown routes
// answer 404 with a JSON {"code", "message"} body.
func NewAPIServer(routes []Route, middlewares ...gin.HandlerFunc) *httptest.Server {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	for _, m := range middlewares {
		router.Use(m)
	}

	for _, route := range routes {
		router.Handle(route.Method, route.Path, route.Handler)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    http.StatusNotFound,
			"message": http.StatusText(http.StatusNotFound),
		})
	})

	return httptest.NewServer(router)
}
