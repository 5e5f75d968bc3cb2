package tracing

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestSafeErrorKeepsOutermostMessage(t *testing.T) {
	err := fmt.Errorf("update estimate: %w", errors.New("near \"SELECT\": syntax error"))
	assert.Equal(t, "update estimate", SafeError(err).Error())
	assert.Nil(t, SafeError(nil))
}

func TestGinMiddlewareStartsSpan(t *testing.T) {
	_, err := NewProvider(nil, Config{ServiceName: "estimator", SamplingRatio: 1}, nil)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())

	var sc trace.SpanContext
	r.GET("/estimate", func(c *gin.Context) {
		sc = trace.SpanFromContext(c.Request.Context()).SpanContext()
		c.Status(http.StatusOK)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/estimate", nil))

	assert.True(t, sc.IsValid())
}
