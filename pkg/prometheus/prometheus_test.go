package prometheus

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.Observe("GET", "/posts/:id", "0", 20*time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `http_request_total{code="0",method="GET",route="/posts/:id"} 1`)
}
