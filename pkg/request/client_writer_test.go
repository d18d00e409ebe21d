package request

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := NewClientWriter(rec)
	require.Equal(t, http.StatusOK, cw.StatusCode())

	cw.WriteHeader(http.StatusServiceUnavailable)
	require.Equal(t, http.StatusServiceUnavailable, cw.StatusCode())
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
