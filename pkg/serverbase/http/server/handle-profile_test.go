package sbhttpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redvlock/agenta/pkg/app"
)

func TestProfileHandlersAreRouted(t *testing.T) {
	instance, err := NewInstance(&Config{}, app.NewInstance())
	require.NoError(t, err)

	instance.registerProfileHandlers()

	for _, path := range []string{
		"/debug/pprof/",
		"/debug/pprof/heap",
		"/debug/pprof/goroutine",
		"/debug/pprof/cmdline",
	} {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("GET", path, nil)
		instance.router.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code, path)
	}
}
