package datasource

import (
	"net/http"
	"net/http/httptest"

	"github.com/redvlock/agenta/internal/evaluation"
	cbhttp "github.com/redvlock/agenta/pkg/clientbase/http"
	ltest "github.com/redvlock/agenta/pkg/test"
)

// NewTestingAgenta serves the given handler as a fake evaluation backend and
// returns a datasource pointed at it. The server is torn down with the test.
func NewTestingAgenta(t ltest.T, registry *evaluation.Registry, handler http.Handler) EvaluationStore {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := cbhttp.NewInstance(&cbhttp.Config{})
	if err != nil {
		t.Fatalf("failed to build http client: %s", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})

	return NewAgenta(&Config{AgentaBaseUrl: server.URL}, client, registry)
}
