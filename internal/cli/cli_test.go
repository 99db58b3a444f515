package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terpdesk/terpdesk/internal/api"
	"github.com/terpdesk/terpdesk/internal/session"
)

// newTestApp wires an App against a test server with a logged-in session.
func newTestApp(t *testing.T, handler http.HandlerFunc) (*App, *bytes.Buffer) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sessionPath := filepath.Join(t.TempDir(), "session.db")
	store, err := session.Open(sessionPath)
	require.NoError(t, err)
	require.NoError(t, store.SetToken("test-token"))
	require.NoError(t, store.Close())

	t.Setenv("TERPDESK_API_URL", srv.URL)
	t.Setenv("TERPDESK_SESSION_PATH", sessionPath)

	app := New()
	out := &bytes.Buffer{}
	app.rootCmd.SetOut(out)
	app.rootCmd.SetErr(out)
	return app, out
}

func TestBareInvocationRestoresLastScreen(t *testing.T) {
	tests := []struct {
		name       string
		lastScreen string
	}{
		{"no last screen defaults to jobs", ""},
		{"jobs screen restored", "jobs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			app, out := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				json.NewEncoder(w).Encode(api.JobList{})
			})

			if tt.lastScreen != "" {
				store, err := session.Open(os.Getenv("TERPDESK_SESSION_PATH"))
				require.NoError(t, err)
				require.NoError(t, store.SetLastScreen(tt.lastScreen))
				require.NoError(t, store.Close())
			}

			app.rootCmd.SetArgs(nil)
			require.NoError(t, app.Execute())

			assert.Equal(t, "/jobs/my-jobs", gotPath)
			assert.Contains(t, out.String(), "No pending actions")
		})
	}
}

func TestUnknownArgumentFails(t *testing.T) {
	app, _ := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	app.rootCmd.SetArgs([]string{"not-a-command"})
	assert.Error(t, app.Execute())
}
