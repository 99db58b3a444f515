package cli

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terpdesk/terpdesk/internal/api"
)

func TestAcceptRejectsRateWithoutMiles(t *testing.T) {
	called := false
	app, _ := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	app.rootCmd.SetArgs([]string{"accept", "j1", "--rate", "0.50"})
	err := app.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--miles")
	assert.False(t, called, "rejected before any request")
}

func TestAcceptClampsMileageRate(t *testing.T) {
	var body map[string]float64
	app, out := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jobs/j1/accept", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(api.Job{ID: "j1", Status: api.StatusAssigned})
	})

	app.rootCmd.SetArgs([]string{"accept", "j1", "--miles", "10", "--rate", "0.95"})
	require.NoError(t, app.Execute())

	assert.InDelta(t, 10, body["mileage_miles"], 0.001)
	assert.InDelta(t, 0.72, body["mileage_rate"], 0.001)
	assert.Contains(t, out.String(), "clamped")
	assert.Contains(t, out.String(), "Accepted job j1")
}

func TestAcceptWithoutMileage(t *testing.T) {
	var body map[string]any
	app, _ := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(api.Job{ID: "j1", Status: api.StatusAssigned})
	})

	app.rootCmd.SetArgs([]string{"accept", "j1"})
	require.NoError(t, app.Execute())

	assert.NotContains(t, body, "mileage_miles")
	assert.NotContains(t, body, "mileage_rate")
}
