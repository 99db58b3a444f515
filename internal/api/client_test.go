package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, StaticToken("test-token"), 5*time.Second)
}

func TestRequestHeaders(t *testing.T) {
	var gotAuth, gotAccept, gotReqID string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotReqID = r.Header.Get("X-Request-Id")
		json.NewEncoder(w).Encode(JobList{})
	})

	_, err := client.MyJobs(context.Background(), MyJobsOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
	assert.NotEmpty(t, gotReqID)
}

func TestEmptyTokenFailsBeforeNetwork(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	client.tokens = StaticToken("")

	_, err := client.MyJobs(context.Background(), MyJobsOptions{})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.False(t, called)
}

func TestUnauthorizedMapsToSessionExpired(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.MyJobs(context.Background(), MyJobsOptions{})
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestExpiryPhraseMapsToSessionExpired(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		expired bool
	}{
		{"400 with expiry phrase", http.StatusBadRequest, `{"message":"Token has expired"}`, true},
		{"403 with expiry phrase", http.StatusForbidden, `{"error":"session expired, please log in again"}`, true},
		{"400 without expiry phrase", http.StatusBadRequest, `{"message":"mileage_rate must be positive"}`, false},
		{"500 with expiry phrase stays a request error", http.StatusInternalServerError, `{"message":"token expired"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.MyJobs(context.Background(), MyJobsOptions{})
			require.Error(t, err)
			assert.Equal(t, tt.expired, errors.Is(err, ErrSessionExpired))
		})
	}
}

func TestRequestErrorCarriesServerMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"job already assigned"}`))
	})

	_, err := client.AcceptJob(context.Background(), "j1", AcceptOptions{})
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusConflict, reqErr.StatusCode)
	assert.Equal(t, "job already assigned", reqErr.Message)
}

func TestRequestErrorErrorEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"unknown result value"}`))
	})

	err := client.DeclineJob(context.Background(), "j1")
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "unknown result value", reqErr.Message)
}

func TestMyJobsQuery(t *testing.T) {
	var got string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.RawQuery
		assert.Equal(t, "/jobs/my-jobs", r.URL.Path)
		json.NewEncoder(w).Encode(JobList{Jobs: []Job{{ID: "j1"}}, Total: 1})
	})

	list, err := client.MyJobs(context.Background(), MyJobsOptions{Limit: 50, Page: 2, Status: StatusCompleted})
	require.NoError(t, err)
	assert.Len(t, list.Jobs, 1)
	assert.Contains(t, got, "limit=50")
	assert.Contains(t, got, "page=2")
	assert.Contains(t, got, "status=completed")
}

func TestAvailableJobsFilters(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jobs/available", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "ASL", q.Get("language"))
		assert.Equal(t, "medical", q.Get("service_type"))
		assert.Equal(t, "true", q.Get("remote_only"))
		json.NewEncoder(w).Encode(JobList{})
	})

	_, err := client.AvailableJobs(context.Background(), AvailableFilters{
		Language:    "ASL",
		ServiceType: "medical",
		RemoteOnly:  true,
	})
	require.NoError(t, err)
}

func TestAcceptJobBody(t *testing.T) {
	miles := 12.5
	rate := 0.72
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jobs/j1/accept", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]float64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.InDelta(t, 12.5, body["mileage_miles"], 0.001)
		assert.InDelta(t, 0.72, body["mileage_rate"], 0.001)
		json.NewEncoder(w).Encode(Job{ID: "j1", Status: StatusAssigned})
	})

	job, err := client.AcceptJob(context.Background(), "j1", AcceptOptions{MileageMiles: &miles, MileageRate: &rate})
	require.NoError(t, err)
	assert.Equal(t, StatusAssigned, job.Status)
}

func TestIndicateAvailabilityPaths(t *testing.T) {
	var paths []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.IndicateAvailability(context.Background(), "j1", true))
	require.NoError(t, client.IndicateAvailability(context.Background(), "j1", false))
	assert.Equal(t, []string{
		"/jobs/j1/indicate-available",
		"/jobs/j1/indicate-not-available",
	}, paths)
}

func TestSubmitCompletionReportMultipart(t *testing.T) {
	dir := t.TempDir()
	attPath := filepath.Join(dir, "receipt.pdf")
	require.NoError(t, os.WriteFile(attPath, []byte("pdf bytes"), 0o644))

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/interpreters/jobs/j1/completion-report", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "completed", r.FormValue("result"))
		assert.Equal(t, "09:00", r.FormValue("pickup_time"))
		assert.Equal(t, "10:30", r.FormValue("dropoff_time"))
		assert.Equal(t, "12.5", r.FormValue("mileage_miles"))

		file, header, err := r.FormFile("files")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "receipt.pdf", header.Filename)
		w.WriteHeader(http.StatusOK)
	})

	miles := 12.5
	err := client.SubmitCompletionReport(context.Background(), "j1", CompletionReportSubmission{
		Result:       "completed",
		PickupTime:   "09:00",
		DropoffTime:  "10:30",
		MileageMiles: &miles,
		Attachments:  []Attachment{{Path: attPath}},
	})
	require.NoError(t, err)
}

func TestSubmitCompletionReportMissingAttachment(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request should not reach the server")
	})

	err := client.SubmitCompletionReport(context.Background(), "j1", CompletionReportSubmission{
		Result:      "completed",
		Attachments: []Attachment{{Path: "/nonexistent/file.pdf"}},
	})
	assert.Error(t, err)
}

func TestEarnings(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/interpreters/earnings", r.URL.Path)
		assert.Equal(t, "month", r.URL.Query().Get("period"))
		json.NewEncoder(w).Encode(EarningsSummary{Period: "month", TotalEarnings: 1234.50, JobCount: 7})
	})

	summary, err := client.Earnings(context.Background(), "month")
	require.NoError(t, err)
	assert.Equal(t, 7, summary.JobCount)
	assert.InDelta(t, 1234.50, summary.TotalEarnings, 0.001)
}

func TestLoginSkipsAuthHeader(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "me@example.com", body["email"])
		json.NewEncoder(w).Encode(LoginResult{Token: "fresh-token", Profile: Profile{Name: "Sam"}})
	})
	client.tokens = StaticToken("")

	result, err := client.Login(context.Background(), "me@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", result.Token)
	assert.Equal(t, "Sam", result.Profile.Name)
}

func TestMagicLinkSkipsAuthHeader(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/magic-link/jobs/tok123", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(Job{ID: "j1"})
	})
	client.tokens = StaticToken("")

	job, err := client.MagicLinkJob(context.Background(), "tok123")
	require.NoError(t, err)
	assert.Equal(t, "j1", job.ID)
}
