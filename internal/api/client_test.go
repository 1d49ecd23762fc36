package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "jobportal-client/internal/common/errors"
	"jobportal-client/internal/common/logger"
	"jobportal-client/internal/models"
)

// ==========================
// Mock Implementations
// ==========================

type MockCredentials struct {
	mu      sync.Mutex
	token   string
	cleared bool
}

func (m *MockCredentials) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *MockCredentials) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.cleared = true
	return nil
}

func (m *MockCredentials) Cleared() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cleared
}

func newTestClient(t *testing.T, handler http.HandlerFunc, creds *MockCredentials, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(server.URL, 5*time.Second, creds, logger.NewTestLogger(t), opts...)
	return client, server
}

// ==========================
// Core Behavior Tests
// ==========================

func TestClient_AttachesBearerCredential(t *testing.T) {
	creds := &MockCredentials{token: "tok-xyz"}
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"data":[]}`))
	}, creds)

	_, err := client.Jobs().List(context.Background(), models.JobFilter{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-xyz", gotAuth)
}

func TestClient_NoCredential_NoHeader(t *testing.T) {
	creds := &MockCredentials{}
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"data":[]}`))
	}, creds)

	_, err := client.Jobs().List(context.Background(), models.JobFilter{})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_Unauthorized_ClearsStorageAndFiresHook(t *testing.T) {
	creds := &MockCredentials{token: "tok-expired"}
	hookFired := false
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"jwt expired"}`))
	}, creds, WithUnauthorizedHook(func() { hookFired = true }))

	_, err := client.Jobs().MyJobs(context.Background())
	require.Error(t, err)
	assert.True(t, apierrors.IsAuth(err))
	assert.True(t, creds.Cleared())
	assert.True(t, hookFired)
}

func TestClient_Unauthorized_OnAuthSurface_DoesNotClear(t *testing.T) {
	creds := &MockCredentials{token: ""}
	hookFired := false
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	}, creds, WithUnauthorizedHook(func() { hookFired = true }))

	_, _, err := client.Auth().Login(context.Background(), "a@b.c", "nope")
	require.Error(t, err)
	assert.True(t, apierrors.IsAuth(err))
	assert.Equal(t, "Invalid credentials", apierrors.UserMessage(err))
	assert.False(t, creds.Cleared())
	assert.False(t, hookFired)
}

func TestClient_ErrorNormalization(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		check     func(t *testing.T, err error)
	}{
		{
			name:   "4xx carries server message verbatim",
			status: 422,
			body:   `{"message":"minSalary must be below maxSalary"}`,
			check: func(t *testing.T, err error) {
				assert.True(t, apierrors.IsValidation(err))
				assert.Equal(t, "minSalary must be below maxSalary", apierrors.UserMessage(err))
			},
		},
		{
			name:   "5xx maps to server kind",
			status: 503,
			body:   `{"message":"upstream down"}`,
			check: func(t *testing.T, err error) {
				assert.True(t, apierrors.IsServer(err))
			},
		},
		{
			name:   "unparseable error body still yields typed error",
			status: 400,
			body:   `<html>bad gateway</html>`,
			check: func(t *testing.T, err error) {
				assert.True(t, apierrors.IsValidation(err))
				assert.Equal(t, "Request rejected", apierrors.UserMessage(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := &MockCredentials{token: "tok"}
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}, creds)

			_, err := client.Jobs().MyJobs(context.Background())
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	creds := &MockCredentials{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // force connection refused

	client := New(server.URL, time.Second, creds, logger.NewNoOpLogger())
	_, err := client.Jobs().MyJobs(context.Background())
	require.Error(t, err)
	assert.True(t, apierrors.IsNetwork(err))
}

// ==========================
// Surface Tests
// ==========================

func TestAuth_Login_DecodesTokenAndUser(t *testing.T) {
	creds := &MockCredentials{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "asha@example.com", body["email"])

		w.Write([]byte(`{"token":"tok-1","user":{"_id":"u-1","name":"Asha","email":"asha@example.com","role":"candidate"}}`))
	}, creds)

	user, token, err := client.Auth().Login(context.Background(), "asha@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, models.RoleCandidate, user.Role)
}

func TestJobs_List_EncodesFilter(t *testing.T) {
	creds := &MockCredentials{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jobs", r.URL.Path)
		assert.Equal(t, "go", r.URL.Query().Get("keyword"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		w.Write([]byte(`{"success":true,"data":[{"_id":"j-1","title":"Go Developer"}],"total":21,"page":2,"pages":3}`))
	}, creds)

	page, err := client.Jobs().List(context.Background(), models.JobFilter{Keyword: "go", Page: 2})
	require.NoError(t, err)
	require.Len(t, page.Jobs, 1)
	assert.Equal(t, "Go Developer", page.Jobs[0].Title)
	assert.Equal(t, 21, page.Total)
	assert.Equal(t, 3, page.Pages)
}

func TestJobs_SetStatus_SendsStatusBody(t *testing.T) {
	creds := &MockCredentials{token: "tok"}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/jobs/j-1", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Closed", body["status"])
		w.Write([]byte(`{"success":true}`))
	}, creds)

	err := client.Jobs().SetStatus(context.Background(), "j-1", models.JobStatusClosed)
	require.NoError(t, err)
}

func TestApplications_Apply_SendsJobAndResume(t *testing.T) {
	creds := &MockCredentials{token: "tok"}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/applications", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "j-7", body["jobId"])
		assert.Equal(t, "https://cdn.example.com/resume.pdf", body["resumeUrl"])

		w.Write([]byte(`{"success":true,"data":{"_id":"a-1","status":"Applied"}}`))
	}, creds)

	app, err := client.Applications().Apply(context.Background(), "j-7", "https://cdn.example.com/resume.pdf")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApplied, app.Status)
}

func TestApplications_SetStatus(t *testing.T) {
	creds := &MockCredentials{token: "tok"}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/applications/a-1/status", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Interviewing", body["status"])
		w.Write([]byte(`{"success":true}`))
	}, creds)

	err := client.Applications().SetStatus(context.Background(), "a-1", models.StatusInterviewing)
	require.NoError(t, err)
}

func TestCandidate_SavedJobs_RoundTripCalls(t *testing.T) {
	creds := &MockCredentials{token: "tok"}
	var calls []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		w.Write([]byte(`{"success":true,"data":[]}`))
	}, creds)

	require.NoError(t, client.Candidate().SaveJob(context.Background(), "j-1"))
	require.NoError(t, client.Candidate().UnsaveJob(context.Background(), "j-1"))

	assert.Equal(t, []string{
		"POST /candidate/saved-jobs",
		"DELETE /candidate/saved-jobs/j-1",
	}, calls)
}

func TestCandidate_UploadResume_Multipart(t *testing.T) {
	creds := &MockCredentials{token: "tok"}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("resume")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "cv.pdf", header.Filename)

		w.Write([]byte(`{"success":true,"data":{"_id":"r-1","name":"cv.pdf","url":"https://cdn.example.com/cv.pdf"}}`))
	}, creds)

	resume, err := client.Candidate().UploadResume(context.Background(), "cv.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "r-1", resume.ID)
	assert.Equal(t, "https://cdn.example.com/cv.pdf", resume.URL)
}

func TestNotifications_List(t *testing.T) {
	creds := &MockCredentials{token: "tok"}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/notifications", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":[{"_id":"n-1","title":"New applicant","message":"Asha applied","isRead":false,"createdAt":"2024-06-15T10:00:00Z"}]}`))
	}, creds)

	notifications, err := client.Notifications().List(context.Background())
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "New applicant", notifications[0].Title)
	assert.False(t, notifications[0].IsRead)
}
