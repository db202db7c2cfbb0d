package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeAPI(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		if body.Password != "password123" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"code":"INVALID_CREDENTIALS","domain":"auth","message":"Invalid email or password"}}`))
			return
		}

		_, _ = w.Write([]byte(`{"token":"access-1","refreshToken":"refresh-1","user":{"id":"u1","email":"` + body.Email + `","role":"jobseeker"}}`))
	})

	mux.HandleFunc("/api/v1/users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"code":"UNAUTHORIZED","domain":"auth","message":"Authentication required"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"u1","name":"Anna","email":"anna@test.com","role":"jobseeker"}`))
	})

	mux.HandleFunc("/api/v1/jobs/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "go,backend", r.URL.Query().Get("tags"))
		_, _ = w.Write([]byte(`{"jobs":[{"id":"j1","title":"Go Engineer","tags":["go"]}]}`))
	})

	mux.HandleFunc("/api/v1/jobs/j1/apply", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(10<<20))
		assert.Equal(t, "+123456", r.FormValue("phoneNumber"))

		_, header, err := r.FormFile("resume")
		require.NoError(t, err)
		assert.Equal(t, "resume.pdf", header.Filename)

		assert.Equal(t, http.MethodPut, r.Method)
		_, _ = w.Write([]byte(`{"application":{"id":"a1","jobId":"j1","status":"pending"}}`))
	})

	return httptest.NewServer(mux)
}

func TestClient_LoginAndMe(t *testing.T) {
	server := newFakeAPI(t)
	defer server.Close()

	c := New(server.URL)
	ctx := context.Background()

	user, err := c.Login(ctx, "anna@test.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Anna", me.Name)
}

func TestClient_LoginFailure(t *testing.T) {
	server := newFakeAPI(t)
	defer server.Close()

	c := New(server.URL)

	_, err := c.Login(context.Background(), "anna@test.com", "wrong")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIALS", apiErr.Code)
}

func TestClient_SearchJobs(t *testing.T) {
	server := newFakeAPI(t)
	defer server.Close()

	c := New(server.URL)

	jobs, err := c.SearchJobs(context.Background(), []string{"go", "backend"}, "", "")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Go Engineer", jobs[0].Title)
}

func TestClient_Apply(t *testing.T) {
	server := newFakeAPI(t)
	defer server.Close()

	c := New(server.URL, WithToken("access-1"))

	application, err := c.Apply(context.Background(), "j1", "+123456", "hello", "resume.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "a1", application.ID)
	assert.Equal(t, "pending", application.Status)
}
