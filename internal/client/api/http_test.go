package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_TrimsTrailingSlash(t *testing.T) {
	c := NewHTTPClient("http://localhost:8000/")
	require.Equal(t, "http://localhost:8000", c.baseURL)
}

func TestHTTPClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		require.NoError(t, r.ParseForm())
		require.Equal(t, "bob@example.com", r.PostFormValue("username"))
		require.Equal(t, "s3cret", r.PostFormValue("password"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok123","token_type":"bearer"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	token, err := c.Login(context.Background(), "bob@example.com", "s3cret")
	require.NoError(t, err)
	require.Equal(t, "tok123", token)
}

func TestHTTPClient_Login_MissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	_, err := c.Login(context.Background(), "bob@example.com", "s3cret")
	require.Error(t, err)
}

func TestHTTPClient_BearerHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"id":"u1","username":"bob","email":"bob@example.com"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	c.SetToken("tok123")

	user, err := c.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer tok123", gotAuth)
	require.Equal(t, "bob", user.Username)
}

func TestHTTPClient_ErrorDetail(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "detail field",
			status:  http.StatusUnauthorized,
			body:    `{"detail":"Incorrect email or password"}`,
			wantMsg: "Incorrect email or password",
		},
		{
			name:    "message field",
			status:  http.StatusBadRequest,
			body:    `{"message":"bad input"}`,
			wantMsg: "bad input",
		},
		{
			name:    "unparseable body falls back to generic",
			status:  http.StatusBadGateway,
			body:    `<html>oops</html>`,
			wantMsg: "HTTP error, status 502",
		},
		{
			name:    "empty body falls back to generic",
			status:  http.StatusInternalServerError,
			body:    "",
			wantMsg: "HTTP error, status 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewHTTPClient(srv.URL)
			_, err := c.ListNotes(context.Background())
			require.Error(t, err)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, tt.status, apiErr.Status)
			require.Equal(t, tt.wantMsg, apiErr.Error())
		})
	}
}

func TestHTTPClient_DeleteNote_NoContent(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	require.NoError(t, c.DeleteNote(context.Background(), "n1"))
	require.Equal(t, http.MethodDelete, gotMethod)
	require.Equal(t, "/notes/n1", gotPath)
}

func TestHTTPClient_CreateNote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "title", req["title"])
		require.Equal(t, "content", req["content"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{
			"id":"n1","userId":"u1","title":"title","content":"content",
			"created_on":"2024-03-01T10:00:00","last_update":"2024-03-01T10:00:00Z"
		}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	c.SetToken("tok")

	note, err := c.CreateNote(context.Background(), "title", "content")
	require.NoError(t, err)
	require.Equal(t, "n1", note.ID)
	require.Equal(t, "2024-03-01T10:00:00Z", note.CreatedOn.String())
	require.Equal(t, "2024-03-01T10:00:00Z", note.LastUpdate.String())
}

func TestHTTPClient_ListNotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/notes", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id":"n1","userId":"u1","title":"a","content":"","created_on":"2024-03-01T10:00:00Z","last_update":"2024-03-01T10:00:00Z"},
			{"id":"n2","userId":"u1","title":"b","content":"","created_on":"2024-03-01T11:00:00Z","last_update":"2024-03-01T11:00:00Z"}
		]`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	c.SetToken("tok")

	notes, err := c.ListNotes(context.Background())
	require.NoError(t, err)
	require.Len(t, notes, 2)
	require.Equal(t, "n1", notes[0].ID)
	require.Equal(t, "n2", notes[1].ID)
}
