package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/keepnotes/internal/client/models"
)

// maxErrorBody bounds how much of a failed response we read while looking
// for a structured error message.
const maxErrorBody = 64 << 10

// HTTPClient talks to the backend over its REST contract. It retains only
// the base URL and the current access token; everything else is per call.
type HTTPClient struct {
	baseURL     string
	httpc       *http.Client
	accessToken string
}

// NewHTTPClient constructs a client for the given base URL. No client-side
// timeout is set; the transport default applies.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
	}
}

// SetToken installs the bearer token attached to subsequent authenticated
// calls. An empty string removes it.
func (c *HTTPClient) SetToken(token string) {
	c.accessToken = token
}

func (c *HTTPClient) Token() string {
	return c.accessToken
}

func (c *HTTPClient) Signup(ctx context.Context, username, email, password string) (*models.User, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var user models.User
	if err := c.doJSON(ctx, http.MethodPost, "/signup", body, false, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for an access token. The backend expects a
// form-encoded body whose username field carries the email.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(req, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", &Error{Status: http.StatusOK, Message: "login response missing access token"}
	}
	return resp.AccessToken, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.doJSON(ctx, http.MethodGet, "/users/me", nil, true, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) ListNotes(ctx context.Context) ([]models.Note, error) {
	var notes []models.Note
	if err := c.doJSON(ctx, http.MethodGet, "/notes", nil, true, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *HTTPClient) CreateNote(ctx context.Context, title, content string) (*models.Note, error) {
	body := map[string]string{"title": title, "content": content}
	var note models.Note
	if err := c.doJSON(ctx, http.MethodPost, "/notes", body, true, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *HTTPClient) UpdateNote(ctx context.Context, id, title, content string) (*models.Note, error) {
	body := map[string]string{"title": title, "content": content}
	var note models.Note
	if err := c.doJSON(ctx, http.MethodPut, "/notes/"+url.PathEscape(id), body, true, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *HTTPClient) DeleteNote(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id), nil, true, nil)
}

// doJSON issues a request with an optional JSON body and decodes a JSON
// response into out (which may be nil for void results).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, authed bool, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	return c.do(req, out)
}

// do executes the request and maps the response: non-2xx becomes *Error,
// an empty success body is a void result, anything else is decoded into out.
func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// decodeError extracts a structured message from an error response body,
// falling back to a generic "HTTP error, status <code>" message.
func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Detail != "" {
			return &Error{Status: resp.StatusCode, Message: payload.Detail}
		}
		if payload.Message != "" {
			return &Error{Status: resp.StatusCode, Message: payload.Message}
		}
	}
	return &Error{Status: resp.StatusCode, Message: genericMessage(resp.StatusCode)}
}
