package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runMiddleware passes req through mw into a handler answering 200 and
// returns the middleware's error.
func runMiddleware(mw echo.MiddlewareFunc, req *http.Request, setup func(echo.Context)) (echo.Context, error) {
	e := echo.New()
	c := e.NewContext(req, httptest.NewRecorder())
	if setup != nil {
		setup(c)
	}
	err := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})(c)
	return c, err
}

func assertBadRequest(t *testing.T, err error, message string) {
	t.Helper()
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Code)
	assert.Equal(t, message, apiErr.Message)
}

func TestValidateContentType(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		contentType string
		body        string
		wantErr     bool
	}{
		{name: "POST with application/json", method: http.MethodPost, contentType: "application/json", body: `{"hostname":"a"}`},
		{name: "PUT with charset", method: http.MethodPut, contentType: "application/json; charset=utf-8", body: `{}`},
		{name: "POST with text/plain", method: http.MethodPost, contentType: "text/plain", body: "hostname", wantErr: true},
		{name: "PUT without content type", method: http.MethodPut, body: `{}`, wantErr: true},
		{name: "POST with empty body", method: http.MethodPost},
		{name: "GET is not checked", method: http.MethodGet, contentType: "text/html"},
		{name: "DELETE is not checked", method: http.MethodDelete, contentType: "text/html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/v1/hosts", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set(echo.HeaderContentType, tt.contentType)
			}

			_, err := runMiddleware(ValidateContentType, req, nil)
			if tt.wantErr {
				assertBadRequest(t, err, "Invalid Content-Type")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateAcceptHeader(t *testing.T) {
	tests := []struct {
		name      string
		accept    string
		websocket bool
		wantErr   bool
	}{
		{name: "application/json", accept: "application/json"},
		{name: "any", accept: "*/*"},
		{name: "application wildcard", accept: "application/*"},
		{name: "missing", accept: ""},
		{name: "browser style list", accept: "text/html,application/json;q=0.9"},
		{name: "html only", accept: "text/html", wantErr: true},
		{name: "websocket upgrade", accept: "text/html", websocket: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/hosts", nil)
			if tt.accept != "" {
				req.Header.Set(echo.HeaderAccept, tt.accept)
			}
			if tt.websocket {
				req.Header.Set(echo.HeaderConnection, "Upgrade")
				req.Header.Set(echo.HeaderUpgrade, "websocket")
			}

			_, err := runMiddleware(ValidateAcceptHeader, req, nil)
			if tt.wantErr {
				assertBadRequest(t, err, "Invalid Accept header")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateIDFormat(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "uuid", id: "0b7c2f64-8d7e-4b59-a7a3-0d6f4f0f9c11"},
		{name: "object id", id: "5c1a7e0b2f8e4c3a9d6b1e20"},
		{name: "min length", id: "abc"},
		{name: "no id", id: ""},
		{name: "too short", id: "ab", wantErr: true},
		{name: "space", id: "host 1", wantErr: true},
		{name: "tab", id: "host\t1", wantErr: true},
		{name: "operator", id: "$where", wantErr: true},
		{name: "too long", id: strings.Repeat("a", maxIDLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			_, err := runMiddleware(ValidateIDFormat, req, func(c echo.Context) {
				c.SetParamNames("id")
				c.SetParamValues(tt.id)
			})
			if tt.wantErr {
				assertBadRequest(t, err, "Invalid ID format")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateQueryParams(t *testing.T) {
	tests := []struct {
		name    string
		query   map[string]string
		wantMsg string
	}{
		{name: "no query params"},
		{name: "valid limit and skip", query: map[string]string{"limit": "10", "skip": "20"}},
		{name: "negative values are left to the handler", query: map[string]string{"limit": "-1"}},
		{name: "non numeric limit", query: map[string]string{"limit": "ten"}, wantMsg: "Invalid limit parameter"},
		{name: "non numeric skip", query: map[string]string{"skip": "1.5"}, wantMsg: "Invalid skip parameter"},
		{name: "valid find filter", query: map[string]string{"find": `{"services.ma":"h1"}`}},
		{name: "find with leading space", query: map[string]string{"find": ` {"hostname":"a"}`}},
		{name: "malformed find filter", query: map[string]string{"find": `{"hostname":`}, wantMsg: "Invalid find parameter"},
		{name: "find array", query: map[string]string{"find": `[{"hostname":"a"}]`}, wantMsg: "Invalid find parameter"},
		{name: "valid sort", query: map[string]string{"sort": "-hostname sitename"}},
		{name: "operator sort", query: map[string]string{"sort": "-$natural"}, wantMsg: "Invalid sort parameter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			for k, v := range tt.query {
				values.Set(k, v)
			}
			req := httptest.NewRequest(http.MethodGet, "/api/v1/hosts?"+values.Encode(), nil)

			_, err := runMiddleware(ValidateQueryParams, req, nil)
			if tt.wantMsg != "" {
				assertBadRequest(t, err, tt.wantMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	c, err := runMiddleware(SecurityHeaders, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	require.NoError(t, err)

	headers := c.Response().Header()
	assert.Equal(t, "nosniff", headers.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", headers.Get("X-Frame-Options"))
	assert.Equal(t, "1; mode=block", headers.Get("X-Xss-Protection"))
	assert.Equal(t, "strict-origin-when-cross-origin", headers.Get("Referrer-Policy"))
}
