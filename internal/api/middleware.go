package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"evalgo.org/hostreg/internal/storage"
)

const (
	minIDLength = 3
	maxIDLength = 256
)

// ValidateContentType rejects POST and PUT bodies that are not JSON.
func ValidateContentType(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		switch req.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			return next(c)
		}

		// nothing to decode
		if req.ContentLength == 0 {
			return next(c)
		}

		contentType := req.Header.Get(echo.HeaderContentType)
		if !strings.HasPrefix(contentType, echo.MIMEApplicationJSON) {
			return BadRequestError(
				"Invalid Content-Type",
				"Content-Type must be 'application/json'. Got: "+contentType,
			)
		}
		return next(c)
	}
}

// ValidateAcceptHeader rejects clients that cannot take a JSON response.
// Websocket upgrades are not checked.
func ValidateAcceptHeader(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		accept := c.Request().Header.Get(echo.HeaderAccept)
		if accept == "" || c.IsWebSocket() {
			return next(c)
		}

		for _, ok := range []string{echo.MIMEApplicationJSON, "application/*", "*/*"} {
			if strings.Contains(accept, ok) {
				return next(c)
			}
		}
		return BadRequestError(
			"Invalid Accept header",
			"API only returns JSON. Accept header must include 'application/json' or '*/*'. Got: "+accept,
		)
	}
}

// ValidateIDFormat checks the :id path parameter. Host ids are opaque, but
// they never contain whitespace and never look like a query operator.
func ValidateIDFormat(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		if id == "" {
			return next(c)
		}

		var reason string
		switch {
		case strings.ContainsAny(id, " \t\r\n"):
			reason = "ID cannot contain whitespace"
		case strings.HasPrefix(id, "$"):
			reason = "ID must not start with '$'"
		case len(id) < minIDLength:
			reason = "ID must be at least " + strconv.Itoa(minIDLength) + " characters long"
		case len(id) > maxIDLength:
			reason = "ID must not exceed " + strconv.Itoa(maxIDLength) + " characters"
		}
		if reason != "" {
			return BadRequestError("Invalid ID format", reason)
		}
		return next(c)
	}
}

// ValidateQueryParams checks the shape of the host list parameters before the
// handler decodes them.
func ValidateQueryParams(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		for _, name := range []string{"limit", "skip"} {
			if v := c.QueryParam(name); v != "" {
				if _, err := strconv.ParseInt(v, 10, 64); err != nil {
					return BadRequestError(
						"Invalid "+name+" parameter",
						name+" must be an integer. Got: "+v,
					)
				}
			}
		}

		if find := c.QueryParam("find"); find != "" {
			raw := bytes.TrimSpace([]byte(find))
			if !json.Valid(raw) || raw[0] != '{' {
				return BadRequestError(
					"Invalid find parameter",
					"find must be a JSON encoded filter document",
				)
			}
		}

		if sort := c.QueryParam("sort"); sort != "" {
			for _, field := range storage.ParseSort(sort) {
				if strings.HasPrefix(field.Field, "$") {
					return BadRequestError(
						"Invalid sort parameter",
						"sort fields must not start with '$'. Got: "+field.Field,
					)
				}
			}
		}

		return next(c)
	}
}

// SecurityHeaders middleware adds security headers to responses
func SecurityHeaders(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Response().Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return next(c)
	}
}
