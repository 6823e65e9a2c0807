package api

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evalgo.org/hostreg/internal/storage"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name        string
		queryParams map[string]string
		wantLimit   int64
		wantSkip    int64
	}{
		{
			name:        "no parameters - use defaults",
			queryParams: map[string]string{},
			wantLimit:   100,
			wantSkip:    0,
		},
		{
			name: "custom limit and skip",
			queryParams: map[string]string{
				"limit": "50",
				"skip":  "25",
			},
			wantLimit: 50,
			wantSkip:  25,
		},
		{
			name: "large limit is kept",
			queryParams: map[string]string{
				"limit": "5000",
			},
			wantLimit: 5000,
			wantSkip:  0,
		},
		{
			name: "negative limit - use default",
			queryParams: map[string]string{
				"limit": "-10",
			},
			wantLimit: 100,
			wantSkip:  0,
		},
		{
			name: "negative skip - use default",
			queryParams: map[string]string{
				"skip": "-5",
			},
			wantLimit: 100,
			wantSkip:  0,
		},
		{
			name: "invalid limit - use default",
			queryParams: map[string]string{
				"limit": "abc",
			},
			wantLimit: 100,
			wantSkip:  0,
		},
		{
			name: "zero limit - use default",
			queryParams: map[string]string{
				"limit": "0",
			},
			wantLimit: 100,
			wantSkip:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := contextWithQuery(tt.queryParams)

			limit, skip := parsePagination(c)

			if limit != tt.wantLimit {
				t.Errorf("parsePagination() limit = %v, want %v", limit, tt.wantLimit)
			}
			if skip != tt.wantSkip {
				t.Errorf("parsePagination() skip = %v, want %v", skip, tt.wantSkip)
			}
		})
	}
}

func TestParseListQuery(t *testing.T) {
	c := contextWithQuery(map[string]string{
		"find":   `{"$or":[{"tests.center":"h1"},{"tests.nahosts":"h1"}]}`,
		"select": "hostname sitename",
		"sort":   "-hostname",
		"limit":  "10",
	})

	q, err := parseListQuery(c)
	require.NoError(t, err)
	assert.Equal(t, "hostname sitename", q.Select)
	assert.Equal(t, "-hostname", q.Sort)
	assert.Equal(t, int64(10), q.Limit)
	assert.Equal(t, int64(0), q.Skip)
	require.Contains(t, q.Filter, "$or")
	assert.Len(t, q.Filter["$or"], 2)
}

func TestParseListQuery_BadFind(t *testing.T) {
	for _, find := range []string{`[1,2]`, `"hostname"`, `{`} {
		_, err := parseListQuery(contextWithQuery(map[string]string{"find": find}))
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr, "find=%s", find)
		assert.Equal(t, 400, apiErr.Code)
	}

	q, err := parseListQuery(contextWithQuery(map[string]string{"find": `{}`}))
	require.NoError(t, err)
	assert.Equal(t, storage.Filter{}, q.Filter)
}

func contextWithQuery(params map[string]string) echo.Context {
	e := echo.New()
	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}
	req := httptest.NewRequest("GET", "/?"+values.Encode(), nil)
	return e.NewContext(req, httptest.NewRecorder())
}
