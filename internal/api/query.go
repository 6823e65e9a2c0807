package api

import (
	"encoding/json"
	"strconv"

	"github.com/labstack/echo/v4"

	"evalgo.org/hostreg/internal/registry"
	"evalgo.org/hostreg/internal/storage"
)

// parsePagination parses limit and skip from query parameters.
// Default limit is 100, default skip is 0.
func parsePagination(c echo.Context) (limit, skip int64) {
	limit = registry.DefaultLimit
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if parsed, err := strconv.ParseInt(limitParam, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	skip = 0
	if skipParam := c.QueryParam("skip"); skipParam != "" {
		if parsed, err := strconv.ParseInt(skipParam, 10, 64); err == nil && parsed >= 0 {
			skip = parsed
		}
	}

	return limit, skip
}

// parseListQuery reads find, select, sort, limit and skip.
func parseListQuery(c echo.Context) (registry.ListQuery, error) {
	q := registry.ListQuery{
		Select: c.QueryParam("select"),
		Sort:   c.QueryParam("sort"),
	}
	q.Limit, q.Skip = parsePagination(c)

	if find := c.QueryParam("find"); find != "" {
		var filter storage.Filter
		if err := json.Unmarshal([]byte(find), &filter); err != nil {
			return q, BadRequestError("Invalid find parameter", "find must be a JSON object: "+err.Error())
		}
		q.Filter = filter
	}
	return q, nil
}
