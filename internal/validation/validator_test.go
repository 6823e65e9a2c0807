package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     string         `json:"name" validate:"required"`
	Homepage string         `json:"homepage,omitempty" validate:"omitempty,url"`
	Items    []sampleItem   `json:"items,omitempty" validate:"dive"`
	Ignored  string         `json:"-" validate:"required"`
	Tags     map[string]int `json:"tags,omitempty"`
}

type sampleItem struct {
	Kind   string `json:"kind" validate:"required"`
	Family int    `json:"family,omitempty" validate:"omitempty,oneof=4 6"`
}

func TestNew(t *testing.T) {
	v := New()
	assert.NotNil(t, v)
	assert.NotNil(t, v.structValidator)
}

func TestValidate_Valid(t *testing.T) {
	v := New()

	result := v.Validate(&sample{
		Name:     "host",
		Homepage: "https://example.org",
		Items:    []sampleItem{{Kind: "owamp", Family: 4}},
		Ignored:  "x",
	})
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidate_FieldErrors(t *testing.T) {
	v := New()

	result := v.Validate(&sample{
		Homepage: "not a url",
		Items:    []sampleItem{{Family: 5}},
		Ignored:  "x",
	})
	require.False(t, result.Valid)

	byField := map[string]ValidationError{}
	for _, e := range result.Errors {
		byField[e.Field] = e
	}

	assert.Equal(t, "is required", byField["name"].Message)
	assert.Equal(t, "must be a valid URL", byField["homepage"].Message)
	assert.Equal(t, "not a url", byField["homepage"].Value)
	assert.Equal(t, "is required", byField["items[0].kind"].Message)
	assert.Equal(t, "must be one of: 4, 6", byField["items[0].family"].Message)
	assert.Contains(t, result.Error(), "name: is required")
}

func TestValidate_Except(t *testing.T) {
	v := New()

	result := v.Validate(&sample{Ignored: "x"}, "Name")
	assert.True(t, result.Valid, "errors: %v", result.Errors)
}
