package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo(t *testing.T) {
	old := Version
	Version = "1.2.3"
	defer func() { Version = old }()

	info := Get()
	assert.Equal(t, "1.2.3", info.Version)
	assert.Contains(t, info.String(), "hostreg 1.2.3")
	assert.Contains(t, info.Platform, "/")
	assert.Equal(t, "hostreg/1.2.3", UserAgent())
}
