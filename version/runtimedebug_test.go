package version_test

import (
	"testing"

	"github.com/anoideaopen/hotswap/version"
	"github.com/stretchr/testify/assert"
)

func TestBuildInfo(t *testing.T) {
	bi, err := version.BuildInfo()
	assert.NoError(t, err)
	assert.NotNil(t, bi)
}

func TestModule(t *testing.T) {
	assert.Equal(t, version.Devel, version.Module("example.com/not/a/dependency"))
	assert.NotEmpty(t, version.Module("github.com/stretchr/testify"))
}
