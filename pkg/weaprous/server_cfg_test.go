package weaprous

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestCfg(t *testing.T, data string) string {
	filePath := filepath.Join(t.TempDir(), "weaprous.json")
	require.NoError(t, os.WriteFile(filePath, []byte(data), 0600))
	return filePath
}

func TestServerCfgLoad(t *testing.T) {
	assert := assert.New(t)

	filePath := writeTestCfg(t, `
{
  "server": {
    "listeners": [{"address": "localhost:8080"}],
    "root": "/srv/weaprous",
    "authentication": {
      "basic": {"credentials": ["bob:0123abcd"]}
    }
  }
}`)

	var cfg ServerCfg
	require.NoError(t, cfg.Load(filePath))

	require.NotNil(t, cfg.Server)
	assert.Equal("/srv/weaprous", cfg.Server.Root)

	require.Len(t, cfg.Server.Listeners, 1)
	assert.Equal("localhost:8080", cfg.Server.Listeners[0].Address)

	require.NotNil(t, cfg.Server.Auth)
	require.NotNil(t, cfg.Server.Auth.Basic)
	assert.Equal([]string{"bob:0123abcd"}, cfg.Server.Auth.Basic.Credentials)
}

func TestServerCfgLoadInvalid(t *testing.T) {
	assert := assert.New(t)

	tests := []string{
		`{}`,
		`{"server": {}}`,
		`{"server": {"listeners": [], "root": "/srv"}}`,
		`{"server": {"listeners": [{"address": "nope"}], "root": "/srv"}}`,
	}

	for _, test := range tests {
		filePath := writeTestCfg(t, test)

		var cfg ServerCfg
		assert.Error(cfg.Load(filePath), "%q", test)
	}
}

func TestVersion(t *testing.T) {
	assert := assert.New(t)

	version, err := Version("v1.2.0")
	if assert.NoError(err) {
		assert.Equal("1.2.0", version)
	}

	_, err = Version("garbage")
	assert.Error(err)
}
