package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	v := viper.New()
	SetDefaults(v)

	s, err := LoadSettings(v)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", s.Store)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "console", s.LogFormat)
	assert.Equal(t, "console", s.Format)
	assert.Equal(t, "paygo.db", filepath.Base(s.StorePath))
}

func TestReadConfig_FileAndEnv(t *testing.T) {
	path := writeFile(t, "config.yaml", `
store:
  backend: file
  path: /tmp/paygo-test/store.json
logging:
  level: debug
`)
	t.Setenv("PAYGO_LOGGING_FORMAT", "json")

	v := viper.New()
	SetDefaults(v)
	require.NoError(t, ReadConfig(v, path))

	s, err := LoadSettings(v)
	require.NoError(t, err)
	assert.Equal(t, "file", s.Store)
	assert.Equal(t, "/tmp/paygo-test/store.json", s.StorePath)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "json", s.LogFormat, "Environment overrides defaults")
}

func TestReadConfig_MissingExplicitFile(t *testing.T) {
	v := viper.New()
	err := ReadConfig(v, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read config")
}

func TestLoadSettings_InvalidStore(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set(KeyStore, "redis")

	_, err := LoadSettings(v)
	assert.EqualError(t, err, "invalid store backend: redis")
}

func TestDefaultStorePath(t *testing.T) {
	assert.Equal(t, "paygo.json", filepath.Base(DefaultStorePath("file")))
	assert.Equal(t, "paygo.db", filepath.Base(DefaultStorePath("sqlite")))
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PAYGO_TEST_DIR", "/data")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "x.db"), ExpandPath("~/x.db"))
	assert.Equal(t, "/data/x.db", ExpandPath("$PAYGO_TEST_DIR/x.db"))
}
