package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Parse(flag.NewFlagSet("test", flag.ContinueOnError), []string{
		"-port", "8080",
		"-token-secret", "s3cret",
		"-token-ttl", "60",
		"-debug",
		"-static-dir", "web",
	})
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Addr)
	assert.Equal(t, "http://localhost:8080", cfg.Url())
	assert.Equal(t, "s3cret", cfg.TokenSecret)
	assert.Equal(t, time.Minute, cfg.TokenTTL)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "qform.sqlite", cfg.DBUrl)
	assert.Equal(t, "web", cfg.StaticDir)
}

func TestParseEnvDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("QFORM_TOKEN_SECRET", "from-env")
	t.Setenv("QFORM_PORT", "9000")

	cfg, err := Parse(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.TokenSecret)
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr)
	assert.Empty(t, cfg.StaticDir)
}

func TestParseMissingSecret(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("QFORM_TOKEN_SECRET", "")

	_, err := Parse(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	assert.EqualError(t, err, "missing parameter -token-secret")
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
