package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory with an empty home
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"SALON_API_URL", "SALON_TIMEOUT", "SALON_OUTPUT", "SALON_LOG_LEVEL", "SALON_LOG_FORMAT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return dir
}

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("api-url", "", "")
	flags.StringP("output", "o", "", "")
	flags.String("log-level", "", "")
	flags.String("log-format", "", "")
	flags.Duration("timeout", 0, "")
	return flags
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.APIURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "table", cfg.Output)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Empty(t, cfg.File)
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolate(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(
		"api_url: http://file.example:5000/\noutput: yaml\ntimeout: 5s\n"), 0o644))

	// file beats defaults
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "http://file.example:5000", cfg.APIURL)
	assert.Equal(t, "yaml", cfg.Output)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, filepath.Join(dir, ConfigFileName), cfg.File)

	// env beats file
	t.Setenv("SALON_API_URL", "https://env.example")
	cfg, err = Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example", cfg.APIURL)

	// changed flags beat env; unchanged flags do not
	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--api-url", "http://flag.example", "-o", "json"}))
	cfg, err = Load(flags)
	require.NoError(t, err)
	assert.Equal(t, "http://flag.example", cfg.APIURL)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoad_SearchesParentDirectories(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("output: json\n"), 0o644))

	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	chdir(t, nested)

	path, err := FindConfigFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ConfigFileName), path)
}

func TestFindConfigFile_HomeFallback(t *testing.T) {
	isolate(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	_, err := FindConfigFile()
	assert.ErrorIs(t, err, os.ErrNotExist)

	configDir := filepath.Join(home, ".config", "salon")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, ConfigFileName), []byte("output: yaml\n"), 0o644))

	path, err := FindConfigFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(configDir, ConfigFileName), path)
}

func TestValidate(t *testing.T) {
	valid := Config{APIURL: "http://localhost:5000", Timeout: time.Second, Output: "table"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "no scheme", mutate: func(c *Config) { c.APIURL = "localhost:5000" }, want: "invalid api_url"},
		{name: "ftp", mutate: func(c *Config) { c.APIURL = "ftp://salon" }, want: "invalid api_url"},
		{name: "zero timeout", mutate: func(c *Config) { c.Timeout = 0 }, want: "invalid timeout"},
		{name: "bad output", mutate: func(c *Config) { c.Output = "xml" }, want: "invalid output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFakeAPI(t *testing.T) {
	isolate(t)
	t.Setenv("FAKEAPI_ADDR", ":6000")
	t.Setenv("FAKEAPI_TOKEN_TTL", "1h")

	cfg, err := LoadFakeAPI()
	require.NoError(t, err)
	assert.Equal(t, ":6000", cfg.Addr)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, ":memory:", cfg.DatabaseURL)
}

// chdir changes the working directory for the test and restores it on cleanup
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
