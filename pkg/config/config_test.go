package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_Formats(t *testing.T) {
	want := Default()
	want.SchemaLocation = "offerta.xsd"
	want.Output.Dir = "out"
	want.Output.Minify = true
	want.Log.Format = "json"
	want.Server.Addr = ":9090"

	cases := map[string]string{
		"offergen.yaml": `schemaLocation: offerta.xsd
output:
  dir: out
  minify: true
log:
  format: json
server:
  addr: ":9090"
`,
		"offergen.toml": `schema_location = "offerta.xsd"

[output]
dir = "out"
minify = true

[log]
format = "json"

[server]
addr = ":9090"
`,
		"offergen.json": `{
  "schemaLocation": "offerta.xsd",
  "output": {"dir": "out", "minify": true},
  "log": {"format": "json"},
  "server": {"addr": ":9090"}
}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := Load(writeFile(t, name, body))
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_KeepsDefaultsForOmittedKeys(t *testing.T) {
	got, err := Load(writeFile(t, "partial.yml", "log:\n  level: debug\n"))
	require.NoError(t, err)
	require.Equal(t, "debug", got.Log.Level)
	require.Equal(t, "text", got.Log.Format)
	require.True(t, got.Validation.SelfCheck)
	require.Equal(t, 10*time.Second, got.Server.GetReadTimeout())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(writeFile(t, "offergen.ini", "x=1"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(writeFile(t, "empty.yaml", "  \n"))
	require.Error(t, err)

	_, err = Load(writeFile(t, "bad.json", "{"))
	require.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Load(writeFile(t, "level.yaml", "log:\n  level: verbose\n"))
	require.ErrorContains(t, err, "Config.Log.Level failed oneof")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Server.ReadTimeout = "soon"
	cfg.Output.Dir = ""
	err := cfg.Validate()
	require.ErrorContains(t, err, "Config.Output.Dir failed required")
	require.ErrorContains(t, err, "Config.Server.ReadTimeout failed duration")
}

func TestLoadDefault(t *testing.T) {
	t.Setenv(EnvPath, "")
	cfg, err := LoadDefault()
	require.NoError(t, err)
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("expected defaults (-want +got):\n%s", diff)
	}

	t.Setenv(EnvPath, writeFile(t, "env.toml", "[server]\naddr = \":7000\"\n"))
	cfg, err = LoadDefault()
	require.NoError(t, err)
	require.Equal(t, ":7000", cfg.Server.Addr)
}

func TestServerTimeouts(t *testing.T) {
	s := Server{ReadTimeout: "3s", WriteTimeout: "-1s"}
	require.Equal(t, 3*time.Second, s.GetReadTimeout())
	require.Equal(t, 10*time.Second, s.GetWriteTimeout())
}
