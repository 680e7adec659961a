package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	r := require.New(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	r.NoError(err)
	r.Equal(Default(), cfg)
}

func TestLoadOverlaysYAML(t *testing.T) {
	r := require.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "pagescan.yaml")
	r.NoError(os.WriteFile(path, []byte("log_level: debug\ndelimiter: \",\"\n"), 0o644))

	cfg, err := Load(path)
	r.NoError(err)
	r.Equal("debug", cfg.LogLevel)
	r.Equal(",", cfg.Delimiter)
	r.Equal("text", cfg.LogFormat)
}

func TestLoggerAppliesLevel(t *testing.T) {
	r := require.New(t)

	cfg := Default()
	cfg.LogLevel = "warn"
	log := cfg.Logger()
	r.Equal("warning", log.GetLevel().String())
}
