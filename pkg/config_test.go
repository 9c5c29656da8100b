package dupescan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	opts, err := cfg.ToOptions()
	require.NoError(t, err)
	require.Equal(t, DefaultOptions(), opts)
	require.Equal(t, int64(0), cfg.GetWalkConfig().MinSize)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.ini"))
	require.NoError(t, err)

	opts, err := cfg.ToOptions()
	require.NoError(t, err)
	require.Equal(t, DefaultOptions(), opts)
}

func TestLoadConfig_File(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "dupescan.ini")
	content := `[fingerprint]
algorithm = sha256
paranoid = true

[performance]
buffer_limit = 1M
sample_size = 2K
chunk_size = 16K
workers = 2

[walk]
min_size = 100
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	opts, err := cfg.ToOptions()
	require.NoError(t, err)
	require.Equal(t, "sha256", opts.Algorithm)
	require.True(t, opts.Paranoid)
	require.Equal(t, 1024*1024, opts.BufferLimit)
	require.Equal(t, 2*1024, opts.SampleSize)
	require.Equal(t, 16*1024, opts.ChunkSize)
	require.Equal(t, 2, opts.Workers)
	require.Equal(t, int64(100), cfg.GetWalkConfig().MinSize)
}

func TestLoadConfig_PartialFileKeepsFallbacks(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "dupescan.ini")
	require.NoError(t, os.WriteFile(configPath, []byte("[performance]\nworkers = 8\n"), 0o644))

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	opts, err := cfg.ToOptions()
	require.NoError(t, err)
	require.Equal(t, 8, opts.Workers)
	require.Equal(t, "highway128", opts.Algorithm)
	require.Equal(t, DefaultBufferLimit, opts.BufferLimit)
}

func TestLoadConfig_BadSizeValue(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "dupescan.ini")
	require.NoError(t, os.WriteFile(configPath, []byte("[performance]\nchunk_size = 32Q\n"), 0o644))

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	_, err = cfg.ToOptions()
	require.Error(t, err)
}

func TestConfig_Save(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "dupescan.ini")

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)
	require.NoError(t, cfg.Save())

	reloaded, err := LoadConfig(configPath)
	require.NoError(t, err)

	opts, err := reloaded.ToOptions()
	require.NoError(t, err)
	require.Equal(t, DefaultOptions(), opts)
}

func TestConfig_SaveWithoutPath(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Error(t, cfg.Save())
}
