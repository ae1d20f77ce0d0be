package prof

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_WritesProfiles(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		CPU:   filepath.Join(dir, "cpu.pprof"),
		Mem:   filepath.Join(dir, "mem.pprof"),
		Trace: filepath.Join(dir, "run.trace"),
	}
	require.True(t, opts.Enabled())

	s, err := Start(opts)
	require.NoError(t, err)
	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())

	for _, p := range []string{opts.CPU, opts.Mem, opts.Trace} {
		info, err := os.Stat(p)
		require.NoError(t, err, p)
		assert.Positive(t, info.Size(), p)
	}
}

func TestSession_BadTracePathStopsCPU(t *testing.T) {
	dir := t.TempDir()
	_, err := Start(Options{
		CPU:   filepath.Join(dir, "cpu.pprof"),
		Trace: filepath.Join(dir, "missing", "run.trace"),
	})
	require.Error(t, err)

	// a second cpu profile can start, so the first one was stopped
	s, err := Start(Options{CPU: filepath.Join(dir, "cpu2.pprof")})
	require.NoError(t, err)
	require.NoError(t, s.Stop())
}

func TestOptions_Disabled(t *testing.T) {
	assert.False(t, Options{}.Enabled())
	var s *Session
	assert.NoError(t, s.Stop())
}
