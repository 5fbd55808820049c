package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModel(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.bnet")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func defaultRunOptions(path string, out *bytes.Buffer) RunOptions {
	return RunOptions{
		ModelPath: path,
		Algorithm: "fwd-bwd",
		Strategy:  "saturation",
		Trim:      "both",
		Out:       out,
	}
}

func TestSignalContext(t *testing.T) {
	t.Run("reports the interrupting signal", func(t *testing.T) {
		sc := NewSignalContext(context.Background())
		defer sc.Cancel()
		require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))
		<-sc.Done()
		assert.Equal(t, syscall.SIGTERM, sc.Signal())
	})

	t.Run("plain cancellation carries no signal", func(t *testing.T) {
		sc := NewSignalContext(context.Background())
		sc.Cancel()
		<-sc.Done()
		assert.Nil(t, sc.Signal())
	})
}

func TestExecute(t *testing.T) {
	t.Run("lists components", func(t *testing.T) {
		var out bytes.Buffer
		path := writeModel(t, "a, !b\nb, a\n")
		require.NoError(t, Execute(defaultRunOptions(path, &out)))
		assert.Contains(t, out.String(), "SCC #1: 4 states")
		assert.Contains(t, out.String(), "found 1 non-trivial component(s)")
	})

	t.Run("reports colors for parametrized models", func(t *testing.T) {
		var out bytes.Buffer
		path := writeModel(t, "a, !b\nb, (p & a) | (!p & b)\n")
		require.NoError(t, Execute(defaultRunOptions(path, &out)))
		assert.Contains(t, out.String(), "across 1 colors")
	})

	t.Run("missing model", func(t *testing.T) {
		var out bytes.Buffer
		opts := defaultRunOptions("does-not-exist.bnet", &out)
		assert.Error(t, Execute(opts))
	})

	t.Run("bad algorithm flag", func(t *testing.T) {
		var out bytes.Buffer
		opts := defaultRunOptions(writeModel(t, "a, !a\n"), &out)
		opts.Algorithm = "tarjan"
		assert.Error(t, Execute(opts))
	})
}

func TestExecuteReach(t *testing.T) {
	path := writeModel(t, "a, 1\nb, a\n")

	t.Run("forward", func(t *testing.T) {
		var out bytes.Buffer
		err := ExecuteReach(ReachOptions{
			ModelPath: path,
			Direction: "forward",
			Strategy:  "saturation",
			Seed:      "a=0,b=0",
			Out:       &out,
		})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "forward reachable: 3 states")
	})

	t.Run("rejects empty seed", func(t *testing.T) {
		var out bytes.Buffer
		err := ExecuteReach(ReachOptions{
			ModelPath: path,
			Direction: "forward",
			Strategy:  "saturation",
			Out:       &out,
		})
		assert.Error(t, err)
	})

	t.Run("rejects unknown seed variable", func(t *testing.T) {
		var out bytes.Buffer
		err := ExecuteReach(ReachOptions{
			ModelPath: path,
			Direction: "backward",
			Strategy:  "bfs",
			Seed:      "z=1",
			Out:       &out,
		})
		assert.Error(t, err)
	})
}

func TestParseSeed(t *testing.T) {
	logger := createLogger(false)
	g, err := loadGraph(writeModel(t, "a, b\nb, !a\n"), 0, logger)
	require.NoError(t, err)

	t.Run("partial assignment leaves variables free", func(t *testing.T) {
		seed, err := parseSeed(g, "a=1")
		require.NoError(t, err)
		assert.Equal(t, int64(2), seed.Cardinality().Int64())
	})

	t.Run("full assignment is a single state", func(t *testing.T) {
		seed, err := parseSeed(g, " a = 1 , b = 0 ")
		require.NoError(t, err)
		assert.Equal(t, int64(1), seed.Cardinality().Int64())
	})

	t.Run("malformed assignment", func(t *testing.T) {
		_, err := parseSeed(g, "a:1")
		assert.Error(t, err)
	})

	t.Run("bad value", func(t *testing.T) {
		_, err := parseSeed(g, "a=2")
		assert.Error(t, err)
	})
}
