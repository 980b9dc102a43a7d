package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the command tree with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_STATE_HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("QUIZCARD_DB", "")
	t.Chdir(dir)

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags clears values left over from a previous Execute.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "quizcard (devel)")
}

func TestStatsMemoryStore(t *testing.T) {
	out, err := execute(t, "stats", "--db-driver", "memory")
	require.NoError(t, err)
	assert.Contains(t, out, "Questions       6")
	assert.Contains(t, out, "Answered        0")
	assert.NotContains(t, out, "Activity")
}

func TestStatsSQLite(t *testing.T) {
	db := filepath.Join(t.TempDir(), "quiz.db")
	out, err := execute(t, "stats", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Progress")
	assert.Contains(t, out, "Sessions        0")
}

func TestResetNeedsConfirmation(t *testing.T) {
	_, err := execute(t, "reset", "--db-driver", "memory")
	assert.ErrorContains(t, err, "--yes")

	out, err := execute(t, "reset", "--db-driver", "memory", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Progress cleared.")
}

func TestUnknownDriver(t *testing.T) {
	_, err := execute(t, "stats", "--db-driver", "oracle")
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestLLMStatsEmpty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "quiz.db")
	out, err := execute(t, "llm", "stats", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM usage recorded yet.")
}

func TestExplainWithoutProvider(t *testing.T) {
	_, err := execute(t, "explain", "3", "--db-driver", "memory")
	assert.ErrorContains(t, err, "not configured")
}

func TestExplainBadNumber(t *testing.T) {
	_, err := execute(t, "explain", "three", "--db-driver", "memory")
	assert.ErrorContains(t, err, "invalid question number")
}
