package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedCommand(t *testing.T) {
	dir := t.TempDir()
	seedPath := filepath.Join(dir, "bank.yaml")
	require.NoError(t, os.WriteFile(seedPath, []byte(`
questions:
  - key: heap
    topic: Data Structures
    difficulty: Easy
    question: Which structure backs a priority queue?
    options:
      - text: Heap
        isCorrect: true
      - text: Stack
quizzes:
  - title: Heaps
    topic: Data Structures
    difficulty: Easy
    questions: [heap]
`), 0o600))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--db", "file:" + filepath.Join(dir, "quiz.db"), "seed", seedPath})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "seeded 1 questions and 1 quizzes")
}

func TestSeedCommand_RequiresFile(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"seed"})
	assert.Error(t, cmd.Execute())
}

func TestMigrateCommand(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--db", "file:" + filepath.Join(t.TempDir(), "quiz.db"), "migrate"})
	assert.NoError(t, cmd.Execute())
}

func TestServeRejectsInvalidConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "short")
	t.Setenv("ADMIN_SECRET_KEY", "")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"serve"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}
