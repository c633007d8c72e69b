package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/masq/internal/adapters/fs"
	"go.trai.ch/masq/internal/core/domain"
)

func writeFiles(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte("(define)"), 0o600))
	}
}

func TestResolver_Directories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root,
		"logistics/domain.pddl",
		"blocks/domain.pddl",
		".git/config",
		".jj/repo",
		"gripper/task01.pddl",
		"README.md",
	)

	dirs, err := fs.NewResolver(fs.NewWalker()).Directories(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"blocks", "gripper", "logistics"}, dirs)
}

func TestResolver_DirectoriesMissingRoot(t *testing.T) {
	t.Parallel()

	_, err := fs.NewResolver(fs.NewWalker()).Directories(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, domain.ErrDirectoryNotFound)
}

func TestResolver_Match(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir,
		"task10.pddl",
		"task02.pddl",
		"task01.pddl",
		"task01_restored.pddl",
		"domain.pddl",
		".task03.pddl",
		"notes.txt",
		"task99/nested.pddl",
	)

	resolver := fs.NewResolver(fs.NewWalker())

	tasks, err := resolver.Match(dir, domain.DefaultProblemPattern)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "task01.pddl"),
		filepath.Join(dir, "task02.pddl"),
		filepath.Join(dir, "task10.pddl"),
	}, tasks)

	domains, err := resolver.Match(dir, domain.DefaultDomainPattern)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "domain.pddl")}, domains)

	none, err := resolver.Match(dir, "*.yaml")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestResolver_MatchInvalidPattern(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "domain.pddl")

	_, err := fs.NewResolver(fs.NewWalker()).Match(dir, "[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid file pattern")
}
