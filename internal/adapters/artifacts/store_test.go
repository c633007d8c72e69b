package artifacts_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/masq/internal/adapters/artifacts"
	"go.trai.ch/masq/internal/core/domain"
)

func newTable(t *testing.T) *domain.SymbolTable {
	t.Helper()
	table := domain.NewSymbolTable()
	require.NoError(t, table.Add(domain.ScopeDomain, domain.DomainPlaceholder, "gripper"))
	require.NoError(t, table.Add(domain.ScopeType, "type_0", "ball"))
	require.NoError(t, table.Add(domain.ScopePredicate, "pred_0", "free"))
	require.NoError(t, table.Add(domain.ScopePredicateParam, "?pred_0_var0", "?g"))
	return table
}

func TestStore_PutAndLoad(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "anon", "gripper")
	store := artifacts.NewStore()
	text := []byte("(define (domain planning_domain))\n")

	err := store.Put(domain.ArtifactPair{
		TextPath:    filepath.Join(dir, "domain.pddl"),
		Text:        text,
		SymbolsPath: filepath.Join(dir, "domain_symbols.json"),
		Symbols:     newTable(t),
		Source:      "domain.pddl",
	})
	require.NoError(t, err)

	got, err := store.ReadText(filepath.Join(dir, "domain.pddl"))
	require.NoError(t, err)
	assert.Equal(t, text, got)

	file, err := store.LoadSymbols(filepath.Join(dir, "domain_symbols.json"))
	require.NoError(t, err)
	require.NotNil(t, file)
	assert.Equal(t, domain.SymbolFileVersion, file.Version)
	assert.Equal(t, "domain.pddl", file.Source)
	assert.Equal(t, store.Digest(text), file.Digest)
	assert.False(t, file.IsProblem())
	assert.Equal(t, newTable(t).Mapping(), file.Table.Mapping())

	name, ok := file.Table.Real("?pred_0_var0")
	require.True(t, ok)
	assert.Equal(t, "?g", name)

	// No temporary files are left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestStore_SymbolFilePermissions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := artifacts.NewStore()
	require.NoError(t, store.Put(domain.ArtifactPair{
		TextPath:    filepath.Join(dir, "task1.pddl"),
		Text:        []byte("x"),
		SymbolsPath: filepath.Join(dir, "task1_symbols.json"),
		Symbols:     newTable(t),
	}))

	info, err := os.Stat(filepath.Join(dir, "task1_symbols.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.PrivateFilePerm), info.Mode().Perm())

	info, err = os.Stat(filepath.Join(dir, "task1.pddl"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.FilePerm), info.Mode().Perm())
}

func TestStore_PutRollsBackText(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o600))

	store := artifacts.NewStore()
	textPath := filepath.Join(dir, "domain.pddl")
	err := store.Put(domain.ArtifactPair{
		TextPath:    textPath,
		Text:        []byte("(define)"),
		SymbolsPath: filepath.Join(blocker, "domain_symbols.json"),
		Symbols:     newTable(t),
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrArtifactCreateFailed.Error())

	_, statErr := os.Stat(textPath)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestStore_PutKeepsPreviousPairWhenStagingFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := artifacts.NewStore()
	textPath := filepath.Join(dir, "task01.pddl")
	symbolsPath := filepath.Join(dir, "task01_symbols.json")
	require.NoError(t, store.Put(domain.ArtifactPair{
		TextPath:    textPath,
		Text:        []byte("(define (problem old))"),
		SymbolsPath: symbolsPath,
		Symbols:     newTable(t),
	}))

	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o600))
	err := store.Put(domain.ArtifactPair{
		TextPath:    textPath,
		Text:        []byte("(define (problem new))"),
		SymbolsPath: filepath.Join(blocker, "task01_symbols.json"),
		Symbols:     newTable(t),
	})
	require.Error(t, err)

	got, err := store.ReadText(textPath)
	require.NoError(t, err)
	assert.Equal(t, "(define (problem old))", string(got))

	file, err := store.LoadSymbols(symbolsPath)
	require.NoError(t, err)
	require.NotNil(t, file)
	assert.Equal(t, store.Digest(got), file.Digest)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestStore_PutLeavesNoHalfPairWhenSymbolsCommitFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	textPath := filepath.Join(dir, "task01.pddl")
	symbolsPath := filepath.Join(dir, "task01_symbols.json")
	require.NoError(t, os.WriteFile(textPath, []byte("(define (problem old))"), 0o600))

	// A directory in place of the table cannot be replaced by a rename.
	require.NoError(t, os.MkdirAll(filepath.Join(symbolsPath, "keep"), 0o750))

	store := artifacts.NewStore()
	err := store.Put(domain.ArtifactPair{
		TextPath:    textPath,
		Text:        []byte("(define (problem new))"),
		SymbolsPath: symbolsPath,
		Symbols:     newTable(t),
	})
	require.ErrorContains(t, err, domain.ErrArtifactWriteFailed.Error())

	assert.NoFileExists(t, textPath)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "task01_symbols.json", entries[0].Name())
}

func TestStore_LoadSymbols(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
		check   func(t *testing.T, file *domain.SymbolFile)
	}{
		{
			name:    "legacy flat map",
			content: `{"planning_problem": "p1", "type_0_obj_0": "ball1", "planning_domain": "gripper"}`,
			check: func(t *testing.T, file *domain.SymbolFile) {
				t.Helper()
				assert.Equal(t, 0, file.Version)
				assert.Empty(t, file.Digest)
				assert.True(t, file.IsProblem())
				assert.Equal(t, 3, file.Table.Len())
			},
		},
		{
			name:    "malformed json",
			content: `{"version": `,
			wantErr: domain.ErrSymbolFileDecode.Error(),
		},
		{
			name:    "future version",
			content: `{"version": 9, "symbols": {}}`,
			wantErr: "unsupported symbol table version",
		},
		{
			name:    "unknown placeholder",
			content: `{"version": 1, "symbols": {"widget": "w"}}`,
			wantErr: domain.ErrInvalidPlaceholder.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "x_symbols.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			file, err := artifacts.NewStore().LoadSymbols(path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, file)
		})
	}
}

func TestStore_LoadSymbolsMissing(t *testing.T) {
	t.Parallel()

	file, err := artifacts.NewStore().LoadSymbols(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Nil(t, file)
}

func TestStore_WriteTextReplaces(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "task1_restored.pddl")
	store := artifacts.NewStore()

	require.NoError(t, store.WriteText(path, []byte("first")))
	require.NoError(t, store.WriteText(path, []byte("second")))

	got, err := store.ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}

func TestStore_Digest(t *testing.T) {
	t.Parallel()

	store := artifacts.NewStore()
	a := store.Digest([]byte("(define (domain planning_domain))"))
	assert.Len(t, a, 16)
	assert.Equal(t, a, store.Digest([]byte("(define (domain planning_domain))")))
	assert.NotEqual(t, a, store.Digest([]byte("(define (domain planning_domain)) ")))
}

func TestStore_ReadTextMissing(t *testing.T) {
	t.Parallel()

	_, err := artifacts.NewStore().ReadText(filepath.Join(t.TempDir(), "nope.pddl"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrArtifactReadFailed.Error())
}
