package domain

import (
	"path/filepath"
	"strings"
)

const (
	// ConfigFileName is the name of the optional project configuration file.
	ConfigFileName = "masq.yaml"

	// DefaultInputDir is the default root of the raw sources.
	DefaultInputDir = "data/raw_pddl"

	// DefaultOutputDir is the default root of the anonymized artifacts.
	DefaultOutputDir = "data/anon_pddl"

	// DefaultDomainPattern matches domain sources within a directory.
	DefaultDomainPattern = "domain*.pddl"

	// DefaultProblemPattern matches problem sources within a directory.
	DefaultProblemPattern = "task*.pddl"

	// SourceExt is the extension of PDDL sources and anonymized texts.
	SourceExt = ".pddl"

	// SymbolsSuffix is appended to a text's stem to name its symbol table.
	SymbolsSuffix = "_symbols.json"

	// RestoredSuffix is appended to a text's stem to name its restored copy.
	RestoredSuffix = "_restored"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// Stem returns the file name of path without directory and extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SymbolsPath returns the symbol table path paired with the text at path.
func SymbolsPath(path string) string {
	return filepath.Join(filepath.Dir(path), Stem(path)+SymbolsSuffix)
}

// RestoredPath returns the path of the restored copy of the text at path.
func RestoredPath(path string) string {
	return filepath.Join(filepath.Dir(path), Stem(path)+RestoredSuffix+SourceExt)
}

// IsRestored reports whether path names a restored copy.
func IsRestored(path string) bool {
	return strings.HasSuffix(Stem(path), RestoredSuffix)
}
