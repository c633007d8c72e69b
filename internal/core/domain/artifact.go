package domain

// SymbolFileVersion is the current version of the symbol table file format.
const SymbolFileVersion = 1

// ArtifactPair is an anonymized text and the symbol table that restores it.
// Both are committed together or not at all.
type ArtifactPair struct {
	TextPath    string
	Text        []byte
	SymbolsPath string
	Symbols     *SymbolTable
	// Source is the file name of the real input the pair was produced from.
	Source string
}

// SymbolFile is a symbol table loaded from storage.
type SymbolFile struct {
	Version int
	Source  string
	// Digest fingerprints the paired anonymized text. Empty for legacy files.
	Digest string
	Table  *SymbolTable
}

// IsProblem reports whether the table restores a problem artifact.
func (f *SymbolFile) IsProblem() bool {
	return f.Table.Has(ScopeProblem)
}
