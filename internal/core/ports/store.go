package ports

import "go.trai.ch/masq/internal/core/domain"

// ArtifactStore persists anonymized texts and their symbol tables.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ArtifactStore interface {
	// Put writes the text and symbol table of the pair. Either both files are
	// committed or neither is.
	Put(pair domain.ArtifactPair) error

	// LoadSymbols reads the symbol table at path.
	// Returns nil, nil if the file does not exist.
	LoadSymbols(path string) (*domain.SymbolFile, error)

	// ReadText reads a source, anonymized or restored text.
	ReadText(path string) ([]byte, error)

	// WriteText atomically writes a single text file.
	WriteText(path string, text []byte) error

	// Digest fingerprints a text the same way Put records it.
	Digest(text []byte) string
}
