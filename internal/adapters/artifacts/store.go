// Package artifacts persists anonymized texts together with the symbol tables
// that restore them.
package artifacts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/masq/internal/core/domain"
	"go.trai.ch/masq/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactStore = (*Store)(nil)

// symbolFile is the on-disk form of a symbol table.
type symbolFile struct {
	Version int               `json:"version"`
	Source  string            `json:"source,omitempty"`
	Digest  string            `json:"digest,omitempty"`
	Symbols map[string]string `json:"symbols"`
}

// Store implements ports.ArtifactStore on the local filesystem.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Digest returns the xxhash64 of text as 16 hex digits.
func (s *Store) Digest(text []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(text))
}

// Put commits the anonymized text first and the symbol table last. Both files
// are staged before either is renamed into place, and a pair whose symbol
// table cannot be committed leaves neither file behind.
func (s *Store) Put(pair domain.ArtifactPair) error {
	data, err := json.MarshalIndent(symbolFile{
		Version: domain.SymbolFileVersion,
		Source:  pair.Source,
		Digest:  s.Digest(pair.Text),
		Symbols: pair.Symbols.Mapping(),
	}, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrSymbolFileEncode.Error())
	}
	data = append(data, '\n')

	textTmp, err := stage(pair.TextPath, pair.Text, domain.FilePerm)
	if err != nil {
		return err
	}
	symbolsTmp, err := stage(pair.SymbolsPath, data, domain.PrivateFilePerm)
	if err != nil {
		_ = os.Remove(textTmp)
		return err
	}

	if err := commit(textTmp, pair.TextPath); err != nil {
		_ = os.Remove(symbolsTmp)
		return err
	}
	if err := commit(symbolsTmp, pair.SymbolsPath); err != nil {
		_ = os.Remove(pair.TextPath)
		_ = os.Remove(pair.SymbolsPath)
		return err
	}
	return nil
}

// LoadSymbols reads the symbol table at path. Files written before the
// versioned format are a flat placeholder-to-identifier object.
func (s *Store) LoadSymbols(path string) (*domain.SymbolFile, error) {
	//nolint:gosec // Path is derived from the configured output directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSymbolFileRead.Error()), "path", path)
	}

	file, err := decodeSymbols(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return file, nil
}

func decodeSymbols(data []byte) (*domain.SymbolFile, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, zerr.Wrap(err, domain.ErrSymbolFileDecode.Error())
	}

	var raw symbolFile
	if _, ok := fields["version"]; ok {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, zerr.Wrap(err, domain.ErrSymbolFileDecode.Error())
		}
		if raw.Version < 1 || raw.Version > domain.SymbolFileVersion {
			err := zerr.Wrap(domain.ErrSymbolFileDecode, "unsupported symbol table version")
			return nil, zerr.With(err, "version", raw.Version)
		}
	} else {
		if err := json.Unmarshal(data, &raw.Symbols); err != nil {
			return nil, zerr.Wrap(err, domain.ErrSymbolFileDecode.Error())
		}
	}

	table, err := domain.SymbolTableFromMapping(raw.Symbols)
	if err != nil {
		return nil, errors.Join(domain.ErrSymbolFileDecode, err)
	}
	return &domain.SymbolFile{
		Version: raw.Version,
		Source:  raw.Source,
		Digest:  raw.Digest,
		Table:   table,
	}, nil
}

// ReadText reads a text artifact.
func (s *Store) ReadText(path string) ([]byte, error) {
	//nolint:gosec // Path is derived from the configured output directory
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrArtifactReadFailed.Error()), "path", path)
	}
	return data, nil
}

// WriteText atomically replaces the file at path with text.
func (s *Store) WriteText(path string, text []byte) error {
	tmp, err := stage(path, text, domain.FilePerm)
	if err != nil {
		return err
	}
	return commit(tmp, path)
}

// stage writes data to a temporary file next to path and returns its name.
func stage(path string, data []byte, perm os.FileMode) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrArtifactCreateFailed.Error()), "dir", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()), "path", path)
	}
	tmpName := tmp.Name()

	fail := func(err error) (string, error) {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", zerr.With(zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()), "path", path)
	}

	if _, err := tmp.Write(data); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		return fail(err)
	}
	return tmpName, nil
}

// commit renames a staged file into place.
func commit(tmpName, path string) error {
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()), "path", path)
	}
	return nil
}
