package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"slices"

	"go.trai.ch/masq/internal/core/domain"
	"go.trai.ch/masq/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceResolver = (*Resolver)(nil)

// Resolver implements ports.SourceResolver on the local filesystem.
type Resolver struct {
	walker *Walker
}

// NewResolver creates a new Resolver.
func NewResolver(walker *Walker) *Resolver {
	return &Resolver{walker: walker}
}

// Directories returns the names of the domain directories under root, sorted.
func (r *Resolver) Directories(root string) ([]string, error) {
	entries, err := r.list(root)
	if err != nil {
		return nil, err
	}
	return slices.Sorted(r.walker.Dirs(entries)), nil
}

// Match returns the source files of dir matching pattern, sorted.
func (r *Resolver) Match(dir, pattern string) ([]string, error) {
	entries, err := r.list(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for path, err := range r.walker.Files(dir, entries, pattern) {
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "invalid file pattern"), "pattern", pattern)
		}
		files = append(files, path)
	}
	slices.Sort(files)
	return files, nil
}

func (r *Resolver) list(dir string) ([]iofs.DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrDirectoryNotFound, "cannot list directory"), "dir", dir)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to list directory"), "dir", dir)
	}
	return entries, nil
}
