// Package fs provides file system adapters for locating PDDL sources.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"strings"

	"go.trai.ch/masq/internal/core/domain"
)

// Walker enumerates the entries of a single directory level.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// Dirs yields the names of the directory entries, skipping hidden ones
// such as .git and .jj.
func (w *Walker) Dirs(entries []fs.DirEntry) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, e := range entries {
			if !e.IsDir() || w.hidden(e.Name()) {
				continue
			}
			if !yield(e.Name()) {
				return
			}
		}
	}
}

// Files yields the paths of the regular files of dir whose names match
// pattern. Restored outputs never count as sources.
func (w *Walker) Files(dir string, entries []fs.DirEntry, pattern string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, e := range entries {
			name := e.Name()
			if !e.Type().IsRegular() || w.hidden(name) || domain.IsRestored(name) {
				continue
			}
			matched, err := filepath.Match(pattern, name)
			if err != nil {
				yield("", err)
				return
			}
			if matched && !yield(filepath.Join(dir, name), nil) {
				return
			}
		}
	}
}

func (w *Walker) hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
