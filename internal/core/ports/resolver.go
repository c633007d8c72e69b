package ports

// SourceResolver locates domain directories and the files inside them.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type SourceResolver interface {
	// Directories returns the names of the immediate sub-directories of root, sorted.
	Directories(root string) ([]string, error)

	// Match returns the files of dir matching pattern, sorted.
	// No match is not an error.
	Match(dir, pattern string) ([]string, error)
}
