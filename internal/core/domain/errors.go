package domain

import "go.trai.ch/zerr"

var (
	// ErrDomainLoad is returned when a domain source cannot be read or parsed.
	ErrDomainLoad = zerr.New("failed to load domain")

	// ErrProblemLoad is returned when a problem source cannot be read or parsed.
	ErrProblemLoad = zerr.New("failed to load problem")

	// ErrMissingDomainArtifact is returned when a problem is anonymized before
	// the symbol table of its domain has been persisted.
	ErrMissingDomainArtifact = zerr.New("domain symbol table not available")

	// ErrUnmappedSymbol is returned when an identifier has no placeholder in
	// the symbol table of its scope.
	ErrUnmappedSymbol = zerr.New("unmapped symbol")

	// ErrDuplicateSymbol is returned when a placeholder or an identifier is
	// assigned twice within one scope.
	ErrDuplicateSymbol = zerr.New("duplicate symbol")

	// ErrInvalidPlaceholder is returned when a placeholder does not match the
	// naming pattern of its scope.
	ErrInvalidPlaceholder = zerr.New("invalid placeholder")

	// ErrUnsupportedConstruct is returned when a source uses a language feature
	// outside typed STRIPS.
	ErrUnsupportedConstruct = zerr.New("unsupported construct")

	// ErrSyntax is returned when a source is not a well-formed s-expression.
	ErrSyntax = zerr.New("syntax error")

	// ErrDuplicateDeclaration is returned when a source declares a name twice.
	ErrDuplicateDeclaration = zerr.New("duplicate declaration")

	// ErrSymbolFileRead is returned when a symbol table file cannot be read.
	ErrSymbolFileRead = zerr.New("failed to read symbol table")

	// ErrSymbolFileDecode is returned when a symbol table file cannot be decoded.
	ErrSymbolFileDecode = zerr.New("failed to decode symbol table")

	// ErrSymbolFileEncode is returned when a symbol table cannot be encoded.
	ErrSymbolFileEncode = zerr.New("failed to encode symbol table")

	// ErrArtifactCreateFailed is returned when the output directory cannot be created.
	ErrArtifactCreateFailed = zerr.New("failed to create artifact directory")

	// ErrArtifactWriteFailed is returned when an artifact cannot be written.
	ErrArtifactWriteFailed = zerr.New("failed to write artifact")

	// ErrArtifactReadFailed is returned when an artifact cannot be read.
	ErrArtifactReadFailed = zerr.New("failed to read artifact")

	// ErrDigestMismatch is returned when an anonymized text no longer matches
	// the digest recorded in its symbol table.
	ErrDigestMismatch = zerr.New("anonymized text does not match recorded digest")

	// ErrLeakedIdentifier is returned when an anonymized text contains an
	// identifier that is neither a placeholder nor a keyword.
	ErrLeakedIdentifier = zerr.New("anonymized text leaks an identifier")

	// ErrRoundTripMismatch is returned when a restored text is not in canonical form.
	ErrRoundTripMismatch = zerr.New("restored text does not round-trip")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when a config value is out of range.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrDirectoryNotFound is returned when an input directory does not exist.
	ErrDirectoryNotFound = zerr.New("directory not found")

	// ErrNoDirectoriesSpecified is returned when anonymize has nothing to process.
	ErrNoDirectoriesSpecified = zerr.New("no directories specified, pass directory names or --all")

	// ErrBatchFailed is returned when at least one file of a batch failed.
	ErrBatchFailed = zerr.New("one or more files failed")
)
