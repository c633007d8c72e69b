package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"

	"go.trai.ch/masq/internal/core/domain"
	"go.trai.ch/masq/internal/core/ports"
	"go.trai.ch/masq/internal/engine/anonymizer"
	"go.trai.ch/masq/internal/engine/emitter"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// AnonymizeOptions configuration for the Anonymize method.
type AnonymizeOptions struct {
	CommonOptions
	// Dirs names directories below the input root.
	Dirs []string
	// All processes every directory below the input root.
	All bool
	// Input and Output override the configured roots when set.
	Input  string
	Output string
	// Workers overrides the configured parallelism when positive.
	Workers int
}

// dirPlan lists the sources of one input directory.
type dirPlan struct {
	name     string
	outDir   string
	domains  []string
	problems []string
}

// Anonymize writes an anonymized text and symbol table for every domain and
// problem of the selected directories. Domains of a directory are persisted
// before its problems start; problems then run in parallel. A failing file
// does not stop the batch.
func (a *App) Anonymize(ctx context.Context, opts AnonymizeOptions) error {
	cfg, err := a.prepare(opts.CommonOptions)
	if err != nil {
		return err
	}
	if opts.Input != "" {
		cfg.Input = opts.Input
	}
	if opts.Output != "" {
		cfg.Output = opts.Output
	}
	if opts.Workers < 0 {
		return zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "workers must not be negative"), "workers", opts.Workers)
	}
	if opts.Workers > 0 {
		cfg.Workers = opts.Workers
	}
	cfg.Workers = max(cfg.Workers, 1)

	inputRoot := resolve(cfg, cfg.Input)
	outputRoot := resolve(cfg, cfg.Output)

	names := opts.Dirs
	if opts.All {
		names, err = a.resolver.Directories(inputRoot)
		if err != nil {
			return zerr.Wrap(err, "failed to list input directories")
		}
	}
	if len(names) == 0 {
		return domain.ErrNoDirectoriesSpecified
	}

	plans, files, skipped, err := a.plan(cfg, inputRoot, outputRoot, names)
	if err != nil {
		return err
	}
	a.logger.Debug(fmt.Sprintf("anonymizing %d file(s) from %s into %s", len(files), inputRoot, outputRoot))

	progress := a.startProgress()
	defer progress.stop()
	progress.tracer.EmitPlan(ctx, files)

	var failed atomic.Int64
	failed.Add(int64(skipped))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for _, p := range plans {
		g.Go(func() error {
			failed.Add(int64(a.anonymizeDir(gctx, progress.tracer, p, cfg.Workers)))
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	if n := failed.Load(); n > 0 {
		return batchFailed("anonymize", int(n))
	}
	return nil
}

// plan resolves the sources of every directory before any work starts. A
// directory that does not exist is logged and counted in skipped; the others
// still run.
func (a *App) plan(
	cfg *domain.Config,
	inputRoot, outputRoot string,
	names []string,
) (plans []dirPlan, files []string, skipped int, err error) {
	plans = make([]dirPlan, 0, len(names))
	for _, name := range names {
		dir := name
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(inputRoot, name)
		}

		domains, err := a.resolver.Match(dir, cfg.DomainPattern)
		if errors.Is(err, domain.ErrDirectoryNotFound) {
			a.logger.Error(err)
			skipped++
			continue
		}
		if err != nil {
			return nil, nil, 0, err
		}
		problems, err := a.resolver.Match(dir, cfg.ProblemPattern)
		if err != nil {
			return nil, nil, 0, err
		}
		if len(domains) == 0 {
			a.logger.Warn(fmt.Sprintf("no domain files in %s", dir))
		}

		p := dirPlan{
			name:     filepath.Base(dir),
			outDir:   filepath.Join(outputRoot, filepath.Base(dir)),
			domains:  domains,
			problems: problems,
		}
		for _, f := range slices.Concat(domains, problems) {
			files = append(files, p.label(f))
		}
		plans = append(plans, p)
	}
	return plans, files, skipped, nil
}

func (p dirPlan) label(path string) string {
	return p.name + "/" + filepath.Base(path)
}

// anonymizeDir processes one directory and returns the number of failed files.
func (a *App) anonymizeDir(ctx context.Context, tracer ports.Tracer, p dirPlan, workers int) int {
	failed := 0

	// Domain name to the symbol table persisted for it in this run.
	index := make(map[string]string, len(p.domains))
	for _, path := range p.domains {
		var name, symbols string
		ok := a.track(ctx, tracer, p.label(path), func(_ context.Context, span ports.Span) error {
			var err error
			name, symbols, err = a.anonymizeDomain(path, p.outDir, span)
			return err
		})
		if !ok {
			failed++
			continue
		}
		if _, dup := index[name]; dup {
			a.logger.Warn(fmt.Sprintf("domain %q is defined more than once in %s; problems use %s",
				name, p.name, filepath.Base(symbols)))
		}
		index[name] = symbols
	}

	var (
		mu       sync.Mutex
		problems errgroup.Group
	)
	problems.SetLimit(workers)
	for _, path := range p.problems {
		problems.Go(func() error {
			ok := a.track(ctx, tracer, p.label(path), func(_ context.Context, span ports.Span) error {
				return a.anonymizeProblem(path, p.outDir, index, span)
			})
			if !ok {
				mu.Lock()
				failed++
				mu.Unlock()
			}
			return nil
		})
	}
	_ = problems.Wait()

	return failed
}

// anonymizeDomain persists the artifact pair of one domain source and returns
// the real domain name with the path of its symbol table.
func (a *App) anonymizeDomain(path, outDir string, span ports.Span) (string, string, error) {
	span.SetAttribute("kind", "domain")

	src, err := a.store.ReadText(path)
	if err != nil {
		return "", "", errors.Join(domain.ErrDomainLoad, err)
	}
	parsed, err := a.parser.ParseDomain(src)
	if err != nil {
		return "", "", err
	}
	anon, table, err := anonymizer.AnonymizeDomain(parsed)
	if err != nil {
		return "", "", err
	}

	pair := newPair(path, outDir, emitter.EmitDomain(anon), table)
	if err := a.store.Put(pair); err != nil {
		return "", "", err
	}
	span.SetAttribute("symbols", table.Len())
	a.logger.Debug(fmt.Sprintf("wrote %s (%d symbols)", pair.TextPath, table.Len()))
	return parsed.Name, pair.SymbolsPath, nil
}

// anonymizeProblem persists the artifact pair of one problem source. The
// domain table is read back from storage, so a problem only ever sees what
// its domain committed.
func (a *App) anonymizeProblem(path, outDir string, index map[string]string, span ports.Span) error {
	span.SetAttribute("kind", "problem")

	src, err := a.store.ReadText(path)
	if err != nil {
		return errors.Join(domain.ErrProblemLoad, err)
	}
	parsed, err := a.parser.ParseProblem(src)
	if err != nil {
		return err
	}

	var domainTable *domain.SymbolTable
	if symbols, ok := index[parsed.Domain]; ok {
		file, err := a.store.LoadSymbols(symbols)
		if err != nil {
			return err
		}
		if file != nil {
			domainTable = file.Table
		}
	}

	anon, table, err := anonymizer.AnonymizeProblem(parsed, domainTable)
	if err != nil {
		return err
	}

	pair := newPair(path, outDir, emitter.EmitProblem(anon), table)
	if err := a.store.Put(pair); err != nil {
		return err
	}
	span.SetAttribute("symbols", table.Len())
	span.SetAttribute("objects", parsed.ObjectCount())
	a.logger.Debug(fmt.Sprintf("wrote %s (%d symbols)", pair.TextPath, table.Len()))
	return nil
}

func newPair(source, outDir, text string, table *domain.SymbolTable) domain.ArtifactPair {
	textPath := filepath.Join(outDir, domain.Stem(source)+domain.SourceExt)
	return domain.ArtifactPair{
		TextPath:    textPath,
		Text:        []byte(text),
		SymbolsPath: domain.SymbolsPath(textPath),
		Symbols:     table,
		Source:      filepath.Base(source),
	}
}
