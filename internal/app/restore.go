package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/masq/internal/core/domain"
	"go.trai.ch/masq/internal/core/ports"
	"go.trai.ch/masq/internal/engine/anonymizer"
	"go.trai.ch/masq/internal/engine/emitter"
	"go.trai.ch/zerr"
)

// RestoreOptions configuration for the Restore method.
type RestoreOptions struct {
	CommonOptions
	// Dir holds the anonymized texts. A relative path that does not exist is
	// looked up below the configured output root.
	Dir string
}

// VerifyOptions configuration for the Verify method.
type VerifyOptions struct {
	CommonOptions
	Dir string
}

// storedPair is an anonymized text with the symbol table found next to it.
// loadErr is set when the table exists but could not be loaded.
type storedPair struct {
	label   string
	path    string
	symbols *domain.SymbolFile
	loadErr error
}

// Restore writes <stem>_restored.pddl next to every anonymized text of the
// directory that has a symbol table. Texts without one are skipped.
func (a *App) Restore(ctx context.Context, opts RestoreOptions) error {
	cfg, err := a.prepare(opts.CommonOptions)
	if err != nil {
		return err
	}
	pairs, err := a.collectPairs(cfg, opts.Dir)
	if err != nil {
		return err
	}

	return a.eachPair(ctx, "restore", pairs, func(p storedPair, text []byte, _ ports.Span) error {
		restored := anonymizer.Restore(string(text), p.symbols.Table)
		out := domain.RestoredPath(p.path)
		if err := a.store.WriteText(out, []byte(restored)); err != nil {
			return err
		}
		a.logger.Debug("wrote " + out)
		return nil
	})
}

// Verify checks every artifact pair of the directory without writing: the
// text must not leak an identifier, and restoring it must yield a text the
// parser accepts and the emitter reproduces exactly.
func (a *App) Verify(ctx context.Context, opts VerifyOptions) error {
	cfg, err := a.prepare(opts.CommonOptions)
	if err != nil {
		return err
	}
	pairs, err := a.collectPairs(cfg, opts.Dir)
	if err != nil {
		return err
	}

	return a.eachPair(ctx, "verify", pairs, func(p storedPair, text []byte, span ports.Span) error {
		if leaks := anonymizer.Leaks(string(text), p.symbols.Table); len(leaks) > 0 {
			span.SetAttribute("leaks", leaks)
			err := zerr.Wrap(domain.ErrLeakedIdentifier, "identifiers survived anonymization")
			return zerr.With(err, "identifiers", strings.Join(leaks, ", "))
		}

		restored := anonymizer.Restore(string(text), p.symbols.Table)
		canonical, err := a.reemit(restored, p.symbols.IsProblem())
		if err != nil {
			return err
		}
		if canonical != restored {
			err := zerr.Wrap(domain.ErrRoundTripMismatch, "restored text differs from its canonical form")
			return zerr.With(err, "line", strconv.Itoa(firstDifference(restored, canonical)))
		}
		return nil
	})
}

// reemit parses text and emits it again.
func (a *App) reemit(text string, problem bool) (string, error) {
	if problem {
		p, err := a.parser.ParseProblem([]byte(text))
		if err != nil {
			return "", err
		}
		return emitter.EmitProblem(p), nil
	}
	d, err := a.parser.ParseDomain([]byte(text))
	if err != nil {
		return "", err
	}
	return emitter.EmitDomain(d), nil
}

// firstDifference returns the 1-based line where a and b first differ.
func firstDifference(a, b string) int {
	al := strings.Split(a, "\n")
	bl := strings.Split(b, "\n")
	for i := range min(len(al), len(bl)) {
		if al[i] != bl[i] {
			return i + 1
		}
	}
	return min(len(al), len(bl)) + 1
}

// collectPairs finds the anonymized texts of dir and loads their symbol tables.
func (a *App) collectPairs(cfg *domain.Config, dir string) ([]storedPair, error) {
	if dir == "" {
		return nil, domain.ErrNoDirectoriesSpecified
	}

	pattern := "*" + domain.SourceExt
	texts, err := a.resolver.Match(dir, pattern)
	if errors.Is(err, domain.ErrDirectoryNotFound) && !filepath.IsAbs(dir) {
		fallback := filepath.Join(resolve(cfg, cfg.Output), dir)
		a.logger.Debug(fmt.Sprintf("%s not found, trying %s", dir, fallback))
		dir = fallback
		texts, err = a.resolver.Match(dir, pattern)
	}
	if err != nil {
		return nil, err
	}

	pairs := make([]storedPair, 0, len(texts))
	for _, path := range texts {
		file, err := a.store.LoadSymbols(domain.SymbolsPath(path))
		if err == nil && file == nil {
			a.logger.Warn(fmt.Sprintf("no symbol table for %s, skipping", filepath.Base(path)))
			continue
		}
		pairs = append(pairs, storedPair{
			label:   filepath.Base(dir) + "/" + filepath.Base(path),
			path:    path,
			symbols: file,
			loadErr: err,
		})
	}
	if len(pairs) == 0 {
		a.logger.Warn("no artifact pairs found in " + dir)
	}
	return pairs, nil
}

// eachPair reads the text of every pair, checks its digest and hands it to fn.
// A pair whose table failed to load counts as failed without stopping the rest.
func (a *App) eachPair(
	ctx context.Context,
	op string,
	pairs []storedPair,
	fn func(p storedPair, text []byte, span ports.Span) error,
) error {
	if len(pairs) == 0 {
		return nil
	}

	labels := make([]string, 0, len(pairs))
	for _, p := range pairs {
		labels = append(labels, p.label)
	}

	progress := a.startProgress()
	defer progress.stop()
	progress.tracer.EmitPlan(ctx, labels)

	failed := 0
	for _, p := range pairs {
		if err := ctx.Err(); err != nil {
			return err
		}
		ok := a.track(ctx, progress.tracer, p.label, func(_ context.Context, span ports.Span) error {
			if p.loadErr != nil {
				return p.loadErr
			}
			text, err := a.store.ReadText(p.path)
			if err != nil {
				return err
			}
			if p.symbols.Digest != "" && a.store.Digest(text) != p.symbols.Digest {
				a.logger.Warn(fmt.Sprintf("%s changed after it was anonymized", p.label))
				span.SetAttribute("modified", true)
			}
			return fn(p, text, span)
		})
		if !ok {
			failed++
		}
	}

	if failed > 0 {
		return batchFailed(op, failed)
	}
	return nil
}
