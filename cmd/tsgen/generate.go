package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/sghaida/typedstrings/internal/config"
	"github.com/sghaida/typedstrings/internal/csharp"
	"github.com/sghaida/typedstrings/internal/output"
	"github.com/sghaida/typedstrings/typedstring"
)

// ErrNoSources is returned when a generate run finds nothing to compile.
var ErrNoSources = errors.New("no C# sources found")

// Summary describes one generate run.
type Summary struct {
	Sources    int
	Candidates int
	Emitted    []string
	Skipped    []string
	Written    []string
	Unchanged  []string
	Pruned     []string
	Elapsed    time.Duration
}

func (s Summary) String() string {
	return fmt.Sprintf("%d typed string(s) from %d source(s): %d written, %d unchanged, %d pruned, %d skipped",
		len(s.Emitted), s.Sources, len(s.Written), len(s.Unchanged), len(s.Pruned), len(s.Skipped))
}

// generate runs one full pass: discover, parse, analyze, emit, write.
// paths narrows discovery to the given files and directories; empty means
// cfg.Root. Stale units are only pruned when scanning cfg.Root.
func generate(ctx context.Context, cfg *config.Config, logger *zap.Logger, paths []string) (Summary, error) {
	start := time.Now()
	var sum Summary

	sources, err := collectSources(cfg, paths)
	if err != nil {
		return sum, err
	}
	if len(sources) == 0 {
		return sum, fmt.Errorf("%w under %s", ErrNoSources, cfg.Root)
	}
	sum.Sources = len(sources)

	comp, err := (&csharp.Loader{Workers: cfg.Workers, Logger: logger}).Load(ctx, sources)
	if err != nil {
		return sum, fmt.Errorf("load sources: %w", err)
	}

	candidates := comp.Candidates()
	sum.Candidates = len(candidates)

	pass := typedstring.Pass{
		OnSkip: func(c typedstring.Candidate) {
			sum.Skipped = append(sum.Skipped, c.Decl.Name())
			logger.Info("skipped marked declaration",
				zap.String("type", c.Decl.Name()),
				zap.Stringer("kind", c.Decl.Kind()))
		},
		OnEmit: func(d typedstring.Declaration) {
			sum.Emitted = append(sum.Emitted, d.HintName())
			logger.Debug("emitting",
				zap.String("namespace", d.Namespace()),
				zap.String("type", d.TypeName()),
				zap.String("strategy", d.Strategy()))
		},
	}
	units, err := pass.Run(ctx, candidates)
	if err != nil {
		return sum, err
	}

	// A narrowed run does not see every unit, so it never prunes.
	prune := cfg.Prune && len(paths) == 0
	res, err := output.WriteSources(cfg.Out, units, prune)
	sum.Written, sum.Unchanged, sum.Pruned = res.Written, res.Unchanged, res.Pruned
	if err != nil {
		return sum, err
	}
	for _, p := range res.Pruned {
		logger.Info("pruned stale unit", zap.String("path", p))
	}

	sum.Elapsed = time.Since(start)
	logger.Info("generate done",
		zap.Int("sources", sum.Sources),
		zap.Int("emitted", len(sum.Emitted)),
		zap.Int("written", len(sum.Written)),
		zap.Duration("elapsed", sum.Elapsed))
	return sum, nil
}

// collectSources expands paths (files or directories) into sorted source
// files, falling back to cfg.Root.
func collectSources(cfg *config.Config, paths []string) ([]string, error) {
	if len(paths) == 0 {
		return csharp.FindSources(cfg.Root, cfg.Include, cfg.Exclude)
	}

	var out []string
	seen := make(map[string]struct{})
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}

		found := []string{p}
		if info.IsDir() {
			if found, err = csharp.FindSources(p, cfg.Include, cfg.Exclude); err != nil {
				return nil, err
			}
		}
		for _, f := range found {
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			out = append(out, f)
		}
	}
	return out, nil
}

// writeBootstrap writes only the marker and comparer units.
func writeBootstrap(cfg *config.Config) (output.Result, error) {
	return output.WriteSources(cfg.Out, typedstring.Bootstrap(), false)
}
