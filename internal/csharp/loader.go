package csharp

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sghaida/typedstrings/typedstring"
)

// BootstrapDir prefixes the pseudo paths of the bootstrap units in a
// compilation.
const BootstrapDir = "<bootstrap>"

// Loader parses C# files concurrently into a Compilation.
type Loader struct {
	// Workers bounds concurrent parses. Zero means GOMAXPROCS.
	Workers int
	Logger  *zap.Logger
}

// Load parses the bootstrap units and every path, then returns the
// compilation over them. Bootstrap units come first so that the marker and
// contract always resolve. Paths are parsed in any order but provided in the
// order given.
func (l *Loader) Load(ctx context.Context, paths []string) (*Compilation, error) {
	logger := l.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := l.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	pool := make(chan *Parser, workers)
	for i := 0; i < workers; i++ {
		pool <- NewParser()
	}
	defer func() {
		close(pool)
		for p := range pool {
			p.Close()
		}
	}()

	bootstrap := typedstring.Bootstrap()
	files := make([]*File, len(bootstrap)+len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	parse := func(i int, path string, src []byte) error {
		p := <-pool
		defer func() { pool <- p }()

		f, err := p.Parse(gctx, path, src)
		if err != nil {
			return err
		}
		logger.Debug("parsed source", zap.String("path", path), zap.Int("types", len(f.Types)))
		files[i] = f
		return nil
	}

	for i, src := range bootstrap {
		g.Go(func() error {
			return parse(i, BootstrapDir+"/"+src.HintName, []byte(src.Text))
		})
	}
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read source: %w", err)
			}
			return parse(len(bootstrap)+i, path, src)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return NewCompilation(files...), nil
}

// FindSources walks root and returns the C# sources to compile, sorted.
// Directories named in exclude are skipped, as are generated units.
func FindSources(root string, include, exclude []string) ([]string, error) {
	if len(include) == 0 {
		include = []string{".cs"}
	}
	skipDir := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		skipDir[name] = struct{}{}
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if _, skip := skipDir[entry.Name()]; skip && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if IsSource(path, include) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("find sources under %s: %w", root, err)
	}

	sort.Strings(paths)
	return paths, nil
}

// IsSource reports whether path has one of the include suffixes and is not
// a generated unit.
func IsSource(path string, include []string) bool {
	if strings.HasSuffix(path, typedstring.HintSuffix) {
		return false
	}
	for _, suffix := range include {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}
