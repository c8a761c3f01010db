// Package output writes generated units to disk.
//
// Writes are atomic (temp file + rename in the target directory) so a
// compiler or watcher never observes a half written unit. WriteIfChanged
// leaves identical files untouched, which keeps modification times stable
// across reruns, and Prune removes units this generator produced earlier
// but no longer emits.
package output

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sghaida/typedstrings/typedstring"
)

// FilePerm is the mode of every written unit.
const FilePerm os.FileMode = 0o644

// tempFile abstracts an os.File for testability.
type tempFile interface {
	Name() string
	Write([]byte) (int, error)
	Close() error
}

// File operation hooks, overridden in tests.
var (
	createTempFile = func(dir, pattern string) (tempFile, error) { return os.CreateTemp(dir, pattern) }
	chmodFile      = os.Chmod
	renameFile     = os.Rename
	removeFile     = os.Remove
)

// WriteFileAtomic writes data to targetPath through a hidden sibling temp
// file, creating the parent directory when needed. On failure the temp file
// is removed and targetPath is left as it was.
func WriteFileAtomic(targetPath string, data []byte, perm os.FileMode) (err error) {
	dir, name := filepath.Split(targetPath)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := createTempFile(dir, "."+name+".tsgen-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", name, err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			_ = removeFile(tmpPath)
		}
	}()

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("write temp for %s: %w", name, err)
	}
	if err = chmodFile(tmpPath, perm); err != nil {
		return fmt.Errorf("chmod temp for %s: %w", name, err)
	}
	if err = renameFile(tmpPath, targetPath); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

// WriteIfChanged writes data unless path already holds exactly data. It
// reports whether a write happened.
func WriteIfChanged(path string, data []byte, perm os.FileMode) (bool, error) {
	existing, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(existing, data):
		return false, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	if err := WriteFileAtomic(path, data, perm); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

// Result summarises one WriteSources call.
type Result struct {
	Written   []string
	Unchanged []string
	Pruned    []string
}

// WriteSources writes every unit into dir under its hint name. With prune
// set, generated units in dir that are not in sources are removed.
func WriteSources(dir string, sources []typedstring.Source, prune bool) (Result, error) {
	var res Result
	keep := make(map[string]struct{}, len(sources))

	for _, src := range sources {
		keep[src.HintName] = struct{}{}

		path := filepath.Join(dir, src.HintName)
		written, err := WriteIfChanged(path, []byte(src.Text), FilePerm)
		if err != nil {
			return res, err
		}
		if written {
			res.Written = append(res.Written, path)
		} else {
			res.Unchanged = append(res.Unchanged, path)
		}
	}

	if prune {
		pruned, err := Prune(dir, keep)
		if err != nil {
			return res, err
		}
		res.Pruned = pruned
	}
	return res, nil
}

// Prune deletes the *.g.cs files directly in dir whose name is not in keep
// and whose content carries the generator header. Other files are left
// alone. The removed paths are returned sorted. A missing dir is not an
// error.
func Prune(dir string, keep map[string]struct{}) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("prune %s: %w", dir, err)
	}

	var removed []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, typedstring.HintSuffix) {
			continue
		}
		if _, ok := keep[name]; ok {
			continue
		}

		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return removed, fmt.Errorf("prune %s: %w", path, err)
		}
		if !typedstring.IsGenerated(string(data)) {
			continue
		}
		if err := removeFile(path); err != nil {
			return removed, fmt.Errorf("prune %s: %w", path, err)
		}
		removed = append(removed, path)
	}
	sort.Strings(removed)
	return removed, nil
}
