package csharp

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// Fixtures
// -----------------------------------------------------------------------------

// zipCodeSource mirrors the canonical usage: comparer and wrapper side by
// side in one namespace.
const zipCodeSource = `using System;
using System.Linq;
using TypedStrings;

namespace Foo {

    public class OrdinalIgnoreCaseComparer : IStaticStringComparer
    {
        public static bool Equals(string x, string y) => StringComparer.OrdinalIgnoreCase.Equals(x, y);
        public static int GetHashCode(string s) => s.GetHashCode();
    }

    [TypedString(typeof(OrdinalIgnoreCaseComparer))]
    public readonly partial struct ZipCode
    {
        public ZipCode(string s)
        {
            if (s.Length == 5 && s.All(char.IsAsciiDigit))
                Raw = s;
            else
                throw new ArgumentOutOfRangeException();
        }
    }
}
`

//
// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func parseSource(t *testing.T, path, src string) *File {
	t.Helper()

	p := NewParser()
	t.Cleanup(p.Close)

	f, err := p.Parse(context.Background(), path, []byte(src))
	require.NoError(t, err)
	return f
}

// compile parses sources (path -> text) after the bootstrap units.
func compile(t *testing.T, sources map[string]string) *Compilation {
	t.Helper()

	dir := t.TempDir()
	var paths []string
	for name, src := range sources {
		paths = append(paths, writeSource(t, dir, name, src))
	}

	comp, err := (&Loader{Workers: 2}).Load(context.Background(), sortedCopy(paths))
	require.NoError(t, err)
	return comp
}

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()

	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(src), 0o644))
	return p
}

func findType(t *testing.T, f *File, name string) *TypeDecl {
	t.Helper()

	for _, d := range f.Types {
		if d.Name() == name {
			return d
		}
	}
	t.Fatalf("type %s not found in %s", name, f.Path)
	return nil
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
