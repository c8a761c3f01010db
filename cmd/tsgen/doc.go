// Command tsgen generates typed-string wrappers for C# projects.
//
// A typed string is a readonly partial struct that wraps one string and
// delegates equality and hashing to a comparison strategy chosen at the
// declaration site:
//
//	using TypedStrings;
//
//	public sealed class OrdinalIgnoreCase : IStaticStringComparer
//	{
//	    public static bool Equals(string x, string y) => StringComparer.OrdinalIgnoreCase.Equals(x, y);
//	    public static int GetHashCode(string s) => StringComparer.OrdinalIgnoreCase.GetHashCode(s);
//	}
//
//	[TypedString(typeof(OrdinalIgnoreCase))]
//	public readonly partial struct ZipCode { }
//
// tsgen scans the sources under a root, finds every struct carrying the
// marker attribute and writes the other half of the partial struct
// (Raw, Equals, GetHashCode, ==, != and an implicit conversion to string)
// as <Type>.g.cs into the output directory. The marker attribute and the
// comparer interface are written alongside as TypedStringAttribute.g.cs and
// IStaticStringComparer.g.cs so the project compiles without a runtime
// dependency.
//
// Commands
//
//	tsgen generate [paths...]   scan root (or the given files/dirs) and write units
//	tsgen watch                 generate, then regenerate whenever a source changes
//	tsgen bootstrap             write only the marker and comparer units
//	tsgen version               print the generator version
//
// Configuration
//
// Settings come from tsgen.yaml (or --config), then TSGEN_* environment
// variables, then flags:
//
//	root: src
//	out: src/Generated
//	exclude: [bin, obj]
//	workers: 8
//	prune: true
//	log:
//	  level: info
//	  format: console
//	watch:
//	  debounce: 200ms
//
// Exit codes: 0 on success, 1 on a generation or config error, 2 on a
// usage error.
//
// Rerunning generate over unchanged sources writes nothing. With prune on,
// units this tool wrote earlier that are no longer produced are deleted;
// files without the generated header are never touched.
package main
