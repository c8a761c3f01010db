// Package typedstrings generates strongly typed string wrappers for C#.
//
// A C# project marks a readonly partial struct with
// [TypedString(typeof(SomeComparer))], where SomeComparer implements
// IStaticStringComparer. The generator writes the rest of the struct: a Raw
// string, equality and hashing delegated to the comparer, == and !=
// against the wrapper and against plain strings, and an implicit
// conversion back to string.
//
// Layout:
//   - typedstring: the engine. Namespace resolution, candidate validation,
//     the declaration model, emission and the bootstrap units. Pure, no I/O.
//   - internal/csharp: tree-sitter based C# front end that turns source files
//     into the engine's syntax nodes, symbols and candidates
//   - internal/config, internal/logging, internal/output, internal/watch:
//     the tsgen host (settings, zap logging, atomic writes and pruning,
//     fsnotify based regeneration)
//   - cmd/tsgen: the command line tool
package typedstrings
