// Package typedstring synthesizes value-wrapper companions for C# structs
// annotated with [TypedString(typeof(Comparer))].
//
// The package is the analysis-and-synthesis engine only. It performs no I/O,
// keeps no state between calls and never logs; a host (see cmd/tsgen) feeds it
// candidate declarations and stores the emitted text.
//
// Pipeline
//
//   - Analyze validates one Candidate and, when it is eligible, returns a
//     Declaration (namespace, type name, fully-qualified comparer).
//   - Emit renders a Declaration into one Source unit (<Type>.g.cs).
//   - Bootstrap returns the two fixed units every compilation needs: the
//     marker attribute and the IStaticStringComparer contract.
//   - Generate / Pass.Run chain the three over a batch of candidates.
//
// Rejected candidates produce nothing. There is no error value for a bad
// candidate: absence of output is the signal.
//
// Namespaces
//
// A namespace reaches the engine in one of two shapes: a syntax parent chain
// (SyntaxNode) or a resolved symbol chain (*NamespaceSymbol). Both collapse to
// the same Namespace value, which renders either as a plain dotted path for
// namespace blocks or as a global::-rooted path for qualified references.
package typedstring
