package typedstring

// HintSuffix is appended to a wrapper's type name to form its unit name.
const HintSuffix = ".g.cs"

// Declaration is everything the emitter needs for one wrapper struct.
// Only Analyze builds one; it is never mutated afterwards and two
// declarations with equal fields are interchangeable.
type Declaration struct {
	namespace string
	typeName  string
	strategy  string
}

// Namespace is the dotted namespace of the wrapper, empty at top level.
func (d Declaration) Namespace() string { return d.namespace }

// TypeName is the unqualified wrapper name.
func (d Declaration) TypeName() string { return d.typeName }

// Strategy is the global::-qualified comparer type.
func (d Declaration) Strategy() string { return d.strategy }

// HintName is the name of the unit emitted for d.
func (d Declaration) HintName() string { return d.typeName + HintSuffix }
