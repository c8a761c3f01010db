package typedstring

import "strings"

// Names the generated bootstrap code declares and the analyzer looks for.
const (
	MarkerNamespace = "TypedStrings"
	MarkerName      = "TypedStringAttribute"
	CapabilityName  = "IStaticStringComparer"
)

// TypeSymbol is a resolved type as seen by the host's symbol table.
//
// Interfaces holds the names of every interface the type implements,
// including inherited ones. Containing is set for nested types.
type TypeSymbol struct {
	Name       string
	Namespace  *NamespaceSymbol
	Containing *TypeSymbol
	Interfaces []string
}

// Implements reports whether one of the type's interfaces has the given
// simple name. Only names are compared: an unrelated interface that happens
// to share the name counts.
func (t *TypeSymbol) Implements(name string) bool {
	if t == nil {
		return false
	}
	for _, iface := range t.Interfaces {
		if simpleName(iface) == name {
			return true
		}
	}
	return false
}

// FullName returns the global::-rooted reference to t, including any
// containing types.
func (t *TypeSymbol) FullName() string {
	name := t.Name
	outer := t
	for outer.Containing != nil {
		outer = outer.Containing
		name = outer.Name + "." + name
	}
	return QualifyType(NamespaceFromSymbol(outer.Namespace), name)
}

// Argument is one constructor argument of an attribute. Type is nil when the
// argument is missing, null or not a type reference.
type Argument struct {
	Type *TypeSymbol
}

// Attribute is an attribute application on a candidate declaration. Class is
// nil when the attribute name did not resolve.
type Attribute struct {
	Class *TypeSymbol
	Args  []Argument
}

// IsMarker reports whether the attribute is TypedStrings.TypedStringAttribute.
func (a Attribute) IsMarker() bool {
	if a.Class == nil || a.Class.Name != MarkerName || a.Class.Containing != nil {
		return false
	}
	return NamespaceFromSymbol(a.Class.Namespace).String() == MarkerNamespace
}

// Candidate is a declaration carrying attributes, as supplied by the host.
// Decl is the declaration node itself; its Parent chain is the enclosing scope.
type Candidate struct {
	Decl       SyntaxNode
	Attributes []Attribute
}

// Analyze validates c and returns the Declaration to emit. The second result
// is false when c is not eligible; there is no other failure mode.
func Analyze(c Candidate) (Declaration, bool) {
	if c.Decl == nil || c.Decl.Kind() != KindStruct || !isFlat(c.Decl) {
		return Declaration{}, false
	}

	for _, attr := range c.Attributes {
		strategy, ok := comparerOf(attr)
		if !ok {
			continue
		}
		return Declaration{
			namespace: NamespaceFromSyntax(c.Decl.Parent()).String(),
			typeName:  c.Decl.Name(),
			strategy:  strategy.FullName(),
		}, true
	}
	return Declaration{}, false
}

// comparerOf returns the comparer type named by a marker attribute.
func comparerOf(attr Attribute) (*TypeSymbol, bool) {
	if !attr.IsMarker() || len(attr.Args) != 1 {
		return nil, false
	}
	comparer := attr.Args[0].Type
	if comparer == nil || comparer.Name == "" || !comparer.Implements(CapabilityName) {
		return nil, false
	}
	return comparer, true
}

// isFlat reports whether decl sits directly in a namespace or at the top level.
func isFlat(decl SyntaxNode) bool {
	parent := decl.Parent()
	if parent == nil {
		return true
	}
	switch parent.Kind() {
	case KindNamespace, KindCompilationUnit:
		return true
	}
	return false
}

// simpleName strips qualifiers and generic arguments: "global::A.IFoo<T>" -> "IFoo".
func simpleName(name string) string {
	if i := strings.IndexByte(name, '<'); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndex(name, "::"); i >= 0 {
		name = name[i+2:]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSpace(name)
}
