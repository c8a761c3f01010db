package typedstring

// node is a minimal SyntaxNode for building parent chains in tests.
type node struct {
	kind   NodeKind
	name   string
	parent *node
}

func (n *node) Kind() NodeKind { return n.kind }
func (n *node) Name() string   { return n.name }

func (n *node) Parent() SyntaxNode {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// unit returns a compilation unit root.
func unit() *node { return &node{kind: KindCompilationUnit} }

// ns appends namespace nodes under parent, one per name.
func ns(parent *node, names ...string) *node {
	cur := parent
	for _, name := range names {
		cur = &node{kind: KindNamespace, name: name, parent: cur}
	}
	return cur
}

func decl(parent *node, kind NodeKind, name string) *node {
	return &node{kind: kind, name: name, parent: parent}
}

// markerClass is the resolved TypedStrings.TypedStringAttribute symbol.
func markerClass() *TypeSymbol {
	return &TypeSymbol{Name: MarkerName, Namespace: NewNamespaceSymbol(MarkerNamespace)}
}

func comparer(namespace, name string, interfaces ...string) *TypeSymbol {
	return &TypeSymbol{Name: name, Namespace: NewNamespaceSymbol(namespace), Interfaces: interfaces}
}

func marker(args ...*TypeSymbol) Attribute {
	attr := Attribute{Class: markerClass()}
	for _, a := range args {
		attr.Args = append(attr.Args, Argument{Type: a})
	}
	return attr
}

// zipCodeCandidate is struct Foo.ZipCode annotated with
// [TypedString(typeof(Foo.OrdinalIgnoreCaseComparer))].
func zipCodeCandidate() Candidate {
	return Candidate{
		Decl:       decl(ns(unit(), "Foo"), KindStruct, "ZipCode"),
		Attributes: []Attribute{marker(comparer("Foo", "OrdinalIgnoreCaseComparer", CapabilityName))},
	}
}
