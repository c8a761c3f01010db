package typedstring

import "strings"

// GlobalPrefix roots every qualified reference emitted by the generator.
const GlobalPrefix = "global::"

// NodeKind classifies a syntax node in a declaration's parent chain.
type NodeKind int

const (
	KindCompilationUnit NodeKind = iota
	KindNamespace
	KindStruct
	KindClass
	KindInterface
	KindRecord
)

// IsType reports whether k is a type declaration kind.
func (k NodeKind) IsType() bool {
	switch k {
	case KindStruct, KindClass, KindInterface, KindRecord:
		return true
	}
	return false
}

func (k NodeKind) String() string {
	switch k {
	case KindCompilationUnit:
		return "compilation_unit"
	case KindNamespace:
		return "namespace"
	case KindStruct:
		return "struct"
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	case KindRecord:
		return "record"
	default:
		return "unknown"
	}
}

// SyntaxNode is one link of a syntactic parent chain.
// Parent returns nil above the outermost node.
type SyntaxNode interface {
	Kind() NodeKind
	Name() string
	Parent() SyntaxNode
}

// NamespaceSymbol is one link of a resolved namespace chain. The global
// namespace has an empty name; a nil *NamespaceSymbol is treated as global.
type NamespaceSymbol struct {
	Name       string
	Containing *NamespaceSymbol
}

// GlobalNamespace returns a fresh global namespace symbol.
func GlobalNamespace() *NamespaceSymbol {
	return &NamespaceSymbol{}
}

// IsGlobal reports whether n is the global (unnamed) namespace.
func (n *NamespaceSymbol) IsGlobal() bool {
	return n == nil || n.Name == ""
}

// Child returns a namespace symbol nested directly in n.
func (n *NamespaceSymbol) Child(name string) *NamespaceSymbol {
	if n == nil {
		n = GlobalNamespace()
	}
	return &NamespaceSymbol{Name: name, Containing: n}
}

// NewNamespaceSymbol builds a symbol chain for a dotted path such as "A.B.C".
// An empty path yields the global namespace.
func NewNamespaceSymbol(path string) *NamespaceSymbol {
	ns := GlobalNamespace()
	for _, seg := range splitSegments(path) {
		ns = ns.Child(seg)
	}
	return ns
}

// Namespace is the canonical scope chain shared by both input shapes.
// The zero value is the global namespace.
type Namespace struct {
	path string
}

// NewNamespace returns the Namespace for the given segments, outermost first.
// Dotted segments are split and blank ones dropped.
func NewNamespace(segments ...string) Namespace {
	var parts []string
	for _, s := range segments {
		parts = append(parts, splitSegments(s)...)
	}
	return Namespace{path: strings.Join(parts, ".")}
}

// NamespaceFromSyntax walks a syntactic parent chain upward and collects the
// namespace declarations it passes through. Non-namespace links are skipped.
func NamespaceFromSyntax(node SyntaxNode) Namespace {
	var chain []string
	for n := node; n != nil; n = n.Parent() {
		if n.Kind() == KindNamespace {
			chain = append(chain, n.Name())
		}
	}
	reverse(chain)
	return NewNamespace(chain...)
}

// NamespaceFromSymbol walks a resolved namespace chain upward until the global
// namespace.
func NamespaceFromSymbol(ns *NamespaceSymbol) Namespace {
	var chain []string
	for n := ns; !n.IsGlobal(); n = n.Containing {
		chain = append(chain, n.Name)
	}
	reverse(chain)
	return NewNamespace(chain...)
}

// IsGlobal reports whether the namespace is the global namespace.
func (n Namespace) IsGlobal() bool { return n.path == "" }

// Segments returns the namespace parts, outermost first.
func (n Namespace) Segments() []string {
	if n.path == "" {
		return nil
	}
	return strings.Split(n.path, ".")
}

// String renders the dotted path ("A.B.C"), empty for the global namespace.
func (n Namespace) String() string { return n.path }

// Qualified renders the globally rooted path ("global::A.B.C"). The global
// namespace renders as the bare prefix; use QualifyType for type references.
func (n Namespace) Qualified() string { return GlobalPrefix + n.path }

// QualifyType renders the fully-qualified reference to a type named name
// declared in ns. The result always carries the global prefix.
func QualifyType(ns Namespace, name string) string {
	if ns.IsGlobal() {
		return GlobalPrefix + name
	}
	return ns.Qualified() + "." + name
}

func splitSegments(path string) []string {
	var out []string
	for _, seg := range strings.Split(path, ".") {
		seg = strings.TrimSpace(seg)
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
