package csharp

import (
	"regexp"
	"strings"

	"github.com/sghaida/typedstrings/typedstring"
)

// Compilation is the symbol table over a set of parsed files. Partial type
// declarations with the same full name are merged.
//
// A Compilation is not safe for concurrent use.
type Compilation struct {
	files []*File
	parts map[string][]*TypeDecl

	global     *typedstring.NamespaceSymbol
	namespaces map[string]*typedstring.NamespaceSymbol
	symbols    map[string]*typedstring.TypeSymbol
	interfaces map[string][]string
}

// NewCompilation returns a compilation over files, in order.
func NewCompilation(files ...*File) *Compilation {
	c := &Compilation{parts: map[string][]*TypeDecl{}}
	c.reset()
	for _, f := range files {
		c.Provide(f)
	}
	return c
}

func (c *Compilation) reset() {
	c.global = typedstring.GlobalNamespace()
	c.namespaces = map[string]*typedstring.NamespaceSymbol{"": c.global}
	c.symbols = map[string]*typedstring.TypeSymbol{}
	c.interfaces = map[string][]string{}
}

// Provide adds a file and returns the compilation for chaining.
func (c *Compilation) Provide(f *File) *Compilation {
	if f == nil {
		return c
	}
	c.files = append(c.files, f)
	for _, d := range f.Types {
		full := d.FullName()
		c.parts[full] = append(c.parts[full], d)
	}
	c.reset()
	return c
}

// Files returns the files in the order they were provided.
func (c *Compilation) Files() []*File { return c.files }

// Lookup returns the symbol of the type with the given dotted full name.
func (c *Compilation) Lookup(fullName string) (*typedstring.TypeSymbol, bool) {
	if _, ok := c.parts[fullName]; !ok {
		return nil, false
	}
	return c.symbol(fullName), true
}

// Resolve looks name up as written inside decl: enclosing namespaces and
// types innermost first, then the file's usings. A global:: name is looked up
// absolutely.
func (c *Compilation) Resolve(name string, decl *TypeDecl) (*typedstring.TypeSymbol, bool) {
	full, ok := c.resolve(name, decl.node, decl.File)
	if !ok {
		return nil, false
	}
	return c.symbol(full), true
}

func (c *Compilation) has(full string) bool {
	_, ok := c.parts[full]
	return ok
}

func (c *Compilation) resolve(name string, from *scope, file *File) (string, bool) {
	n, absolute := normalizeName(name)
	if n == "" {
		return "", false
	}
	if absolute {
		return n, c.has(n)
	}

	if file != nil {
		first, rest, _ := strings.Cut(n, ".")
		if target, ok := file.Aliases[first]; ok {
			full := target
			if rest != "" {
				full += "." + rest
			}
			return full, c.has(full)
		}
	}

	var path []string
	if from != nil {
		path = from.path()
	}
	for k := len(path); k >= 0; k-- {
		full := n
		if k > 0 {
			full = strings.Join(path[:k], ".") + "." + n
		}
		if c.has(full) {
			return full, true
		}
	}

	if file != nil {
		for _, u := range file.Usings {
			if full := u + "." + n; c.has(full) {
				return full, true
			}
		}
	}
	return "", false
}

// resolveAttribute applies the C# attribute suffix rule.
func (c *Compilation) resolveAttribute(name string, decl *TypeDecl) (*typedstring.TypeSymbol, bool) {
	if !strings.HasSuffix(name, "Attribute") {
		if sym, ok := c.Resolve(name+"Attribute", decl); ok {
			return sym, true
		}
	}
	return c.Resolve(name, decl)
}

func (c *Compilation) namespace(path string) *typedstring.NamespaceSymbol {
	if ns, ok := c.namespaces[path]; ok {
		return ns
	}
	parent, name := "", path
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		parent, name = path[:i], path[i+1:]
	}
	ns := c.namespace(parent).Child(name)
	c.namespaces[path] = ns
	return ns
}

func (c *Compilation) symbol(full string) *typedstring.TypeSymbol {
	if sym, ok := c.symbols[full]; ok {
		return sym
	}
	parts := c.parts[full]
	if len(parts) == 0 {
		return nil
	}

	d := parts[0]
	sym := &typedstring.TypeSymbol{
		Name:      d.Name(),
		Namespace: c.namespace(typedstring.NamespaceFromSyntax(d.node.Parent()).String()),
	}
	c.symbols[full] = sym

	if p := d.node.parent; p != nil && p.kind.IsType() {
		sym.Containing = c.symbol(strings.Join(p.path(), "."))
	}
	sym.Interfaces = c.allInterfaces(full, map[string]bool{})
	return sym
}

// allInterfaces collects the names of every interface full implements,
// through base classes and base interfaces. Bases that do not resolve in the
// compilation (framework types, missing references) contribute their simple
// name as written.
func (c *Compilation) allInterfaces(full string, visiting map[string]bool) []string {
	if names, ok := c.interfaces[full]; ok {
		return names
	}
	if visiting[full] {
		return nil
	}
	visiting[full] = true
	defer delete(visiting, full)

	var names []string
	seen := map[string]bool{}
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	for _, part := range c.parts[full] {
		for _, base := range part.Bases {
			target, ok := c.resolve(base, part.node.parent, part.File)
			if !ok {
				add(lastSegment(base))
				continue
			}
			if decl := c.parts[target][0]; decl.Kind() == typedstring.KindInterface {
				add(decl.Name())
			}
			for _, name := range c.allInterfaces(target, visiting) {
				add(name)
			}
		}
	}

	// Only a top-level walk sees every base; lists computed inside a
	// cycle are partial.
	if len(visiting) == 1 {
		c.interfaces[full] = names
	}
	return names
}

var (
	typeofArg    = regexp.MustCompile(`^typeof\s*\(\s*(.+?)\s*\)$`)
	namedArg     = regexp.MustCompile(`^@?[A-Za-z_]\w*\s*=[^=]`)
	nameColonArg = regexp.MustCompile(`^@?[A-Za-z_]\w*\s*:([^:].*)$`)
)

// attribute converts an attribute as written into its resolved form.
// Named property assignments are not constructor arguments and are dropped.
func (c *Compilation) attribute(ref AttributeRef, decl *TypeDecl) typedstring.Attribute {
	var attr typedstring.Attribute
	if class, ok := c.resolveAttribute(ref.Name, decl); ok {
		attr.Class = class
	}
	for _, raw := range ref.Args {
		raw = strings.TrimSpace(raw)
		if namedArg.MatchString(raw) {
			continue
		}
		if m := nameColonArg.FindStringSubmatch(raw); m != nil {
			raw = strings.TrimSpace(m[1])
		}
		var arg typedstring.Argument
		if m := typeofArg.FindStringSubmatch(raw); m != nil {
			if sym, ok := c.Resolve(m[1], decl); ok {
				arg.Type = sym
			}
		}
		attr.Args = append(attr.Args, arg)
	}
	return attr
}

// Candidates returns one candidate per declaration carrying the marker
// attribute, in file and source order. Whether the candidate is eligible is
// left to typedstring.Analyze.
func (c *Compilation) Candidates() []typedstring.Candidate {
	var out []typedstring.Candidate
	for _, f := range c.files {
		for _, d := range f.Types {
			if len(d.Attributes) == 0 {
				continue
			}
			cand := typedstring.Candidate{Decl: d.Node()}
			marked := false
			for _, ref := range d.Attributes {
				attr := c.attribute(ref, d)
				marked = marked || attr.IsMarker()
				cand.Attributes = append(cand.Attributes, attr)
			}
			if marked {
				out = append(out, cand)
			}
		}
	}
	return out
}

func lastSegment(name string) string {
	n, _ := normalizeName(name)
	if i := strings.LastIndexByte(n, '.'); i >= 0 {
		return n[i+1:]
	}
	return n
}
