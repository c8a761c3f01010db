package csharp

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"

	"github.com/sghaida/typedstrings/typedstring"
)

// Parser extracts declarations from C# source. A Parser is not safe for
// concurrent use; give each goroutine its own.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a parser bound to the C# grammar.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(csharp.GetLanguage())
	return &Parser{parser: p}
}

// Close releases the underlying tree-sitter parser.
func (p *Parser) Close() {
	p.parser.Close()
}

// Parse parses src and returns its usings and type declarations. Syntax
// errors do not fail the parse; tree-sitter recovers and whatever declarations
// survive are returned.
func (p *Parser) Parse(ctx context.Context, path string, src []byte) (*File, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	f := newFile(path)
	w := walker{file: f, src: src}
	w.members(tree.RootNode(), f.root)
	return f, nil
}

type walker struct {
	file *File
	src  []byte
}

func (w *walker) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.Content(w.src))
}

// members walks the direct members of a compilation unit, namespace body or
// type body.
func (w *walker) members(n *sitter.Node, parent *scope) {
	cur := parent
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "using_directive":
			w.using(child)

		case "namespace_declaration":
			ns := &scope{kind: typedstring.KindNamespace, name: w.text(child.ChildByFieldName("name")), parent: cur}
			if body := child.ChildByFieldName("body"); body != nil {
				w.members(body, ns)
			} else {
				w.members(child, ns)
			}

		case "file_scoped_namespace_declaration":
			// Depending on the grammar version the members are either children
			// of this node or its following siblings; cover both.
			ns := &scope{kind: typedstring.KindNamespace, name: w.text(child.ChildByFieldName("name")), parent: cur}
			w.members(child, ns)
			cur = ns

		case "class_declaration", "struct_declaration", "interface_declaration",
			"record_declaration", "record_struct_declaration":
			w.typeDecl(child, cur)

		case "declaration_list":
			w.members(child, cur)
		}
	}
}

func (w *walker) using(n *sitter.Node) {
	alias, target, ok := parseUsing(w.text(n))
	if !ok {
		return
	}
	if alias != "" {
		w.file.Aliases[alias] = target
		return
	}
	w.file.Usings = append(w.file.Usings, target)
}

func (w *walker) typeDecl(n *sitter.Node, parent *scope) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}

	node := &scope{kind: declKind(n), name: w.text(nameNode), parent: parent}
	d := &TypeDecl{File: w.file, node: node}

	var body *sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "attribute_list":
			d.Attributes = append(d.Attributes, w.attributes(child)...)
		case "base_list":
			d.Bases = append(d.Bases, w.bases(child)...)
		case "declaration_list":
			body = child
		}
	}
	if body == nil {
		body = n.ChildByFieldName("body")
	}

	w.file.Types = append(w.file.Types, d)
	if body != nil {
		w.members(body, node)
	}
}

func (w *walker) attributes(list *sitter.Node) []AttributeRef {
	var refs []AttributeRef
	for i := 0; i < int(list.NamedChildCount()); i++ {
		attr := list.NamedChild(i)
		if attr.Type() != "attribute" {
			continue
		}

		nameNode := attr.ChildByFieldName("name")
		if nameNode == nil && attr.NamedChildCount() > 0 {
			nameNode = attr.NamedChild(0)
		}
		ref := AttributeRef{Name: w.text(nameNode)}

		for j := 0; j < int(attr.NamedChildCount()); j++ {
			args := attr.NamedChild(j)
			if args.Type() != "attribute_argument_list" {
				continue
			}
			for k := 0; k < int(args.NamedChildCount()); k++ {
				if arg := args.NamedChild(k); arg.Type() == "attribute_argument" {
					ref.Args = append(ref.Args, w.text(arg))
				}
			}
		}
		refs = append(refs, ref)
	}
	return refs
}

func (w *walker) bases(list *sitter.Node) []string {
	var out []string
	for i := 0; i < int(list.NamedChildCount()); i++ {
		child := list.NamedChild(i)
		if child.Type() == "argument_list" {
			continue
		}
		text := w.text(child)
		// Primary constructor base: "Base(x, y)".
		if j := strings.IndexByte(text, '('); j >= 0 {
			text = strings.TrimSpace(text[:j])
		}
		if text != "" {
			out = append(out, text)
		}
	}
	return out
}

func declKind(n *sitter.Node) typedstring.NodeKind {
	switch n.Type() {
	case "struct_declaration":
		return typedstring.KindStruct
	case "class_declaration":
		return typedstring.KindClass
	case "interface_declaration":
		return typedstring.KindInterface
	}
	// record, record class and record struct.
	return typedstring.KindRecord
}

// parseUsing understands `using N;`, `global using N;` and `using A = N;`.
// Static usings are not type scopes for lookup and are ignored.
func parseUsing(text string) (alias, target string, ok bool) {
	t := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), ";"))
	t = strings.TrimSpace(strings.TrimPrefix(t, "global "))
	if !strings.HasPrefix(t, "using ") {
		return "", "", false
	}
	t = strings.TrimSpace(strings.TrimPrefix(t, "using "))
	if strings.HasPrefix(t, "static ") || t == "" {
		return "", "", false
	}
	if i := strings.IndexByte(t, '='); i >= 0 {
		alias = strings.TrimSpace(t[:i])
		target, _ = normalizeName(t[i+1:])
		return alias, target, alias != "" && target != ""
	}
	target, _ = normalizeName(t)
	return "", target, target != ""
}

// normalizeName drops whitespace, generic arguments, nullable and array
// suffixes and a leading global:: qualifier. absolute reports whether the
// qualifier was present.
func normalizeName(name string) (normalized string, absolute bool) {
	var sb strings.Builder
	depth := 0
	for _, r := range name {
		switch {
		case r == '<':
			depth++
		case r == '>':
			if depth > 0 {
				depth--
			}
		case depth > 0:
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
		default:
			sb.WriteRune(r)
		}
	}
	out := sb.String()
	out = strings.TrimRight(out, "?[]")
	if strings.HasPrefix(out, typedstring.GlobalPrefix) {
		return strings.TrimPrefix(out, typedstring.GlobalPrefix), true
	}
	return out, false
}
