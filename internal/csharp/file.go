// Package csharp is the front end of the generator host: it parses C# sources
// with tree-sitter, builds a symbol table across files and turns attributed
// declarations into typedstring.Candidate values.
package csharp

import (
	"strings"

	"github.com/sghaida/typedstrings/typedstring"
)

// scope is one link of a declaration's syntactic parent chain. It satisfies
// typedstring.SyntaxNode.
type scope struct {
	kind   typedstring.NodeKind
	name   string
	parent *scope
}

func (s *scope) Kind() typedstring.NodeKind { return s.kind }
func (s *scope) Name() string               { return s.name }

func (s *scope) Parent() typedstring.SyntaxNode {
	if s.parent == nil {
		return nil
	}
	return s.parent
}

// path returns the dotted names of every namespace and type above s,
// including s itself, outermost first. The compilation unit contributes
// nothing.
func (s *scope) path() []string {
	var out []string
	for cur := s; cur != nil; cur = cur.parent {
		if cur.kind == typedstring.KindCompilationUnit {
			continue
		}
		out = append(splitDotted(cur.name), out...)
	}
	return out
}

// AttributeRef is an attribute application as written in source.
type AttributeRef struct {
	Name string
	Args []string
}

// TypeDecl is a type declaration found in a file.
type TypeDecl struct {
	File       *File
	Bases      []string
	Attributes []AttributeRef

	node *scope
}

// Name returns the declared identifier.
func (d *TypeDecl) Name() string { return d.node.name }

// Kind returns the declaration kind.
func (d *TypeDecl) Kind() typedstring.NodeKind { return d.node.kind }

// Node returns the declaration as a syntax node.
func (d *TypeDecl) Node() typedstring.SyntaxNode { return d.node }

// FullName returns the dotted fully-qualified name, e.g. "Foo.Outer.Inner".
func (d *TypeDecl) FullName() string { return strings.Join(d.node.path(), ".") }

// File is the parse result of one C# source file.
type File struct {
	Path string
	// Usings holds namespaces imported with `using N;`.
	Usings []string
	// Aliases maps `using A = N.T;` aliases to their targets.
	Aliases map[string]string
	Types   []*TypeDecl

	root *scope
}

func newFile(path string) *File {
	return &File{
		Path:    path,
		Aliases: map[string]string{},
		root:    &scope{kind: typedstring.KindCompilationUnit},
	}
}

func splitDotted(name string) []string {
	var out []string
	for _, seg := range strings.Split(name, ".") {
		if seg = strings.TrimSpace(seg); seg != "" {
			out = append(out, seg)
		}
	}
	return out
}
