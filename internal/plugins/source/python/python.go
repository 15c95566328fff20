package python

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/efebarandurmaz/depscope/internal/depgraph"
	"github.com/efebarandurmaz/depscope/internal/plugins"
)

// Cache memoizes per-file extraction results between runs.
type Cache interface {
	Get(key string) ([]string, bool)
	Add(key string, tokens []string)
}

// Option configures the plugin.
type Option func(*Plugin)

// WithCache enables extraction memoization.
func WithCache(c Cache) Option {
	return func(p *Plugin) { p.cache = c }
}

// Plugin implements plugins.SourcePlugin for Python. It parses each file
// with tree-sitter and surfaces raw import tokens in the same shapes the
// core resolver expects:
//
//	import os                    -> "os"
//	import sys as system         -> "sys"
//	from json import dumps       -> "json.dumps"
//	from os.path import join as j -> "os.path.join"
//	from . import localmod       -> ".", ".localmod"
//	from .pkg import submod      -> ".pkg", ".pkg.submod"
//	from x import *              -> "x"
//
// From-imports expand to one token per imported name so that prefix
// matching can resolve them. Relative forms additionally surface the
// bare module-path token, since the imported name may be a symbol
// rather than a submodule.
type Plugin struct {
	cache Cache
}

func New(opts ...Option) *Plugin {
	p := &Plugin{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Plugin) Language() string { return "python" }

func (p *Plugin) FileExtensions() []string { return []string{".py"} }

func (p *Plugin) Extract(ctx context.Context, files []plugins.SourceFile) ([]depgraph.ModuleIdentity, error) {
	var identities []depgraph.ModuleIdentity
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := ModuleName(f.Path)
		if name == "" {
			continue
		}

		tokens, err := p.imports(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("extracting imports from %s: %w", f.Path, err)
		}
		identities = append(identities, depgraph.ModuleIdentity{
			Name:       name,
			Location:   f.Path,
			RawImports: tokens,
		})
	}
	return identities, nil
}

func (p *Plugin) imports(ctx context.Context, f plugins.SourceFile) ([]string, error) {
	var key string
	if p.cache != nil {
		sum := sha256.Sum256(f.Content)
		key = f.Path + ":" + hex.EncodeToString(sum[:8])
		if tokens, ok := p.cache.Get(key); ok {
			return tokens, nil
		}
	}

	tokens, err := ParseImports(ctx, f.Content)
	if err != nil {
		return nil, err
	}
	if p.cache != nil {
		p.cache.Add(key, tokens)
	}
	return tokens, nil
}

// ModuleName derives the qualified dotted module name from a
// root-relative file path: "pkg/a.py" -> "pkg.a", "pkg/__init__.py" ->
// "pkg". A bare top-level __init__.py has no name and yields "".
func ModuleName(path string) string {
	path = strings.TrimSuffix(filepath.ToSlash(path), ".py")
	parts := strings.Split(path, "/")
	if parts[len(parts)-1] == "__init__" {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, ".")
}

// ParseImports parses Python source with tree-sitter and returns the raw
// import tokens in first-seen order. Files with syntax errors still
// yield the imports tree-sitter could recover.
func ParseImports(ctx context.Context, content []byte) ([]string, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, nil
	}

	collector := &importCollector{
		content: content,
		seen:    make(map[string]struct{}),
	}
	collector.walk(root)
	return collector.tokens, nil
}

type importCollector struct {
	content []byte
	tokens  []string
	seen    map[string]struct{}
}

func (c *importCollector) add(token string) {
	if token == "" {
		return
	}
	if _, dup := c.seen[token]; dup {
		return
	}
	c.seen[token] = struct{}{}
	c.tokens = append(c.tokens, token)
}

func (c *importCollector) text(node *sitter.Node) string {
	return string(c.content[node.StartByte():node.EndByte()])
}

// walk visits every node, so imports nested inside functions or
// conditionals are collected too, matching ast.walk semantics.
func (c *importCollector) walk(node *sitter.Node) {
	switch node.Type() {
	case "import_statement":
		c.importStatement(node)
		return
	case "import_from_statement":
		c.importFromStatement(node)
		return
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		c.walk(node.NamedChild(i))
	}
}

// importStatement handles "import foo" and "import foo as bar".
func (c *importCollector) importStatement(node *sitter.Node) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "dotted_name":
			c.add(c.text(child))
		case "aliased_import":
			// The alias never matters: the token is the real module name.
			for j := 0; j < int(child.ChildCount()); j++ {
				if grandchild := child.Child(j); grandchild.Type() == "dotted_name" {
					c.add(c.text(grandchild))
				}
			}
		}
	}
}

// importFromStatement handles "from x import a, b as c", relative forms,
// and wildcards.
func (c *importCollector) importFromStatement(node *sitter.Node) {
	var modulePath string
	var names []string
	isRelative := false
	isWildcard := false
	sawImport := false

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "import":
			sawImport = true
		case "relative_import":
			isRelative = true
			modulePath = c.text(child)
		case "dotted_name":
			if !sawImport {
				modulePath = c.text(child)
			} else {
				names = append(names, c.text(child))
			}
		case "identifier":
			if sawImport {
				names = append(names, c.text(child))
			}
		case "aliased_import":
			for j := 0; j < int(child.ChildCount()); j++ {
				grandchild := child.Child(j)
				if grandchild.Type() == "dotted_name" || (grandchild.Type() == "identifier" && j == 0) {
					names = append(names, c.text(grandchild))
					break
				}
			}
		case "wildcard_import":
			isWildcard = true
		}
	}

	if modulePath == "" {
		return
	}
	// Wildcard imports have no usable symbol names.
	if isWildcard || len(names) == 0 {
		c.add(modulePath)
		return
	}
	if isRelative {
		// "from . import b" may bind either the submodule pkg.b or a
		// symbol defined in pkg/__init__.py; surface both candidates
		// and let resolution sort it out.
		c.add(modulePath)
		prefix := modulePath
		if !strings.HasSuffix(prefix, ".") {
			prefix += "."
		}
		for _, name := range names {
			c.add(prefix + name)
		}
		return
	}
	for _, name := range names {
		c.add(modulePath + "." + name)
	}
}
