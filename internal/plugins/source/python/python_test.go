package python

import (
	"context"
	"testing"

	"github.com/efebarandurmaz/depscope/internal/plugins"
)

func parseTokens(t *testing.T, source string) []string {
	t.Helper()
	tokens, err := ParseImports(context.Background(), []byte(source))
	if err != nil {
		t.Fatalf("ParseImports: %v", err)
	}
	return tokens
}

func assertTokens(t *testing.T, got []string, want ...string) {
	t.Helper()
	set := make(map[string]bool, len(got))
	for _, token := range got {
		set[token] = true
	}
	for _, token := range want {
		if !set[token] {
			t.Errorf("missing token %q in %v", token, got)
		}
	}
	if len(got) != len(want) {
		t.Errorf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
}

func TestParseImportsAllShapes(t *testing.T) {
	source := `
import os
import sys as system
from json import dumps
from os.path import join as j
from . import localmod
from .pkg import submod
`
	tokens := parseTokens(t, source)
	assertTokens(t, tokens,
		"os",
		"sys",
		"json.dumps",
		"os.path.join",
		".",
		".localmod",
		".pkg",
		".pkg.submod",
	)
}

func TestParseImportsMultipleNames(t *testing.T) {
	tokens := parseTokens(t, "from collections import OrderedDict, defaultdict\n")
	assertTokens(t, tokens, "collections.OrderedDict", "collections.defaultdict")
}

func TestParseImportsWildcard(t *testing.T) {
	tokens := parseTokens(t, "from os.path import *\n")
	assertTokens(t, tokens, "os.path")
}

func TestParseImportsRelativeExpandsNames(t *testing.T) {
	tokens := parseTokens(t, "from ..util import helper\n")
	assertTokens(t, tokens, "..util", "..util.helper")
}

func TestParseImportsDotOnlyExpandsNames(t *testing.T) {
	tokens := parseTokens(t, "from . import b, c\n")
	assertTokens(t, tokens, ".", ".b", ".c")
}

func TestParseImportsNested(t *testing.T) {
	source := `
def lazy():
    import heavy.dependency
    return heavy.dependency
`
	tokens := parseTokens(t, source)
	assertTokens(t, tokens, "heavy.dependency")
}

func TestParseImportsDeduplicates(t *testing.T) {
	source := "import os\nimport os\nfrom json import dumps\nfrom json import dumps\n"
	tokens := parseTokens(t, source)
	assertTokens(t, tokens, "os", "json.dumps")
}

func TestParseImportsSyntaxErrorDegrades(t *testing.T) {
	// Broken trailing statement must not prevent extraction of the
	// imports tree-sitter could still recover.
	source := "import os\ndef broken(:\n"
	tokens := parseTokens(t, source)
	set := make(map[string]bool)
	for _, token := range tokens {
		set[token] = true
	}
	if !set["os"] {
		t.Errorf("expected os to survive a syntax error, got %v", tokens)
	}
}

func TestModuleName(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"pkg/a.py", "pkg.a"},
		{"pkg/sub/mod.py", "pkg.sub.mod"},
		{"pkg/__init__.py", "pkg"},
		{"top.py", "top"},
		{"__init__.py", ""},
	}
	for _, tc := range cases {
		if got := ModuleName(tc.path); got != tc.want {
			t.Errorf("ModuleName(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestExtract(t *testing.T) {
	plugin := New()
	files := []plugins.SourceFile{
		{Path: "app/models.py", Content: []byte("from . import services\nimport os\n")},
		{Path: "app/__init__.py", Content: []byte("")},
	}

	identities, err := plugin.Extract(context.Background(), files)
	if err != nil {
		t.Fatal(err)
	}
	if len(identities) != 2 {
		t.Fatalf("expected 2 identities, got %d", len(identities))
	}
	if identities[0].Name != "app.models" || identities[0].Location != "app/models.py" {
		t.Errorf("unexpected identity %+v", identities[0])
	}
	assertTokens(t, identities[0].RawImports, ".", ".services", "os")
	if identities[1].Name != "app" {
		t.Errorf("package __init__ should map to the package name, got %q", identities[1].Name)
	}
}

type recordingCache struct {
	store map[string][]string
	hits  int
}

func (c *recordingCache) Get(key string) ([]string, bool) {
	tokens, ok := c.store[key]
	if ok {
		c.hits++
	}
	return tokens, ok
}

func (c *recordingCache) Add(key string, tokens []string) {
	c.store[key] = tokens
}

func TestExtractUsesCache(t *testing.T) {
	cache := &recordingCache{store: make(map[string][]string)}
	plugin := New(WithCache(cache))
	files := []plugins.SourceFile{
		{Path: "a.py", Content: []byte("import os\n")},
	}

	if _, err := plugin.Extract(context.Background(), files); err != nil {
		t.Fatal(err)
	}
	if _, err := plugin.Extract(context.Background(), files); err != nil {
		t.Fatal(err)
	}
	if cache.hits != 1 {
		t.Errorf("expected 1 cache hit on the second run, got %d", cache.hits)
	}
}
