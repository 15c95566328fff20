package plugins

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores available source extractors and output renderers.
type Registry struct {
	mu        sync.RWMutex
	sources   map[string]SourcePlugin
	renderers map[string]Renderer
}

// NewRegistry creates an empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		sources:   make(map[string]SourcePlugin),
		renderers: make(map[string]Renderer),
	}
}

func (r *Registry) RegisterSource(p SourcePlugin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[p.Language()] = p
}

func (r *Registry) RegisterRenderer(p Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[p.Format()] = p
}

func (r *Registry) Source(lang string) (SourcePlugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.sources[lang]
	if !ok {
		return nil, fmt.Errorf("no source plugin for language %q", lang)
	}
	return p, nil
}

func (r *Registry) Renderer(format string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.renderers[format]
	if !ok {
		return nil, fmt.Errorf("no renderer for format %q", format)
	}
	return p, nil
}

// Formats returns the registered output formats in sorted order.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.renderers))
	for format := range r.renderers {
		out = append(out, format)
	}
	sort.Strings(out)
	return out
}
