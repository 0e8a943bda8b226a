package listedit

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-listedit/pkg/model"
)

// Factory builds a widget of one kind from its page configuration and the
// initial JSON payload.
type Factory func(cfg Config, initialJSON string) (Widget, error)

// Registry maps widget kinds to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// NewDefaultRegistry returns a registry with the info and slot kinds.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()
	registry.MustRegister(model.KindInfo, func(cfg Config, initialJSON string) (Widget, error) {
		return NewInfo(cfg, initialJSON)
	})
	registry.MustRegister(model.KindSlot, func(cfg Config, initialJSON string) (Widget, error) {
		return NewSlots(cfg, initialJSON)
	})
	return registry
}

// Register adds a factory. Duplicate kinds return an error.
func (r *Registry) Register(kind string, factory Factory) error {
	kind = normalizeKind(kind)
	if kind == "" {
		return fmt.Errorf("listedit: widget kind is required")
	}
	if factory == nil {
		return fmt.Errorf("listedit: factory for %q is nil", kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[kind]; exists {
		return fmt.Errorf("listedit: widget kind %q already registered", kind)
	}
	r.factories[kind] = factory
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(kind string, factory Factory) {
	if err := r.Register(kind, factory); err != nil {
		panic(err)
	}
}

// Build constructs a widget of the given kind.
func (r *Registry) Build(kind string, cfg Config, initialJSON string) (Widget, error) {
	r.mu.RLock()
	factory, ok := r.factories[normalizeKind(kind)]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return factory(cfg, initialJSON)
}

// Kinds returns the registered kinds sorted by name.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

func normalizeKind(kind string) string {
	return strings.ToLower(strings.TrimSpace(kind))
}
