package protocol

import (
	"context"

	"github.com/sequentlabs/sequent/pkg/domain"
)

// Handler executes one protocol operation. It receives the decoded params
// object and returns the result payload or a tagged error.
type Handler func(ctx context.Context, params map[string]any) (any, error)

// Registry is the fixed table mapping method names to handlers. It is
// populated once at dispatcher construction and read-only afterwards, so
// no locking is needed.
type Registry struct {
	methods map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{methods: make(map[string]Handler)}
}

// Register adds a handler under a method name. A duplicate name
// overwrites the previous entry.
func (r *Registry) Register(name string, fn Handler) {
	r.methods[name] = fn
}

// Lookup returns the handler for a method name, failing with a
// method-not-found error when absent.
func (r *Registry) Lookup(name string) (Handler, error) {
	fn, ok := r.methods[name]
	if !ok {
		return nil, domain.NewError(domain.KindMethodNotFound, "unknown method: "+name)
	}
	return fn, nil
}

// Methods returns the registered method names, for introspection.
func (r *Registry) Methods() []string {
	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		names = append(names, name)
	}
	return names
}
