package action

import (
	"fmt"
	"sync"

	"github.com/agentrules/hookctl/pkg/hooks/accumulate"
	"github.com/agentrules/hookctl/pkg/hooks/event"
)

// PythonEntrypoint is an in-process callable a Python action addresses by
// name. The spec's Python action calls an out-of-process interpreter
// function "module:function"; this engine is Go throughout, so the same
// contract becomes a registered Go function the rule author names the
// same way — the dispatcher never shells out for these, only Shell does.
// The entrypoint may mutate acc directly (add warnings, inject context,
// block) exactly as the spec describes.
type PythonEntrypoint func(ctx *Context, acc *accumulate.RuleAccumulator) (any, error)

// TransformEntrypoint is a Transform action's callable: it returns a new
// event payload that replaces the current one.
type TransformEntrypoint func(ctx *Context, ev *event.Event) (*event.Event, error)

// Registry resolves entrypoint names to in-process callables. A host wires
// up its own registry at startup (e.g. by calling RegisterPython in an
// init function per entrypoint package) and hands it to the Dispatcher.
type Registry struct {
	mu         sync.RWMutex
	pythons    map[string]PythonEntrypoint
	transforms map[string]TransformEntrypoint
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		pythons:    make(map[string]PythonEntrypoint),
		transforms: make(map[string]TransformEntrypoint),
	}
}

// RegisterPython adds a Python-action entrypoint under name, overwriting
// any previous registration — callers doing this at init time only ever
// register once, but tests benefit from being able to stub entrypoints.
func (r *Registry) RegisterPython(name string, fn PythonEntrypoint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pythons[name] = fn
}

// RegisterTransform adds a Transform-action entrypoint under name.
func (r *Registry) RegisterTransform(name string, fn TransformEntrypoint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transforms[name] = fn
}

func (r *Registry) python(name string) (PythonEntrypoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.pythons[name]
	if !ok {
		return nil, fmt.Errorf("action: no python entrypoint registered for %q", name)
	}
	return fn, nil
}

func (r *Registry) transform(name string) (TransformEntrypoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.transforms[name]
	if !ok {
		return nil, fmt.Errorf("action: no transform entrypoint registered for %q", name)
	}
	return fn, nil
}
