package validation

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Plugin is a named validation strategy. Implementations receive the
// extracted payload and the configuration's validation rules and report
// rule violations; they return a non-nil error only for system faults
// (malformed rules, I/O failure), never for rule violations.
type Plugin interface {
	Validate(ctx context.Context, data map[string]any, rules json.RawMessage) (*Result, error)
}

// PluginFunc adapts a function to the Plugin interface.
type PluginFunc func(ctx context.Context, data map[string]any, rules json.RawMessage) (*Result, error)

// Validate calls f.
func (f PluginFunc) Validate(ctx context.Context, data map[string]any, rules json.RawMessage) (*Result, error) {
	return f(ctx, data, rules)
}

// Registry maps plugin names to validation strategies. New validators are
// added by registration at startup; the registry and its callers never
// change when a validator is added.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
}

// NewRegistry creates an empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
	}
}

// Register binds a plugin under the given name, replacing any previous binding.
func (r *Registry) Register(name string, plugin Plugin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plugins[name] = plugin
}

// Names returns the registered plugin names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	return names
}

// Validate dispatches to the named plugin. An unregistered name returns
// ErrPluginNotFound: a misconfigured plugin name is a configuration bug and
// fatal for the calling process, never retried.
func (r *Registry) Validate(
	ctx context.Context,
	name string,
	data map[string]any,
	rules json.RawMessage,
) (*Result, error) {
	r.mu.RLock()
	plugin, ok := r.plugins[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPluginNotFound, name)
	}

	return plugin.Validate(ctx, data, rules)
}
