// Package registry provides type-tag dispatch over a closed set of
// artifact-type handlers.
package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/qiita-spots/qtp-diversity/internal/types"
)

// Registry maps an artifact type tag to a handler. The validator, legacy
// validator and summary registries hold different handler kinds and may
// cover different type sets.
type Registry[H any] struct {
	handlers map[types.ArtifactType]H
}

// New creates an empty Registry
func New[H any]() *Registry[H] {
	return &Registry[H]{handlers: make(map[types.ArtifactType]H)}
}

// Register binds a handler to an artifact type, replacing any previous
// binding for that type
func (r *Registry[H]) Register(t types.ArtifactType, handler H) {
	r.handlers[t] = handler
}

// Types returns the registered artifact types sorted lexicographically
func (r *Registry[H]) Types() []string {
	keys := make([]string, 0, len(r.handlers))
	for t := range r.handlers {
		keys = append(keys, string(t))
	}
	sort.Strings(keys)
	return keys
}

// Resolve returns the handler registered for the given type. The error
// message format is fixed for host compatibility; the supported list is
// sorted and comma-space joined.
func (r *Registry[H]) Resolve(t types.ArtifactType) (H, error) {
	handler, ok := r.handlers[t]
	if !ok {
		var zero H
		return zero, fmt.Errorf("Unknown artifact type %s. Supported types: %s",
			t, strings.Join(r.Types(), ", "))
	}
	return handler, nil
}
