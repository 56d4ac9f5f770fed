// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

package tool

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/andrewbolster/openapi2callables/openapi"
	"github.com/andrewbolster/openapi2callables/types"
)

// Registry holds tools by operation id. Registration is guarded for
// concurrent construction; invocation of the held tools needs no locking.
type Registry struct {
	mu     sync.RWMutex
	tools  map[string]Tool
	logger *zap.Logger
}

// NewRegistry creates an empty tool registry.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		tools:  make(map[string]Tool),
		logger: logger,
	}
}

// Register adds a tool. Registering a duplicate operation id fails.
func (r *Registry) Register(t Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := t.OperationID()
	if _, exists := r.tools[id]; exists {
		return fmt.Errorf("tool %s already registered", id)
	}
	r.tools[id] = t
	return nil
}

// Unregister removes a tool by operation id.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tools, id)
}

// Get returns the tool registered under id.
func (r *Registry) Get(id string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[id]
	return t, ok
}

// Has reports whether a tool is registered under id.
func (r *Registry) Has(id string) bool {
	_, ok := r.Get(id)
	return ok
}

// List returns the registered tools ordered by operation id.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.tools))
	for id := range r.tools {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]Tool, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.tools[id])
	}
	return out
}

// ToolSpecs exports every registered tool in the LLM tool-calling format.
func (r *Registry) ToolSpecs() []types.ToolSpec {
	tools := r.List()
	specs := make([]types.ToolSpec, 0, len(tools))
	for _, t := range tools {
		specs = append(specs, t.ToolSpec())
	}
	return specs
}

// FromOperations builds one APITool per parsed operation descriptor and
// registers them all. The defaults supply everything the descriptor does
// not carry: base URL, credentials, retry policy, client, observer.
// Document-level security schemes in defaults are attached to operations
// that declare a security requirement.
func FromOperations(operations map[string]*openapi.Operation, defaults APIToolConfig, logger *zap.Logger) (*Registry, error) {
	registry := NewRegistry(logger)
	for id, op := range operations {
		config := defaults
		config.OperationID = id
		config.Summary = op.Summary
		config.Description = op.Description
		config.Parameters = op.Parameters
		config.Responses = op.Responses
		config.Tags = op.Tags
		config.Path = op.Path
		config.Method = op.Method
		config.SecuritySchemes = operationSchemes(op.Security, defaults.SecuritySchemes)
		if err := registry.Register(NewAPITool(config)); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// operationSchemes picks the declared schemes out of the document-level
// scheme map. A requirement naming an undeclared scheme is kept with an
// empty definition so that RequiresAuth still sees it.
func operationSchemes(requirements []openapi.SecurityRequirement, declared map[string]openapi.SecurityScheme) map[string]openapi.SecurityScheme {
	if len(requirements) == 0 {
		return nil
	}
	schemes := map[string]openapi.SecurityScheme{}
	for _, requirement := range requirements {
		for name := range requirement {
			schemes[name] = declared[name]
		}
	}
	return schemes
}
