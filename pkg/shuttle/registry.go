// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package shuttle

import (
	"sort"
	"sync"

	"github.com/teradata-labs/bobbin/pkg/types"
)

// Registry manages tool registration and lookup.
// Thread-safe: tools may be registered while calls are in flight.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates a new tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register registers a tool with the registry.
// If a tool with the same name already exists, it will be replaced.
func (r *Registry) Register(tool Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[tool.Name()] = tool
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}

// Unregister removes a tool by name. No-op if absent.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tools, name)
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// ListTools returns all registered tools, sorted by name.
func (r *Registry) ListTools() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name() < tools[j].Name() })
	return tools
}

// Descriptors returns the descriptor list for all registered tools,
// sorted by name. This is what callers hand to the chain analyzer as the
// set of tools the model can use.
func (r *Registry) Descriptors() []types.ToolDescriptor {
	tools := r.ListTools()
	descs := make([]types.ToolDescriptor, 0, len(tools))
	for _, tool := range tools {
		descs = append(descs, types.ToolDescriptor{
			Name:        tool.Name(),
			Description: tool.Description(),
		})
	}
	return descs
}

// Schemas returns the input schema for every registered tool, keyed by
// tool name. Used by the validator for argument-schema checks.
func (r *Registry) Schemas() map[string]*JSONSchema {
	tools := r.ListTools()
	schemas := make(map[string]*JSONSchema, len(tools))
	for _, tool := range tools {
		if s := tool.InputSchema(); s != nil {
			schemas[tool.Name()] = s
		}
	}
	return schemas
}
