// Package tools exposes the insight operations as a named tool surface:
// a declarative registry of definitions, argument decoding, and a response
// envelope that reports every failure as a structured payload instead of a
// transport fault.
package tools

import (
	"context"

	"github.com/localrank/insight-server/pkg/localrank"
)

// Param describes one argument a tool accepts.
type Param struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required,omitempty"`
}

// Definition is the published contract for one tool.
type Definition struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Params      []Param `json:"params,omitempty"`
}

// Request carries one invocation's inputs. The credential is resolved by
// the transport per request and threaded explicitly; handlers never read
// shared credential state.
type Request struct {
	Credential localrank.Credential
	Args       Args
}

// Handler executes one tool invocation and returns the result document.
type Handler func(ctx context.Context, req Request) (any, error)

type entry struct {
	def     Definition
	handler Handler
}

// Registry holds tool definitions alongside their handlers, preserving
// registration order for listings.
type Registry struct {
	entries []entry
	index   map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register adds a tool. Re-registering a name replaces its handler, which
// keeps test doubles simple.
func (r *Registry) Register(def Definition, h Handler) {
	if i, ok := r.index[def.Name]; ok {
		r.entries[i] = entry{def: def, handler: h}
		return
	}
	r.index[def.Name] = len(r.entries)
	r.entries = append(r.entries, entry{def: def, handler: h})
}

// Lookup resolves a tool by name.
func (r *Registry) Lookup(name string) (Definition, Handler, bool) {
	i, ok := r.index[name]
	if !ok {
		return Definition{}, nil, false
	}
	return r.entries[i].def, r.entries[i].handler, true
}

// Definitions lists every registered tool in registration order.
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, 0, len(r.entries))
	for _, e := range r.entries {
		defs = append(defs, e.def)
	}
	return defs
}
