// Package tool exposes the gated operations as named tools: a stable name,
// a description for the calling agent, and a handler taking one string
// argument and returning one string result.
package tool

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/fwojciec/govdoc"
)

// Handler executes a tool. Handlers never return errors: failures are
// reported in-band as govdoc failure notices.
type Handler func(ctx context.Context, arg string) string

// Definition describes a callable tool.
type Definition struct {
	Name        string
	Description string
	// Argument names the single input, or is empty if the tool takes none.
	Argument string
	Handler  Handler
}

// Registry holds the set of available tools keyed by name.
type Registry struct {
	defs map[string]Definition
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

var nameRe = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)

// Register adds a tool. Names are UpperCamelCase and unique.
func (r *Registry) Register(def Definition) error {
	if !nameRe.MatchString(def.Name) {
		return govdoc.Errorf(govdoc.EINVALID, "invalid tool name %q", def.Name)
	}
	if strings.TrimSpace(def.Description) == "" {
		return govdoc.Errorf(govdoc.EINVALID, "tool %s: description required", def.Name)
	}
	if def.Handler == nil {
		return govdoc.Errorf(govdoc.EINVALID, "tool %s: handler required", def.Name)
	}
	if _, ok := r.defs[def.Name]; ok {
		return govdoc.Errorf(govdoc.EINVALID, "tool %s already registered", def.Name)
	}
	r.defs[def.Name] = def
	return nil
}

// Get returns a tool definition by name.
func (r *Registry) Get(name string) (Definition, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// Definitions returns all tools sorted by name.
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, 0, len(r.defs))
	for _, def := range r.defs {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Call runs the named tool. Unknown names yield a failure notice.
func (r *Registry) Call(ctx context.Context, name, arg string) string {
	def, ok := r.defs[name]
	if !ok {
		return govdoc.Fail("calling tool", govdoc.Errorf(govdoc.ENOTFOUND, "unknown tool %q", name))
	}
	return def.Handler(ctx, strings.TrimSpace(arg))
}
