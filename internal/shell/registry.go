package shell

import "sort"

// Registry maps command names to entries. It is populated once, before the
// first dispatch, and only read afterwards.
type Registry struct {
	entries map[string]Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds a command. Registering an existing name replaces it, which is
// how aliases such as cmatrix -> matrix are declared.
func (r *Registry) Register(name string, handler Handler, description, usage string) {
	r.entries[name] = Entry{
		Name:        name,
		Handler:     handler,
		Description: description,
		Usage:       usage,
	}
}

// Lookup returns the entry for name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Names returns all command names sorted alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entries returns all entries sorted by name.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, name := range r.Names() {
		out = append(out, r.entries[name])
	}
	return out
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.entries)
}
