package keymap

import "sort"

// Binding maps a key to a command within a context.
type Binding struct {
	Key     string
	Command string
	Context string
}

// Registry resolves keys to commands per context.
type Registry struct {
	bindings  map[string]map[string]string // context -> key -> command
	overrides map[string]string            // key -> command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		bindings:  make(map[string]map[string]string),
		overrides: make(map[string]string),
	}
}

// Register adds a binding. A later binding for the same key and context
// replaces the earlier one.
func (r *Registry) Register(b Binding) {
	keys, ok := r.bindings[b.Context]
	if !ok {
		keys = make(map[string]string)
		r.bindings[b.Context] = keys
	}
	keys[b.Key] = b.Command
}

// SetUserOverride binds key to cmdID in every context where cmdID is
// available.
func (r *Registry) SetUserOverride(key, cmdID string) {
	r.overrides[key] = cmdID
}

// Lookup returns the command bound to key in context, falling back to
// global bindings.
func (r *Registry) Lookup(key, context string) (string, bool) {
	if cmd, ok := r.overrides[key]; ok {
		if r.hasCommand(context, cmd) || r.hasCommand(ContextGlobal, cmd) {
			return cmd, true
		}
	}
	if cmd, ok := r.bindings[context][key]; ok {
		return cmd, true
	}
	if cmd, ok := r.bindings[ContextGlobal][key]; ok {
		return cmd, true
	}
	return "", false
}

// KeysFor returns the keys that trigger cmdID in context, sorted, with user
// overrides first.
func (r *Registry) KeysFor(cmdID, context string) []string {
	var overrides, defaults []string
	for key, cmd := range r.overrides {
		if cmd == cmdID && r.hasCommand(context, cmd) {
			overrides = append(overrides, key)
		}
	}
	for key, cmd := range r.bindings[context] {
		if cmd == cmdID {
			defaults = append(defaults, key)
		}
	}
	sort.Strings(overrides)
	sort.Strings(defaults)
	return append(overrides, defaults...)
}

func (r *Registry) hasCommand(context, cmdID string) bool {
	for _, cmd := range r.bindings[context] {
		if cmd == cmdID {
			return true
		}
	}
	return false
}
