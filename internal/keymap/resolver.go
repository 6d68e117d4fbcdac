package keymap

import "slices"

// Resolver answers key-to-action lookups and the reverse mapping the help
// overlay needs.
type Resolver struct {
	actionByKey  map[string]Action
	keysByAction map[Action][]string
}

// NewResolver indexes bindings for lookup. A key bound twice keeps its first
// action; keys repeated across contexts are collapsed in the reverse mapping.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		actionByKey:  make(map[string]Action),
		keysByAction: make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			if _, bound := r.actionByKey[key]; !bound {
				r.actionByKey[key] = b.Action
			}
			if !slices.Contains(r.keysByAction[b.Action], key) {
				r.keysByAction[b.Action] = append(r.keysByAction[b.Action], key)
			}
		}
	}
	return r
}

// Resolve returns the action bound to key, or the empty action.
func (r *Resolver) Resolve(key string) Action {
	return r.actionByKey[key]
}

// KeysFor returns the keys bound to action, in binding order.
func (r *Resolver) KeysFor(action Action) []string {
	return r.keysByAction[action]
}
