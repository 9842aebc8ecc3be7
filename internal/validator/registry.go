package validator

// Registry maps rule keys to Validator implementations and remembers the
// order they were registered in.
type Registry struct {
	ordered []Validator
	byKey   map[string]int
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]int)}
}

// NewBuiltinRegistry registers every validator, in order.
func NewBuiltinRegistry[V Validator](validators []V) *Registry {
	r := NewRegistry()
	for _, v := range validators {
		r.Register(v)
	}
	return r
}

// Register adds a validator. Registering a key twice replaces the earlier
// validator in place.
func (r *Registry) Register(v Validator) {
	if i, ok := r.byKey[v.Key()]; ok {
		r.ordered[i] = v
		return
	}
	r.byKey[v.Key()] = len(r.ordered)
	r.ordered = append(r.ordered, v)
}

// All returns all registered validators in registration order.
func (r *Registry) All() []Validator {
	out := make([]Validator, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// ForField returns the validators bound to a field, in registration order.
func (r *Registry) ForField(field string) []Validator {
	var out []Validator
	for _, v := range r.ordered {
		if v.Field() == field {
			out = append(out, v)
		}
	}
	return out
}

// HasField reports whether any validator is bound to field.
func (r *Registry) HasField(field string) bool {
	for _, v := range r.ordered {
		if v.Field() == field {
			return true
		}
	}
	return false
}

// Index returns the registration position of key.
func (r *Registry) Index(key string) (int, bool) {
	i, ok := r.byKey[key]
	return i, ok
}
