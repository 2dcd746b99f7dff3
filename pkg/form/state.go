package form

// State tracks the values, caller-supplied field errors, dynamic-option
// loading flags and editing target of one open form. It lives for exactly as
// long as the modal is open and is discarded on close. Rendering is
// single-threaded, so State carries no lock; share-safe containers live in
// the specialties cache and the registries.
type State struct {
	values      map[string]any
	fieldErrors map[string]string
	loading     map[string]bool
	editing     any
}

// NewState seeds the store with prefilled values and caller-computed errors.
func NewState(prefill map[string]any, fieldErrors map[string]string) *State {
	return &State{
		values:      cloneAnyMap(prefill),
		fieldErrors: cloneStringMap(fieldErrors),
		loading:     make(map[string]bool),
	}
}

// Value resolves a field's current value.
func (s *State) Value(name string) (any, bool) {
	if s == nil {
		return nil, false
	}
	value, ok := s.values[name]
	return value, ok
}

// SetValue stores a field value.
func (s *State) SetValue(name string, value any) {
	if s == nil || name == "" {
		return
	}
	if s.values == nil {
		s.values = make(map[string]any)
	}
	s.values[name] = value
}

// Values returns the live value map. Callers that need a snapshot should
// copy it; the controller hands this map to submit handlers.
func (s *State) Values() map[string]any {
	if s == nil {
		return nil
	}
	return s.values
}

// ErrorFor returns the caller-supplied validation message for a field.
func (s *State) ErrorFor(name string) string {
	if s == nil {
		return ""
	}
	return s.fieldErrors[name]
}

// SetErrors replaces the field-error map wholesale; validation is computed
// by the caller, never here.
func (s *State) SetErrors(fieldErrors map[string]string) {
	if s == nil {
		return
	}
	s.fieldErrors = cloneStringMap(fieldErrors)
}

// SetLoading flips the loading flag for a dynamic-options key.
func (s *State) SetLoading(key string, loading bool) {
	if s == nil || key == "" {
		return
	}
	if s.loading == nil {
		s.loading = make(map[string]bool)
	}
	s.loading[key] = loading
}

// Loading reports whether a dynamic-options key is still being fetched.
func (s *State) Loading(key string) bool {
	if s == nil {
		return false
	}
	return s.loading[key]
}

// LoadingStates returns a copy of the loading map for renderers.
func (s *State) LoadingStates() map[string]bool {
	if s == nil || len(s.loading) == 0 {
		return nil
	}
	out := make(map[string]bool, len(s.loading))
	for key, value := range s.loading {
		out[key] = value
	}
	return out
}

// SetEditing records the entity being edited; nil means a create flow.
func (s *State) SetEditing(entity any) {
	if s == nil {
		return
	}
	s.editing = entity
}

// Editing returns the entity under edit, nil when creating.
func (s *State) Editing() any {
	if s == nil {
		return nil
	}
	return s.editing
}

// IsEditing reports whether the form updates an existing entity.
func (s *State) IsEditing() bool {
	return s != nil && s.editing != nil
}

func cloneAnyMap(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}

func cloneStringMap(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}
