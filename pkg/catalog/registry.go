package catalog

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-medforms/pkg/model"
)

var (
	// ErrDuplicateEntity reports a second registration for an entity name.
	ErrDuplicateEntity = errors.New("catalog: entity already registered")
	// ErrUnknownEntity reports a lookup for an entity the registry does not
	// hold.
	ErrUnknownEntity = errors.New("catalog: unknown entity")
)

// Registry is a concurrency-safe collection of form definitions keyed by
// entity name.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]model.FormDefinition
	logger      zerolog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryLogger replaces the no-op logger used for lookup diagnostics.
func WithRegistryLogger(logger zerolog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry constructs an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	registry := &Registry{
		definitions: make(map[string]model.FormDefinition),
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(registry)
		}
	}
	return registry
}

// Register adds a definition. The entity name must be non-empty and unused,
// and the definition must carry at least one field with a known type.
func (r *Registry) Register(def model.FormDefinition) error {
	if def.Entity == "" {
		return errors.New("catalog: definition entity is empty")
	}
	if len(def.Fields) == 0 {
		return fmt.Errorf("catalog: entity %q has no fields", def.Entity)
	}
	seen := make(map[string]bool, len(def.Fields))
	for _, field := range def.Fields {
		if field.Name == "" {
			return fmt.Errorf("catalog: entity %q has a field without a name", def.Entity)
		}
		if seen[field.Name] {
			return fmt.Errorf("catalog: entity %q declares field %q twice", def.Entity, field.Name)
		}
		seen[field.Name] = true
		if !field.Type.Valid() {
			return fmt.Errorf("catalog: entity %q field %q has unknown type %q", def.Entity, field.Name, field.Type)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.definitions[def.Entity]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateEntity, def.Entity)
	}
	r.definitions[def.Entity] = def
	return nil
}

// MustRegister is Register that panics on error, for init-time wiring.
func (r *Registry) MustRegister(def model.FormDefinition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Definition returns the definition for the entity.
func (r *Registry) Definition(entity string) (model.FormDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[entity]
	if !ok {
		return model.FormDefinition{}, fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}
	return def, nil
}

// Fields returns the field list for the entity, or nil when the entity is
// not registered. Unknown entities are logged rather than treated as
// errors so render paths can fall back gracefully.
func (r *Registry) Fields(entity string) []model.Field {
	def, err := r.Definition(entity)
	if err != nil {
		r.logger.Warn().Str("entity", entity).Msg("fields requested for unknown entity")
		return nil
	}
	return def.Fields
}

// Has reports whether the entity is registered.
func (r *Registry) Has(entity string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.definitions[entity]
	return ok
}

// Entities lists registered entity names in sorted order.
func (r *Registry) Entities() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entities := make([]string, 0, len(r.definitions))
	for entity := range r.definitions {
		entities = append(entities, entity)
	}
	sort.Strings(entities)
	return entities
}
