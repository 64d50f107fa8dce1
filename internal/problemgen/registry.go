package problemgen

import (
	"slices"
	"sort"
)

// GenerateFunc builds one problem for a single standard. The returned
// Problem has no ID; the Generator assigns one.
type GenerateFunc func(r Rand) Problem

// Registry maps standard IDs to generator functions.
// Iteration order is registration order.
type Registry struct {
	funcs map[string]GenerateFunc
	ids   []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]GenerateFunc)}
}

// Register adds or replaces the generator for standardID.
func (r *Registry) Register(standardID string, fn GenerateFunc) {
	if _, ok := r.funcs[standardID]; !ok {
		r.ids = append(r.ids, standardID)
	}
	r.funcs[standardID] = fn
}

// Lookup returns the generator for standardID.
func (r *Registry) Lookup(standardID string) (GenerateFunc, bool) {
	fn, ok := r.funcs[standardID]
	return fn, ok
}

// IDs returns the registered standard IDs in registration order.
func (r *Registry) IDs() []string {
	return slices.Clone(r.ids)
}

// Len returns the number of registered generators.
func (r *Registry) Len() int {
	return len(r.ids)
}

// DefaultRegistry returns a registry with the built-in generators.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	reg.Register("7-rp-1", unitRate)
	reg.Register("7-rp-2", proportional)
	reg.Register("7-rp-3", percentOff)
	reg.Register("7-ns-1", addSubtractIntegers)
	reg.Register("7-ns-2", multiplyDivideIntegers)
	reg.Register("7-ns-3", moneyWordProblem)
	reg.Register("7-ee-1", combineLikeTerms)
	reg.Register("7-ee-4", oneStepEquation)
	reg.Register("7-g-4", circle)
	reg.Register("7-g-6", prismVolume)
	reg.Register("7-sp-5", marbleProbability)
	reg.Register("7-g-1", scaleDrawing)
	reg.Register("7-sp-1", representativeSample)
	return reg
}

// Available returns the sorted standard IDs that have built-in generators.
func Available() []string {
	ids := DefaultRegistry().IDs()
	sort.Strings(ids)
	return ids
}
