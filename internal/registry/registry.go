// Package registry supplies per-subcomponent scoring dimensions and use-case
// content.
package registry

import (
	"slices"
	"sort"

	"github.com/sells-group/scorecard/internal/model"
)

// Provider looks up subcomponent content by id.
type Provider interface {
	Lookup(id string) (model.Subcomponent, bool)
}

// Registry is an immutable set of subcomponents keyed by id.
type Registry struct {
	byID map[string]model.Subcomponent
}

// New indexes subcomponents by id. A later entry with the same id replaces
// an earlier one. Missing blocks are derived from the id.
func New(subs ...model.Subcomponent) *Registry {
	r := &Registry{byID: make(map[string]model.Subcomponent, len(subs))}
	for _, s := range subs {
		if s.ID == "" {
			continue
		}
		if s.Block == 0 {
			if block, _, ok := ParseID(s.ID); ok {
				s.Block = block
			}
		}
		r.byID[s.ID] = clone(s)
	}
	return r
}

// Lookup returns a copy of the subcomponent so callers cannot mutate the
// registry.
func (r *Registry) Lookup(id string) (model.Subcomponent, bool) {
	if r == nil {
		return model.Subcomponent{}, false
	}
	s, ok := r.byID[id]
	if !ok {
		return model.Subcomponent{}, false
	}
	return clone(s), true
}

// Len reports the number of subcomponents.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.byID)
}

// List returns all subcomponents ordered by block, then index.
func (r *Registry) List() []model.Subcomponent {
	if r == nil {
		return nil
	}
	out := make([]model.Subcomponent, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, clone(s))
	}
	sort.Slice(out, func(i, j int) bool { return lessID(out[i].ID, out[j].ID) })
	return out
}

// Merge returns a new registry with overlays applied in order. Overlay
// dimensions replace the base list when non-empty, overlay use cases are
// appended, and a non-empty overlay name wins. Neither input is modified.
func (r *Registry) Merge(overlays ...*Registry) *Registry {
	merged := &Registry{byID: make(map[string]model.Subcomponent, r.Len())}
	if r != nil {
		for id, s := range r.byID {
			merged.byID[id] = clone(s)
		}
	}
	for _, o := range overlays {
		if o == nil {
			continue
		}
		for id, s := range o.byID {
			base, ok := merged.byID[id]
			if !ok {
				merged.byID[id] = clone(s)
				continue
			}
			if s.Name != "" {
				base.Name = s.Name
			}
			if len(s.Dimensions) > 0 {
				base.Dimensions = slices.Clone(s.Dimensions)
			}
			base.UseCases = append(base.UseCases, s.UseCases...)
			merged.byID[id] = base
		}
	}
	return merged
}

func clone(s model.Subcomponent) model.Subcomponent {
	s.Dimensions = slices.Clone(s.Dimensions)
	s.UseCases = slices.Clone(s.UseCases)
	return s
}

func lessID(a, b string) bool {
	ab, ai, aok := ParseID(a)
	bb, bi, bok := ParseID(b)
	switch {
	case aok && bok:
		if ab != bb {
			return ab < bb
		}
		return ai < bi
	case aok != bok:
		return aok
	default:
		return a < b
	}
}
