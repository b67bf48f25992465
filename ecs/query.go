package ecs

import (
	"sort"

	"github.com/milk9111/portfolio3d/ecs/component"
)

// Query returns the entities that have every kind, sorted by entity id.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*sparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k.ID(), false)
		if s == nil {
			return nil
		}
		sets = append(sets, s)
	}
	// iterate smallest set
	sort.Slice(sets, func(i, j int) bool { return sets[i].len() < sets[j].len() })

	out := make([]Entity, 0, sets[0].len())
	for _, e := range sets[0].denseEntities {
		ok := true
		for _, s := range sets[1:] {
			if !s.has(e) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id() < out[j].id() })
	return out
}

// First returns the lowest-id entity that has kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	ents := w.Query(kind)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

// Count returns how many entities have kind.
func (w *World) Count(kind component.Kind) int {
	if w == nil {
		return 0
	}
	s := w.store(kind.ID(), false)
	if s == nil {
		return 0
	}
	return s.len()
}
