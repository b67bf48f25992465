package ecs

import "github.com/milk9111/portfolio3d/ecs/component"

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// World owns entities, components, and system order. It is the scene
// container: everything rendered or picked lives here.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*sparseSet
	systems  []System
	events   EventQueue
	commands CommandQueue

	background string
	frame      uint64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*sparseSet)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and marks it dead. It reports
// whether e was alive.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every alive entity in id order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.entities()
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Systems returns the update order.
func (w *World) Systems() []System {
	out := make([]System, 0, len(w.systems))
	return append(out, w.systems...)
}

// Update runs all systems once and clears the frame's events.
func (w *World) Update() {
	if w == nil {
		return
	}
	for _, s := range w.systems {
		if s != nil {
			s.Update(w)
		}
	}
	w.events.flush()
	w.frame++
}

// Frame returns the number of completed updates.
func (w *World) Frame() uint64 {
	if w == nil {
		return 0
	}
	return w.frame
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Commands returns the queue of side effects requested by systems.
func (w *World) Commands() *CommandQueue {
	if w == nil {
		return nil
	}
	return &w.commands
}

// SetBackground sets the texture key drawn behind every entity.
func (w *World) SetBackground(key string) {
	if w == nil {
		return
	}
	w.background = key
}

// Background returns the scene background texture key.
func (w *World) Background() string {
	if w == nil {
		return ""
	}
	return w.background
}

func (w *World) store(id component.ComponentID, create bool) *sparseSet {
	s, ok := w.stores[id]
	if !ok && create {
		if w.stores == nil {
			w.stores = make(map[component.ComponentID]*sparseSet)
		}
		s = &sparseSet{}
		w.stores[id] = s
	}
	return s
}

func (w *World) addComponent(e Entity, id component.ComponentID, v any) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	if v == nil {
		return component.ErrNilComponent
	}
	w.store(id, true).set(e, v)
	return nil
}

func (w *World) getComponent(e Entity, id component.ComponentID) (any, bool) {
	if w == nil {
		return nil, false
	}
	s := w.store(id, false)
	if s == nil {
		return nil, false
	}
	return s.get(e)
}

func (w *World) removeComponent(e Entity, id component.ComponentID) bool {
	if w == nil {
		return false
	}
	s := w.store(id, false)
	if s == nil {
		return false
	}
	return s.remove(e)
}
