package ecs

import "strconv"

// Entity packs a slot id in the low 32 bits and the slot's generation in the
// high 32 bits, so a handle to a destroyed entity never matches its reused
// slot.
type Entity uint64

type (
	entityID   uint32
	generation uint32
)

const idBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<idBits | uint64(id))
}

func (e Entity) id() entityID { return entityID(uint32(e)) }

func (e Entity) generation() generation { return generation(uint32(uint64(e) >> idBits)) }

// String formats the entity as id.generation.
func (e Entity) String() string {
	return strconv.FormatUint(uint64(e.id()), 10) + "." + strconv.FormatUint(uint64(e.generation()), 10)
}

// Valid reports whether e refers to a slot at all. Id 0 is never allocated.
func (e Entity) Valid() bool {
	return e.id() > 0
}
