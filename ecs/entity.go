package ecs

import "strconv"

// Entity is a generational handle: the low 32 bits are the slot id, the high
// 32 bits are the generation. A stale handle (destroyed slot since reused)
// never resolves to the new occupant.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

func (e Entity) Valid() bool {
	return e > 0
}

// Raw returns the packed handle for storage in plain-data components that
// cannot import the ecs package.
func (e Entity) Raw() uint64 {
	return uint64(e)
}

// FromRaw rebuilds a handle previously obtained from Raw.
func FromRaw(raw uint64) Entity {
	return Entity(raw)
}
