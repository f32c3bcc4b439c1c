// Package geometry provides geometric primitives: vectors, points, lines,
// frames, transformations, polygons, and polyhedra.
//
// Types that can be placed in a scene implement [Geometry]: they carry a
// display name and a stable GUID usable for serialization references. The
// geometric payload itself is treated as plain value data.
package geometry

import "github.com/google/uuid"

// Geometry is the common interface of all geometric items.
type Geometry interface {
	// Name returns the display name of the item.
	Name() string
	// SetName sets the display name.
	SetName(string)
	// GUID returns the stable identity of the item, minted at construction.
	GUID() uuid.UUID
}

// identity provides Name/GUID and is embedded by all geometry item types.
type identity struct {
	name string
	guid uuid.UUID
}

func newIdentity(name string) identity {
	return identity{name: name, guid: uuid.New()}
}

func (id *identity) Name() string     { return id.name }
func (id *identity) SetName(n string) { id.name = n }
func (id *identity) GUID() uuid.UUID  { return id.guid }
