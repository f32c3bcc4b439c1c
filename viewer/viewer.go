// Package viewer is an interactive wireframe drawing backend built on
// [Ebitengine]. It registers scene object drawers under the "Viewer"
// context: drawn geometry is projected through an orbiting camera and
// stroked as 2D lines.
//
// [Ebitengine]: https://ebitengine.org
package viewer

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"

	compas "github.com/jf---/compas"
	"github.com/jf---/compas/colors"
	"github.com/jf---/compas/geometry"
	"github.com/jf---/compas/scene"
)

// Context identifies this backend in the scene dispatch registry.
const Context = "Viewer"

// segment is a world-space line to stroke.
type segment struct {
	a, b  geometry.Vector
	color colors.Color
}

// vertex is a world-space point to mark.
type vertex struct {
	p     geometry.Vector
	color colors.Color
}

// artifact is one drawn scene object: the retained geometry behind a single
// backend handle.
type artifact struct {
	segments []segment
	vertices []vertex
	opacity  float64
}

// backend retains drawn artifacts keyed by handle until they are cleared.
type backend struct {
	mu        sync.Mutex
	artifacts map[scene.Handle]*artifact
	order     []scene.Handle
}

func newBackend() *backend {
	return &backend{artifacts: map[scene.Handle]*artifact{}}
}

// add retains an artifact and mints its handle.
func (b *backend) add(a *artifact) scene.Handle {
	h := scene.Handle(uuid.NewString())
	b.mu.Lock()
	b.artifacts[h] = a
	b.order = append(b.order, h)
	b.mu.Unlock()
	return h
}

// Clear releases the artifacts behind the given handles. Unknown handles
// are ignored.
func (b *backend) Clear(guids []scene.Handle) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, h := range guids {
		delete(b.artifacts, h)
	}
	kept := b.order[:0]
	for _, h := range b.order {
		if _, ok := b.artifacts[h]; ok {
			kept = append(kept, h)
		}
	}
	b.order = kept
	return nil
}

// snapshot returns the retained artifacts in draw order.
func (b *backend) snapshot() []*artifact {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*artifact, 0, len(b.order))
	for _, h := range b.order {
		out = append(out, b.artifacts[h])
	}
	return out
}

func (b *backend) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.artifacts)
}

// theBackend is the process-wide display list shared by Register and App.
var theBackend = newBackend()

// Register populates the scene dispatch registry with this backend and its
// drawers. Call once at startup, before constructing scene objects.
func Register() {
	scene.RegisterBackend(Context, theBackend)
	scene.RegisterDrawer(reflect.TypeOf(&geometry.Polyhedron{}), Context, newPolyhedronDrawer)
	scene.RegisterDrawer(reflect.TypeOf(&geometry.Polygon{}), Context, newPolygonDrawer)
	scene.RegisterDrawer(reflect.TypeOf(&geometry.Line{}), Context, newLineDrawer)
	scene.RegisterDrawer(reflect.TypeOf(&geometry.Point{}), Context, newPointDrawer)
	compas.Logger().Info("viewer: drawers registered", "context", Context)
}

// itemError reports a factory given an item of the wrong type.
func itemError(want string, item scene.Item) error {
	return fmt.Errorf("viewer: %s drawer cannot draw %T", want, item)
}
