package viewer

import (
	"github.com/jf---/compas/geometry"
	"github.com/jf---/compas/scene"
)

// polyhedronDrawer strokes the unique face edges of a polyhedron in the
// object's contrast color and marks its vertices in the object's color.
type polyhedronDrawer struct {
	item *geometry.Polyhedron
}

func newPolyhedronDrawer(item scene.Item) (scene.Drawer, error) {
	p, ok := item.(*geometry.Polyhedron)
	if !ok {
		return nil, itemError("polyhedron", item)
	}
	return &polyhedronDrawer{item: p}, nil
}

func (d *polyhedronDrawer) Draw(o *scene.SceneObject) ([]scene.Handle, error) {
	world := o.WorldTransformation()
	a := &artifact{opacity: o.Opacity()}
	for _, e := range d.item.Edges() {
		a.segments = append(a.segments, segment{
			a:     world.ApplyPoint(d.item.Vertices[e[0]]),
			b:     world.ApplyPoint(d.item.Vertices[e[1]]),
			color: o.ContrastColor(),
		})
	}
	for _, v := range d.item.Points() {
		a.vertices = append(a.vertices, vertex{p: world.ApplyPoint(v), color: o.Color()})
	}
	return []scene.Handle{theBackend.add(a)}, nil
}

// polygonDrawer strokes the closed vertex ring of a polygon.
type polygonDrawer struct {
	item *geometry.Polygon
}

func newPolygonDrawer(item scene.Item) (scene.Drawer, error) {
	p, ok := item.(*geometry.Polygon)
	if !ok {
		return nil, itemError("polygon", item)
	}
	return &polygonDrawer{item: p}, nil
}

func (d *polygonDrawer) Draw(o *scene.SceneObject) ([]scene.Handle, error) {
	world := o.WorldTransformation()
	a := &artifact{opacity: o.Opacity()}
	for _, l := range d.item.Lines() {
		a.segments = append(a.segments, segment{
			a:     world.ApplyPoint(l[0]),
			b:     world.ApplyPoint(l[1]),
			color: o.Color(),
		})
	}
	return []scene.Handle{theBackend.add(a)}, nil
}

// lineDrawer strokes a single segment.
type lineDrawer struct {
	item *geometry.Line
}

func newLineDrawer(item scene.Item) (scene.Drawer, error) {
	l, ok := item.(*geometry.Line)
	if !ok {
		return nil, itemError("line", item)
	}
	return &lineDrawer{item: l}, nil
}

func (d *lineDrawer) Draw(o *scene.SceneObject) ([]scene.Handle, error) {
	world := o.WorldTransformation()
	a := &artifact{
		opacity: o.Opacity(),
		segments: []segment{{
			a:     world.ApplyPoint(d.item.Start),
			b:     world.ApplyPoint(d.item.End),
			color: o.Color(),
		}},
	}
	return []scene.Handle{theBackend.add(a)}, nil
}

// pointDrawer marks a single position.
type pointDrawer struct {
	item *geometry.Point
}

func newPointDrawer(item scene.Item) (scene.Drawer, error) {
	p, ok := item.(*geometry.Point)
	if !ok {
		return nil, itemError("point", item)
	}
	return &pointDrawer{item: p}, nil
}

func (d *pointDrawer) Draw(o *scene.SceneObject) ([]scene.Handle, error) {
	world := o.WorldTransformation()
	a := &artifact{
		opacity:  o.Opacity(),
		vertices: []vertex{{p: world.ApplyPoint(d.item.Position), color: o.Color()}},
	}
	return []scene.Handle{theBackend.add(a)}, nil
}
