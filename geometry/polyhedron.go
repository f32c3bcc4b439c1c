package geometry

import (
	"fmt"
	"strings"
)

// Polyhedron is a solid bounded by planar faces. Vertices are positions;
// faces index into the vertex list.
type Polyhedron struct {
	identity
	Vertices []Vector
	Faces    [][]int
}

// NewPolyhedron creates a polyhedron item. An empty name defaults to
// "Polyhedron".
func NewPolyhedron(vertices []Vector, faces [][]int, name string) *Polyhedron {
	if name == "" {
		name = "Polyhedron"
	}
	return &Polyhedron{identity: newIdentity(name), Vertices: vertices, Faces: faces}
}

// NewBox creates an axis-aligned box polyhedron centered at the origin with
// the given side lengths.
func NewBox(dx, dy, dz float64) *Polyhedron {
	hx, hy, hz := dx/2, dy/2, dz/2
	vertices := []Vector{
		{-hx, -hy, -hz},
		{hx, -hy, -hz},
		{hx, hy, -hz},
		{-hx, hy, -hz},
		{-hx, -hy, hz},
		{hx, -hy, hz},
		{hx, hy, hz},
		{-hx, hy, hz},
	}
	faces := [][]int{
		{3, 2, 1, 0},
		{4, 5, 6, 7},
		{0, 1, 5, 4},
		{1, 2, 6, 5},
		{2, 3, 7, 6},
		{3, 0, 4, 7},
	}
	p := NewPolyhedron(vertices, faces, "")
	p.SetName("Box")
	return p
}

// NewCube creates a box polyhedron with equal side lengths.
func NewCube(size float64) *Polyhedron {
	p := NewBox(size, size, size)
	p.SetName("Cube")
	return p
}

// FromPolygons builds a polyhedron whose faces are the given polygons.
// Coincident vertices are merged by exact position equality.
func FromPolygons(polygons []*Polygon) *Polyhedron {
	index := map[Vector]int{}
	var vertices []Vector
	var faces [][]int
	for _, poly := range polygons {
		face := make([]int, 0, len(poly.Vertices))
		for _, v := range poly.Vertices {
			i, ok := index[v]
			if !ok {
				i = len(vertices)
				vertices = append(vertices, v)
				index[v] = i
			}
			face = append(face, i)
		}
		faces = append(faces, face)
	}
	return NewPolyhedron(vertices, faces, "")
}

// Points returns the vertex positions.
func (p *Polyhedron) Points() []Vector {
	return p.Vertices
}

// Lines returns the consecutive pairs of the vertex ring, including the
// closing edge back to the first vertex.
func (p *Polyhedron) Lines() [][2]Vector {
	n := len(p.Vertices)
	if n < 2 {
		return nil
	}
	lines := make([][2]Vector, 0, n)
	for i := 0; i < n; i++ {
		lines = append(lines, [2]Vector{p.Vertices[i], p.Vertices[(i+1)%n]})
	}
	return lines
}

// Edges returns the unique face edges as vertex index pairs, lower index
// first.
func (p *Polyhedron) Edges() [][2]int {
	seen := map[[2]int]bool{}
	var edges [][2]int
	for _, face := range p.Faces {
		n := len(face)
		for i := 0; i < n; i++ {
			a, b := face[i], face[(i+1)%n]
			if a > b {
				a, b = b, a
			}
			key := [2]int{a, b}
			if !seen[key] {
				seen[key] = true
				edges = append(edges, key)
			}
		}
	}
	return edges
}

func (p *Polyhedron) String() string {
	var vs []string
	for _, v := range p.Vertices {
		vs = append(vs, fmt.Sprintf("['%.3f', '%.3f', '%.3f']", v.X, v.Y, v.Z))
	}
	var fs []string
	for _, face := range p.Faces {
		var is []string
		for _, i := range face {
			is = append(is, fmt.Sprintf("%d", i))
		}
		fs = append(fs, "["+strings.Join(is, ", ")+"]")
	}
	return fmt.Sprintf("Polyhedron(vertices=[%s], faces=[%s])",
		strings.Join(vs, ", "), strings.Join(fs, ", "))
}
