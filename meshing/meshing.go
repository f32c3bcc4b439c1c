// Package meshing bridges compas geometry and the sdfx CAD kernel: signed
// distance fields can be meshed into polyhedra, and polyhedra written out
// as STL.
package meshing

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	compas "github.com/jf---/compas"
	"github.com/jf---/compas/geometry"
)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 100

// FromSDF meshes a signed distance field into a triangle polyhedron using
// uniform marching cubes. cells controls the tessellation resolution; a
// non-positive value selects the default.
func FromSDF(s sdf.SDF3, cells int) *geometry.Polyhedron {
	if cells <= 0 {
		cells = defaultMeshCells
	}
	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s, renderer)

	index := map[geometry.Vector]int{}
	var vertices []geometry.Vector
	faces := make([][]int, 0, len(triangles))
	for _, tri := range triangles {
		face := make([]int, 3)
		for j := 0; j < 3; j++ {
			v := geometry.Vector{X: tri[j].X, Y: tri[j].Y, Z: tri[j].Z}
			i, ok := index[v]
			if !ok {
				i = len(vertices)
				vertices = append(vertices, v)
				index[v] = i
			}
			face[j] = i
		}
		faces = append(faces, face)
	}

	compas.Logger().Debug("meshing: sdf meshed",
		"cells", cells, "triangles", len(faces), "vertices", len(vertices))
	return geometry.NewPolyhedron(vertices, faces, "SDF")
}

// Triangulate fan-triangulates the faces of a polyhedron into vertex index
// triples. Faces with fewer than three vertices are rejected.
func Triangulate(p *geometry.Polyhedron) ([][3]int, error) {
	var tris [][3]int
	for fi, face := range p.Faces {
		if len(face) < 3 {
			return nil, fmt.Errorf("meshing: face %d has %d vertices, need at least 3", fi, len(face))
		}
		for i := 1; i < len(face)-1; i++ {
			tris = append(tris, [3]int{face[0], face[i], face[i+1]})
		}
	}
	return tris, nil
}

// SaveSTL writes a polyhedron to a binary STL file.
func SaveSTL(path string, p *geometry.Polyhedron) error {
	tris, err := Triangulate(p)
	if err != nil {
		return err
	}
	mesh := make([]*sdf.Triangle3, 0, len(tris))
	for _, t := range tris {
		a := p.Vertices[t[0]]
		b := p.Vertices[t[1]]
		c := p.Vertices[t[2]]
		mesh = append(mesh, &sdf.Triangle3{
			v3.Vec{X: a.X, Y: a.Y, Z: a.Z},
			v3.Vec{X: b.X, Y: b.Y, Z: b.Z},
			v3.Vec{X: c.X, Y: c.Y, Z: c.Z},
		})
	}
	if err := render.SaveSTL(path, mesh); err != nil {
		return fmt.Errorf("meshing: save stl: %w", err)
	}
	compas.Logger().Info("meshing: stl written", "path", path, "triangles", len(mesh))
	return nil
}
