package geometry

// Polygon is a planar ring of vertex positions. The ring is implicitly
// closed: the last vertex connects back to the first.
type Polygon struct {
	identity
	Vertices []Vector
}

// NewPolygon creates a polygon item from a vertex ring.
func NewPolygon(vertices []Vector) *Polygon {
	return &Polygon{identity: newIdentity("Polygon"), Vertices: vertices}
}

// Lines returns the edge segments of the ring, including the closing edge.
func (p *Polygon) Lines() [][2]Vector {
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

// Centroid returns the average of the vertex positions.
func (p *Polygon) Centroid() Vector {
	var c Vector
	if len(p.Vertices) == 0 {
		return c
	}
	for _, v := range p.Vertices {
		c = c.Add(v)
	}
	return c.Scale(1 / float64(len(p.Vertices)))
}
