package geometry

import "fmt"

// Point is a located point item.
type Point struct {
	identity
	Position Vector
}

// NewPoint creates a point item at the given position.
func NewPoint(x, y, z float64) *Point {
	return &Point{identity: newIdentity("Point"), Position: Vector{x, y, z}}
}

func (p *Point) String() string {
	return fmt.Sprintf("Point(%.3f, %.3f, %.3f)", p.Position.X, p.Position.Y, p.Position.Z)
}

// Line is a segment item between two positions.
type Line struct {
	identity
	Start Vector
	End   Vector
}

// NewLine creates a line item between start and end.
func NewLine(start, end Vector) *Line {
	return &Line{identity: newIdentity("Line"), Start: start, End: end}
}

// Direction returns the unitized vector from Start to End.
func (l *Line) Direction() Vector {
	return l.End.Sub(l.Start).Unitized()
}

// Length returns the segment length.
func (l *Line) Length() float64 {
	return l.End.Sub(l.Start).Length()
}

func (l *Line) String() string {
	return fmt.Sprintf("Line(%v, %v)", l.Start, l.End)
}
