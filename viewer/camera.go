package viewer

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/jf---/compas/geometry"
)

// orbitAnim holds active tweens for camera yaw, pitch, and distance.
type orbitAnim struct {
	yaw, pitch, dist *gween.Tween
	doneYaw          bool
	donePitch        bool
	doneDist         bool
}

// maxPitch keeps the camera off the poles so the z-up basis stays valid.
const maxPitch = math.Pi/2 - 0.01

// Camera is an orbiting perspective camera looking at a target point.
// The world is z-up.
type Camera struct {
	// Target is the world-space point the camera looks at.
	Target geometry.Vector
	// Distance is the orbit radius.
	Distance float64
	// Yaw is the rotation around the world Z axis, in radians.
	Yaw float64
	// Pitch is the elevation angle, in radians, clamped below the poles.
	Pitch float64
	// FOV is the vertical field of view in radians.
	FOV float64
	// Near is the minimum view depth; points closer are not projected.
	Near float64

	anim *orbitAnim
}

// NewCamera creates a camera with default orbit parameters.
func NewCamera() *Camera {
	return &Camera{
		Distance: 10,
		Yaw:      -math.Pi / 4,
		Pitch:    math.Pi / 6,
		FOV:      math.Pi / 3,
		Near:     0.01,
	}
}

// OrbitTo animates yaw and pitch to the given angles over duration seconds.
func (c *Camera) OrbitTo(yaw, pitch float64, duration float32, easeFn ease.TweenFunc) {
	pitch = clampPitch(pitch)
	a := c.ensureAnim()
	a.yaw = gween.New(float32(c.Yaw), float32(yaw), duration, easeFn)
	a.pitch = gween.New(float32(c.Pitch), float32(pitch), duration, easeFn)
	a.doneYaw, a.donePitch = false, false
}

// ZoomTo animates the orbit distance over duration seconds.
func (c *Camera) ZoomTo(distance float64, duration float32, easeFn ease.TweenFunc) {
	a := c.ensureAnim()
	a.dist = gween.New(float32(c.Distance), float32(distance), duration, easeFn)
	a.doneDist = false
}

func (c *Camera) ensureAnim() *orbitAnim {
	if c.anim == nil {
		c.anim = &orbitAnim{doneYaw: true, donePitch: true, doneDist: true}
	}
	return c.anim
}

// update advances active tweens by dt seconds.
func (c *Camera) update(dt float32) {
	a := c.anim
	if a == nil {
		return
	}
	if a.yaw != nil && !a.doneYaw {
		v, done := a.yaw.Update(dt)
		c.Yaw = float64(v)
		a.doneYaw = done
	}
	if a.pitch != nil && !a.donePitch {
		v, done := a.pitch.Update(dt)
		c.Pitch = float64(v)
		a.donePitch = done
	}
	if a.dist != nil && !a.doneDist {
		v, done := a.dist.Update(dt)
		c.Distance = float64(v)
		a.doneDist = done
	}
	if a.doneYaw && a.donePitch && a.doneDist {
		c.anim = nil
	}
}

// Eye returns the camera position on its orbit sphere.
func (c *Camera) Eye() geometry.Vector {
	cp := math.Cos(c.Pitch)
	return c.Target.Add(geometry.Vector{
		X: c.Distance * cp * math.Cos(c.Yaw),
		Y: c.Distance * cp * math.Sin(c.Yaw),
		Z: c.Distance * math.Sin(c.Pitch),
	})
}

// Project maps a world-space point to screen coordinates for a w x h
// viewport. visible is false for points at or behind the near plane.
func (c *Camera) Project(p geometry.Vector, w, h float64) (x, y float64, visible bool) {
	eye := c.Eye()
	forward := c.Target.Sub(eye).Unitized()
	right := forward.Cross(geometry.Vector{Z: 1}).Unitized()
	up := right.Cross(forward)

	d := p.Sub(eye)
	vx := d.Dot(right)
	vy := d.Dot(up)
	vz := d.Dot(forward)
	if vz <= c.Near {
		return 0, 0, false
	}

	f := (h / 2) / math.Tan(c.FOV/2)
	return w/2 + vx*f/vz, h/2 - vy*f/vz, true
}

func clampPitch(p float64) float64 {
	if p > maxPitch {
		return maxPitch
	}
	if p < -maxPitch {
		return -maxPitch
	}
	return p
}
