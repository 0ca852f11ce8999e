package xform

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Vec4 is a homogeneous coordinate. Points carry W=1 and directions
// W=0, so the difference of two points is a direction.
type Vec4 struct {
	X, Y, Z, W float64
}

// Point lifts p to a homogeneous point.
func Point(p r3.Vector) Vec4 {
	return Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1}
}

// Dir lifts d to a homogeneous direction, unaffected by translation.
func Dir(d r3.Vector) Vec4 {
	return Vec4{X: d.X, Y: d.Y, Z: d.Z}
}

// Sub returns v-u componentwise.
func (v Vec4) Sub(u Vec4) Vec4 {
	return Vec4{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z, W: v.W - u.W}
}

// Dot returns the four component dot product of v and u.
func (v Vec4) Dot(u Vec4) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z + v.W*u.W
}

// Norm2 is the squared length of v. Use it where only a comparison
// or ratio of lengths is needed.
func (v Vec4) Norm2() float64 {
	return v.Dot(v)
}

// Norm is the length of v.
func (v Vec4) Norm() float64 {
	return math.Sqrt(v.Norm2())
}

// PlanarNorm is the length of the projection of v onto the XY plane.
func (v Vec4) PlanarNorm() float64 {
	return math.Hypot(v.X, v.Y)
}

// Vec3 drops the homogeneous component.
func (v Vec4) Vec3() r3.Vector {
	return r3.Vector{X: v.X, Y: v.Y, Z: v.Z}
}

func (v Vec4) String() string {
	return fmt.Sprintf("(%.6g, %.6g, %.6g, %.6g)", v.X, v.Y, v.Z, v.W)
}
