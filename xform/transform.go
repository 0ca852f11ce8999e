// Package xform holds the 4x4 homogeneous transforms used to chain
// the link frames of a serial arm together.
//
// A Transform is a rigid rotation plus translation stored row-major:
//
//	| R00 R01 R02 Px |
//	| R10 R11 R12 Py |
//	| R20 R21 R22 Pz |
//	|  0   0   0   1 |
//
// Composition is ordinary matrix multiplication. Along a kinematic
// chain each link transform is expressed in its parent's frame, so
// the base-frame pose of link n is T01.Mul(T12)...Mul(T(n-1)n).
package xform

import (
	"fmt"
	"math"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"zappem.net/pub/math/geom"
)

// RigidTolerance is the slack Invert allows when deciding a transform
// is rigid.
const RigidTolerance = 1e-9

// Err* are the errors exported by this package.
var (
	ErrNotRigid = errors.New("transform is not rigid")
	ErrBadBasis = errors.New("basis needs a 3x3 matrix and a 3-vector")
)

// Transform is a row-major 4x4 homogeneous matrix.
type Transform [16]float64

// Identity is the transform that changes nothing.
var Identity = Transform{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// Translation returns a pure translation by v.
func Translation(v r3.Vector) Transform {
	t := Identity
	t[3], t[7], t[11] = v.X, v.Y, v.Z
	return t
}

// Rotation returns a right-handed rotation by a about axis. The axis
// need not be normalized. A zero axis yields the identity.
func Rotation(axis r3.Vector, a geom.Angle) Transform {
	if axis.Norm2() == 0 {
		return Identity
	}
	u := axis.Normalize()
	x, y, z := u.X, u.Y, u.Z
	s, c := a.S(), a.C()
	k := 1 - c
	return Transform{
		k*x*x + c, k*x*y - z*s, k*x*z + y*s, 0,
		k*x*y + z*s, k*y*y + c, k*y*z - x*s, 0,
		k*x*z - y*s, k*y*z + x*s, k*z*z + c, 0,
		0, 0, 0, 1,
	}
}

// RotX is a rotation about the X axis.
func RotX(a geom.Angle) Transform {
	return Rotation(r3.Vector{X: 1}, a)
}

// RotY is a rotation about the Y axis.
func RotY(a geom.Angle) Transform {
	return Rotation(r3.Vector{Y: 1}, a)
}

// RotZ is a rotation about the Z axis.
func RotZ(a geom.Angle) Transform {
	return Rotation(r3.Vector{Z: 1}, a)
}

// At returns the element at row r, column c.
func (t Transform) At(r, c int) float64 {
	return t[4*r+c]
}

// Mul returns t*u: u applied first, expressed in t's frame.
func (t Transform) Mul(u Transform) Transform {
	var m Transform
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += t[4*r+k] * u[4*k+c]
			}
			m[4*r+c] = sum
		}
	}
	return m
}

// Compose multiplies ts left to right. Compose() is the identity.
func Compose(ts ...Transform) Transform {
	m := Identity
	for _, t := range ts {
		m = m.Mul(t)
	}
	return m
}

// Apply returns t*v.
func (t Transform) Apply(v Vec4) Vec4 {
	return Vec4{
		X: t[0]*v.X + t[1]*v.Y + t[2]*v.Z + t[3]*v.W,
		Y: t[4]*v.X + t[5]*v.Y + t[6]*v.Z + t[7]*v.W,
		Z: t[8]*v.X + t[9]*v.Y + t[10]*v.Z + t[11]*v.W,
		W: t[12]*v.X + t[13]*v.Y + t[14]*v.Z + t[15]*v.W,
	}
}

// Pos is the translation component of t.
func (t Transform) Pos() r3.Vector {
	return r3.Vector{X: t[3], Y: t[7], Z: t[11]}
}

// WithPos returns t with its translation replaced by p. The rotation
// is unchanged.
func (t Transform) WithPos(p r3.Vector) Transform {
	t[3], t[7], t[11] = p.X, p.Y, p.Z
	return t
}

// Inverse is the closed form inverse of a rigid transform: the
// transposed rotation and the counter-rotated, negated translation.
// It is only meaningful for rigid t; see Invert.
func (t Transform) Inverse() Transform {
	var m Transform
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m[4*r+c] = t[4*c+r]
		}
	}
	for r := 0; r < 3; r++ {
		m[4*r+3] = -(m[4*r]*t[3] + m[4*r+1]*t[7] + m[4*r+2]*t[11])
	}
	m[15] = 1
	return m
}

// Invert returns the inverse of t, or ErrNotRigid if t is not a rigid
// transform to within RigidTolerance.
func (t Transform) Invert() (Transform, error) {
	if !t.IsRigid(RigidTolerance) {
		return Transform{}, errors.Wrapf(ErrNotRigid, "cannot invert\n%v", t)
	}
	return t.Inverse(), nil
}

// IsRigid reports whether the rotation block of t is a proper rotation
// and its last row is (0,0,0,1), each to within tol.
func (t Transform) IsRigid(tol float64) bool {
	if !floats.EqualApprox(t[12:], []float64{0, 0, 0, 1}, tol) {
		return false
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var dot float64
			for k := 0; k < 3; k++ {
				dot += t[4*k+i] * t[4*k+j]
			}
			want := 0.0
			if i == j {
				want = 1
			}
			if math.Abs(dot-want) > tol {
				return false
			}
		}
	}
	det := t[0]*(t[5]*t[10]-t[6]*t[9]) -
		t[1]*(t[4]*t[10]-t[6]*t[8]) +
		t[2]*(t[4]*t[9]-t[5]*t[8])
	return math.Abs(det-1) <= tol
}

// ApproxEqual reports whether every element of t and u agree to within
// tol.
func (t Transform) ApproxEqual(u Transform, tol float64) bool {
	return floats.EqualApprox(t[:], u[:], tol)
}

// AngleBetween is the angle of the rotation that takes the orientation
// of a to that of b, in [0, π]. Translations are ignored.
func AngleBetween(a, b Transform) float64 {
	// R = Ra' Rb
	var m [3][3]float64
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			for k := 0; k < 3; k++ {
				m[r][c] += a[4*k+r] * b[4*k+c]
			}
		}
	}
	// The skew part of R is sin θ times the rotation axis, which keeps
	// small angles resolvable where acos of the trace alone is not.
	sin := math.Sqrt(sq(m[2][1]-m[1][2])+sq(m[0][2]-m[2][0])+sq(m[1][0]-m[0][1])) / 2
	cos := (m[0][0] + m[1][1] + m[2][2] - 1) / 2
	return math.Atan2(sin, cos)
}

func sq(x float64) float64 { return x * x }

// Basis splits t into its rotation matrix and offset vector in the
// geom package's representation.
func (t Transform) Basis() (geom.Matrix, geom.Vector) {
	m := geom.M(
		t[0], t[1], t[2],
		t[4], t[5], t[6],
		t[8], t[9], t[10],
	)
	return m, geom.V(t[3], t[7], t[11])
}

// FromBasis assembles a transform from a row-major 3x3 rotation and an
// offset.
func FromBasis(m geom.Matrix, v geom.Vector) (Transform, error) {
	if len(m) != 9 || len(v) != 3 {
		return Transform{}, errors.Wrapf(ErrBadBasis, "got %d matrix and %d vector elements", len(m), len(v))
	}
	return Transform{
		m[0], m[1], m[2], v[0],
		m[3], m[4], m[5], v[1],
		m[6], m[7], m[8], v[2],
		0, 0, 0, 1,
	}, nil
}

func (t Transform) String() string {
	var b strings.Builder
	for r := 0; r < 4; r++ {
		if r != 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "[% .6f % .6f % .6f % .6f]", t[4*r], t[4*r+1], t[4*r+2], t[4*r+3])
	}
	return b.String()
}
