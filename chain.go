// Package ur5 does forward and inverse kinematics for the UR5 six
// axis industrial arm.
//
// The arm is a chain of six revolute joints. Each joint's frame is
// expressed in its parent's frame by a rotation about the local Z
// axis by the joint angle followed by a fixed link transform:
//
//	J1 shoulder pan   Rz(θ1) Tz(d1) Rx(+90°)
//	J2 shoulder lift  Rz(θ2) Tx(-a2)
//	J3 elbow          Rz(θ3) Tx(-a3)
//	J4 wrist 1        Rz(θ4) Tz(d4) Rx(+90°)
//	J5 wrist 2        Rz(θ5) Tz(d5) Rx(-90°)
//	J6 wrist 3        Rz(θ6) Tz(d6)
//
// Forward composes these in joint order. Inverse solves them in
// closed form for a target pose that passes the workspace check.
// Neither holds any state, so a Model may be shared freely between
// goroutines. Arm layers a current pose on top for callers that want
// to track one.
package ur5

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"zappem.net/pub/math/geom"

	"zappem.net/pub/kinematics/ur5/xform"
)

// NumJoints is the number of joints in the chain.
const NumJoints = 6

// Links holds the link lengths and offsets of the arm in meters.
type Links struct {
	D1 float64 // base to shoulder height
	A2 float64 // upper arm
	A3 float64 // forearm
	D4 float64 // shoulder to wrist lateral offset
	D5 float64 // wrist 1 to wrist 2
	D6 float64 // wrist 2 to tool flange
}

// Validate checks every link is a positive length.
func (l Links) Validate() error {
	var err error
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"d1", l.D1}, {"a2", l.A2}, {"a3", l.A3},
		{"d4", l.D4}, {"d5", l.D5}, {"d6", l.D6},
	} {
		if !(f.v > 0) || math.IsInf(f.v, 0) {
			err = multierr.Append(err, errors.Errorf("link %s must be a positive length, got %v", f.name, f.v))
		}
	}
	return err
}

// Workspace bounds the shell of target positions that are plausibly
// reachable: further than Inner from the base column, closer than
// Outer to the base origin and above the base plane.
type Workspace struct {
	Inner float64
	Outer float64
}

// Validate checks the bounds describe a non-empty shell.
func (w Workspace) Validate() error {
	var err error
	if !(w.Inner >= 0) {
		err = multierr.Append(err, errors.Errorf("inner radius must not be negative, got %v", w.Inner))
	}
	if !(w.Outer > w.Inner) || math.IsInf(w.Outer, 0) {
		err = multierr.Append(err, errors.Errorf("outer radius %v must be finite and exceed inner radius %v", w.Outer, w.Inner))
	}
	return err
}

// The UR5 geometry. Read it through UR5().Links() and
// UR5().Workspace().
var (
	ur5Links = Links{
		D1: 0.089159,
		A2: 0.425,
		A3: 0.39225,
		D4: 0.10915,
		D5: 0.09465,
		D6: 0.12,
	}
	ur5Workspace = Workspace{
		Inner: 0.15,
		Outer: 0.84,
	}
)

// Joint is one revolute joint: a rotation about its local Z axis
// followed by the fixed transform to the next link.
type Joint struct {
	Name  string
	Fixed xform.Transform
}

// T returns the joint's transform relative to its parent for joint
// angle a.
func (j Joint) T(a geom.Angle) xform.Transform {
	return xform.RotZ(a).Mul(j.Fixed)
}

// Model is the kinematic model of one arm. The zero value is not
// usable; use New or UR5.
type Model struct {
	links  Links
	ws     Workspace
	joints [NumJoints]Joint
}

// New builds a model for an arm of the UR kinematic family with the
// given geometry.
func New(l Links, w Workspace) (*Model, error) {
	if err := multierr.Combine(l.Validate(), w.Validate()); err != nil {
		return nil, errors.Wrap(err, "invalid arm model")
	}
	quarter := geom.Angle(math.Pi / 2)
	m := &Model{
		links: l,
		ws:    w,
		joints: [NumJoints]Joint{
			{Name: "shoulder_pan", Fixed: xform.Translation(r3.Vector{Z: l.D1}).Mul(xform.RotX(quarter))},
			{Name: "shoulder_lift", Fixed: xform.Translation(r3.Vector{X: -l.A2})},
			{Name: "elbow", Fixed: xform.Translation(r3.Vector{X: -l.A3})},
			{Name: "wrist_1", Fixed: xform.Translation(r3.Vector{Z: l.D4}).Mul(xform.RotX(quarter))},
			{Name: "wrist_2", Fixed: xform.Translation(r3.Vector{Z: l.D5}).Mul(xform.RotX(-quarter))},
			{Name: "wrist_3", Fixed: xform.Translation(r3.Vector{Z: l.D6})},
		},
	}
	return m, nil
}

var ur5Model = mustNew(ur5Links, ur5Workspace)

func mustNew(l Links, w Workspace) *Model {
	m, err := New(l, w)
	if err != nil {
		panic(err)
	}
	return m
}

// UR5 returns the model of the UR5 arm.
func UR5() *Model {
	return ur5Model
}

// Links returns the link geometry of the model.
func (m *Model) Links() Links {
	return m.links
}

// Workspace returns the workspace bounds of the model.
func (m *Model) Workspace() Workspace {
	return m.ws
}

// Joint returns joint i, counting from 0 at the shoulder pan. It
// panics if i is out of range.
func (m *Model) Joint(i int) Joint {
	return m.joints[i]
}

// JointTransform returns the transform of joint i, counting from 0,
// relative to its parent for angle a.
func (m *Model) JointTransform(i int, a geom.Angle) xform.Transform {
	return m.joints[i].T(a)
}
