// Package scene maps the six joint angles of the arm onto the nodes of
// an articulated 3D model of it, and back.
//
// The model is the usual UR5 asset: one node per link, each turned by
// a single Euler angle about its own Y or Z axis, with the upper arm
// and first wrist link modelled a quarter turn off the kinematic zero.
// Scene coordinates are Y-up with X mirrored relative to the base
// frame of the kinematics.
package scene

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"zappem.net/pub/math/geom"

	"zappem.net/pub/kinematics/ur5"
)

// Link names of the model's nodes.
const (
	BaseLink     = "base_link"
	ShoulderLink = "shoulder_link"
	UpperarmLink = "upperarm_link"
	ForearmLink  = "forearm_link"
	Wrist1Link   = "wrist1_link"
	Wrist2Link   = "wrist2_link"
	Wrist3Link   = "wrist3_link"
)

// ErrMissingNode is returned when the scene lacks a link the arm needs.
var ErrMissingNode = errors.New("missing scene node")

// Node is one articulated link of a scene.
type Node interface {
	EulerAngles() r3.Vector
	SetEulerAngles(r3.Vector)
}

// Handle gives access to the nodes of a scene by name.
type Handle interface {
	Node(name string) (Node, bool)
}

// Axis selects one Euler angle of a node.
type Axis int

// The Euler angles of a node.
const (
	X Axis = iota
	Y
	Z
)

func (a Axis) get(v r3.Vector) float64 {
	switch a {
	case X:
		return v.X
	case Y:
		return v.Y
	default:
		return v.Z
	}
}

func (a Axis) set(v r3.Vector, x float64) r3.Vector {
	switch a {
	case X:
		v.X = x
	case Y:
		v.Y = x
	default:
		v.Z = x
	}
	return v
}

// Binding ties one joint to the Euler angle that displays it:
//
//	angle = Sign*θ + Offset
type Binding struct {
	Link   string
	Axis   Axis
	Sign   float64
	Offset float64
}

// Bindings lists the binding of every joint in joint order. The
// offsets come from the reference pose of the model asset.
var Bindings = [ur5.NumJoints]Binding{
	{Link: ShoulderLink, Axis: Y, Sign: 1},
	{Link: UpperarmLink, Axis: Z, Sign: -1, Offset: -math.Pi / 2},
	{Link: ForearmLink, Axis: Z, Sign: -1},
	{Link: Wrist1Link, Axis: Z, Sign: -1, Offset: -math.Pi / 2},
	{Link: Wrist2Link, Axis: Y, Sign: 1},
	{Link: Wrist3Link, Axis: Z, Sign: 1},
}

// SceneAngle returns the Euler angle that displays joint angle theta.
func (b Binding) SceneAngle(theta float64) float64 {
	return b.Sign*theta + b.Offset
}

// JointAngle returns the joint angle displayed by Euler angle a.
func (b Binding) JointAngle(a float64) float64 {
	return b.Sign * (a - b.Offset)
}

// nodes resolves every bound link, reporting all missing ones at once.
func nodes(h Handle) ([ur5.NumJoints]Node, error) {
	var ns [ur5.NumJoints]Node
	var err error
	for i, b := range Bindings {
		n, ok := h.Node(b.Link)
		if !ok {
			err = multierr.Append(err, errors.Wrapf(ErrMissingNode, "%q", b.Link))
			continue
		}
		ns[i] = n
	}
	return ns, err
}

// Apply poses the scene to show joint angles j. Only the bound axis of
// each node changes. When any node is missing nothing is changed.
func Apply(h Handle, j ur5.Joints) error {
	ns, err := nodes(h)
	if err != nil {
		return err
	}
	for i, b := range Bindings {
		e := ns[i].EulerAngles()
		ns[i].SetEulerAngles(b.Axis.set(e, b.SceneAngle(float64(j[i]))))
	}
	return nil
}

// Read returns the joint angles the scene currently shows.
func Read(h Handle) (ur5.Joints, error) {
	var j ur5.Joints
	ns, err := nodes(h)
	if err != nil {
		return j, err
	}
	for i, b := range Bindings {
		j[i] = geom.Angle(b.JointAngle(b.Axis.get(ns[i].EulerAngles())))
	}
	return j, nil
}

// BaseToScene converts a position in the base frame to scene
// coordinates.
func BaseToScene(p r3.Vector) r3.Vector {
	return r3.Vector{X: -p.X, Y: p.Z, Z: p.Y}
}

// SceneToBase converts a scene position to the base frame.
func SceneToBase(s r3.Vector) r3.Vector {
	return r3.Vector{X: -s.X, Y: s.Z, Z: s.Y}
}
