package ur5

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"zappem.net/pub/math/geom"

	"zappem.net/pub/kinematics/ur5/xform"
)

const (
	// SingularityTolerance is the smallest |sin θ5| Inverse accepts.
	// Below it the wrist 1 and wrist 3 axes are too close to coaxial
	// for θ6 to be determined.
	SingularityTolerance = 1e-6

	// DomainSlack is how far an acos or asin argument may stray past
	// ±1 and still be treated as rounding noise and clamped.
	DomainSlack = 1e-12
)

// Errors reported inside a *DomainError.
var (
	ErrDomain      = errors.New("no real joint solution")
	ErrSingular    = errors.New("wrist singularity")
	ErrOutOfDomain = errors.New("inverse trig argument out of domain")
)

// DomainError reports that a target passed the workspace check but
// the link geometry has no solution for it, or the wrist is singular.
// It matches ErrDomain, and Err, with errors.Is.
type DomainError struct {
	Joint int     // joint being solved, counting from 0
	Arg   float64 // the offending acos/asin argument, or sin θ5
	Err   error   // ErrSingular or ErrOutOfDomain
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("joint %d: %v (%g)", e.Joint+1, e.Err, e.Arg)
}

// Unwrap returns the cause.
func (e *DomainError) Unwrap() error { return e.Err }

// Is makes every DomainError match ErrDomain.
func (e *DomainError) Is(target error) bool { return target == ErrDomain }

// inDomain clamps x into [-1, 1] when it is within DomainSlack of the
// interval and fails otherwise.
func inDomain(joint int, x float64) (float64, error) {
	switch {
	case math.IsNaN(x), x > 1+DomainSlack, x < -1-DomainSlack:
		return 0, &DomainError{Joint: joint, Arg: x, Err: ErrOutOfDomain}
	case x > 1:
		return 1, nil
	case x < -1:
		return -1, nil
	}
	return x, nil
}

// Inverse computes the joint angles that place the tool flange at
// pose. The target is first checked against the workspace and an
// ErrUnreachable is returned if it fails. A *DomainError is returned
// when the geometry has no solution or the wrist is singular. There
// are no partial results.
//
// Of the up to eight solutions the arm admits, Inverse always returns
// the same one: the shoulder on the +acos side of the wrist centre,
// the wrist bent to θ5 <= 0 and the elbow on the principal branch,
// 0 <= θ3 <= π. Repeated calls with the same pose return identical
// angles.
func (m *Model) Inverse(pose xform.Transform) (Joints, error) {
	if err := m.ws.Check(pose); err != nil {
		return Joints{}, err
	}
	l := m.links

	// θ1 from the wrist centre, backed off the tool axis by d6.
	p5 := pose.Apply(xform.Vec4{Z: -l.D6, W: 1})
	c, err := inDomain(0, l.D4/p5.PlanarNorm())
	if err != nil {
		return Joints{}, err
	}
	t1 := math.Atan2(p5.Y, p5.X) + math.Acos(c) + math.Pi/2
	s1, c1 := math.Sincos(t1)

	// θ5 from the flange position.
	p := pose.Pos()
	c, err = inDomain(4, (p.X*s1-p.Y*c1-l.D4)/l.D6)
	if err != nil {
		return Joints{}, err
	}
	t5 := -math.Acos(c)
	s5 := math.Sin(t5)
	if math.Abs(s5) < SingularityTolerance {
		return Joints{}, &DomainError{Joint: 5, Arg: s5, Err: ErrSingular}
	}

	// θ6 from the base frame seen from the flange.
	t01 := m.joints[0].T(geom.Angle(t1))
	t61 := pose.Inverse().Mul(t01)
	t6 := math.Atan2(-t61.At(1, 2)/s5, t61.At(0, 2)/s5)

	// θ3 by the law of cosines on the shoulder to wrist vector.
	t46 := m.joints[4].T(geom.Angle(t5)).Mul(m.joints[5].T(geom.Angle(t6)))
	t14 := xform.Compose(t01.Inverse(), pose, t46.Inverse())
	p13 := t14.Apply(xform.Vec4{Y: -l.D4, W: 1}).Sub(xform.Vec4{W: 1})
	c, err = inDomain(2, (p13.Norm2()-l.A2*l.A2-l.A3*l.A3)/(2*l.A2*l.A3))
	if err != nil {
		return Joints{}, err
	}
	t3 := math.Acos(c)

	// θ2 from the direction of that vector less the elbow's share.
	s, err := inDomain(1, l.A3*math.Sin(t3)/p13.Norm())
	if err != nil {
		return Joints{}, err
	}
	t2 := -(math.Atan2(p13.Y, -p13.X) + math.Asin(s))

	// θ4 is whatever rotation remains.
	t13 := m.joints[1].T(geom.Angle(t2)).Mul(m.joints[2].T(geom.Angle(t3)))
	t34 := t13.Inverse().Mul(t14)
	t4 := math.Atan2(t34.At(1, 0), t34.At(0, 0))

	return Joints{
		geom.Angle(t1), geom.Angle(t2), geom.Angle(t3),
		geom.Angle(t4), geom.Angle(t5), geom.Angle(t6),
	}, nil
}

// Outcome classifies the result of Inverse.
type Outcome int

// The outcomes of Inverse.
const (
	Solved Outcome = iota
	Unreachable
	DomainFailure
)

func (o Outcome) String() string {
	switch o {
	case Solved:
		return "solved"
	case Unreachable:
		return "unreachable"
	case DomainFailure:
		return "domain failure"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Classify maps an error returned by Inverse onto its Outcome. Errors
// that did not come from Inverse classify as DomainFailure.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return Solved
	case errors.Is(err, ErrUnreachable):
		return Unreachable
	}
	return DomainFailure
}
