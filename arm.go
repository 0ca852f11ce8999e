package ur5

import (
	"math"
	"sync"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"zappem.net/pub/math/geom"

	"zappem.net/pub/kinematics/ur5/xform"
)

// ErrBadJoint is returned for a joint index outside 0..NumJoints-1.
var ErrBadJoint = errors.New("invalid joint")

// HomePose is the pose the arm adopts when first created: the flange
// 0.4 m behind and 0.4 m above the base, pointing straight down.
func HomePose() xform.Transform {
	return xform.Translation(r3.Vector{X: -0.4, Z: 0.4}).Mul(xform.RotX(math.Pi))
}

// Pose holds the current pose of the arm in both cartesian and joint
// coordinates.
type Pose struct {
	T xform.Transform
	J Joints
}

// Arm tracks the pose of one arm. Targets it cannot reach leave it
// where it was. An Arm is safe for concurrent use.
type Arm struct {
	model  *Model
	logger *zap.SugaredLogger

	mu sync.Mutex
	p  Pose
}

// NewArm returns an arm of model m in its HomePose. A nil logger
// discards everything.
func NewArm(m *Model, logger *zap.SugaredLogger) (*Arm, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	j, err := m.Inverse(HomePose())
	if err != nil {
		return nil, errors.Wrap(err, "home pose")
	}
	a := &Arm{model: m, logger: logger}
	a.fwd(j)
	return a, nil
}

// Model returns the kinematic model of the arm.
func (a *Arm) Model() *Model {
	return a.model
}

// Pose returns the current pose of the arm.
func (a *Arm) Pose() Pose {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.p
}

// Joints returns the current joint angles.
func (a *Arm) Joints() Joints {
	return a.Pose().J
}

// J returns the angle of joint i, or 0 for an invalid index.
func (a *Arm) J(i int) geom.Angle {
	if i < 0 || i >= NumJoints {
		return 0
	}
	return a.Pose().J[i]
}

// MV returns the orientation and offset of the tool flange. This is
// the forward kinematics solution for the current joints.
func (a *Arm) MV() (geom.Matrix, geom.Vector) {
	return a.Pose().T.Basis()
}

// fwd adopts joints j and refreshes the cartesian pose to match. The
// caller must hold a.mu or be the only user of a.
func (a *Arm) fwd(j Joints) {
	a.p = Pose{T: a.model.Forward(j), J: j}
}

// SetJoints forces every joint to the given angles.
func (a *Arm) SetJoints(j Joints) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fwd(j)
}

// SetJ forces joint i to angle v.
func (a *Arm) SetJ(i int, v geom.Angle) error {
	if i < 0 || i >= NumJoints {
		return errors.Wrapf(ErrBadJoint, "index %d", i)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	j := a.p.J
	j[i] = v
	a.fwd(j)
	return nil
}

// MoveTo solves for target and adopts the solution. If there is none
// the arm stays put and the Inverse error is returned; Classify tells
// an unreachable target from a domain failure.
func (a *Arm) MoveTo(target xform.Transform) error {
	j, err := a.model.Inverse(target)
	if err != nil {
		a.logger.Debugw("staying put", "target", target.Pos(), "outcome", Classify(err), "error", err)
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fwd(j)
	a.logger.Debugw("moved", "target", target.Pos(), "joints", j)
	return nil
}

// MoveToward moves the flange to position p keeping its current
// orientation, as when the flange is dragged around.
func (a *Arm) MoveToward(p r3.Vector) error {
	return a.MoveTo(a.Pose().T.WithPos(p))
}
