package ur5

import (
	"github.com/pkg/errors"

	"zappem.net/pub/kinematics/ur5/xform"
)

// ErrUnreachable is returned when a target pose lies outside the
// workspace. It is the expected outcome of dragging a target too far;
// callers normally keep the arm where it was.
var ErrUnreachable = errors.New("target outside the workspace")

// Check returns nil if the position of pose lies in the workspace
// shell, otherwise an ErrUnreachable naming the bound it violates.
//
// Passing Check is necessary but not sufficient for Inverse to find a
// solution.
func (w Workspace) Check(pose xform.Transform) error {
	p := xform.Point(pose.Pos())
	if r := p.PlanarNorm(); r <= w.Inner {
		return errors.Wrapf(ErrUnreachable, "%.4f m from the base column, need more than %.4f", r, w.Inner)
	}
	if r := p.Vec3().Norm(); r >= w.Outer {
		return errors.Wrapf(ErrUnreachable, "%.4f m from the base, need less than %.4f", r, w.Outer)
	}
	if p.Z <= 0 {
		return errors.Wrapf(ErrUnreachable, "height %.4f m is not above the base plane", p.Z)
	}
	return nil
}

// Contains reports whether pose passes Check.
func (w Workspace) Contains(pose xform.Transform) bool {
	return w.Check(pose) == nil
}

// Reachable reports whether pose lies in the model's workspace.
func (m *Model) Reachable(pose xform.Transform) bool {
	return m.ws.Contains(pose)
}
