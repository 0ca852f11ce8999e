package ur5

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"zappem.net/pub/kinematics/ur5/xform"
)

func TestWorkspaceBoundary(t *testing.T) {
	m := UR5()
	for _, c := range []struct {
		name string
		p    r3.Vector
		ok   bool
		why  string
	}{
		{"inner radius exactly", r3.Vector{X: 0.15, Z: 0.3}, false, "base column"},
		{"inside inner radius", r3.Vector{X: 0.149, Z: 0.3}, false, "base column"},
		{"inside inner radius on a diagonal", r3.Vector{X: -0.09, Y: 0.119, Z: 0.3}, false, "base column"},
		{"just outside inner radius", r3.Vector{X: 0.16, Z: 0.3}, true, ""},
		{"behind the base", r3.Vector{X: -0.16, Y: -0.2, Z: 0.1}, true, ""},
		{"outer radius exactly", r3.Vector{X: 0.672, Z: 0.504}, false, "from the base,"},
		{"beyond outer radius", r3.Vector{X: 0.6, Y: 0.5, Z: 0.4}, false, "from the base,"},
		{"just inside outer radius", r3.Vector{X: 0.6, Z: 0.58}, true, ""},
		{"on the base plane", r3.Vector{X: 0.4}, false, "base plane"},
		{"below the base plane", r3.Vector{X: 0.4, Z: -0.01}, false, "base plane"},
		{"on the base plane far out", r3.Vector{X: 0.6, Y: 0.2}, false, "base plane"},
		{"on the axis", r3.Vector{Z: 0.5}, false, "base column"},
	} {
		t.Run(c.name, func(t *testing.T) {
			// Orientation plays no part in the check.
			for _, rot := range []xform.Transform{xform.Identity, xform.RotX(math.Pi), xform.RotY(1)} {
				pose := xform.Translation(c.p).Mul(rot)
				test.That(t, m.Reachable(pose), test.ShouldEqual, c.ok)
				err := m.Workspace().Check(pose)
				if c.ok {
					test.That(t, err, test.ShouldBeNil)
					continue
				}
				test.That(t, errors.Is(err, ErrUnreachable), test.ShouldBeTrue)
				test.That(t, err.Error(), test.ShouldContainSubstring, c.why)
			}
		})
	}
}

func TestWorkspaceCustomBounds(t *testing.T) {
	w := Workspace{Inner: 0.05, Outer: 2}
	test.That(t, w.Contains(xform.Translation(r3.Vector{X: 0.1, Z: 1.5})), test.ShouldBeTrue)
	test.That(t, UR5().Workspace().Contains(xform.Translation(r3.Vector{X: 0.1, Z: 1.5})), test.ShouldBeFalse)
}
