package ur5

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"
	"zappem.net/pub/math/geom"

	"zappem.net/pub/kinematics/ur5/xform"
)

func randomAngle(rnd *rand.Rand) geom.Angle {
	return geom.Angle((2*rnd.Float64() - 1) * math.Pi)
}

// sameAngle compares angles modulo a full turn.
func sameAngle(a, b geom.Angle, tol float64) bool {
	return math.Abs(math.Remainder(float64(a-b), 2*math.Pi)) <= tol
}

func TestInverseHomePose(t *testing.T) {
	m := UR5()
	home := HomePose()
	j, err := m.Inverse(home)
	test.That(t, err, test.ShouldBeNil)

	want := []float64{6.006805125006359, -1.8123351471165705, 1.7659748668812292, -1.5244360465595552, -1.5707963267948963, 1.294416144621669}
	for i, a := range j {
		test.That(t, math.IsNaN(float64(a)) || math.IsInf(float64(a), 0), test.ShouldBeFalse)
		test.That(t, float64(a), test.ShouldAlmostEqual, want[i], 1e-9)
	}

	got := m.Forward(j)
	test.That(t, got.Pos().Distance(r3.Vector{X: -0.4, Z: 0.4}), test.ShouldBeLessThan, 1e-6)
	test.That(t, xform.AngleBetween(got, home), test.ShouldBeLessThan, 1e-6)
}

func TestInverseRoundTrip(t *testing.T) {
	m := UR5()
	rnd := rand.New(rand.NewSource(23))
	solved := 0
	for n := 0; n < 2000; n++ {
		var j Joints
		for i := range j {
			j[i] = randomAngle(rnd)
		}
		pose := m.Forward(j)
		if !m.Reachable(pose) {
			continue
		}
		k, err := m.Inverse(pose)
		if err != nil {
			// The fixed branch choice cannot reach every pose the arm
			// can, but such a failure is never a workspace rejection.
			test.That(t, Classify(err), test.ShouldEqual, DomainFailure)
			continue
		}
		solved++

		test.That(t, m.Forward(k).ApproxEqual(pose, 1e-6), test.ShouldBeTrue)
		test.That(t, float64(k[2]), test.ShouldBeGreaterThanOrEqualTo, 0.0)
		test.That(t, float64(k[2]), test.ShouldBeLessThanOrEqualTo, math.Pi)
		test.That(t, float64(k[4]), test.ShouldBeLessThanOrEqualTo, 0.0)

		// Solutions on the chosen branch map back onto themselves.
		again, err := m.Inverse(m.Forward(k))
		test.That(t, err, test.ShouldBeNil)
		for i := range k {
			test.That(t, sameAngle(again[i], k[i], 1e-6), test.ShouldBeTrue)
		}
	}
	test.That(t, solved, test.ShouldBeGreaterThan, 400)
}

func TestInverseUnreachable(t *testing.T) {
	m := UR5()
	for _, p := range []r3.Vector{
		{X: 0.1, Z: 0.3},
		{X: 0.9, Z: 0.1},
		{X: -0.4, Z: -0.2},
	} {
		j, err := m.Inverse(xform.Translation(p).Mul(xform.RotX(math.Pi)))
		test.That(t, errors.Is(err, ErrUnreachable), test.ShouldBeTrue)
		test.That(t, errors.Is(err, ErrDomain), test.ShouldBeFalse)
		test.That(t, Classify(err), test.ShouldEqual, Unreachable)
		test.That(t, j, test.ShouldResemble, Joints{})
	}
}

func TestInverseSingularWrist(t *testing.T) {
	m := UR5()
	pose := m.Forward(MustJoints(0.3, -1.2, 1.0, -0.5, 0, 0.4))
	test.That(t, m.Reachable(pose), test.ShouldBeTrue)

	_, err := m.Inverse(pose)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errors.Is(err, ErrSingular), test.ShouldBeTrue)
	test.That(t, errors.Is(err, ErrDomain), test.ShouldBeTrue)
	test.That(t, Classify(err), test.ShouldEqual, DomainFailure)

	var de *DomainError
	test.That(t, errors.As(err, &de), test.ShouldBeTrue)
	test.That(t, de.Joint, test.ShouldEqual, 5)
	test.That(t, math.Abs(de.Arg), test.ShouldBeLessThan, SingularityTolerance)
}

func TestInverseElbowOutOfSpan(t *testing.T) {
	m := UR5()
	// Tool pointing back at the base pushes the wrist centre beyond
	// a2+a3 from the shoulder although the flange is inside the shell.
	pose := xform.Translation(r3.Vector{X: -0.8, Z: 0.1}).Mul(xform.RotY(math.Pi / 2))
	test.That(t, m.Reachable(pose), test.ShouldBeTrue)

	_, err := m.Inverse(pose)
	test.That(t, errors.Is(err, ErrOutOfDomain), test.ShouldBeTrue)
	test.That(t, errors.Is(err, ErrSingular), test.ShouldBeFalse)
	test.That(t, Classify(err), test.ShouldEqual, DomainFailure)

	var de *DomainError
	test.That(t, errors.As(err, &de), test.ShouldBeTrue)
	test.That(t, de.Joint, test.ShouldEqual, 2)
	test.That(t, de.Arg, test.ShouldAlmostEqual, 1.5330246048993366, 1e-9)
	test.That(t, err.Error(), test.ShouldContainSubstring, "joint 3")
}

func TestInverseWristCentreTooClose(t *testing.T) {
	m := UR5()
	// The flange clears the column but the wrist centre sits inside
	// the d4 offset circle.
	pose := xform.Translation(r3.Vector{X: 0.16, Z: 0.3}).Mul(xform.RotY(math.Pi / 2))
	test.That(t, m.Reachable(pose), test.ShouldBeTrue)

	_, err := m.Inverse(pose)
	var de *DomainError
	test.That(t, errors.As(err, &de), test.ShouldBeTrue)
	test.That(t, de.Joint, test.ShouldEqual, 0)
	test.That(t, errors.Is(err, ErrOutOfDomain), test.ShouldBeTrue)
}

func TestInverseDeterministic(t *testing.T) {
	m := UR5()
	pose := xform.Translation(r3.Vector{X: -0.3, Y: 0.25, Z: 0.35}).Mul(xform.RotX(math.Pi))
	first, err := m.Inverse(pose)
	test.That(t, err, test.ShouldBeNil)
	second, err := m.Inverse(pose)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, second, test.ShouldResemble, first)

	var wg sync.WaitGroup
	results := make([]Joints, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = m.Inverse(pose)
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		test.That(t, r, test.ShouldResemble, first)
	}
}

func TestInDomain(t *testing.T) {
	x, err := inDomain(1, 1+DomainSlack/2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, x, test.ShouldEqual, 1.0)

	x, err = inDomain(1, -1-DomainSlack/2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, x, test.ShouldEqual, -1.0)

	x, err = inDomain(1, 0.25)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, x, test.ShouldEqual, 0.25)

	for _, bad := range []float64{1 + 1e-9, -1.5, math.NaN(), math.Inf(1)} {
		_, err := inDomain(3, bad)
		test.That(t, errors.Is(err, ErrOutOfDomain), test.ShouldBeTrue)
		test.That(t, errors.Is(err, ErrDomain), test.ShouldBeTrue)
	}
}

func TestOutcome(t *testing.T) {
	test.That(t, Classify(nil), test.ShouldEqual, Solved)
	test.That(t, Classify(errors.Wrap(ErrUnreachable, "dragged")), test.ShouldEqual, Unreachable)
	test.That(t, Classify(&DomainError{Err: ErrSingular}), test.ShouldEqual, DomainFailure)
	test.That(t, Solved.String(), test.ShouldEqual, "solved")
	test.That(t, Unreachable.String(), test.ShouldEqual, "unreachable")
	test.That(t, DomainFailure.String(), test.ShouldEqual, "domain failure")
	test.That(t, Outcome(9).String(), test.ShouldEqual, "Outcome(9)")
}
