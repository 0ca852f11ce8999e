package ur5

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
	"zappem.net/pub/math/geom"
)

// ErrJointCount is returned when a joint vector does not hold exactly
// NumJoints angles.
var ErrJointCount = errors.New("joint vector must hold six angles")

// Joints holds one angle per joint in chain order: shoulder pan,
// shoulder lift, elbow, wrist 1, wrist 2, wrist 3. Angles are radians
// and are never wrapped into [-π, π].
type Joints [NumJoints]geom.Angle

// JointsFromSlice copies as into a Joints.
func JointsFromSlice(as []geom.Angle) (Joints, error) {
	var j Joints
	if len(as) != NumJoints {
		return j, errors.Wrapf(ErrJointCount, "got %d", len(as))
	}
	copy(j[:], as)
	return j, nil
}

// JointsFromRadians converts a slice of radians into a Joints.
func JointsFromRadians(rs ...float64) (Joints, error) {
	var j Joints
	if len(rs) != NumJoints {
		return j, errors.Wrapf(ErrJointCount, "got %d", len(rs))
	}
	for i, r := range rs {
		j[i] = geom.Angle(r)
	}
	return j, nil
}

// JointsFromDegrees converts a slice of degrees into a Joints.
func JointsFromDegrees(ds ...float64) (Joints, error) {
	var j Joints
	if len(ds) != NumJoints {
		return j, errors.Wrapf(ErrJointCount, "got %d", len(ds))
	}
	for i, d := range ds {
		j[i] = geom.Degrees(d)
	}
	return j, nil
}

// MustJoints is JointsFromRadians for callers that know they hold six
// values. It panics otherwise.
func MustJoints(rs ...float64) Joints {
	j, err := JointsFromRadians(rs...)
	if err != nil {
		panic(err)
	}
	return j
}

// Radians returns the angles as plain radians.
func (j Joints) Radians() []float64 {
	rs := make([]float64, NumJoints)
	for i, a := range j {
		rs[i] = float64(a)
	}
	return rs
}

// Degrees returns the angles in degrees.
func (j Joints) Degrees() []float64 {
	ds := make([]float64, NumJoints)
	for i, a := range j {
		ds[i] = float64(a) * 180 / math.Pi
	}
	return ds
}

func (j Joints) String() string {
	parts := make([]string, NumJoints)
	for i, a := range j {
		parts[i] = fmt.Sprintf("%.6f", float64(a))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
