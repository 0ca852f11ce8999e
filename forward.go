package ur5

import "zappem.net/pub/kinematics/ur5/xform"

// Frames returns the base-frame pose of every joint's frame for joint
// angles j: T01, T02, ... T06. The last is the tool flange pose.
func (m *Model) Frames(j Joints) [NumJoints]xform.Transform {
	var fs [NumJoints]xform.Transform
	t := xform.Identity
	for i, a := range j {
		t = t.Mul(m.joints[i].T(a))
		fs[i] = t
	}
	return fs
}

// Forward evaluates the forward kinematics for joint angles j and
// returns the pose of the tool flange in the base frame.
func (m *Model) Forward(j Joints) xform.Transform {
	return m.Frames(j)[NumJoints-1]
}
