// Package main is a command line front end to the UR5 kinematics.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"zappem.net/pub/math/geom"

	"zappem.net/pub/kinematics/ur5"
	"zappem.net/pub/kinematics/ur5/internal/logging"
	"zappem.net/pub/kinematics/ur5/xform"
)

const (
	// Flags.
	flagDebug   = "debug"
	flagDegrees = "degrees"
	flagFrames  = "frames"
	flagPos     = "pos"
	flagAxis    = "axis"
	flagAngle   = "angle"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	logger := zap.NewNop().Sugar()
	model := ur5.UR5()

	return &cli.App{
		Name:      "ur5kin",
		Usage:     "forward and inverse kinematics of the UR5 arm",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "enable debug logging",
			},
			&cli.BoolFlag{
				Name:  flagDegrees,
				Usage: "read and print joint angles in degrees",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool(flagDebug) {
				logger = logging.NewDebugLogger("ur5kin")
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "fk",
				Usage:     "print the tool flange pose for six joint angles",
				ArgsUsage: "[--] a1 a2 a3 a4 a5 a6",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  flagFrames,
						Usage: "print the frame of every joint",
					},
				},
				Action: func(c *cli.Context) error {
					j, err := parseJoints(c)
					if err != nil {
						return err
					}
					if c.Bool(flagFrames) {
						for i, f := range model.Frames(j) {
							printf(c.App.Writer, "%s:\n%v", model.Joint(i).Name, f)
						}
						return nil
					}
					printPose(c.App.Writer, model.Forward(j))
					return nil
				},
			},
			{
				Name:  "ik",
				Usage: "solve the joint angles for a tool flange pose",
				Flags: []cli.Flag{
					&cli.Float64SliceFlag{
						Name:     flagPos,
						Usage:    "flange position `x,y,z` in meters",
						Required: true,
					},
					&cli.Float64SliceFlag{
						Name:  flagAxis,
						Usage: "flange orientation as a rotation about `x,y,z`",
						Value: cli.NewFloat64Slice(1, 0, 0),
					},
					&cli.Float64Flag{
						Name:  flagAngle,
						Usage: "rotation about the axis in degrees",
						Value: 180,
					},
				},
				Action: func(c *cli.Context) error {
					p, err := vectorFlag(c, flagPos)
					if err != nil {
						return err
					}
					axis, err := vectorFlag(c, flagAxis)
					if err != nil {
						return err
					}
					if axis.Norm() == 0 {
						return errors.Errorf("--%s must not be zero", flagAxis)
					}
					pose := xform.Translation(p).Mul(xform.Rotation(axis, geom.Degrees(c.Float64(flagAngle))))
					logger.Debugw("solving", "pose", pose.Pos())

					j, err := model.Inverse(pose)
					printf(c.App.Writer, "outcome: %v", ur5.Classify(err))
					if err != nil {
						return err
					}
					printJoints(c, j)
					return nil
				},
			},
			{
				Name:  "reach",
				Usage: "check a flange position against the workspace",
				Flags: []cli.Flag{
					&cli.Float64SliceFlag{
						Name:     flagPos,
						Usage:    "flange position `x,y,z` in meters",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					p, err := vectorFlag(c, flagPos)
					if err != nil {
						return err
					}
					if err := model.Workspace().Check(xform.Translation(p)); err != nil {
						printf(c.App.Writer, "unreachable: %v", err)
						return nil
					}
					printf(c.App.Writer, "reachable")
					return nil
				},
			},
			{
				Name:  "home",
				Usage: "print the initial pose of the arm and its joint angles",
				Action: func(c *cli.Context) error {
					a, err := ur5.NewArm(model, logger)
					if err != nil {
						return err
					}
					p := a.Pose()
					printPose(c.App.Writer, p.T)
					printJoints(c, p.J)
					return nil
				},
			},
		},
	}
}

func printf(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintf(w, format+"\n", a...)
}

func printPose(w io.Writer, t xform.Transform) {
	p := t.Pos()
	printf(w, "position: %.6f %.6f %.6f", p.X, p.Y, p.Z)
	printf(w, "transform:\n%v", t)
}

func printJoints(c *cli.Context, j ur5.Joints) {
	if !c.Bool(flagDegrees) {
		printf(c.App.Writer, "joints: %v", j)
		return
	}
	ds := j.Degrees()
	printf(c.App.Writer, "joints: [%.3f %.3f %.3f %.3f %.3f %.3f] deg", ds[0], ds[1], ds[2], ds[3], ds[4], ds[5])
}

func parseJoints(c *cli.Context) (ur5.Joints, error) {
	args := c.Args().Slice()
	vs := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return ur5.Joints{}, errors.Wrapf(err, "joint %d", i+1)
		}
		vs[i] = v
	}
	if c.Bool(flagDegrees) {
		return ur5.JointsFromDegrees(vs...)
	}
	return ur5.JointsFromRadians(vs...)
}

func vectorFlag(c *cli.Context, name string) (r3.Vector, error) {
	vs := c.Float64Slice(name)
	if len(vs) != 3 {
		return r3.Vector{}, errors.Errorf("--%s needs three values, got %d", name, len(vs))
	}
	return r3.Vector{X: vs[0], Y: vs[1], Z: vs[2]}, nil
}
