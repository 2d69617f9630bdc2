// Package camera holds pinhole camera parameters and their JSON sidecar
// serialization. A trajectory pairs one intrinsic matrix with a list of
// extrinsic poses; the capture pipeline writes single-entry trajectories
// describing the viewpoint of one captured frame.
package camera

import (
	"github.com/go-gl/mathgl/mgl64"
)

// PinholeCameraIntrinsic describes the internal parameters of a pinhole
// camera: image size, focal lengths, and principal point.
type PinholeCameraIntrinsic struct {
	Width      int
	Height     int
	FocalX     float64
	FocalY     float64
	PrincipalX float64
	PrincipalY float64
}

// NewPinholeCameraIntrinsic constructs an intrinsic with the given
// image size, focal lengths, and principal point.
func NewPinholeCameraIntrinsic(width, height int, fx, fy, cx, cy float64) PinholeCameraIntrinsic {
	return PinholeCameraIntrinsic{
		Width:      width,
		Height:     height,
		FocalX:     fx,
		FocalY:     fy,
		PrincipalX: cx,
		PrincipalY: cy,
	}
}

// IntrinsicMatrix returns the 3x3 projection matrix
//
//	[ fx  0  cx ]
//	[  0 fy  cy ]
//	[  0  0   1 ]
func (in PinholeCameraIntrinsic) IntrinsicMatrix() mgl64.Mat3 {
	m := mgl64.Ident3()
	m.Set(0, 0, in.FocalX)
	m.Set(1, 1, in.FocalY)
	m.Set(0, 2, in.PrincipalX)
	m.Set(1, 2, in.PrincipalY)
	return m
}

// IsValid reports whether the intrinsic describes a usable camera.
func (in PinholeCameraIntrinsic) IsValid() bool {
	return in.Width > 0 && in.Height > 0 && in.FocalX > 0 && in.FocalY > 0
}

// PinholeCameraTrajectory pairs one intrinsic with a sequence of
// extrinsic (world-to-camera) poses. Capture sidecars always carry
// exactly one extrinsic entry.
type PinholeCameraTrajectory struct {
	Intrinsic  PinholeCameraIntrinsic
	Extrinsics []mgl64.Mat4
}
