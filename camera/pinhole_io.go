package camera

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrUnsupportedVersion is returned when a trajectory file declares a
// format version this package does not understand.
var ErrUnsupportedVersion = errors.New("camera: unsupported trajectory version")

const (
	trajectoryClassName    = "PinholeCameraTrajectory"
	trajectoryVersionMajor = 1
	trajectoryVersionMinor = 0
)

// Matrices are serialized column-major, matching mgl64's memory layout.
type intrinsicJSON struct {
	Width           int        `json:"width"`
	Height          int        `json:"height"`
	IntrinsicMatrix [9]float64 `json:"intrinsic_matrix"`
}

type trajectoryJSON struct {
	ClassName    string        `json:"class_name"`
	Intrinsic    intrinsicJSON `json:"intrinsic"`
	Extrinsic    [][16]float64 `json:"extrinsic"`
	VersionMajor int           `json:"version_major"`
	VersionMinor int           `json:"version_minor"`
}

// MarshalJSON encodes the trajectory as a human-readable key-value
// document with column-major matrices.
func (t PinholeCameraTrajectory) MarshalJSON() ([]byte, error) {
	doc := trajectoryJSON{
		ClassName: trajectoryClassName,
		Intrinsic: intrinsicJSON{
			Width:  t.Intrinsic.Width,
			Height: t.Intrinsic.Height,
		},
		Extrinsic:    make([][16]float64, len(t.Extrinsics)),
		VersionMajor: trajectoryVersionMajor,
		VersionMinor: trajectoryVersionMinor,
	}
	m := t.Intrinsic.IntrinsicMatrix()
	copy(doc.Intrinsic.IntrinsicMatrix[:], m[:])
	for i, ext := range t.Extrinsics {
		copy(doc.Extrinsic[i][:], ext[:])
	}
	return json.Marshal(doc)
}

// UnmarshalJSON decodes a trajectory document written by MarshalJSON.
func (t *PinholeCameraTrajectory) UnmarshalJSON(data []byte) error {
	var doc trajectoryJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc.ClassName != trajectoryClassName {
		return fmt.Errorf("camera: unexpected class_name %q", doc.ClassName)
	}
	if doc.VersionMajor != trajectoryVersionMajor {
		return fmt.Errorf("%w: %d.%d", ErrUnsupportedVersion,
			doc.VersionMajor, doc.VersionMinor)
	}
	im := doc.Intrinsic.IntrinsicMatrix
	t.Intrinsic = PinholeCameraIntrinsic{
		Width:      doc.Intrinsic.Width,
		Height:     doc.Intrinsic.Height,
		FocalX:     im[0],
		FocalY:     im[4],
		PrincipalX: im[6],
		PrincipalY: im[7],
	}
	t.Extrinsics = make([]mgl64.Mat4, len(doc.Extrinsic))
	for i, ext := range doc.Extrinsic {
		copy(t.Extrinsics[i][:], ext[:])
	}
	return nil
}

// WriteJSON writes the trajectory to path as an indented JSON document.
func (t PinholeCameraTrajectory) WriteJSON(path string) error {
	data, err := json.MarshalIndent(t, "", "\t")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("camera: writing trajectory: %w", err)
	}
	return nil
}

// ReadJSON reads a trajectory document written by WriteJSON.
func ReadJSON(path string) (PinholeCameraTrajectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PinholeCameraTrajectory{}, fmt.Errorf("camera: reading trajectory: %w", err)
	}
	var t PinholeCameraTrajectory
	if err := json.Unmarshal(data, &t); err != nil {
		return PinholeCameraTrajectory{}, err
	}
	return t, nil
}
