package visualization

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/flyaudio/Open3D/camera"
)

// View defaults applied by NewViewControl and Reset.
const (
	// DefaultFieldOfView is the vertical field of view in degrees.
	DefaultFieldOfView = 60.0

	// MinPerspectiveFieldOfView is the narrowest field of view that
	// still describes a perspective projection; below it the view is
	// treated as orthographic and has no pinhole equivalent.
	MinPerspectiveFieldOfView = 5.0

	defaultZNear = 0.1
	defaultZFar  = 1000.0
)

// ErrNoPinholeEquivalent is returned by ConvertToPinholeCameraParameters
// when the current projection cannot be described by a pinhole camera.
var ErrNoPinholeEquivalent = errors.New("visualization: view has no pinhole camera equivalent")

// ViewControl owns the camera state of one viewer: window size, camera
// pose, field of view, and the near/far planes, plus the view and
// projection matrices derived from them. The capture pipeline borrows
// it read-only; only the render loop recomputes matrices.
type ViewControl struct {
	windowWidth  int
	windowHeight int
	fieldOfView  float64 // vertical, degrees
	zNear        float64
	zFar         float64

	eye    mgl64.Vec3
	lookat mgl64.Vec3
	up     mgl64.Vec3

	viewMatrix mgl64.Mat4
	projMatrix mgl64.Mat4
}

// NewViewControl creates a view control for a surface of the given
// pixel size with the default viewpoint.
func NewViewControl(width, height int) *ViewControl {
	vc := &ViewControl{windowWidth: width, windowHeight: height}
	vc.Reset()
	return vc
}

// Reset restores the default viewpoint and projection parameters.
func (vc *ViewControl) Reset() {
	vc.fieldOfView = DefaultFieldOfView
	vc.zNear = defaultZNear
	vc.zFar = defaultZFar
	vc.eye = mgl64.Vec3{0, 0, 2}
	vc.lookat = mgl64.Vec3{0, 0, 0}
	vc.up = mgl64.Vec3{0, 1, 0}
	vc.SetViewMatrices()
}

// SetWindowSize records a surface resize.
func (vc *ViewControl) SetWindowSize(width, height int) {
	vc.windowWidth = width
	vc.windowHeight = height
}

// SetCamera places the camera at eye looking at lookat with the given
// up direction.
func (vc *ViewControl) SetCamera(eye, lookat, up mgl64.Vec3) {
	vc.eye = eye
	vc.lookat = lookat
	vc.up = up
}

// SetNearFar overrides the clip plane distances. Values are kept as
// given; callers are responsible for 0 < near < far.
func (vc *ViewControl) SetNearFar(zNear, zFar float64) {
	vc.zNear = zNear
	vc.zFar = zFar
}

// WindowWidth returns the surface width in pixels.
func (vc *ViewControl) WindowWidth() int { return vc.windowWidth }

// WindowHeight returns the surface height in pixels.
func (vc *ViewControl) WindowHeight() int { return vc.windowHeight }

// ZNear returns the near clip plane distance.
func (vc *ViewControl) ZNear() float64 { return vc.zNear }

// ZFar returns the far clip plane distance.
func (vc *ViewControl) ZFar() float64 { return vc.zFar }

// FieldOfView returns the vertical field of view in degrees.
func (vc *ViewControl) FieldOfView() float64 { return vc.fieldOfView }

// SetFieldOfView sets the vertical field of view in degrees.
func (vc *ViewControl) SetFieldOfView(deg float64) { vc.fieldOfView = deg }

// SetViewMatrices recomputes the view and projection matrices from the
// current camera state. The render loop calls this once per frame
// before drawing.
func (vc *ViewControl) SetViewMatrices() {
	vc.viewMatrix = mgl64.LookAtV(vc.eye, vc.lookat, vc.up)
	aspect := 1.0
	if vc.windowHeight > 0 {
		aspect = float64(vc.windowWidth) / float64(vc.windowHeight)
	}
	vc.projMatrix = mgl64.Perspective(
		mgl64.DegToRad(vc.fieldOfView), aspect, vc.zNear, vc.zFar)
}

// ViewMatrix returns the world-to-camera matrix computed by the last
// SetViewMatrices call.
func (vc *ViewControl) ViewMatrix() mgl64.Mat4 { return vc.viewMatrix }

// ProjectionMatrix returns the projection matrix computed by the last
// SetViewMatrices call.
func (vc *ViewControl) ProjectionMatrix() mgl64.Mat4 { return vc.projMatrix }

// ConvertToPinholeCameraParameters derives the intrinsic matrix and
// the extrinsic (world-to-camera) pose describing the current view.
// It fails when the field of view is too narrow to be perspective.
func (vc *ViewControl) ConvertToPinholeCameraParameters() (camera.PinholeCameraIntrinsic, mgl64.Mat4, error) {
	if vc.fieldOfView < MinPerspectiveFieldOfView {
		return camera.PinholeCameraIntrinsic{}, mgl64.Mat4{}, ErrNoPinholeEquivalent
	}
	focal := 0.5 * float64(vc.windowHeight) /
		math.Tan(0.5*mgl64.DegToRad(vc.fieldOfView))
	intrinsic := camera.NewPinholeCameraIntrinsic(
		vc.windowWidth, vc.windowHeight,
		focal, focal,
		0.5*float64(vc.windowWidth)-0.5,
		0.5*float64(vc.windowHeight)-0.5,
	)
	return intrinsic, mgl64.LookAtV(vc.eye, vc.lookat, vc.up), nil
}
