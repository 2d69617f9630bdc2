package visualization

import (
	"fmt"
	"log/slog"
	"math"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/flyaudio/Open3D/camera"
	"github.com/flyaudio/Open3D/geometry"
	"github.com/flyaudio/Open3D/imageio"
)

const (
	// DefaultDepthScale converts meters to millimeters in depth
	// captures. CaptureDepthImage substitutes it for a non-positive
	// scale argument.
	DefaultDepthScale = 1000.0

	// maxDepthValue caps quantized depth at the largest positive value
	// of the 16-bit signed range so downstream consumers that read the
	// samples as signed never see a negative distance.
	maxDepthValue = 32767

	timestampFormat = "2006-01-02-15-04-05"
)

// MetricDepth inverts the perspective depth-buffer nonlinearity: given
// a normalized sample d in [0, 1) and the near/far plane distances, it
// returns the linear eye-space distance. d carries float32 precision,
// so samples near the far plane yield increasingly quantized
// distances; that is inherent, not corrected here.
func MetricDepth(d, zNear, zFar float64) float64 {
	return 2.0 * zNear * zFar / (zFar + zNear - (2.0*d-1.0)*(zFar-zNear))
}

// captureFilenames resolves the output paths for one capture. An
// explicit filename is used as given and suppresses the camera
// sidecar; an empty one derives both names from a single timestamp so
// the image and its camera file pair up.
func (v *Visualizer) captureFilenames(filename, kind string) (imgPath, camPath string) {
	if filename != "" {
		return filename, ""
	}
	ts := v.now().Format(timestampFormat)
	imgPath = filepath.Join(v.captureDir, kind+"Capture_"+ts+".png")
	camPath = filepath.Join(v.captureDir, kind+"Camera_"+ts+".json")
	return imgPath, camPath
}

// CaptureScreenImage writes the color buffer to a PNG reflecting the
// visual state at the moment the synchronization barrier completes.
// With an empty filename the output name is derived from the current
// time and a camera sidecar is written next to it; an explicit
// filename is used as-is with no sidecar. When doRender is true a
// fresh render pass runs first and the redraw flag is cleared.
func (v *Visualizer) CaptureScreenImage(filename string, doRender bool) error {
	imgPath, camPath := v.captureFilenames(filename, "Screen")
	width := v.view.WindowWidth()
	height := v.view.WindowHeight()
	buf := geometry.NewImage(width, height, 3, 1)

	if doRender {
		if err := v.Render(); err != nil {
			return err
		}
		v.redrawNeeded = false
	}
	v.ctx.Finish()
	if err := v.ctx.ReadColorBlock(0, 0, width, height, buf.Data); err != nil {
		return fmt.Errorf("visualization: read color buffer: %w", err)
	}

	// Read-back rows come bottom-up; image rows are top-down.
	img := buf.FlipVertical()

	Logger().Debug("screen capture", slog.String("path", imgPath))
	if err := imageio.WriteImage(imgPath, img); err != nil {
		return err
	}
	if camPath == "" {
		return nil
	}
	return v.writeCameraSidecar(camPath)
}

// CaptureDepthImage writes the depth buffer as a 16-bit grayscale PNG
// of scaled metric distances. depthScale multiplies the metric
// distance in scene units before rounding; non-positive values select
// DefaultDepthScale. Background pixels (normalized depth exactly 1.0)
// stay zero, meaning "no measurement". Filename and sidecar handling
// match CaptureScreenImage, with Depth prefixes.
func (v *Visualizer) CaptureDepthImage(filename string, doRender bool, depthScale float64) error {
	if depthScale <= 0 {
		depthScale = DefaultDepthScale
	}
	imgPath, camPath := v.captureFilenames(filename, "Depth")
	width := v.view.WindowWidth()
	height := v.view.WindowHeight()
	depth := make([]float32, width*height)

	if doRender {
		if err := v.Render(); err != nil {
			return err
		}
		v.redrawNeeded = false
	}
	v.ctx.Finish()
	if err := v.depthReader.ReadDepth(v.ctx, width, height, depth); err != nil {
		return fmt.Errorf("visualization: read depth buffer: %w", err)
	}

	// Row flip and depth conversion fused in one pass. The output
	// buffer starts zeroed, so skipped sentinel pixels read as "no
	// measurement" without an explicit clear.
	img := geometry.NewImage(width, height, 1, 2)
	zNear := v.view.ZNear()
	zFar := v.view.ZFar()
	for i := 0; i < height; i++ {
		row := depth[(height-1-i)*width : (height-i)*width]
		for j, d := range row {
			if d == 1.0 {
				continue
			}
			z := MetricDepth(float64(d), zNear, zFar)
			q := math.Round(depthScale * z)
			if q < 0 {
				q = 0
			} else if q > maxDepthValue {
				q = maxDepthValue
			}
			img.SetUint16(j, i, uint16(q))
		}
	}

	Logger().Debug("depth capture",
		slog.String("path", imgPath), slog.Float64("scale", depthScale))
	if err := imageio.WriteImage(imgPath, img); err != nil {
		return err
	}
	if camPath == "" {
		return nil
	}
	return v.writeCameraSidecar(camPath)
}

// writeCameraSidecar persists the viewpoint at the instant of capture
// as a single-entry trajectory.
func (v *Visualizer) writeCameraSidecar(path string) error {
	intrinsic, extrinsic, err := v.view.ConvertToPinholeCameraParameters()
	if err != nil {
		return err
	}
	traj := camera.PinholeCameraTrajectory{
		Intrinsic:  intrinsic,
		Extrinsics: []mgl64.Mat4{extrinsic},
	}
	Logger().Debug("camera capture", slog.String("path", path))
	return traj.WriteJSON(path)
}
