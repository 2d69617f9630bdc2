package visualization

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestSetViewMatricesLookAt(t *testing.T) {
	vc := NewViewControl(640, 480)
	vc.SetCamera(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0})
	vc.SetViewMatrices()

	// The eye must map to the camera origin.
	eye := vc.ViewMatrix().Mul4x1(mgl64.Vec4{0, 0, 5, 1})
	for i := 0; i < 3; i++ {
		if math.Abs(eye[i]) > 1e-12 {
			t.Fatalf("view matrix maps eye to %v, want origin", eye)
		}
	}

	// A point between eye and lookat sits on the negative z axis.
	p := vc.ViewMatrix().Mul4x1(mgl64.Vec4{0, 0, 1, 1})
	if p.Z() >= 0 {
		t.Errorf("point in front of camera has z = %v, want negative", p.Z())
	}
}

func TestProjectionMatrixDepthRange(t *testing.T) {
	vc := NewViewControl(640, 480)
	vc.SetNearFar(1, 100)
	vc.SetViewMatrices()
	proj := vc.ProjectionMatrix()

	// Points on the near/far planes project to clip z/w = -1 and +1.
	nearClip := proj.Mul4x1(mgl64.Vec4{0, 0, -1, 1})
	if got := nearClip.Z() / nearClip.W(); math.Abs(got+1) > 1e-9 {
		t.Errorf("near plane NDC z = %v, want -1", got)
	}
	farClip := proj.Mul4x1(mgl64.Vec4{0, 0, -100, 1})
	if got := farClip.Z() / farClip.W(); math.Abs(got-1) > 1e-9 {
		t.Errorf("far plane NDC z = %v, want 1", got)
	}
}

func TestConvertToPinholeCameraParameters(t *testing.T) {
	vc := NewViewControl(640, 480)
	vc.SetFieldOfView(60)
	intrinsic, extrinsic, err := vc.ConvertToPinholeCameraParameters()
	if err != nil {
		t.Fatalf("ConvertToPinholeCameraParameters: %v", err)
	}
	wantFocal := 0.5 * 480 / math.Tan(mgl64.DegToRad(30))
	if math.Abs(intrinsic.FocalX-wantFocal) > 1e-9 {
		t.Errorf("focal = %v, want %v", intrinsic.FocalX, wantFocal)
	}
	if intrinsic.FocalX != intrinsic.FocalY {
		t.Errorf("fx %v != fy %v, want square pixels", intrinsic.FocalX, intrinsic.FocalY)
	}
	if intrinsic.PrincipalX != 319.5 || intrinsic.PrincipalY != 239.5 {
		t.Errorf("principal point = (%v, %v), want (319.5, 239.5)",
			intrinsic.PrincipalX, intrinsic.PrincipalY)
	}
	// Extrinsic must match the current view matrix.
	vc.SetViewMatrices()
	want := vc.ViewMatrix()
	for i := range want {
		if math.Abs(extrinsic[i]-want[i]) > 1e-12 {
			t.Fatalf("extrinsic differs from view matrix at %d: %v vs %v",
				i, extrinsic[i], want[i])
		}
	}
}

func TestConvertRejectsNarrowFieldOfView(t *testing.T) {
	vc := NewViewControl(640, 480)
	vc.SetFieldOfView(MinPerspectiveFieldOfView - 1)
	_, _, err := vc.ConvertToPinholeCameraParameters()
	if !errors.Is(err, ErrNoPinholeEquivalent) {
		t.Fatalf("err = %v, want ErrNoPinholeEquivalent", err)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	vc := NewViewControl(100, 100)
	vc.SetFieldOfView(20)
	vc.SetNearFar(5, 6)
	vc.Reset()
	if vc.FieldOfView() != DefaultFieldOfView {
		t.Errorf("field of view = %v after Reset, want %v", vc.FieldOfView(), DefaultFieldOfView)
	}
	if vc.ZNear() >= vc.ZFar() {
		t.Errorf("clip planes %v..%v invalid after Reset", vc.ZNear(), vc.ZFar())
	}
}
