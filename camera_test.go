package backdrop

import (
	"math"
	"testing"
)

func TestCameraDefaults(t *testing.T) {
	cam := NewCameraRig()
	if cam.Position != DefaultCameraPosition || cam.Target != DefaultCameraPosition {
		t.Errorf("Position/Target = %v/%v, want %v", cam.Position, cam.Target, DefaultCameraPosition)
	}
	if cam.Lerp != 0.05 {
		t.Errorf("Lerp = %v, want 0.05", cam.Lerp)
	}
	if cam.FOV != 75 {
		t.Errorf("FOV = %v, want 75", cam.FOV)
	}
}

func TestCameraAim(t *testing.T) {
	cam := NewCameraRig()
	cam.Aim(Vec2{X: 0.5, Y: -0.25})
	assertNear(t, "target.X", cam.Target.X, 1)
	assertNear(t, "target.Y", cam.Target.Y, -0.5)
	assertNear(t, "target.Z", cam.Target.Z, 5-0.125*2)
}

func TestCameraAimCenterIsDefault(t *testing.T) {
	cam := NewCameraRig()
	cam.Aim(Vec2{X: 0.3, Y: 0.3})
	cam.Aim(Vec2{})
	if cam.Target != DefaultCameraPosition {
		t.Errorf("Target = %v, want %v", cam.Target, DefaultCameraPosition)
	}
}

func TestCameraUpdateLerp(t *testing.T) {
	cam := NewCameraRig()
	cam.Target = Vec3{X: 1, Y: 0, Z: 5}
	cam.Update()
	assertNear(t, "X", cam.Position.X, 0.05)
	cam.Update()
	assertNear(t, "X", cam.Position.X, 0.05+0.95*0.05)
}

func TestCameraUpdateSnap(t *testing.T) {
	cam := NewCameraRig()
	cam.Lerp = 1
	cam.Target = Vec3{X: 2, Y: -1, Z: 4}
	cam.Update()
	if cam.Position != cam.Target {
		t.Errorf("Position = %v, want %v", cam.Position, cam.Target)
	}
}

func TestCameraConvergence(t *testing.T) {
	cam := NewCameraRig()
	cam.Aim(Vec2{X: 0.5, Y: 0.5})
	start := cam.Position
	dist0 := cam.Target.Sub(start).Len()
	// 0.95^90 is about 0.0099.
	for i := 0; i < 90; i++ {
		cam.Update()
	}
	dist := cam.Target.Sub(cam.Position).Len()
	if dist > dist0*0.01 {
		t.Errorf("after 90 updates distance = %v, want <= 1%% of %v", dist, dist0)
	}
}

func TestCameraNeverOvershoots(t *testing.T) {
	cam := NewCameraRig()
	cam.Target = Vec3{X: 1, Y: 1, Z: 5}
	for i := 0; i < 200; i++ {
		cam.Update()
		if cam.Position.X > 1 || cam.Position.Y > 1 {
			t.Fatalf("update %d overshot: %v", i, cam.Position)
		}
	}
}

func TestCameraReset(t *testing.T) {
	cam := NewCameraRig()
	cam.Aim(Vec2{X: 0.4, Y: 0.1})
	cam.Update()
	cam.Reset()
	if cam.Position != DefaultCameraPosition || cam.Target != DefaultCameraPosition {
		t.Errorf("after Reset: %v/%v", cam.Position, cam.Target)
	}
}

func TestCameraProjectOrigin(t *testing.T) {
	cam := NewCameraRig()
	sx, sy, depth, ok := cam.Project(Vec3{}, 800, 600)
	if !ok {
		t.Fatal("origin should be visible")
	}
	assertNear(t, "sx", sx, 400)
	assertNear(t, "sy", sy, 300)
	assertNear(t, "depth", depth, 5)
}

func TestCameraProjectAxes(t *testing.T) {
	cam := NewCameraRig()
	focal := 300 / math.Tan(75*degToRad/2)

	sx, sy, _, ok := cam.Project(Vec3{X: 1}, 800, 600)
	if !ok {
		t.Fatal("point should be visible")
	}
	assertNear(t, "sx", sx, 400+focal/5)
	assertNear(t, "sy", sy, 300)

	// World +Y is screen up.
	_, sy, _, _ = cam.Project(Vec3{Y: 1}, 800, 600)
	if sy >= 300 {
		t.Errorf("sy = %v, want above center", sy)
	}
}

func TestCameraProjectBehind(t *testing.T) {
	cam := NewCameraRig()
	if _, _, _, ok := cam.Project(Vec3{Z: 10}, 800, 600); ok {
		t.Error("point behind the camera should not project")
	}
}

func TestCameraPixelScale(t *testing.T) {
	cam := NewCameraRig()
	focal := 300 / math.Tan(75*degToRad/2)
	assertNear(t, "scale", cam.PixelScale(5, 600), focal/5)
	if cam.PixelScale(0, 600) != 0 {
		t.Error("PixelScale at zero depth should be 0")
	}
}
