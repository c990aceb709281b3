package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

func TestNewDefaults(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 3})

	if !c.Front.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, eps) {
		t.Errorf("front = %v, want -Z", c.Front)
	}
	if !c.Right.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, eps) {
		t.Errorf("right = %v, want +X", c.Right)
	}
	if !c.Up.ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, eps) {
		t.Errorf("up = %v, want +Y", c.Up)
	}
	if c.Zoom != DefaultZoom || c.Speed != DefaultSpeed || c.Sensitivity != DefaultSensitivity {
		t.Errorf("unexpected defaults %+v", c)
	}
}

func TestProcessKeyboard(t *testing.T) {
	tests := []struct {
		dir  Movement
		want mgl32.Vec3
	}{
		{Forward, mgl32.Vec3{0, 0, 0.5}},
		{Backward, mgl32.Vec3{0, 0, 5.5}},
		{Left, mgl32.Vec3{-2.5, 0, 3}},
		{Right, mgl32.Vec3{2.5, 0, 3}},
	}
	for _, tt := range tests {
		c := New(mgl32.Vec3{0, 0, 3})
		c.ProcessKeyboard(tt.dir, 1)
		if !c.Position.ApproxEqualThreshold(tt.want, eps) {
			t.Errorf("dir %d: position = %v, want %v", tt.dir, c.Position, tt.want)
		}
	}
}

func TestProcessMouseMovementClampsPitch(t *testing.T) {
	c := New(mgl32.Vec3{})
	c.ProcessMouseMovement(0, 10000, true)
	if c.Pitch != MaxPitch {
		t.Errorf("pitch = %v, want %v", c.Pitch, MaxPitch)
	}
	c.ProcessMouseMovement(0, -20000, true)
	if c.Pitch != -MaxPitch {
		t.Errorf("pitch = %v, want %v", c.Pitch, -MaxPitch)
	}

	c.ProcessMouseMovement(0, 2000, false)
	if c.Pitch <= MaxPitch {
		t.Errorf("unconstrained pitch = %v, expected beyond %v", c.Pitch, MaxPitch)
	}
}

func TestProcessMouseMovementTurns(t *testing.T) {
	c := New(mgl32.Vec3{})
	// 900 px * 0.1 = 90 degrees of yaw: from -Z to +X
	c.ProcessMouseMovement(900, 0, true)
	if !c.Front.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, eps) {
		t.Errorf("front = %v, want +X", c.Front)
	}
}

func TestProcessMouseScroll(t *testing.T) {
	c := New(mgl32.Vec3{})
	c.ProcessMouseScroll(10)
	if c.Zoom != 35 {
		t.Errorf("zoom = %v, want 35", c.Zoom)
	}
	c.ProcessMouseScroll(100)
	if c.Zoom != MinZoom {
		t.Errorf("zoom = %v, want %v", c.Zoom, MinZoom)
	}
	c.ProcessMouseScroll(-100)
	if c.Zoom != MaxZoom {
		t.Errorf("zoom = %v, want %v", c.Zoom, MaxZoom)
	}
}

func TestViewMatrix(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 3})
	p := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !p.Vec3().ApproxEqualThreshold(mgl32.Vec3{0, 0, -3}, eps) {
		t.Errorf("origin in view space = %v, want (0,0,-3)", p)
	}
}

func TestProjection(t *testing.T) {
	c := New(mgl32.Vec3{})
	want := mgl32.Perspective(mgl32.DegToRad(45), 4.0/3.0, 0.1, 100)
	if !c.Projection(4.0/3.0).ApproxEqualThreshold(want, eps) {
		t.Error("projection does not match a 45 degree perspective")
	}
}
