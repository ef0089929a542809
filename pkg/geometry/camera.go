package geometry

import (
	"math"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// CameraConfig holds the user-facing camera settings
type CameraConfig struct {
	Position        core.Vec3
	LookAt          core.Vec3
	Up              core.Vec3
	VFov            float64 // Vertical field of view in degrees
	AspectRatio     float64 // Width / height
	FocusDistance   float64 // Distance to the plane of perfect focus, clamped to at least 1
	DefocusStrength float64 // Lens radius proxy, in pixels of jitter
	DivergeStrength float64 // Focal point softening, in pixels of jitter
}

// Camera is the thin-lens camera consumed by the ray generator
type Camera struct {
	CamToWorld      core.Mat4 // Columns: right, up, forward, origin
	ViewParams      core.Vec3 // Focal plane width, height and distance in camera space
	DefocusStrength float64
	DivergeStrength float64
}

// NewCamera derives the camera-to-world matrix and view parameters from config
func NewCamera(config CameraConfig) Camera {
	focus := math.Max(config.FocusDistance, 1)
	planeHeight := focus * math.Tan(config.VFov*math.Pi/360) * 2
	planeWidth := planeHeight * config.AspectRatio

	up := config.Up
	if up.LengthSquared() == 0 {
		up = core.Up
	}
	forward := config.LookAt.Subtract(config.Position).SafeNormalize(core.NewVec3(0, 0, -1))
	right := forward.Cross(up).SafeNormalize(core.NewVec3(1, 0, 0))
	trueUp := right.Cross(forward)

	return Camera{
		CamToWorld:      core.FromBasis(right, trueUp, forward, config.Position),
		ViewParams:      core.NewVec3(planeWidth, planeHeight, focus),
		DefocusStrength: config.DefocusStrength,
		DivergeStrength: config.DivergeStrength,
	}
}

// Origin returns the camera position
func (c *Camera) Origin() core.Vec3 {
	return c.CamToWorld.Column(3)
}

// GetRay builds the camera ray through pixel (already including antialiasing jitter).
// Pixel y grows upward. defocus and diverge are independent unit disk samples.
func (c *Camera) GetRay(pixel core.Vec2, width, height int, defocus, diverge core.Vec2) core.Ray {
	uv := core.NewVec2(
		pixel.X/float64(max(width-1, 1)),
		pixel.Y/float64(max(height-1, 1)),
	)

	localFocus := core.NewVec3(
		(uv.X-0.5)*c.ViewParams.X,
		(uv.Y-0.5)*c.ViewParams.Y,
		c.ViewParams.Z,
	)
	focusPoint := c.CamToWorld.MulPoint(localFocus)

	right := c.CamToWorld.Column(0)
	up := c.CamToWorld.Column(1)
	pixelScale := 1 / float64(max(width, 1))

	defocusScale := c.DefocusStrength * pixelScale
	origin := c.Origin().
		Add(right.Multiply(defocus.X * defocusScale)).
		Add(up.Multiply(defocus.Y * defocusScale))

	divergeScale := c.DivergeStrength * pixelScale
	target := focusPoint.
		Add(right.Multiply(diverge.X * divergeScale)).
		Add(up.Multiply(diverge.Y * divergeScale))

	return core.NewRay(origin, target.Subtract(origin))
}
