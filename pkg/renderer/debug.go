package renderer

import (
	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/geometry"
)

var (
	debugUnknown    = core.NewVec3(1, 0, 1)
	debugOutOfRange = core.NewVec3(1, 0, 0)
	debugBeyond     = core.NewVec3(0, 1, 0)
)

// debugColor renders one unjittered camera ray through the pixel center and
// visualizes a property of its first hit
func (k *Kernel) debugColor(x, y int) core.Vec3 {
	ray := k.scene.Camera.GetRay(k.cameraPixel(x, y), k.params.Width, k.params.Height, core.Vec2{}, core.Vec2{})

	var stats geometry.TraversalStats
	hit, ok := k.scene.Query(&ray, &stats)

	scale := k.params.DebugScale
	if scale <= 0 {
		scale = 1
	}

	switch k.params.DebugMode {
	case DebugBoxTests:
		return grey(float64(stats.BoxTests) / scale)
	case DebugTriangleTests:
		return grey(float64(stats.TriangleTests) / scale)
	case DebugBoxAndTriangleTests:
		box := float64(stats.BoxTests) / scale
		tri := float64(stats.TriangleTests) / scale
		if box > 1 || tri > 1 {
			return debugOutOfRange
		}
		return core.NewVec3(box, tri, 0)
	case DebugDepth:
		if !ok {
			return core.Vec3{}
		}
		return grey(hit.T / scale)
	case DebugFocus:
		if !ok {
			return core.Vec3{}
		}
		if hit.T > k.scene.Camera.ViewParams.Z {
			return debugBeyond
		}
		return grey(hit.T / scale)
	case DebugNormals:
		if !ok {
			return core.Vec3{}
		}
		return hit.Normal.Multiply(0.5).Add(core.NewVec3(0.5, 0.5, 0.5))
	case DebugTexCoords:
		if !ok {
			return core.Vec3{}
		}
		return core.NewVec3(hit.UV.X, hit.UV.Y, 0)
	case DebugNormalMap:
		if !ok {
			return core.Vec3{}
		}
		texel, found := k.scene.Textures.NormalTexel(hit.Material, hit.UV, hit.Point)
		if !found {
			return core.Vec3{}
		}
		return texel
	default:
		return debugUnknown
	}
}

// grey shows v as a grey level, or red once it leaves [0,1]
func grey(v float64) core.Vec3 {
	if v > 1 {
		return debugOutOfRange
	}
	return core.NewVec3(v, v, v)
}
