package scene

import (
	"math"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/geometry"
)

// Query returns the closest hit along ray across spheres and meshes. Glass is
// two-sided; every other material culls backfaces. stats may be nil.
func (s *Scene) Query(ray *core.Ray, stats *geometry.TraversalStats) (geometry.Hit, bool) {
	closest := geometry.NoHit()
	found := false

	for i := range s.Spheres {
		sphere := &s.Spheres[i]
		hit, ok := sphere.Intersect(ray, !sphere.Material.IsGlass())
		if ok && hit.T < closest.T {
			closest = hit
			found = true
		}
	}

	for i := range s.Meshes {
		mesh := &s.Meshes[i]

		// Meshes are traversed in local space; NewRay renormalizes and refreshes the reciprocal
		localRay := core.NewRay(
			mesh.WorldToLocal.MulPoint(ray.Origin),
			mesh.WorldToLocal.MulDirection(ray.Direction),
		)
		opts := geometry.TraverseOptions{
			CullBackface: !mesh.Material.IsGlass(),
			Order:        s.TraversalOrder,
		}

		hit, _, ok := geometry.Traverse(&localRay, math.Inf(1), s.MeshNodes(mesh), s.MeshTriangles(mesh), opts, stats)
		if !ok {
			continue
		}

		// Local distances are not comparable across transforms, so measure in world space
		point := mesh.LocalToWorld.MulPoint(hit.Point)
		dist := point.Subtract(ray.Origin).Length()
		if dist >= closest.T {
			continue
		}

		hit.T = dist
		hit.Point = point
		hit.Normal = mesh.WorldToLocal.MulNormalTransposed(hit.Normal).SafeNormalize(hit.Normal)
		hit.Material = mesh.Material
		closest = hit
		found = true
	}

	return closest, found
}
