package core

// Ray is a single in-flight path segment. Origin, direction and throughput are
// updated in place by the integrator between bounces; a Ray is owned by exactly one
// pixel sample.
type Ray struct {
	Origin       Vec3
	Direction    Vec3 // Unit length once constructed through NewRay or SetDirection
	InvDirection Vec3 // Component-wise reciprocal of Direction, used by box tests
	Throughput   Vec3 // Multiplicative path attenuation, starts at 1
	Bounce       int  // Number of bounces consumed so far
}

// NewRay creates a ray with a normalized direction and unit throughput
func NewRay(origin, direction Vec3) Ray {
	r := Ray{Origin: origin, Throughput: NewVec3(1, 1, 1)}
	r.SetDirection(direction)
	return r
}

// SetDirection normalizes and stores a new direction and refreshes the reciprocal cache
func (r *Ray) SetDirection(direction Vec3) {
	r.Direction = direction.Normalize()
	r.InvDirection = r.Direction.Reciprocal()
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
