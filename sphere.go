package tetracull

import "github.com/chewxy/math32"

// Sphere represents a 3D sphere, mainly used as a cheap enclosing volume for an AABB.
type Sphere struct {
	Center Vector3
	Radius float32
}

// NewSphere returns a new Sphere with the center and radius given.
func NewSphere(center Vector3, radius float32) Sphere {
	return Sphere{Center: center, Radius: radius}
}

// NewSphereFromAABB returns a Sphere enclosing the AABB given: its center is the box's center, and its radius is the distance to a
// corner. An empty AABB gives a Sphere with a negative radius, which contains and intersects nothing.
func NewSphereFromAABB(box AABB) Sphere {
	if box.IsEmpty() {
		return Sphere{Radius: -1}
	}
	center := box.Center()
	return Sphere{
		Center: center,
		Radius: center.DistanceTo(box.Max),
	}
}

// Contains returns whether the given point is inside (or on the surface of) the Sphere.
func (sphere Sphere) Contains(point Vector3) bool {
	if sphere.Radius < 0 {
		return false
	}
	return sphere.Center.DistanceSquaredTo(point) <= sphere.Radius*sphere.Radius
}

// IntersectRayDistance tests the Ray against the Sphere, returning the distances along the Ray (in multiples of the Ray's Direction)
// at which it enters and exits the Sphere, and whether it struck at all. A Ray that grazes the Sphere (tNear == tFar) or that starts
// inside of it counts as a hit; in the latter case, tNear is negative. A Sphere entirely behind the Ray is a miss.
func (sphere Sphere) IntersectRayDistance(ray Ray) (tNear, tFar float32, hit bool) {

	if sphere.Radius < 0 {
		return 0, 0, false
	}

	m := ray.Origin.Sub(sphere.Center)
	a := ray.Direction.Dot(ray.Direction)
	b := m.Dot(ray.Direction)
	c := m.Dot(m) - sphere.Radius*sphere.Radius

	// No direction, so it's only a hit if the origin is inside
	if a == 0 {
		return 0, 0, c <= 0
	}

	discr := b*b - a*c

	if discr < 0 {
		return 0, 0, false
	}

	sq := math32.Sqrt(discr)
	tNear = (-b - sq) / a
	tFar = (-b + sq) / a

	if tFar < 0 {
		return 0, 0, false
	}

	return tNear, tFar, true

}

// IntersectRay returns true if the Ray strikes the Sphere.
func (sphere Sphere) IntersectRay(ray Ray) bool {
	_, _, hit := sphere.IntersectRayDistance(ray)
	return hit
}

// IntersectSegment returns true if the line segment running from start to end touches the Sphere.
func (sphere Sphere) IntersectSegment(start, end Vector3) bool {
	tNear, tFar, hit := sphere.IntersectRayDistance(NewRay(start, end))
	if !hit {
		return false
	}
	return tNear <= 1 && tFar >= 0
}

// IntersectSphere returns true if the two Spheres overlap or touch.
func (sphere Sphere) IntersectSphere(other Sphere) bool {
	if sphere.Radius < 0 || other.Radius < 0 {
		return false
	}
	r := sphere.Radius + other.Radius
	return sphere.Center.DistanceSquaredTo(other.Center) <= r*r
}

// IntersectAABB returns true if the Sphere overlaps or touches the AABB.
func (sphere Sphere) IntersectAABB(box AABB) bool {
	if sphere.Radius < 0 || box.IsEmpty() {
		return false
	}
	return sphere.Contains(box.ClosestPoint(sphere.Center))
}
