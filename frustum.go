package tetracull

// Plane represents a plane in 3D space (Normal.Dot(p) + Distance = 0). Points on the side the Normal points towards have a positive
// signed distance.
type Plane struct {
	Normal   Vector3
	Distance float32
}

// SignedDistance returns the signed distance from the Plane to the point given; positive values lie on the side the Plane's Normal
// faces.
func (plane Plane) SignedDistance(point Vector3) float32 {
	return plane.Normal.Dot(point) + plane.Distance
}

// Normalized returns a copy of the Plane with a unit-length Normal, scaling Distance to match.
func (plane Plane) Normalized() Plane {
	length := plane.Normal.Magnitude()
	if length == 0 {
		return plane
	}
	plane.Normal = plane.Normal.Divide(length)
	plane.Distance /= length
	return plane
}

// The indices of each Plane in a Frustum.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// Frustum represents the six clipping planes of a view volume, along with its eight corner points. All of the planes face inwards,
// so a point is inside the Frustum if its signed distance to every Plane is zero or greater.
// A Frustum is immutable once created; make a new one whenever the view changes.
type Frustum struct {
	Planes  [6]Plane
	Corners [8]Vector3
}

// NewFrustum extracts a Frustum out of the combined view-projection Matrix4 given (laid out for row vectors, as all Tetracull
// matrices are, so that clip = p * viewProjection). For a view Matrix4 V and projection P, pass V.Mult(P).
//
// The planes are found with the Gribb / Hartmann method by adding or subtracting the first three columns of the Matrix4 to or
// from its fourth, and then normalized. The corners are the corners of the clip-space cube un-projected through the inverse
// of the Matrix4, and are mainly useful for debug drawing.
func NewFrustum(viewProjection Matrix4) Frustum {

	var f Frustum

	toPlane := func(v Vector4) Plane {
		return Plane{Normal: v.To3(), Distance: v.W}.Normalized()
	}

	x := viewProjection.Column(0)
	y := viewProjection.Column(1)
	z := viewProjection.Column(2)
	w := viewProjection.Column(3)

	f.Planes[FrustumLeft] = toPlane(addVector4(w, x))
	f.Planes[FrustumRight] = toPlane(subVector4(w, x))
	f.Planes[FrustumBottom] = toPlane(addVector4(w, y))
	f.Planes[FrustumTop] = toPlane(subVector4(w, y))
	f.Planes[FrustumNear] = toPlane(addVector4(w, z))
	f.Planes[FrustumFar] = toPlane(subVector4(w, z))

	inverted := viewProjection.Inverted()

	i := 0
	for _, cz := range []float32{-1, 1} {
		for _, cy := range []float32{-1, 1} {
			for _, cx := range []float32{-1, 1} {
				f.Corners[i] = inverted.MultVecW(Vector3{cx, cy, cz}).PerspectiveDivide()
				i++
			}
		}
	}

	return f

}

func addVector4(a, b Vector4) Vector4 {
	return Vector4{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W + b.W}
}

func subVector4(a, b Vector4) Vector4 {
	return Vector4{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W - b.W}
}

// IntersectsPoint returns true if the point lies inside (or on the boundary of) the Frustum.
func (frustum Frustum) IntersectsPoint(point Vector3) bool {
	for _, plane := range frustum.Planes {
		if plane.SignedDistance(point) < 0 {
			return false
		}
	}
	return true
}

// IntersectsAABB returns true if the AABB is possibly visible inside the Frustum. For each plane, if the corner of the box
// furthest along the plane's normal is still behind it, the box is entirely outside and rejected. This test is conservative:
// a box near the edges of the Frustum can pass without actually overlapping it, but a box that overlaps the Frustum is never
// rejected. Empty AABBs are always rejected.
func (frustum Frustum) IntersectsAABB(box AABB) bool {

	if box.IsEmpty() {
		return false
	}

	for _, plane := range frustum.Planes {
		if plane.SignedDistance(box.PositiveVertex(plane.Normal)) < 0 {
			return false
		}
	}

	return true

}

// ContainsAABB returns true if the AABB lies entirely inside the Frustum (its corner furthest against each plane's normal is in
// front of it).
func (frustum Frustum) ContainsAABB(box AABB) bool {

	if box.IsEmpty() {
		return false
	}

	for _, plane := range frustum.Planes {
		if plane.SignedDistance(box.NegativeVertex(plane.Normal)) < 0 {
			return false
		}
	}

	return true

}

// IntersectsSphere returns true if the Sphere is possibly visible inside the Frustum. Like IntersectsAABB, it is conservative.
func (frustum Frustum) IntersectsSphere(sphere Sphere) bool {

	if sphere.Radius < 0 {
		return false
	}

	for _, plane := range frustum.Planes {
		if plane.SignedDistance(sphere.Center) < -sphere.Radius {
			return false
		}
	}

	return true

}
