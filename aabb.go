package tetracull

import (
	"github.com/chewxy/math32"
)

// AABB represents an axis-aligned bounding box, a 3D box of varying width, height, and depth that cannot rotate, described by its
// minimum and maximum corners. Like Vector3s, AABBs are value types; functions that change an AABB return a modified copy.
//
// An empty AABB (one that contains nothing) is represented by the sentinel returned by NewAABB(), with Min at +MaxFloat32 and Max
// at -MaxFloat32. Note that the zero value AABB{} is NOT empty; it is a point-sized box at the origin.
type AABB struct {
	Min Vector3
	Max Vector3
}

// NewAABB returns a new, empty AABB. Extending an empty AABB by a point or box yields exactly that point or box.
func NewAABB() AABB {
	return AABB{
		Min: Vector3{math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32},
		Max: Vector3{-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32},
	}
}

// NewAABBFromPoints returns a new AABB that tightly contains all of the points given. With no points given, the AABB is empty.
func NewAABBFromPoints(points ...Vector3) AABB {
	box := NewAABB()
	for _, p := range points {
		box = box.ExtendPoint(p)
	}
	return box
}

// IsEmpty returns true if the AABB contains nothing (its Min is greater than its Max on any axis).
func (box AABB) IsEmpty() bool {
	return box.Min.X > box.Max.X || box.Min.Y > box.Max.Y || box.Min.Z > box.Max.Z
}

// ExtendPoint returns a copy of the AABB grown minimally to contain the point given.
func (box AABB) ExtendPoint(point Vector3) AABB {
	box.Min = box.Min.Min(point)
	box.Max = box.Max.Max(point)
	return box
}

// Extend returns a copy of the AABB grown minimally to contain the other AABB as well. Extending by an empty AABB returns the calling
// AABB unchanged, and extending an empty AABB returns the other AABB unchanged.
func (box AABB) Extend(other AABB) AABB {
	if other.IsEmpty() {
		return box
	}
	if box.IsEmpty() {
		return other
	}
	box.Min = box.Min.Min(other.Min)
	box.Max = box.Max.Max(other.Max)
	return box
}

// Contains returns true if the point given lies inside or on the surface of the AABB.
func (box AABB) Contains(point Vector3) bool {
	return point.X >= box.Min.X && point.X <= box.Max.X &&
		point.Y >= box.Min.Y && point.Y <= box.Max.Y &&
		point.Z >= box.Min.Z && point.Z <= box.Max.Z
}

// ContainsAABB returns true if the other AABB lies entirely inside the calling AABB. An empty AABB is contained by everything.
func (box AABB) ContainsAABB(other AABB) bool {
	if other.IsEmpty() {
		return true
	}
	return box.Contains(other.Min) && box.Contains(other.Max)
}

// Intersects returns true if the two AABBs overlap (touching counts). Empty AABBs intersect nothing.
func (box AABB) Intersects(other AABB) bool {
	if box.IsEmpty() || other.IsEmpty() {
		return false
	}
	return box.Min.X <= other.Max.X && box.Max.X >= other.Min.X &&
		box.Min.Y <= other.Max.Y && box.Max.Y >= other.Min.Y &&
		box.Min.Z <= other.Max.Z && box.Max.Z >= other.Min.Z
}

// ClosestPoint returns the closest point, to the point given, on the inside or surface of the AABB.
func (box AABB) ClosestPoint(point Vector3) Vector3 {
	return point.Max(box.Min).Min(box.Max)
}

// Center returns the center point of the AABB.
func (box AABB) Center() Vector3 {
	return box.Min.Add(box.Max).Scale(0.5)
}

// Size returns the edge lengths of the AABB along each axis. An empty AABB has a size of zero.
func (box AABB) Size() Vector3 {
	if box.IsEmpty() {
		return Vector3{}
	}
	return box.Max.Sub(box.Min)
}

// Area returns half of the AABB's surface area (the sum of the products of each pair of edge lengths). This is used as a relative
// cost when splitting a BVH, rather than as a physical measurement. An empty AABB has an area of 0.
func (box AABB) Area() float32 {
	if box.IsEmpty() {
		return 0
	}
	e := box.Max.Sub(box.Min)
	return e.X*e.Y + e.Y*e.Z + e.Z*e.X
}

// Corners returns the eight corner points of the AABB.
func (box AABB) Corners() [8]Vector3 {
	return [8]Vector3{
		{box.Min.X, box.Min.Y, box.Min.Z},
		{box.Max.X, box.Min.Y, box.Min.Z},
		{box.Min.X, box.Max.Y, box.Min.Z},
		{box.Max.X, box.Max.Y, box.Min.Z},
		{box.Min.X, box.Min.Y, box.Max.Z},
		{box.Max.X, box.Min.Y, box.Max.Z},
		{box.Min.X, box.Max.Y, box.Max.Z},
		{box.Max.X, box.Max.Y, box.Max.Z},
	}
}

// Transform returns a new AABB that contains all eight corners of the calling AABB after being transformed by the Matrix4 given.
// If the transformed corners have a W component other than 1 (as with a projection), they are divided through by it.
// Transforming an empty AABB results in an empty AABB.
func (box AABB) Transform(matrix Matrix4) AABB {

	if box.IsEmpty() {
		return box
	}

	out := NewAABB()
	for _, corner := range box.Corners() {
		out = out.ExtendPoint(matrix.MultVecW(corner).PerspectiveDivide())
	}
	return out

}

// RayIntersect tests the Ray given against the AABB with the slab method, returning the near and far distances along the ray at
// which it enters and exits the box. If tFar is less than tNear, the Ray misses the AABB. Note that tNear may be negative if the
// Ray starts within (or in front of) the AABB.
func (box AABB) RayIntersect(ray Ray) (tNear, tFar float32) {

	tNear = -math32.MaxFloat32
	tFar = math32.MaxFloat32

	for axis := 0; axis < 3; axis++ {

		origin := ray.Origin.Get(axis)
		dir := ray.Direction.Get(axis)
		min := box.Min.Get(axis)
		max := box.Max.Get(axis)

		if dir == 0 {
			// Parallel to this slab; either always inside it or never
			if origin < min || origin > max {
				return 0, -1
			}
			continue
		}

		inv := 1 / dir
		t0 := (min - origin) * inv
		t1 := (max - origin) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		tNear = math32.Max(tNear, t0)
		tFar = math32.Min(tFar, t1)

	}

	return tNear, tFar

}

// PositiveVertex returns the corner of the AABB that lies furthest along the normal given.
func (box AABB) PositiveVertex(normal Vector3) Vector3 {
	p := box.Min
	if normal.X >= 0 {
		p.X = box.Max.X
	}
	if normal.Y >= 0 {
		p.Y = box.Max.Y
	}
	if normal.Z >= 0 {
		p.Z = box.Max.Z
	}
	return p
}

// NegativeVertex returns the corner of the AABB that lies furthest against the normal given.
func (box AABB) NegativeVertex(normal Vector3) Vector3 {
	p := box.Max
	if normal.X >= 0 {
		p.X = box.Min.X
	}
	if normal.Y >= 0 {
		p.Y = box.Min.Y
	}
	if normal.Z >= 0 {
		p.Z = box.Min.Z
	}
	return p
}

// Sphere returns a Sphere that encloses the AABB.
func (box AABB) Sphere() Sphere {
	return NewSphereFromAABB(box)
}

// Equals returns true if both AABBs have (nearly) the same corners. Two empty AABBs are always equal.
func (box AABB) Equals(other AABB) bool {
	if box.IsEmpty() || other.IsEmpty() {
		return box.IsEmpty() == other.IsEmpty()
	}
	return box.Min.Equals(other.Min) && box.Max.Equals(other.Max)
}

func (box AABB) String() string {
	if box.IsEmpty() {
		return "{empty}"
	}
	return "{" + box.Min.String() + " - " + box.Max.String() + "}"
}
