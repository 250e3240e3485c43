package tetracull

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestAABBEmpty(t *testing.T) {

	empty := NewAABB()

	assert.True(t, empty.IsEmpty())
	assert.False(t, AABB{}.IsEmpty(), "the zero value is a point at the origin, not an empty box")
	assert.Equal(t, float32(0), empty.Area())
	assert.Equal(t, Vector3{}, empty.Size())

	box := NewAABBFromPoints(Vector3{-1, -2, -3}, Vector3{1, 2, 3})

	// Empty boxes are the identity for Extend.
	assert.Equal(t, box, empty.Extend(box))
	assert.Equal(t, box, box.Extend(empty))
	assert.True(t, empty.Extend(empty).IsEmpty())

	assert.True(t, empty.Transform(NewMatrix4Translate(1, 1, 1)).IsEmpty())
	assert.False(t, empty.Intersects(box))
	assert.False(t, box.Intersects(empty))
	assert.True(t, box.ContainsAABB(empty))

	assert.True(t, NewAABBFromPoints().IsEmpty())

}

func TestAABBExtend(t *testing.T) {

	box := NewAABB().ExtendPoint(Vector3{1, 1, 1})

	assert.Equal(t, AABB{Min: Vector3{1, 1, 1}, Max: Vector3{1, 1, 1}}, box)

	box = box.ExtendPoint(Vector3{-1, 3, 0})
	assert.Equal(t, AABB{Min: Vector3{-1, 1, 0}, Max: Vector3{1, 3, 1}}, box)

	box = box.Extend(AABB{Min: Vector3{0, 0, 0}, Max: Vector3{5, 1, 1}})
	assert.Equal(t, AABB{Min: Vector3{-1, 0, 0}, Max: Vector3{5, 3, 1}}, box)

	assert.Equal(t, box, box.Extend(box), "extending a box by itself changes nothing")

}

func TestAABBMeasurements(t *testing.T) {

	box := AABB{Min: Vector3{0, 0, 0}, Max: Vector3{1, 2, 3}}

	assert.Equal(t, Vector3{0.5, 1, 1.5}, box.Center())
	assert.Equal(t, Vector3{1, 2, 3}, box.Size())
	assert.Equal(t, float32(1*2+2*3+3*1), box.Area())

	// Zero-volume boxes still have area along the non-flat axes, and points have none.
	flat := AABB{Min: Vector3{0, 0, 0}, Max: Vector3{2, 2, 0}}
	assert.Equal(t, float32(4), flat.Area())
	assert.Equal(t, float32(0), AABB{}.Area())

}

func TestAABBContainment(t *testing.T) {

	box := AABB{Min: Vector3{-1, -1, -1}, Max: Vector3{1, 1, 1}}

	assert.True(t, box.Contains(Vector3{}))
	assert.True(t, box.Contains(Vector3{1, 1, 1}), "surface points are inside")
	assert.False(t, box.Contains(Vector3{1.01, 0, 0}))

	assert.True(t, box.ContainsAABB(AABB{Min: Vector3{-0.5, -0.5, -0.5}, Max: Vector3{0.5, 0.5, 0.5}}))
	assert.False(t, box.ContainsAABB(AABB{Min: Vector3{0, 0, 0}, Max: Vector3{2, 0.5, 0.5}}))

	assert.True(t, box.Intersects(AABB{Min: Vector3{1, 1, 1}, Max: Vector3{2, 2, 2}}), "touching boxes intersect")
	assert.False(t, box.Intersects(AABB{Min: Vector3{1.5, 0, 0}, Max: Vector3{2, 1, 1}}))

	assert.Equal(t, Vector3{1, 0, -1}, box.ClosestPoint(Vector3{5, 0, -3}))

}

func TestAABBTransform(t *testing.T) {

	box := AABB{Min: Vector3{-1, -1, -1}, Max: Vector3{1, 1, 1}}

	offset := AABB{Min: Vector3{2, -3, 0.5}, Max: Vector3{4, 1, 7}}
	assert.True(t, offset.Transform(NewMatrix4()).Equals(offset), offset.Transform(NewMatrix4()).String())

	moved := box.Transform(NewMatrix4Translate(10, 0, 0))
	assert.True(t, moved.Equals(AABB{Min: Vector3{9, -1, -1}, Max: Vector3{11, 1, 1}}), moved.String())

	scaled := box.Transform(NewMatrix4Scale(2, 1, 0.5))
	assert.True(t, scaled.Equals(AABB{Min: Vector3{-2, -1, -0.5}, Max: Vector3{2, 1, 0.5}}), scaled.String())

	// Rotating a unit cube 45 degrees around Y widens it along X and Z by a factor of sqrt(2).
	rotated := box.Transform(NewMatrix4Rotate(0, 1, 0, math32.Pi/4))
	s := math32.Sqrt2
	assert.True(t, rotated.Equals(AABB{Min: Vector3{-s, -1, -s}, Max: Vector3{s, 1, s}}), rotated.String())

	// The result always contains every transformed corner.
	mat := NewMatrix4Rotate(1, 2, 3, 0.7).Mult(NewMatrix4Translate(1, -4, 2))
	transformed := box.Transform(mat)
	grown := AABB{Min: transformed.Min.Sub(NewVector3Uniform(1e-4)), Max: transformed.Max.Add(NewVector3Uniform(1e-4))}
	for _, c := range box.Corners() {
		assert.True(t, grown.Contains(mat.MultVec(c)))
	}

}

func TestAABBRayIntersect(t *testing.T) {

	box := AABB{Min: Vector3{-1, -1, -1}, Max: Vector3{1, 1, 1}}

	tNear, tFar := box.RayIntersect(NewRay(Vector3{-5, 0, 0}, Vector3{5, 0, 0}))
	assert.InDelta(t, 0.4, tNear, 1e-6)
	assert.InDelta(t, 0.6, tFar, 1e-6)

	// Parallel to the X slabs, but outside of them.
	tNear, tFar = box.RayIntersect(Ray{Origin: Vector3{2, 0, -5}, Direction: Vector3{0, 0, 1}})
	assert.Less(t, tFar, tNear)

	// Missing diagonally.
	tNear, tFar = box.RayIntersect(NewRay(Vector3{-5, 3, 0}, Vector3{5, 3.5, 0}))
	assert.Less(t, tFar, tNear)

}

func TestAABBExtremeVertices(t *testing.T) {

	box := AABB{Min: Vector3{-1, -2, -3}, Max: Vector3{1, 2, 3}}

	assert.Equal(t, Vector3{1, -2, 3}, box.PositiveVertex(Vector3{1, -1, 1}))
	assert.Equal(t, Vector3{-1, 2, -3}, box.NegativeVertex(Vector3{1, -1, 1}))

}
