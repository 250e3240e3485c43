package tetracull

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestFrustumOrthographic(t *testing.T) {

	// View from the origin, looking down -Z, covering x in [5, 10].
	frustum := NewFrustum(NewMatrix4().Mult(NewProjectionOrthographic(-100, 100, 10, 5, 5, -5)))

	box := AABB{Min: Vector3{0, -1, -1}, Max: Vector3{2, 1, 1}}

	assert.False(t, frustum.IntersectsAABB(box))
	assert.False(t, frustum.IntersectsSphere(NewSphere(Vector3{1, 0, 0}, 1)))

	frustum = NewFrustum(NewProjectionOrthographic(-100, 100, 5, -5, 5, -5))

	assert.True(t, frustum.IntersectsAABB(box))
	assert.True(t, frustum.ContainsAABB(box))
	assert.True(t, frustum.IntersectsSphere(NewSphere(Vector3{1, 0, 0}, 1)))

	// Straddling the right plane intersects without being contained.
	straddling := AABB{Min: Vector3{4, -1, -1}, Max: Vector3{6, 1, 1}}
	assert.True(t, frustum.IntersectsAABB(straddling))
	assert.False(t, frustum.ContainsAABB(straddling))

	assert.False(t, frustum.IntersectsAABB(NewAABB()))
	assert.False(t, frustum.IntersectsSphere(NewSphereFromAABB(NewAABB())))

}

func TestFrustumPlanes(t *testing.T) {

	frustum := NewFrustum(NewProjectionOrthographic(1, 10, 5, -5, 5, -5))

	for i, plane := range frustum.Planes {
		assert.InDeltaf(t, 1, plane.Normal.Magnitude(), 1e-5, "plane %d is not normalized", i)
	}

	assert.True(t, frustum.Planes[FrustumLeft].Normal.Equals(Vector3{1, 0, 0}))
	assert.True(t, frustum.Planes[FrustumRight].Normal.Equals(Vector3{-1, 0, 0}))
	assert.True(t, frustum.Planes[FrustumNear].Normal.Equals(Vector3{0, 0, -1}))
	assert.True(t, frustum.Planes[FrustumFar].Normal.Equals(Vector3{0, 0, 1}))

	assert.True(t, frustum.IntersectsPoint(Vector3{0, 0, -5}))
	assert.False(t, frustum.IntersectsPoint(Vector3{0, 0, -11}))
	assert.False(t, frustum.IntersectsPoint(Vector3{0, 0, 0}), "the point is in front of the near plane")

	assert.True(t, frustum.Corners[0].Equals(Vector3{-5, -5, -1}), frustum.Corners[0].String())
	assert.True(t, frustum.Corners[7].Equals(Vector3{5, 5, -10}), frustum.Corners[7].String())

}

func TestFrustumPerspective(t *testing.T) {

	camera := NewCamera("camera")
	camera.Near = 1
	camera.FieldOfView = 90

	frustum := NewFrustum(camera.ViewProjection(NewMatrix4(), 1))

	ahead := AABB{Min: Vector3{-1, -1, -11}, Max: Vector3{1, 1, -9}}
	behind := AABB{Min: Vector3{-1, -1, 9}, Max: Vector3{1, 1, 11}}
	beyond := AABB{Min: Vector3{-1, -1, -300}, Max: Vector3{1, 1, -200}}
	outside := AABB{Min: Vector3{20, -1, -11}, Max: Vector3{22, 1, -9}}

	assert.True(t, frustum.IntersectsAABB(ahead))
	assert.False(t, frustum.IntersectsAABB(behind))
	assert.False(t, frustum.IntersectsAABB(beyond))
	assert.False(t, frustum.IntersectsAABB(outside))

	// Turning the camera around brings the box behind it into view.
	turned := NewQuaternionFromAxisAngle(Vector3{0, 1, 0}, math32.Pi).ToMatrix4()
	frustum = NewFrustum(camera.ViewProjection(turned, 1))

	assert.False(t, frustum.IntersectsAABB(ahead))
	assert.True(t, frustum.IntersectsAABB(behind))

	// Moving it away from the box takes it out of view again.
	frustum = NewFrustum(camera.ViewProjection(turned.Mult(NewMatrix4Translate(0, 0, 200)), 1))
	assert.False(t, frustum.IntersectsAABB(behind))

}

func BenchmarkFrustumIntersectsAABB(b *testing.B) {

	frustum := NewFrustum(NewCamera("camera").ViewProjection(NewMatrix4(), 16.0/9.0))
	box := AABB{Min: Vector3{-1, -1, -11}, Max: Vector3{1, 1, -9}}

	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		frustum.IntersectsAABB(box)
	}

}
