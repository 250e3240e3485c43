package tetracull

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func BenchmarkMatrixInversion(b *testing.B) {

	b.ReportAllocs()

	mat := NewMatrix4Rotate(0, 1, 0.2, 0.24).Mult(NewMatrix4Translate(1, 4, -12))

	for i := 0; i < b.N; i++ {
		mat.Inverted()
	}

}

func BenchmarkMatrixMult(b *testing.B) {

	b.ReportAllocs()

	mat := NewMatrix4Rotate(0, 1, 0.2, 0.24)
	other := NewMatrix4Translate(1, 4, -12)

	for i := 0; i < b.N; i++ {
		mat = mat.Mult(other)
	}

}

func TestMatrixInversion(t *testing.T) {

	matrices := []Matrix4{
		NewMatrix4Rotate(0, 1, 0, 0.1),
		NewMatrix4Translate(-10, 0.1, 3232.1976),
		NewMatrix4Scale(10, 0.1, -0.45),
		NewMatrix4Translate(-1, -1, -1).Mult(NewMatrix4Rotate(1, 0, 0.1, 0.334)).Mult(NewMatrix4Scale(10, 1, 2)),
		NewProjectionPerspective(60, 1, 100, 16.0/9.0),
	}

	for i, mat := range matrices {
		// Multiplying a matrix by its inverse should give you back the identity matrix.
		assert.Truef(t, mat.Mult(mat.Inverted()).IsIdentity(), "failed on matrix #%d: matrix * matrix.Inverted() is not identity", i)
	}

	// Singular matrices have no inverse.
	assert.True(t, NewMatrix4Scale(10, 1, 0).Inverted().IsIdentity())

}

func TestMatrixTranslation(t *testing.T) {

	mat := NewMatrix4Translate(1, 2, 3)

	assert.Equal(t, Vector3{1, 2, 3}, mat.RowAsVector3(3))
	assert.True(t, mat.MultVec(Vector3{1, 1, 1}).Equals(Vector3{2, 3, 4}))

	// Row vectors: transforms apply from left to right, so this scales first and translates afterwards.
	combined := NewMatrix4Scale(2, 2, 2).Mult(mat)
	assert.True(t, combined.MultVec(Vector3{1, 1, 1}).Equals(Vector3{3, 4, 5}))

}

func TestMatrixRotation(t *testing.T) {

	// A quarter turn counter-clockwise around +Z turns +X into +Y.
	rot := NewMatrix4Rotate(0, 0, 1, math32.Pi/2)
	assert.True(t, rot.MultVec(Vector3{1, 0, 0}).Equals(Vector3{0, 1, 0}), rot.MultVec(Vector3{1, 0, 0}).String())

	quat := NewQuaternionFromAxisAngle(Vector3{0, 0, 1}, math32.Pi/2)
	assert.True(t, quat.ToMatrix4().Equals(rot))

	// Round-tripping through a Quaternion keeps the rotation.
	for _, mat := range []Matrix4{
		NewMatrix4Rotate(0, 1, 0, 0.1),
		NewMatrix4Rotate(1, 0.5, -0.2, 2.9),
		NewMatrix4Rotate(0, 0, 1, math32.Pi),
		NewMatrix4Rotate(1, 1, 1, -1.5),
	} {
		assert.True(t, mat.ToQuaternion().ToMatrix4().Equals(mat), mat.String())
	}

}

func TestMatrixDecompose(t *testing.T) {

	rot := NewMatrix4Rotate(0.2, 1, 0.4, 1.2)
	mat := NewMatrix4Scale(2, 3, 4).Mult(rot).Mult(NewMatrix4Translate(-5, 6, 7))

	position, scale, rotation := mat.Decompose()

	assert.True(t, position.Equals(Vector3{-5, 6, 7}), position.String())
	assert.True(t, scale.Equals(Vector3{2, 3, 4}), scale.String())
	assert.True(t, rotation.Equals(rot))

	// Mirrored transforms come back with a negative X scale.
	_, scale, _ = NewMatrix4Scale(-1, 1, 1).Decompose()
	assert.True(t, scale.Equals(Vector3{-1, 1, 1}), scale.String())

	// Skew is dropped; the rotation stays orthonormal and right-handed.
	skewed := Matrix4{
		{1, 0, 0, 0},
		{0.5, 1, 0, 0},
		{0.25, 0.25, 1, 0},
		{0, 0, 0, 1},
	}.Mult(rot)

	_, _, rotation = skewed.Decompose()
	assert.True(t, rotation.Mult(rotation.Transposed()).Equals(NewMatrix4()), rotation.String())
	assert.InDelta(t, 1, rotation.determinant3(), 1e-4)
	assert.True(t, rotation.RowAsVector3(0).Equals(rot.RowAsVector3(0)), "the X axis keeps its direction")

}

func TestMatrixTransposed(t *testing.T) {

	mat := NewMatrix4Translate(1, 2, 3)
	transposed := mat.Transposed()

	assert.Equal(t, Vector4{1, 2, 3, 1}, mat.Row(3))
	assert.Equal(t, Vector4{1, 2, 3, 1}, transposed.Column(3))
	assert.True(t, transposed.Transposed().Equals(mat))

}

func TestProjectionPerspective(t *testing.T) {

	proj := NewProjectionPerspective(90, 1, 100, 1)

	// A point on the near plane straight ahead maps to NDC depth -1, one on the far plane to +1.
	near := proj.MultVecW(Vector3{0, 0, -1}).PerspectiveDivide()
	far := proj.MultVecW(Vector3{0, 0, -100}).PerspectiveDivide()

	assert.InDelta(t, -1, near.Z, 1e-4)
	assert.InDelta(t, 1, far.Z, 1e-4)

	// With a 90 degree field of view, the top edge of the view is at y == -z.
	edge := proj.MultVecW(Vector3{0, 10, -10}).PerspectiveDivide()
	assert.InDelta(t, 1, edge.Y, 1e-4)

}

func TestProjectionOrthographic(t *testing.T) {

	proj := NewProjectionOrthographic(-100, 100, 10, 5, 5, -5)

	left := proj.MultVecW(Vector3{5, 0, 0}).PerspectiveDivide()
	right := proj.MultVecW(Vector3{10, 5, 0}).PerspectiveDivide()

	assert.InDelta(t, -1, left.X, 1e-4)
	assert.InDelta(t, 0, left.Y, 1e-4)
	assert.InDelta(t, 1, right.X, 1e-4)
	assert.InDelta(t, 1, right.Y, 1e-4)

}

func TestMatrixToF32(t *testing.T) {

	out := NewMatrix4Translate(1, 2, 3).ToF32()
	require.Len(t, out, 16)

	// In the column-vector convention, the translation ends up in the last column.
	assert.Equal(t, float32(1), out[3])
	assert.Equal(t, float32(2), out[7])
	assert.Equal(t, float32(3), out[11])

}
