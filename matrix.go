package tetracull

import (
	"strconv"

	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"
)

// Matrix4 represents a 4x4 matrix for translation, scale, and rotation. A Matrix4 in Tetracull is row-major (i.e. the X axis is matrix[0])
// and is used with row vectors, so a point is transformed as p * M and matrices compose left-to-right (local.Mult(parent)).
type Matrix4 [4][4]float32

// NewMatrix4 returns a new identity Matrix4.
func NewMatrix4() Matrix4 {

	mat := Matrix4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
	return mat

}

// NewMatrix4Translate returns a new identity Matrix4, but with the x, y, and z translation components set as provided.
func NewMatrix4Translate(x, y, z float32) Matrix4 {
	mat := NewMatrix4()
	mat[3][0] = x
	mat[3][1] = y
	mat[3][2] = z
	return mat
}

// NewMatrix4Scale returns a new identity Matrix4, but with the scale components set as provided. 1, 1, 1 is the default.
func NewMatrix4Scale(x, y, z float32) Matrix4 {
	mat := NewMatrix4()
	mat[0][0] = x
	mat[1][1] = y
	mat[2][2] = z
	return mat
}

// NewMatrix4Rotate returns a new Matrix4 designed to rotate by the angle given (in radians) along the axis given [x, y, z].
// This rotation works as though you pierced the object utilizing the matrix through by the axis, and then rotated it
// counter-clockwise by the angle in radians.
func NewMatrix4Rotate(x, y, z, angle float32) Matrix4 {

	// Default to spinning on +Y axis if there is no valid axis
	if x == 0 && y == 0 && z == 0 {
		y = 1
	}

	mat := NewMatrix4()
	axis := Vector3{X: x, Y: y, Z: z}.Unit()
	s, c := math32.Sincos(angle)
	m := 1 - c

	mat[0][0] = m*axis.X*axis.X + c
	mat[0][1] = m*axis.X*axis.Y + axis.Z*s
	mat[0][2] = m*axis.Z*axis.X - axis.Y*s

	mat[1][0] = m*axis.X*axis.Y - axis.Z*s
	mat[1][1] = m*axis.Y*axis.Y + c
	mat[1][2] = m*axis.Y*axis.Z + axis.X*s

	mat[2][0] = m*axis.Z*axis.X + axis.Y*s
	mat[2][1] = m*axis.Y*axis.Z - axis.X*s
	mat[2][2] = m*axis.Z*axis.Z + c

	return mat

}

// ToQuaternion returns a Quaternion representative of the Matrix4's rotation (assuming it is just a purely rotational Matrix4).
func (matrix Matrix4) ToQuaternion() Quaternion {

	trace := matrix[0][0] + matrix[1][1] + matrix[2][2]

	var q Quaternion

	switch {
	case trace > 0:
		s := 0.5 / math32.Sqrt(trace+1)
		q.W = 0.25 / s
		q.X = (matrix[1][2] - matrix[2][1]) * s
		q.Y = (matrix[2][0] - matrix[0][2]) * s
		q.Z = (matrix[0][1] - matrix[1][0]) * s
	case matrix[0][0] > matrix[1][1] && matrix[0][0] > matrix[2][2]:
		s := 2 * math32.Sqrt(1+matrix[0][0]-matrix[1][1]-matrix[2][2])
		q.W = (matrix[1][2] - matrix[2][1]) / s
		q.X = 0.25 * s
		q.Y = (matrix[1][0] + matrix[0][1]) / s
		q.Z = (matrix[2][0] + matrix[0][2]) / s
	case matrix[1][1] > matrix[2][2]:
		s := 2 * math32.Sqrt(1+matrix[1][1]-matrix[0][0]-matrix[2][2])
		q.W = (matrix[2][0] - matrix[0][2]) / s
		q.X = (matrix[1][0] + matrix[0][1]) / s
		q.Y = 0.25 * s
		q.Z = (matrix[2][1] + matrix[1][2]) / s
	default:
		s := 2 * math32.Sqrt(1+matrix[2][2]-matrix[0][0]-matrix[1][1])
		q.W = (matrix[0][1] - matrix[1][0]) / s
		q.X = (matrix[2][0] + matrix[0][2]) / s
		q.Y = (matrix[2][1] + matrix[1][2]) / s
		q.Z = 0.25 * s
	}

	return q.Unit()

}

// Right returns the right-facing rotational component of the Matrix4. For an identity matrix, this would be [1, 0, 0], or +X.
func (matrix Matrix4) Right() Vector3 {
	return matrix.RowAsVector3(0).Unit()
}

// Up returns the upward rotational component of the Matrix4. For an identity matrix, this would be [0, 1, 0], or +Y.
func (matrix Matrix4) Up() Vector3 {
	return matrix.RowAsVector3(1).Unit()
}

// Forward returns the forward rotational component of the Matrix4. For an identity matrix, this would be [0, 0, 1], or +Z (towards camera).
func (matrix Matrix4) Forward() Vector3 {
	return matrix.RowAsVector3(2).Unit()
}

// Decompose decomposes the Matrix4 and returns three components - the position (a 3D Vector), scale (another 3D Vector), and rotation (a Matrix4)
// indicated by the Matrix4. Any skew or projective component is discarded. A mirrored matrix (negative determinant) is represented as a negative
// X scale.
func (matrix Matrix4) Decompose() (Vector3, Vector3, Matrix4) {

	position := matrix.RowAsVector3(3)

	scale := Vector3{
		X: matrix.RowAsVector3(0).Magnitude(),
		Y: matrix.RowAsVector3(1).Magnitude(),
		Z: matrix.RowAsVector3(2).Magnitude(),
	}

	if matrix.determinant3() < 0 {
		scale.X = -scale.X
	}

	rotation := NewMatrix4()

	if scale.X == 0 || scale.Y == 0 || scale.Z == 0 {
		return position, scale, rotation
	}

	// Gram-Schmidt, so skewed axes still produce an orthonormal rotation.
	x := matrix.RowAsVector3(0).Divide(scale.X)
	y := matrix.RowAsVector3(1)
	y = y.Sub(x.Scale(x.Dot(y))).Unit()
	z := matrix.RowAsVector3(2)
	z = z.Sub(x.Scale(x.Dot(z))).Sub(y.Scale(y.Dot(z))).Unit()

	if x.Cross(y).Dot(z) < 0 {
		z = z.Invert()
	}

	rotation.SetRow(0, Vector4{x.X, x.Y, x.Z, 0})
	rotation.SetRow(1, Vector4{y.X, y.Y, y.Z, 0})
	rotation.SetRow(2, Vector4{z.X, z.Y, z.Z, 0})

	return position, scale, rotation

}

func (matrix Matrix4) determinant3() float32 {
	return matrix.RowAsVector3(0).Dot(matrix.RowAsVector3(1).Cross(matrix.RowAsVector3(2)))
}

// Transposed transposes a Matrix4, switching the Matrix from being Row Major to being Column Major. For orthonormalized Matrices (matrices
// that have rows that are normalized (having a length of 1), like rotation matrices), this is equivalent to inverting it.
func (matrix Matrix4) Transposed() Matrix4 {

	new := NewMatrix4()

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			new[i][j] = matrix[j][i]
		}
	}

	return new

}

// Inverted returns an inverted version of the Matrix4, computed through the 2x2 sub-determinant (Laplace expansion) method.
// A singular Matrix4 returns an identity Matrix4.
func (matrix Matrix4) Inverted() Matrix4 {

	a := matrix

	s0 := a[0][0]*a[1][1] - a[1][0]*a[0][1]
	s1 := a[0][0]*a[1][2] - a[1][0]*a[0][2]
	s2 := a[0][0]*a[1][3] - a[1][0]*a[0][3]
	s3 := a[0][1]*a[1][2] - a[1][1]*a[0][2]
	s4 := a[0][1]*a[1][3] - a[1][1]*a[0][3]
	s5 := a[0][2]*a[1][3] - a[1][2]*a[0][3]

	c5 := a[2][2]*a[3][3] - a[3][2]*a[2][3]
	c4 := a[2][1]*a[3][3] - a[3][1]*a[2][3]
	c3 := a[2][1]*a[3][2] - a[3][1]*a[2][2]
	c2 := a[2][0]*a[3][3] - a[3][0]*a[2][3]
	c1 := a[2][0]*a[3][2] - a[3][0]*a[2][2]
	c0 := a[2][0]*a[3][1] - a[3][0]*a[2][1]

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0

	if det == 0 {
		return NewMatrix4()
	}

	inv := 1 / det

	return Matrix4{
		{
			(a[1][1]*c5 - a[1][2]*c4 + a[1][3]*c3) * inv,
			(-a[0][1]*c5 + a[0][2]*c4 - a[0][3]*c3) * inv,
			(a[3][1]*s5 - a[3][2]*s4 + a[3][3]*s3) * inv,
			(-a[2][1]*s5 + a[2][2]*s4 - a[2][3]*s3) * inv,
		},
		{
			(-a[1][0]*c5 + a[1][2]*c2 - a[1][3]*c1) * inv,
			(a[0][0]*c5 - a[0][2]*c2 + a[0][3]*c1) * inv,
			(-a[3][0]*s5 + a[3][2]*s2 - a[3][3]*s1) * inv,
			(a[2][0]*s5 - a[2][2]*s2 + a[2][3]*s1) * inv,
		},
		{
			(a[1][0]*c4 - a[1][1]*c2 + a[1][3]*c0) * inv,
			(-a[0][0]*c4 + a[0][1]*c2 - a[0][3]*c0) * inv,
			(a[3][0]*s4 - a[3][1]*s2 + a[3][3]*s0) * inv,
			(-a[2][0]*s4 + a[2][1]*s2 - a[2][3]*s0) * inv,
		},
		{
			(-a[1][0]*c3 + a[1][1]*c1 - a[1][2]*c0) * inv,
			(a[0][0]*c3 - a[0][1]*c1 + a[0][2]*c0) * inv,
			(-a[3][0]*s3 + a[3][1]*s1 - a[3][2]*s0) * inv,
			(a[2][0]*s3 - a[2][1]*s1 + a[2][2]*s0) * inv,
		},
	}

}

// Equals returns true if the matrix equals the same values in the provided Other Matrix4.
func (matrix Matrix4) Equals(other Matrix4) bool {

	eps := float32(0.0001) // epsilon floating point error value
	for i := 0; i < len(matrix); i++ {
		for j := 0; j < len(matrix[i]); j++ {
			if math32.Abs(matrix[i][j]-other[i][j]) > eps {
				return false
			}
		}
	}
	return true
}

var identityMatrix = NewMatrix4()

// IsIdentity returns true if the matrix is an unmodified identity matrix.
func (matrix Matrix4) IsIdentity() bool {
	return matrix.Equals(identityMatrix)
}

// Row returns the indiced row from the Matrix4 as a Vector4.
func (matrix Matrix4) Row(rowIndex int) Vector4 {
	return Vector4{
		X: matrix[rowIndex][0],
		Y: matrix[rowIndex][1],
		Z: matrix[rowIndex][2],
		W: matrix[rowIndex][3],
	}
}

// RowAsVector3 returns the indiced row from the Matrix4 as a Vector3.
func (matrix Matrix4) RowAsVector3(rowIndex int) Vector3 {
	return Vector3{
		X: matrix[rowIndex][0],
		Y: matrix[rowIndex][1],
		Z: matrix[rowIndex][2],
	}
}

// Column returns the indiced column from the Matrix4 as a Vector4.
func (matrix Matrix4) Column(columnIndex int) Vector4 {
	return Vector4{
		X: matrix[0][columnIndex],
		Y: matrix[1][columnIndex],
		Z: matrix[2][columnIndex],
		W: matrix[3][columnIndex],
	}
}

// SetRow sets the Matrix4 with the row in rowIndex set to the 4D vector passed.
func (matrix *Matrix4) SetRow(rowIndex int, vec Vector4) {
	matrix[rowIndex][0] = vec.X
	matrix[rowIndex][1] = vec.Y
	matrix[rowIndex][2] = vec.Z
	matrix[rowIndex][3] = vec.W
}

// SetColumn sets the Matrix4 with the column in columnIndex set to the 4D vector passed.
func (matrix *Matrix4) SetColumn(columnIndex int, vec Vector4) {
	matrix[0][columnIndex] = vec.X
	matrix[1][columnIndex] = vec.Y
	matrix[2][columnIndex] = vec.Z
	matrix[3][columnIndex] = vec.W
}

// NewProjectionPerspective generates a perspective frustum Matrix4 laid out for row vectors. fovy is the vertical field of view in degrees,
// near and far are the near and far clipping plane, and aspect is the width / height ratio of the view. Clip-space depth ranges from -1 to 1
// (OpenGL convention), and the view looks down -Z.
func NewProjectionPerspective(fovy, near, far, aspect float32) Matrix4 {

	f := 1 / math32.Tan(fovy*math32.Pi/360)

	return Matrix4{
		{f / aspect, 0, 0, 0},
		{0, f, 0, 0},
		{0, 0, (far + near) / (near - far), -1},
		{0, 0, (2 * far * near) / (near - far), 0},
	}

}

// NewProjectionOrthographic generates an orthographic frustum Matrix4 laid out for row vectors. near and far are the near and far clipping plane
// distances along -Z; right, left, top, and bottom are the extents of the view volume.
func NewProjectionOrthographic(near, far, right, left, top, bottom float32) Matrix4 {
	return Matrix4{
		{2 / (right - left), 0, 0, 0},
		{0, 2 / (top - bottom), 0, 0},
		{0, 0, -2 / (far - near), 0},
		{-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1},
	}
}

// MultVec multiplies the vector provided by the Matrix4, giving a vector that has been rotated, scaled, or translated as desired.
// The projective (W) component is ignored.
func (matrix Matrix4) MultVec(vect Vector3) Vector3 {

	return Vector3{
		X: matrix[0][0]*vect.X + matrix[1][0]*vect.Y + matrix[2][0]*vect.Z + matrix[3][0],
		Y: matrix[0][1]*vect.X + matrix[1][1]*vect.Y + matrix[2][1]*vect.Z + matrix[3][1],
		Z: matrix[0][2]*vect.X + matrix[1][2]*vect.Y + matrix[2][2]*vect.Z + matrix[3][2],
	}

}

// MultVecW multiplies the vector provided (treated as a point with a W of 1) by the Matrix4, including the fourth (W) component.
func (matrix Matrix4) MultVecW(vect Vector3) Vector4 {

	return Vector4{
		X: matrix[0][0]*vect.X + matrix[1][0]*vect.Y + matrix[2][0]*vect.Z + matrix[3][0],
		Y: matrix[0][1]*vect.X + matrix[1][1]*vect.Y + matrix[2][1]*vect.Z + matrix[3][1],
		Z: matrix[0][2]*vect.X + matrix[1][2]*vect.Y + matrix[2][2]*vect.Z + matrix[3][2],
		W: matrix[0][3]*vect.X + matrix[1][3]*vect.Y + matrix[2][3]*vect.Z + matrix[3][3],
	}

}

// Mult multiplies a Matrix4 by another provided Matrix4 - this effectively combines them, applying the calling Matrix4 first.
func (matrix Matrix4) Mult(other Matrix4) Matrix4 {

	var newMat Matrix4

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			newMat[row][col] = matrix[row][0]*other[0][col] +
				matrix[row][1]*other[1][col] +
				matrix[row][2]*other[2][col] +
				matrix[row][3]*other[3][col]
		}
	}

	return newMat

}

// ToF32 returns the Matrix4 as an f32.Mat4 in the column-vector convention (the transpose of Tetracull's row-vector layout), which is
// what most GPU-facing code expects.
func (matrix Matrix4) ToF32() f32.Mat4 {
	var out f32.Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out[4*row+col] = matrix[col][row]
		}
	}
	return out
}

func (matrix Matrix4) String() string {
	s := "{"
	for i, y := range matrix {
		for _, x := range y {
			s += strconv.FormatFloat(float64(x), 'f', -1, 32) + ", "
		}
		if i < len(matrix)-1 {
			s += "\n"
		}
	}
	s += "}"
	return s
}

// NewLookAtMatrix generates a new Matrix4 to rotate an object to point towards another object. to is the target's world position,
// from is the world position of the object looking towards the target, and up is the upward vector ( usually +Y, or [0, 1, 0] ).
// The object's +Z axis ends up pointing at the target; as Cameras look down -Z, pass the camera position as to and the target as from
// to aim a Camera.
func NewLookAtMatrix(from, to, up Vector3) Matrix4 {

	// If from and to are the same, then an identity Matrix4 should be a sensible default
	if from.Equals(to) {
		return NewMatrix4()
	}
	z := to.Sub(from).Unit()

	up = up.Unit()

	// If z == up, then the matrix will be unusable, so we sub up out with another angle
	if z.Equals(up) || z.Equals(up.Invert()) {
		if !up.Equals(WorldRight) {
			up = WorldRight
		} else {
			up = WorldBackward
		}
	}

	x := up.Cross(z).Unit()
	y := z.Cross(x)
	return Matrix4{
		{x.X, x.Y, x.Z, 0},
		{y.X, y.Y, y.Z, 0},
		{z.X, z.Y, z.Z, 0},
		{0, 0, 0, 1},
	}
}
