package tetracull

import (
	"strconv"

	"github.com/chewxy/math32"
)

// Quaternion represents a rotation in 3D space. An identity Quaternion (no rotation) has a W of 1 and X, Y, and Z values of 0.
// Like Vector3s, Quaternions are value types; functions return modified copies.
type Quaternion struct {
	X, Y, Z, W float32
}

// NewQuaternion creates a new Quaternion out of the X, Y, Z, and W components given.
func NewQuaternion(x, y, z, w float32) Quaternion {
	return Quaternion{x, y, z, w}
}

// NewQuaternionIdentity returns a Quaternion that represents no rotation.
func NewQuaternionIdentity() Quaternion {
	return Quaternion{W: 1}
}

// NewQuaternionFromAxisAngle returns a Quaternion that represents a rotation of angle radians counter-clockwise around the axis given.
func NewQuaternionFromAxisAngle(axis Vector3, angle float32) Quaternion {
	axis = axis.Unit()
	if axis.IsZero() {
		return NewQuaternionIdentity()
	}
	s, c := math32.Sincos(angle / 2)
	return Quaternion{axis.X * s, axis.Y * s, axis.Z * s, c}
}

// IsIdentity returns if the Quaternion is (close to) an identity Quaternion.
func (quat Quaternion) IsIdentity() bool {
	return quat.Equals(NewQuaternionIdentity())
}

// Equals returns true if the two Quaternions hold close to the same components. Note that a Quaternion and its negation represent the same
// rotation but are not considered equal by this function.
func (quat Quaternion) Equals(other Quaternion) bool {
	eps := float32(1e-4)
	return math32.Abs(quat.X-other.X) <= eps &&
		math32.Abs(quat.Y-other.Y) <= eps &&
		math32.Abs(quat.Z-other.Z) <= eps &&
		math32.Abs(quat.W-other.W) <= eps
}

// Dot returns the dot product of the two Quaternions.
func (quat Quaternion) Dot(other Quaternion) float32 {
	return quat.X*other.X + quat.Y*other.Y + quat.Z*other.Z + quat.W*other.W
}

// Magnitude returns the length of the Quaternion.
func (quat Quaternion) Magnitude() float32 {
	return math32.Sqrt(quat.Dot(quat))
}

// Unit returns a normalized copy of the Quaternion. A zero Quaternion normalizes to the identity Quaternion.
func (quat Quaternion) Unit() Quaternion {
	m := quat.Magnitude()
	if m == 0 {
		return NewQuaternionIdentity()
	}
	return Quaternion{quat.X / m, quat.Y / m, quat.Z / m, quat.W / m}
}

// Negated returns a copy of the Quaternion with all components negated; this represents the same rotation.
func (quat Quaternion) Negated() Quaternion {
	return Quaternion{-quat.X, -quat.Y, -quat.Z, -quat.W}
}

// Mult returns the Hamilton product of the calling Quaternion and the other Quaternion. As with Matrix4.Mult, the calling Quaternion's
// rotation is applied first, followed by other's.
func (quat Quaternion) Mult(other Quaternion) Quaternion {
	a, b := other, quat
	return Quaternion{
		X: a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y,
		Y: a.W*b.Y - a.X*b.Z + a.Y*b.W + a.Z*b.X,
		Z: a.W*b.Z + a.X*b.Y - a.Y*b.X + a.Z*b.W,
		W: a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
	}
}

// Slerp spherically interpolates from the calling Quaternion towards the other Quaternion by the percentage given (0 to 1),
// taking the shortest path.
func (quat Quaternion) Slerp(other Quaternion, percent float32) Quaternion {

	if percent <= 0 {
		return quat
	} else if percent >= 1 {
		return other
	}

	cosTheta := quat.Dot(other)

	if cosTheta < 0 {
		other = other.Negated()
		cosTheta = -cosTheta
	}

	// Nearly parallel, so fall back to a normalized lerp
	if cosTheta > 0.9995 {
		return Quaternion{
			quat.X + (other.X-quat.X)*percent,
			quat.Y + (other.Y-quat.Y)*percent,
			quat.Z + (other.Z-quat.Z)*percent,
			quat.W + (other.W-quat.W)*percent,
		}.Unit()
	}

	theta := math32.Acos(cosTheta)
	sinTheta := math32.Sin(theta)
	ratioA := math32.Sin((1-percent)*theta) / sinTheta
	ratioB := math32.Sin(percent*theta) / sinTheta

	return Quaternion{
		quat.X*ratioA + other.X*ratioB,
		quat.Y*ratioA + other.Y*ratioB,
		quat.Z*ratioA + other.Z*ratioB,
		quat.W*ratioA + other.W*ratioB,
	}

}

// ToMatrix4 returns a rotation Matrix4 (laid out for row vectors) representing the Quaternion.
func (quat Quaternion) ToMatrix4() Matrix4 {

	q := quat.Unit()
	x, y, z, w := q.X, q.Y, q.Z, q.W

	return Matrix4{
		{1 - 2*(y*y+z*z), 2 * (x*y + z*w), 2 * (x*z - y*w), 0},
		{2 * (x*y - z*w), 1 - 2*(x*x+z*z), 2 * (y*z + x*w), 0},
		{2 * (x*z + y*w), 2 * (y*z - x*w), 1 - 2*(x*x+y*y), 0},
		{0, 0, 0, 1},
	}

}

func (quat Quaternion) String() string {
	return "{" + strconv.FormatFloat(float64(quat.X), 'f', -1, 32) + ", " +
		strconv.FormatFloat(float64(quat.Y), 'f', -1, 32) + ", " +
		strconv.FormatFloat(float64(quat.Z), 'f', -1, 32) + ", " +
		strconv.FormatFloat(float64(quat.W), 'f', -1, 32) + "}"
}
