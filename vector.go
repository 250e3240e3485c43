package tetracull

import (
	"strconv"

	"github.com/chewxy/math32"
)

// WorldRight represents a unit vector in the global direction of WorldRight on the right-handed OpenGL / Tetracull's coordinate system (+X).
var WorldRight = NewVector3(1, 0, 0)

// WorldUp represents a unit vector in the global direction of WorldUp on the right-handed OpenGL / Tetracull's coordinate system (+Y).
var WorldUp = NewVector3(0, 1, 0)

// WorldBackward represents a unit vector in the global direction of WorldBackward on the right-handed OpenGL / Tetracull's coordinate system (+Z, towards the viewer).
var WorldBackward = NewVector3(0, 0, 1)

// Vector3 represents a 3D Vector, which can be used for usual 3D applications (position, direction, velocity, etc).
// Any Vector3 functions that modify the calling Vector3 return copies of the modified Vector3, meaning you can do method-chaining easily.
// Vectors are most efficient when copied, so try not to store pointers to them.
type Vector3 struct {
	X float32 // The X (1st) component of the Vector
	Y float32 // The Y (2nd) component of the Vector
	Z float32 // The Z (3rd) component of the Vector
}

// NewVector3 creates a new Vector3 with the specified x, y, and z components.
func NewVector3(x, y, z float32) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// NewVector3Uniform creates a new Vector3 with all three components set to the value given.
func NewVector3Uniform(value float32) Vector3 {
	return Vector3{X: value, Y: value, Z: value}
}

// Add returns a copy of the calling vector, added together with the other Vector3 provided.
func (vec Vector3) Add(other Vector3) Vector3 {
	vec.X += other.X
	vec.Y += other.Y
	vec.Z += other.Z
	return vec
}

// Sub returns a copy of the calling Vector3, with the other Vector3 subtracted from it.
func (vec Vector3) Sub(other Vector3) Vector3 {
	vec.X -= other.X
	vec.Y -= other.Y
	vec.Z -= other.Z
	return vec
}

// Cross returns a new Vector3, indicating the cross product of the calling Vector3 and the provided Other Vector3.
func (vec Vector3) Cross(other Vector3) Vector3 {

	ogVecY := vec.Y
	ogVecZ := vec.Z

	vec.Z = vec.X*other.Y - other.X*vec.Y
	vec.Y = ogVecZ*other.X - other.Z*vec.X
	vec.X = ogVecY*other.Z - other.Y*ogVecZ

	return vec

}

// Invert returns a copy of the Vector3 with all components negated.
func (vec Vector3) Invert() Vector3 {
	vec.X = -vec.X
	vec.Y = -vec.Y
	vec.Z = -vec.Z
	return vec
}

// Magnitude returns the length of the Vector3.
func (vec Vector3) Magnitude() float32 {
	return math32.Sqrt(vec.X*vec.X + vec.Y*vec.Y + vec.Z*vec.Z)
}

// MagnitudeSquared returns the squared length of the Vector3; this is faster than Magnitude() as it avoids using math32.Sqrt().
func (vec Vector3) MagnitudeSquared() float32 {
	return vec.X*vec.X + vec.Y*vec.Y + vec.Z*vec.Z
}

// DistanceTo returns the distance from the calling Vector3 to the other Vector3 provided.
func (vec Vector3) DistanceTo(other Vector3) float32 {
	return vec.Sub(other).Magnitude()
}

// DistanceSquaredTo returns the squared distance from the calling Vector3 to the other Vector3 provided.
func (vec Vector3) DistanceSquaredTo(other Vector3) float32 {
	return vec.Sub(other).MagnitudeSquared()
}

// MultComp multiplies the calling Vector3 by the other Vector3 provided component-wise.
func (vec Vector3) MultComp(other Vector3) Vector3 {
	vec.X *= other.X
	vec.Y *= other.Y
	vec.Z *= other.Z
	return vec
}

// Unit returns a copy of the Vector3, normalized (set to be of unit length).
// A zero-length Vector3 is returned unchanged.
func (vec Vector3) Unit() Vector3 {
	l := vec.Magnitude()
	if l < 1e-8 {
		return vec
	}
	vec.X, vec.Y, vec.Z = vec.X/l, vec.Y/l, vec.Z/l
	return vec
}

// Scale scales a Vector3 by the given scalar.
func (vec Vector3) Scale(scalar float32) Vector3 {
	vec.X *= scalar
	vec.Y *= scalar
	vec.Z *= scalar
	return vec
}

// Divide divides a Vector3 by the given scalar.
func (vec Vector3) Divide(scalar float32) Vector3 {
	vec.X /= scalar
	vec.Y /= scalar
	vec.Z /= scalar
	return vec
}

// Dot returns the dot product of a Vector3 and another Vector3.
func (vec Vector3) Dot(other Vector3) float32 {
	return vec.X*other.X + vec.Y*other.Y + vec.Z*other.Z
}

// Min returns the component-wise minimum of the calling Vector3 and the other Vector3 provided.
func (vec Vector3) Min(other Vector3) Vector3 {
	vec.X = math32.Min(vec.X, other.X)
	vec.Y = math32.Min(vec.Y, other.Y)
	vec.Z = math32.Min(vec.Z, other.Z)
	return vec
}

// Max returns the component-wise maximum of the calling Vector3 and the other Vector3 provided.
func (vec Vector3) Max(other Vector3) Vector3 {
	vec.X = math32.Max(vec.X, other.X)
	vec.Y = math32.Max(vec.Y, other.Y)
	vec.Z = math32.Max(vec.Z, other.Z)
	return vec
}

// Lerp linearly interpolates from the calling Vector3 towards the other Vector3 by the percentage given (0 to 1).
func (vec Vector3) Lerp(other Vector3, percent float32) Vector3 {
	return vec.Add(other.Sub(vec).Scale(percent))
}

// Get returns the component of the Vector3 along the axis given (0 = X, 1 = Y, 2 = Z).
func (vec Vector3) Get(axis int) float32 {
	switch axis {
	case 0:
		return vec.X
	case 1:
		return vec.Y
	case 2:
		return vec.Z
	}
	panic("tetracull: Vector3.Get() axis out of range: " + strconv.Itoa(axis))
}

// Set returns a copy of the Vector3 with the component along the axis given set to the value provided.
func (vec Vector3) Set(axis int, value float32) Vector3 {
	switch axis {
	case 0:
		vec.X = value
	case 1:
		vec.Y = value
	case 2:
		vec.Z = value
	default:
		panic("tetracull: Vector3.Set() axis out of range: " + strconv.Itoa(axis))
	}
	return vec
}

// Equals returns true if the two Vectors are close enough in all values.
func (vec Vector3) Equals(other Vector3) bool {

	eps := float32(1e-4)

	if math32.Abs(vec.X-other.X) > eps || math32.Abs(vec.Y-other.Y) > eps || math32.Abs(vec.Z-other.Z) > eps {
		return false
	}

	return true

}

// IsZero returns true if the values in the Vector3 are extremely close to 0.
func (vec Vector3) IsZero() bool {
	return vec.Equals(Vector3{})
}

// Floats returns a [3]float32 array consisting of the Vector3's contents.
func (vec Vector3) Floats() [3]float32 {
	return [3]float32{vec.X, vec.Y, vec.Z}
}

func (vec Vector3) String() string {
	return "{" + strconv.FormatFloat(float64(vec.X), 'f', -1, 32) + ", " +
		strconv.FormatFloat(float64(vec.Y), 'f', -1, 32) + ", " +
		strconv.FormatFloat(float64(vec.Z), 'f', -1, 32) + "}"
}

// Vector4 represents a 4D Vector, mainly used as the homogeneous result of multiplying a point by a projective Matrix4.
type Vector4 struct {
	X float32
	Y float32
	Z float32
	W float32
}

// To3 returns the X, Y, and Z components of the Vector4 as a Vector3, dropping W.
func (vec Vector4) To3() Vector3 {
	return Vector3{X: vec.X, Y: vec.Y, Z: vec.Z}
}

// PerspectiveDivide returns the X, Y, and Z components divided by W. If W is 0 or 1, the components are returned as-is.
func (vec Vector4) PerspectiveDivide() Vector3 {
	if vec.W == 0 || vec.W == 1 {
		return vec.To3()
	}
	return Vector3{X: vec.X / vec.W, Y: vec.Y / vec.W, Z: vec.Z / vec.W}
}

// Magnitude returns the length of the X, Y, and Z components of the Vector4.
func (vec Vector4) Magnitude() float32 {
	return vec.To3().Magnitude()
}

// Unit returns a copy of the Vector4 with its X, Y, and Z components normalized. W is left untouched.
func (vec Vector4) Unit() Vector4 {
	v3 := vec.To3().Unit()
	vec.X, vec.Y, vec.Z = v3.X, v3.Y, v3.Z
	return vec
}
