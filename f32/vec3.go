// SPDX-License-Identifier: Unlicense OR MIT

package f32

import "math"

// Vec3 is a three dimensional vector, used for cage vertex positions and
// world-space triangle corners.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v+v2.
func (v Vec3) Add(v2 Vec3) Vec3 {
	return Vec3{v.X + v2.X, v.Y + v2.Y, v.Z + v2.Z}
}

// Sub returns v-v2.
func (v Vec3) Sub(v2 Vec3) Vec3 {
	return Vec3{v.X - v2.X, v.Y - v2.Y, v.Z - v2.Z}
}

// Mul returns v scaled by s.
func (v Vec3) Mul(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and v2.
func (v Vec3) Dot(v2 Vec3) float32 {
	return v.X*v2.X + v.Y*v2.Y + v.Z*v2.Z
}

// Cross returns the cross product of v and v2.
func (v Vec3) Cross(v2 Vec3) Vec3 {
	return Vec3{
		X: v.Y*v2.Z - v.Z*v2.Y,
		Y: v.Z*v2.X - v.X*v2.Z,
		Z: v.X*v2.Y - v.Y*v2.X,
	}
}

// Len returns the Euclidean length of v.
func (v Vec3) Len() float32 {
	return float32(math.Sqrt(float64(v.Dot(v))))
}

// Lerp returns the linear interpolation between v and v2 at parameter t.
func (v Vec3) Lerp(v2 Vec3, t float32) Vec3 {
	return v.Mul(1 - t).Add(v2.Mul(t))
}

// Vec4 is a homogeneous four dimensional vector, used for clip-space
// projection during classification.
type Vec4 struct {
	X, Y, Z, W float32
}

// Mat4 is a 4x4 row-major matrix, used for view-projection transforms.
type Mat4 [16]float32

// Transform applies m to the homogeneous point v.
func (m Mat4) Transform(v Vec3) Vec4 {
	return Vec4{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3],
		Y: m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7],
		Z: m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11],
		W: m[12]*v.X + m[13]*v.Y + m[14]*v.Z + m[15],
	}
}

// Clip converts v to normalized device coordinates by perspective divide.
func (v Vec4) Clip() Point {
	if v.W == 0 {
		return Point{}
	}
	inv := 1 / v.W
	return Point{X: v.X * inv, Y: v.Y * inv}
}
