package util

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// UnboundedMin and UnboundedMax span every finite coordinate.
var (
	UnboundedMin = mgl32.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	UnboundedMax = mgl32.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
)

// SegmentPredicate decides whether point lies in the acceptance region between a and b.
type SegmentPredicate func(point, a, b mgl32.Vec3) bool

// an AABB is basically [2]mgl32.Vec3
type AABB struct {
	min mgl32.Vec3
	max mgl32.Vec3
}

func NewAABB(center, extents mgl32.Vec3) AABB {
	half := extents.Mul(0.5)
	return AABB{
		min: center.Sub(half),
		max: center.Add(half),
	}
}

// NewAABBFromPoints returns the smallest box containing both corners, in any order.
func NewAABBFromPoints(a, b mgl32.Vec3) AABB {
	return AABB{
		min: mgl32.Vec3{Min(a.X(), b.X()), Min(a.Y(), b.Y()), Min(a.Z(), b.Z())},
		max: mgl32.Vec3{Max(a.X(), b.X()), Max(a.Y(), b.Y()), Max(a.Z(), b.Z())},
	}
}

func (a AABB) Min() mgl32.Vec3 {
	return a.min
}

func (a AABB) Max() mgl32.Vec3 {
	return a.max
}

func (a AABB) Center() mgl32.Vec3 {
	return a.min.Mul(0.5).Add(a.max.Mul(0.5))
}

// Contains is inclusive on every face.
func (a AABB) Contains(vec3 mgl32.Vec3) bool {
	return InRange(vec3.X(), a.min.X(), a.max.X()) &&
		InRange(vec3.Y(), a.min.Y(), a.max.Y()) &&
		InRange(vec3.Z(), a.min.Z(), a.max.Z())
}

func (a AABB) ToString() string {
	return fmt.Sprintf("AABB{Min = %v, Max = %v}", a.min, a.max)
}

func InRange(x, min, max float32) bool {
	return x >= min && x <= max
}

// InBetween is the default SegmentPredicate: the point must lie in the box spanned by a and b.
func InBetween(point, a, b mgl32.Vec3) bool {
	return NewAABBFromPoints(a, b).Contains(point)
}
