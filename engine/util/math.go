package util

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

func Sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// PlanarDistance returns the distance between a and b in the xy plane, ignoring z.
func PlanarDistance(a, b mgl32.Vec3) float32 {
	tx := a.X() - b.X()
	ty := a.Y() - b.Y()
	return Sqrt(tx*tx + ty*ty)
}

func EucledianDistance3D(one, two mgl32.Vec3) float32 {
	return one.Sub(two).Len()
}

func Min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func Max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
