package util

import "github.com/go-gl/mathgl/mgl32"

type PlaneSide int

const (
	OnPlane PlaneSide = iota
	Back
	Front
)

// Plane is the set of points p with Normal.Dot(p) + D == 0.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// BuildPlane returns the plane through three ordered points. The normal follows the
// winding of the points. Collinear points give a NaN normal, which every intersection
// test downstream treats as a miss.
func BuildPlane(p1, p2, p3 mgl32.Vec3) Plane {
	l := p1.Sub(p2)
	r := p2.Sub(p3)
	normal := l.Cross(r).Normalize()
	return Plane{
		Normal: normal,
		D:      -p1.Dot(normal),
	}
}

func (p Plane) DistanceToPoint(point mgl32.Vec3) float32 {
	return p.Normal.Dot(point) + p.D
}

// TestPoint reports on which side of the plane the point lies. Only an exact zero
// distance counts as on the plane.
func (p Plane) TestPoint(point mgl32.Vec3) PlaneSide {
	dist := p.DistanceToPoint(point)
	if dist == 0 {
		return OnPlane
	} else if dist < 0 {
		return Back
	}
	return Front
}
