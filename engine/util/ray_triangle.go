package util

import "github.com/go-gl/mathgl/mgl32"

// Ray is the half-line Origin + t*Direction for t >= 0. Direction need not be unit length.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// NewRayFromSegment builds a ray starting at start and pointing at end.
func NewRayFromSegment(start, end mgl32.Vec3) Ray {
	return Ray{Origin: start, Direction: end.Sub(start)}
}

// IntersectRayPlane returns whether the ray hits the plane and where.
// A ray lying inside the plane hits at its origin.
func IntersectRayPlane(ray Ray, plane Plane) (bool, mgl32.Vec3) {
	denom := ray.Direction.Dot(plane.Normal)
	if denom != 0 {
		t := -(ray.Origin.Dot(plane.Normal) + plane.D) / denom
		if t < 0 {
			return false, mgl32.Vec3{} // plane is behind the origin
		}
		return true, ray.Origin.Add(ray.Direction.Mul(t))
	} else if plane.TestPoint(ray.Origin) == OnPlane {
		return true, ray.Origin
	}
	return false, mgl32.Vec3{}
}

// IntersectRayTriangle tests the ray against the closed triangle t1, t2, t3.
// Points on an edge or a vertex count as inside.
func IntersectRayTriangle(ray Ray, t1, t2, t3 mgl32.Vec3) (bool, mgl32.Vec3) {
	plane := BuildPlane(t1, t2, t3)
	hit, intersection := IntersectRayPlane(ray, plane)
	if !hit {
		return false, mgl32.Vec3{}
	}

	v0 := t3.Sub(t1)
	v1 := t2.Sub(t1)
	v2 := intersection.Sub(t1)

	dot00 := v0.Dot(v0)
	dot01 := v0.Dot(v1)
	dot02 := v0.Dot(v2)
	dot11 := v1.Dot(v1)
	dot12 := v1.Dot(v2)

	denom := dot00*dot11 - dot01*dot01
	if denom == 0 {
		return false, mgl32.Vec3{} // zero area
	}

	u := (dot11*dot02 - dot01*dot12) / denom
	v := (dot00*dot12 - dot01*dot02) / denom

	if u >= 0 && v >= 0 && u+v <= 1 {
		return true, intersection
	}
	return false, mgl32.Vec3{}
}
