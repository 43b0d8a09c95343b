package util

import "github.com/go-gl/mathgl/mgl32"

type Collider interface {
	ToString() string
	GetName() string
	SetName(name string)
	IntersectsRay(ray Ray) (bool, error)
	IntersectsRayWithin(ray Ray, a, b mgl32.Vec3, contains SegmentPredicate) (bool, error)
	NearestIntersection(ray Ray) (bool, mgl32.Vec3, error)
}
