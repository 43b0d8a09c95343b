package util

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/meshcast/engine/glhf"
)

// PositionAttribute is the vertex attribute the collider reads triangle corners from.
const PositionAttribute = "position"

// MeshCollider runs ray queries against every triangle of an interleaved vertex buffer.
// Without VertexIndices each three consecutive vertex records form one triangle,
// otherwise each three consecutive indices do.
//
// A MeshCollider is never written to by a query, so any number of goroutines may
// query the same collider at once.
type MeshCollider struct {
	VertexData    []glhf.GlFloat
	VertexFormat  glhf.AttrFormat
	VertexIndices []uint32
	VertexCount   int
	TransformFunc func() mgl32.Mat4
	name          string
}

func NewMeshCollider(name string, format glhf.AttrFormat, vertexData []glhf.GlFloat, indices []uint32) *MeshCollider {
	vertexCount := 0
	if stride := format.Stride(); stride > 0 {
		vertexCount = len(vertexData) / stride
	}
	return &MeshCollider{
		VertexData:    vertexData,
		VertexFormat:  format,
		VertexIndices: indices,
		VertexCount:   vertexCount,
		name:          name,
	}
}

func (m *MeshCollider) SetName(name string) {
	m.name = name
}

func (m *MeshCollider) GetName() string {
	return m.name
}

func (m *MeshCollider) TriangleCount() int {
	if m.VertexIndices != nil {
		return len(m.VertexIndices) / 3
	}
	return m.VertexCount / 3
}

func (m *MeshCollider) positionLayout() (glhf.AttrLayout, error) {
	layout, err := m.VertexFormat.Layout(PositionAttribute)
	if err != nil {
		return layout, newConfigurationError(m.name, "%s", err.Error())
	}
	if layout.Components != 3 {
		return layout, newConfigurationError(m.name, "position attributes must have 3 components, instead of %d components", layout.Components)
	}
	if m.VertexCount < 0 {
		return layout, newConfigurationError(m.name, "negative vertex count %d", m.VertexCount)
	}
	if m.VertexCount > 0 {
		needed := (m.VertexCount-1)*layout.Stride + layout.Offset + 3
		if needed > len(m.VertexData) {
			return layout, newConfigurationError(m.name, "%d vertices with stride %d need %d elements, buffer holds %d", m.VertexCount, layout.Stride, needed, len(m.VertexData))
		}
	}
	return layout, nil
}

// IterateTriangles decodes the triangles in buffer order and hands them to callback.
// Iteration stops early when callback returns false.
func (m *MeshCollider) IterateTriangles(callback func(index int, triangle [3]mgl32.Vec3) bool) error {
	layout, err := m.positionLayout()
	if err != nil {
		return err
	}
	hasTransform := m.TransformFunc != nil
	var transformMatrix mgl32.Mat4
	if hasTransform {
		transformMatrix = m.TransformFunc()
	}
	vertexAt := func(i int) mgl32.Vec3 {
		p := i*layout.Stride + layout.Offset
		vertex := mgl32.Vec3{float32(m.VertexData[p]), float32(m.VertexData[p+1]), float32(m.VertexData[p+2])}
		if hasTransform {
			return transformMatrix.Mul4x1(vertex.Vec4(1)).Vec3()
		}
		return vertex
	}

	if m.VertexIndices != nil {
		for i := 0; i+2 < len(m.VertexIndices); i += 3 {
			var triangle [3]mgl32.Vec3
			for corner := 0; corner < 3; corner++ {
				index := int(m.VertexIndices[i+corner])
				if index >= m.VertexCount {
					return newConfigurationError(m.name, "vertex index %d out of range, mesh has %d vertices", index, m.VertexCount)
				}
				triangle[corner] = vertexAt(index)
			}
			if !callback(i/3, triangle) {
				return nil
			}
		}
		return nil
	}

	for i := 0; i+2 < m.VertexCount; i += 3 {
		if !callback(i/3, [3]mgl32.Vec3{vertexAt(i), vertexAt(i + 1), vertexAt(i + 2)}) {
			return nil
		}
	}
	return nil
}

// IntersectsRay reports whether the ray hits any triangle of the mesh.
func (m *MeshCollider) IntersectsRay(ray Ray) (bool, error) {
	return m.IntersectsRayWithin(ray, UnboundedMin, UnboundedMax, InBetween)
}

// IntersectsRayWithin reports whether the ray hits a triangle at a point that contains
// accepts for the bounds a and b. The scan stops at the first accepted hit.
// A nil contains falls back to InBetween.
func (m *MeshCollider) IntersectsRayWithin(ray Ray, a, b mgl32.Vec3, contains SegmentPredicate) (bool, error) {
	if contains == nil {
		contains = InBetween
	}
	accepted := false
	err := m.IterateTriangles(func(_ int, triangle [3]mgl32.Vec3) bool {
		hit, point := IntersectRayTriangle(ray, triangle[0], triangle[1], triangle[2])
		if hit && contains(point, a, b) {
			accepted = true
			return false
		}
		return true
	})
	if err != nil {
		return false, err
	}
	return accepted, nil
}

// NearestIntersection visits every triangle and returns the hit closest to the ray origin.
func (m *MeshCollider) NearestIntersection(ray Ray) (bool, mgl32.Vec3, error) {
	minDist := float32(math.MaxFloat32)
	doesIntersect := false
	nearestIntersection := mgl32.Vec3{0, 0, 0}
	err := m.IterateTriangles(func(_ int, triangle [3]mgl32.Vec3) bool {
		hit, atPoint := IntersectRayTriangle(ray, triangle[0], triangle[1], triangle[2])
		if hit {
			doesIntersect = true
			dist := EucledianDistance3D(atPoint, ray.Origin)
			if dist < minDist {
				minDist = dist
				nearestIntersection = atPoint
			}
		}
		return true
	})
	if err != nil {
		return false, mgl32.Vec3{}, err
	}
	return doesIntersect, nearestIntersection, nil
}

func (m *MeshCollider) ToString() string {
	if m.VertexCount == 0 {
		return fmt.Sprintf("MeshCollider{Name = %s, Empty}", m.name)
	}
	return fmt.Sprintf("MeshCollider{Name = %s, Vertices = %d, Triangles = %d, Format = %v}", m.name, m.VertexCount, m.TriangleCount(), m.VertexFormat)
}

// IntersectsMesh is the unbounded query: any geometric hit counts.
func IntersectsMesh(ray Ray, mesh *MeshCollider) (bool, error) {
	return mesh.IntersectsRay(ray)
}

// IntersectsMeshWithin only accepts hits for which contains(point, a, b) holds.
func IntersectsMeshWithin(ray Ray, mesh *MeshCollider, a, b mgl32.Vec3, contains SegmentPredicate) (bool, error) {
	return mesh.IntersectsRayWithin(ray, a, b, contains)
}
