package util

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Transform places a collider in the world. Transforms form a tree through their parents.
// Mutating a transform while queries run against colliders using it is a data race.
type Transform struct {
	parent      *Transform
	translation mgl32.Vec3
	rotation    mgl32.Quat
	scale       mgl32.Vec3
	matrix      *mgl32.Mat4 // replaces translation, rotation and scale when set
	nameOfOwner string
}

func (t *Transform) GetName() string {
	return t.nameOfOwner
}
func (t *Transform) SetName(name string) {
	t.nameOfOwner = name
}
func (t *Transform) SetParent(parent *Transform) {
	t.parent = parent
}
func NewDefaultTransform(name string) *Transform {
	return &Transform{
		translation: mgl32.Vec3{0, 0, 0},
		rotation:    mgl32.QuatIdent(),
		scale:       mgl32.Vec3{1, 1, 1},
		nameOfOwner: name,
	}
}

func NewTransform(position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) *Transform {
	return &Transform{
		translation: position,
		rotation:    rotation,
		scale:       scale,
	}
}

func NewTransformFromMatrix(name string, matrix mgl32.Mat4) *Transform {
	t := NewDefaultTransform(name)
	t.matrix = &matrix
	return t
}

func (t *Transform) SetTranslation(translation mgl32.Vec3) {
	t.translation = translation
}

func (t *Transform) GetLocalMatrix() mgl32.Mat4 {
	if t.matrix != nil {
		return *t.matrix
	}
	translation := mgl32.Translate3D(t.translation.X(), t.translation.Y(), t.translation.Z())
	scale := mgl32.Scale3D(t.scale.X(), t.scale.Y(), t.scale.Z())
	return translation.Mul4(t.rotation.Mat4()).Mul4(scale)
}

// GetTransformMatrix returns the local matrix prefixed by every parent's matrix.
func (t *Transform) GetTransformMatrix() mgl32.Mat4 {
	if t.parent == nil {
		return t.GetLocalMatrix()
	}
	return t.parent.GetTransformMatrix().Mul4(t.GetLocalMatrix())
}

func (t *Transform) GetPosition() mgl32.Vec3 {
	return t.GetTransformMatrix().Col(3).Vec3()
}

func (t *Transform) ToString() string {
	return fmt.Sprintf("Transform{Name = %s, Position = %v}", t.nameOfOwner, t.GetPosition())
}
