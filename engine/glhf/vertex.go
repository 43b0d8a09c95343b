package glhf

import (
	"fmt"

	"github.com/pkg/errors"
)

type GlInt int32
type GlUInt uint32
type GlFloat float32

// AttrType is the type of a vertex attribute.
type AttrType int

const (
	Int AttrType = iota
	UInt
	Float
	Vec2
	Vec3
	Vec4
	Mat4
)

// Components returns the number of scalar elements one value of the attribute type occupies.
func (at AttrType) Components() int {
	switch at {
	case Int, UInt, Float:
		return 1
	case Vec2:
		return 2
	case Vec3:
		return 3
	case Vec4:
		return 4
	case Mat4:
		return 16
	default:
		return 0
	}
}

// Size returns the size of the attribute type in bytes.
func (at AttrType) Size() int {
	return at.Components() * 4
}

func (at AttrType) String() string {
	switch at {
	case Int:
		return "int"
	case UInt:
		return "uint"
	case Float:
		return "float"
	case Vec2:
		return "vec2"
	case Vec3:
		return "vec3"
	case Vec4:
		return "vec4"
	case Mat4:
		return "mat4"
	default:
		return fmt.Sprintf("AttrType(%d)", int(at))
	}
}

// Attr represents an arbitrary vertex attribute, such as a position or a normal.
type Attr struct {
	Name string
	Type AttrType
}

// AttrFormat defines the layout of one interleaved vertex record. Attributes are stored
// back to back in the order they appear here.
type AttrFormat []Attr

// Size returns the total size of one vertex record in bytes.
func (af AttrFormat) Size() int {
	total := 0
	for _, attr := range af {
		total += attr.Type.Size()
	}
	return total
}

// Stride returns the number of float32/int32 elements occupied by one vertex.
func (af AttrFormat) Stride() int {
	return af.Size() / 4
}

// AttrLayout locates one attribute inside an interleaved vertex buffer.
// All values are counted in scalar elements, not bytes.
type AttrLayout struct {
	Stride     int
	Offset     int
	Components int
}

// Layout returns where the attribute with the given name lives inside a vertex record.
func (af AttrFormat) Layout(name string) (AttrLayout, error) {
	offset := 0
	for _, attr := range af {
		switch attr.Type {
		case Int, UInt, Float, Vec2, Vec3, Vec4, Mat4:
		default:
			return AttrLayout{}, errors.Errorf("invalid attribute type for '%s': %v", attr.Name, attr.Type)
		}
		if attr.Name == name {
			return AttrLayout{
				Stride:     af.Stride(),
				Offset:     offset,
				Components: attr.Type.Components(),
			}, nil
		}
		offset += attr.Type.Components()
	}
	return AttrLayout{}, errors.Errorf("vertex format has no attribute named '%s'", name)
}

// Contains checks whether the format has an attribute with the given name.
func (af AttrFormat) Contains(name string) bool {
	for _, attr := range af {
		if attr.Name == name {
			return true
		}
	}
	return false
}
