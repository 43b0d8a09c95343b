package util

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/Tnze/go-mc/nbt"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/meshcast/engine/glhf"
	"github.com/pkg/errors"
)

/*
	TAG_Compound("collider", {
	    "name": TAG_String(),
	    "attributes": TAG_List([
	        TAG_Compound({
	            "name": TAG_String(),
	            "type": TAG_Int()
	        })
	        ...
	    ]),
	    "vertex_count": TAG_Int(),
	    "vertices": TAG_List(TAG_Float),
	    "indexed": TAG_Byte(),
	    "indices": TAG_Int_Array(),
	    "transform": TAG_List(TAG_Float) // empty or 16 values, column major
	})
*/
type ColliderSnapshot struct {
	Name        string              `nbt:"name"`
	Attributes  []AttributeSnapshot `nbt:"attributes"`
	VertexCount int32               `nbt:"vertex_count"`
	Vertices    []float32           `nbt:"vertices"`
	Indexed     byte                `nbt:"indexed"`
	Indices     []int32             `nbt:"indices"`
	Transform   []float32           `nbt:"transform"`
}

type AttributeSnapshot struct {
	Name string `nbt:"name"`
	Type int32  `nbt:"type"`
}

const colliderTagName = "collider"

// NewColliderSnapshot copies the collider's buffers. The transform is evaluated once and stored.
func NewColliderSnapshot(m *MeshCollider) ColliderSnapshot {
	snapshot := ColliderSnapshot{
		Name:        m.name,
		Attributes:  make([]AttributeSnapshot, len(m.VertexFormat)),
		VertexCount: int32(m.VertexCount),
		Vertices:    make([]float32, len(m.VertexData)),
		Indices:     make([]int32, len(m.VertexIndices)),
		Transform:   []float32{},
	}
	for i, attr := range m.VertexFormat {
		snapshot.Attributes[i] = AttributeSnapshot{Name: attr.Name, Type: int32(attr.Type)}
	}
	for i, value := range m.VertexData {
		snapshot.Vertices[i] = float32(value)
	}
	if m.VertexIndices != nil {
		snapshot.Indexed = 1
		for i, index := range m.VertexIndices {
			snapshot.Indices[i] = int32(index)
		}
	}
	if m.TransformFunc != nil {
		matrix := m.TransformFunc()
		snapshot.Transform = matrix[:]
	}
	return snapshot
}

// Collider rebuilds a MeshCollider. Malformed layouts surface on the first query.
func (s ColliderSnapshot) Collider() (*MeshCollider, error) {
	format := make(glhf.AttrFormat, len(s.Attributes))
	for i, attr := range s.Attributes {
		format[i] = glhf.Attr{Name: attr.Name, Type: glhf.AttrType(attr.Type)}
	}
	vertexData := make([]glhf.GlFloat, len(s.Vertices))
	for i, value := range s.Vertices {
		vertexData[i] = glhf.GlFloat(value)
	}
	var indices []uint32
	if s.Indexed != 0 {
		indices = make([]uint32, len(s.Indices))
		for i, index := range s.Indices {
			if index < 0 {
				return nil, errors.Errorf("collider '%s' has negative vertex index %d", s.Name, index)
			}
			indices[i] = uint32(index)
		}
	}
	collider := NewMeshCollider(s.Name, format, vertexData, indices)
	collider.VertexCount = int(s.VertexCount)
	switch len(s.Transform) {
	case 0:
	case 16:
		var transform mgl32.Mat4
		copy(transform[:], s.Transform)
		collider.TransformFunc = func() mgl32.Mat4 { return transform }
	default:
		return nil, errors.Errorf("collider '%s' has a transform with %d values, expected 16", s.Name, len(s.Transform))
	}
	return collider, nil
}

func WriteColliderNBT(w io.Writer, m *MeshCollider) error {
	gzipWriter := gzip.NewWriter(w)
	encoder := nbt.NewEncoder(gzipWriter)
	if err := encoder.Encode(NewColliderSnapshot(m), colliderTagName); err != nil {
		gzipWriter.Close()
		return errors.Wrapf(err, "encoding collider '%s'", m.name)
	}
	return errors.Wrap(gzipWriter.Close(), "flushing collider snapshot")
}

func ReadColliderNBT(r io.Reader) (*MeshCollider, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "collider snapshot is not gzip compressed")
	}
	defer gzipReader.Close()
	decoder := nbt.NewDecoder(gzipReader)
	var snapshot ColliderSnapshot
	if _, decErr := decoder.Decode(&snapshot); decErr != nil {
		return nil, errors.Wrap(decErr, "decoding collider snapshot")
	}
	return snapshot.Collider()
}

func SaveColliderNBT(filename string, m *MeshCollider) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "could not create '%s'", filename)
	}
	if err = WriteColliderNBT(file, m); err != nil {
		file.Close()
		return err
	}
	if err = file.Close(); err != nil {
		return errors.Wrapf(err, "could not close '%s'", filename)
	}
	LogIOInfo(fmt.Sprintf("[SaveColliderNBT] Wrote '%s' to '%s'", m.name, filename))
	return nil
}

func LoadColliderNBT(filename string) (*MeshCollider, error) {
	file, err := os.Open(filename)
	if err != nil {
		LogIOError(fmt.Sprintf("[LoadColliderNBT] %s", err.Error()))
		return nil, errors.Wrapf(err, "could not open '%s'", filename)
	}
	defer file.Close()
	collider, err := ReadColliderNBT(file)
	if err != nil {
		return nil, errors.Wrapf(err, "could not load '%s'", filename)
	}
	LogIOInfo(fmt.Sprintf("[LoadColliderNBT] Loaded '%s' from '%s'", collider.name, filename))
	return collider, nil
}
