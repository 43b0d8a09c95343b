package util

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/meshcast/engine/glhf"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// GLTFColliderFormat is the vertex layout of colliders built from glTF primitives.
var GLTFColliderFormat = glhf.AttrFormat{
	{Name: PositionAttribute, Type: glhf.Vec3},
	{Name: "normal", Type: glhf.Vec3},
}

// LoadColliderGLTF opens a .gltf or .glb file and returns one collider per triangle
// primitive reachable from the default scene.
func LoadColliderGLTF(filename string) ([]*MeshCollider, error) {
	doc, err := gltf.Open(filename)
	if err != nil {
		LogIOError(fmt.Sprintf("[LoadColliderGLTF] %s", err.Error()))
		return nil, errors.Wrapf(err, "could not open '%s'", filename)
	}
	colliders, err := CollidersFromDocument(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "could not build colliders from '%s'", filename)
	}
	LogIOInfo(fmt.Sprintf("[LoadColliderGLTF] Loaded %d collider(s) from '%s'", len(colliders), filename))
	return colliders, nil
}

// CollidersFromDocument walks the default scene of doc. Every node that references a mesh
// yields one collider per triangle primitive, carrying the node's world transform.
// Instances of the same mesh share their vertex data.
func CollidersFromDocument(doc *gltf.Document) ([]*MeshCollider, error) {
	if len(doc.Scenes) == 0 {
		return nil, errors.New("document has no scenes")
	}
	defaultSceneIndex := 0
	if doc.Scene != nil {
		defaultSceneIndex = int(*doc.Scene)
	}
	if defaultSceneIndex >= len(doc.Scenes) {
		return nil, errors.Errorf("default scene %d does not exist", defaultSceneIndex)
	}
	defaultScene := doc.Scenes[defaultSceneIndex]

	flatMeshes := make([][]*MeshCollider, len(doc.Meshes))
	var result []*MeshCollider
	var err error
	for _, nodeIndex := range defaultScene.Nodes {
		result, err = collectNodeColliders(doc, flatMeshes, nodeIndex, nil, result)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func collectNodeColliders(doc *gltf.Document, flatMeshes [][]*MeshCollider, nodeIndex uint32, parent *Transform, result []*MeshCollider) ([]*MeshCollider, error) {
	if int(nodeIndex) >= len(doc.Nodes) {
		return nil, errors.Errorf("node %d does not exist", nodeIndex)
	}
	docNode := doc.Nodes[nodeIndex]
	transform := nodeTransform(docNode)
	transform.SetParent(parent)

	if docNode.Mesh != nil {
		meshIndex := *docNode.Mesh
		if int(meshIndex) >= len(doc.Meshes) {
			return nil, errors.Errorf("node %d references missing mesh %d", nodeIndex, meshIndex)
		}
		if flatMeshes[meshIndex] == nil {
			loaded, err := loadMeshColliders(doc, meshIndex)
			if err != nil {
				return nil, err
			}
			flatMeshes[meshIndex] = loaded
		}
		for _, primitive := range flatMeshes[meshIndex] {
			instance := *primitive
			instance.TransformFunc = transform.GetTransformMatrix
			if docNode.Name != "" {
				instance.name = docNode.Name + "/" + primitive.name
			}
			result = append(result, &instance)
		}
	}

	var err error
	for _, childNodeIndex := range docNode.Children {
		result, err = collectNodeColliders(doc, flatMeshes, childNodeIndex, transform, result)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func nodeTransform(node *gltf.Node) *Transform {
	if matrix := node.MatrixOrDefault(); matrix != gltf.DefaultMatrix {
		return NewTransformFromMatrix(node.Name, mgl32.Mat4(matrix))
	}
	t := node.TranslationOrDefault()
	r := node.RotationOrDefault()
	s := node.ScaleOrDefault()
	transform := NewTransform(
		mgl32.Vec3{t[0], t[1], t[2]},
		mgl32.Quat{W: r[3], V: mgl32.Vec3{r[0], r[1], r[2]}},
		mgl32.Vec3{s[0], s[1], s[2]},
	)
	transform.SetName(node.Name)
	return transform
}

// loadMeshColliders reads every triangle primitive of a mesh into an untransformed collider.
func loadMeshColliders(doc *gltf.Document, meshIndex uint32) ([]*MeshCollider, error) {
	result := make([]*MeshCollider, 0)
	mesh := doc.Meshes[meshIndex]
	for primitiveIndex, subMesh := range mesh.Primitives {
		name := fmt.Sprintf("%s#%d", mesh.Name, primitiveIndex)
		if subMesh.Mode != gltf.PrimitiveTriangles {
			LogIOWarning(fmt.Sprintf("[LoadColliderGLTF] Skipping '%s': only triangles are supported", name))
			continue
		}
		indexOfPositions, ok := subMesh.Attributes["POSITION"]
		if !ok {
			LogIOWarning(fmt.Sprintf("[LoadColliderGLTF] Skipping '%s': no POSITION attribute", name))
			continue
		}

		var vertBuffer [][3]float32
		var normalsBuffer [][3]float32
		var indicesBuffer []uint32
		var err error
		vertBuffer, err = modeler.ReadPosition(doc, doc.Accessors[indexOfPositions], vertBuffer)
		if err != nil {
			return nil, errors.Wrapf(err, "reading positions of '%s'", name)
		}
		if indexOfNormals, hasNormals := subMesh.Attributes["NORMAL"]; hasNormals {
			normalsBuffer, err = modeler.ReadNormal(doc, doc.Accessors[indexOfNormals], normalsBuffer)
			if err != nil {
				return nil, errors.Wrapf(err, "reading normals of '%s'", name)
			}
		}
		if subMesh.Indices != nil {
			indicesBuffer, err = modeler.ReadIndices(doc, doc.Accessors[*subMesh.Indices], indicesBuffer)
			if err != nil {
				return nil, errors.Wrapf(err, "reading indices of '%s'", name)
			}
		}

		// merge them..
		meshVertices := make([]glhf.GlFloat, 0, len(vertBuffer)*GLTFColliderFormat.Stride())
		for i := 0; i < len(vertBuffer); i++ {
			var normal [3]float32
			if i < len(normalsBuffer) {
				normal = normalsBuffer[i]
			}
			meshVertices = append(
				meshVertices,

				glhf.GlFloat(vertBuffer[i][0]),
				glhf.GlFloat(vertBuffer[i][1]),
				glhf.GlFloat(vertBuffer[i][2]),

				glhf.GlFloat(normal[0]),
				glhf.GlFloat(normal[1]),
				glhf.GlFloat(normal[2]),
			)
		}
		result = append(result, NewMeshCollider(name, GLTFColliderFormat, meshVertices, indicesBuffer))
	}
	return result, nil
}
