package models

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/spincube/pkg/math3d"
)

// generator is recorded in the asset block of exported files.
const generator = "spincube"

// NewCubeDocument builds a glTF document holding the cube as a single LINES
// primitive: one VEC3 float position accessor and one ushort index accessor
// with two indices per edge.
func NewCubeDocument(c Cube) *gltf.Document {
	edges := Edges()

	// Positions first, indices after; both sections are 4-byte aligned.
	posLen := len(c) * 12
	idxLen := len(edges) * 2 * 2
	data := make([]byte, posLen+idxLen)

	for i, v := range c {
		f := v.Float32()
		for j := range 3 {
			binary.LittleEndian.PutUint32(data[i*12+j*4:], math.Float32bits(f[j]))
		}
	}
	for i, e := range edges {
		off := posLen + i*4
		binary.LittleEndian.PutUint16(data[off:], uint16(e[0]))
		binary.LittleEndian.PutUint16(data[off+2:], uint16(e[1]))
	}

	doc := &gltf.Document{
		Asset: gltf.Asset{Version: "2.0", Generator: generator},
		Buffers: []*gltf.Buffer{
			{ByteLength: len(data), Data: data},
		},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: posLen, Target: gltf.TargetArrayBuffer},
			{Buffer: 0, ByteOffset: posLen, ByteLength: idxLen, Target: gltf.TargetElementArrayBuffer},
		},
		Accessors: []*gltf.Accessor{
			{
				Name:          "position",
				BufferView:    gltf.Index(0),
				ComponentType: gltf.ComponentFloat,
				Count:         len(c),
				Type:          gltf.AccessorVec3,
			},
			{
				Name:          "edges",
				BufferView:    gltf.Index(1),
				ComponentType: gltf.ComponentUshort,
				Count:         len(edges) * 2,
				Type:          gltf.AccessorScalar,
			},
		},
		Meshes: []*gltf.Mesh{
			{
				Name: "cube",
				Primitives: []*gltf.Primitive{
					{
						Attributes: map[string]int{gltf.POSITION: 0},
						Indices:    gltf.Index(1),
						Mode:       gltf.PrimitiveLines,
					},
				},
			},
		},
		Nodes: []*gltf.Node{
			{Name: "cube", Mesh: gltf.Index(0)},
		},
		Scenes: []*gltf.Scene{
			{Name: "scene", Nodes: []int{0}},
		},
		Scene: gltf.Index(0),
	}

	return doc
}

// ExportCubeGLB writes the cube wireframe to a binary glTF (.glb) file.
func ExportCubeGLB(path string, c Cube) error {
	if err := gltf.SaveBinary(NewCubeDocument(c), path); err != nil {
		return fmt.Errorf("save glb: %w", err)
	}
	return nil
}

// ReadCubeGLB loads a cube written by ExportCubeGLB.
// The file must hold exactly one LINES primitive with 8 positions whose
// indices match the cube edge scheme.
func ReadCubeGLB(path string) (Cube, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return Cube{}, fmt.Errorf("open gltf: %w", err)
	}
	return cubeFromDocument(doc)
}

func cubeFromDocument(doc *gltf.Document) (Cube, error) {
	var c Cube

	if len(doc.Meshes) != 1 || len(doc.Meshes[0].Primitives) != 1 {
		return c, fmt.Errorf("expected one mesh with one primitive")
	}
	prim := doc.Meshes[0].Primitives[0]
	if prim.Mode != gltf.PrimitiveLines {
		return c, fmt.Errorf("expected LINES primitive, got %v", prim.Mode)
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return c, fmt.Errorf("primitive has no POSITION attribute")
	}
	positions, err := readVec3Accessor(doc, posIdx)
	if err != nil {
		return c, fmt.Errorf("read positions: %w", err)
	}
	if len(positions) != VertexCount {
		return c, fmt.Errorf("expected %d positions, got %d", VertexCount, len(positions))
	}
	copy(c[:], positions)

	if prim.Indices == nil {
		return c, fmt.Errorf("primitive has no indices")
	}
	indices, err := readIndices(doc, *prim.Indices)
	if err != nil {
		return c, fmt.Errorf("read indices: %w", err)
	}
	edges := Edges()
	if len(indices) != len(edges)*2 {
		return c, fmt.Errorf("expected %d indices, got %d", len(edges)*2, len(indices))
	}
	for i, e := range edges {
		if indices[2*i] != e[0] || indices[2*i+1] != e[1] {
			return c, fmt.Errorf("edge %d is %d-%d, want %d-%d", i, indices[2*i], indices[2*i+1], e[0], e[1])
		}
	}

	return c, nil
}

// readVec3Accessor reads Vec3 data from a GLTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v / %v", accessor.Type, accessor.ComponentType)
	}

	buf, start, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]math3d.Vec3, accessor.Count)
	for i := range accessor.Count {
		off := start + i*stride
		if off+12 > len(buf) {
			return nil, fmt.Errorf("accessor overruns buffer")
		}
		result[i] = math3d.V3(
			float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))),
			float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[off+4:]))),
			float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[off+8:]))),
		)
	}

	return result, nil
}

// readIndices reads index data from a GLTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", accessor.ComponentType)
	}

	buf, start, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range accessor.Count {
		off := start + i*stride
		if off+size > len(buf) {
			return nil, fmt.Errorf("accessor overruns buffer")
		}
		switch size {
		case 1:
			result[i] = int(buf[off])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(buf[off:]))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(buf[off:]))
		}
	}

	return result, nil
}

// accessorBytes resolves the embedded buffer behind an accessor and returns
// it with the first element offset and the element stride.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) ([]byte, int, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}
	viewIdx := *accessor.BufferView
	if viewIdx < 0 || viewIdx >= len(doc.BufferViews) || doc.BufferViews[viewIdx] == nil {
		return nil, 0, 0, fmt.Errorf("buffer view %d out of range", viewIdx)
	}
	bufferView := doc.BufferViews[viewIdx]
	if bufferView.Buffer < 0 || bufferView.Buffer >= len(doc.Buffers) || doc.Buffers[bufferView.Buffer] == nil {
		return nil, 0, 0, fmt.Errorf("buffer %d out of range", bufferView.Buffer)
	}
	buffer := doc.Buffers[bufferView.Buffer]

	if buffer.URI != "" && len(buffer.Data) == 0 {
		return nil, 0, 0, fmt.Errorf("external buffers not supported")
	}
	if buffer.Data == nil {
		return nil, 0, 0, fmt.Errorf("buffer has no data")
	}

	stride := bufferView.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	start := bufferView.ByteOffset + accessor.ByteOffset
	if start < 0 || stride < elemSize {
		return nil, 0, 0, fmt.Errorf("invalid buffer view layout")
	}
	return buffer.Data, start, stride, nil
}
