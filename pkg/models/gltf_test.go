package models

import (
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
)

func TestReadCubeGLBInvalidPath(t *testing.T) {
	_, err := ReadCubeGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestNewCubeDocumentLayout(t *testing.T) {
	doc := NewCubeDocument(NewCube())

	if len(doc.Meshes) != 1 || len(doc.Meshes[0].Primitives) != 1 {
		t.Fatalf("expected one mesh with one primitive")
	}
	prim := doc.Meshes[0].Primitives[0]
	if prim.Mode != gltf.PrimitiveLines {
		t.Errorf("primitive mode = %v, want LINES", prim.Mode)
	}
	if got := doc.Accessors[0].Count; got != VertexCount {
		t.Errorf("position count = %d, want %d", got, VertexCount)
	}
	if got := doc.Accessors[1].Count; got != 2*EdgeCount {
		t.Errorf("index count = %d, want %d", got, 2*EdgeCount)
	}
	if got := doc.Buffers[0].ByteLength; got%4 != 0 {
		t.Errorf("buffer length %d is not 4-byte aligned", got)
	}
}

func TestCubeFromDocumentRoundTrip(t *testing.T) {
	want := NewCube()

	got, err := cubeFromDocument(NewCubeDocument(want))
	if err != nil {
		t.Fatalf("cubeFromDocument: %v", err)
	}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExportCubeGLB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.glb")

	if err := ExportCubeGLB(path, NewCube()); err != nil {
		t.Fatalf("ExportCubeGLB: %v", err)
	}

	got, err := ReadCubeGLB(path)
	if err != nil {
		t.Fatalf("ReadCubeGLB: %v", err)
	}
	if got != NewCube() {
		t.Errorf("read back %v", got)
	}
}

func TestCubeFromDocumentRejectsTriangles(t *testing.T) {
	doc := NewCubeDocument(NewCube())
	doc.Meshes[0].Primitives[0].Mode = gltf.PrimitiveTriangles

	if _, err := cubeFromDocument(doc); err == nil {
		t.Error("expected error for a TRIANGLES primitive")
	}
}

func TestCubeFromDocumentRejectsWrongEdges(t *testing.T) {
	doc := NewCubeDocument(NewCube())
	data := doc.Buffers[0].Data
	// swap the first index pair: 0-1 becomes 1-0
	off := VertexCount * 12
	data[off], data[off+2] = data[off+2], data[off]

	if _, err := cubeFromDocument(doc); err == nil {
		t.Error("expected error for reordered edge indices")
	}
}

func TestCubeFromDocumentRejectsDanglingReferences(t *testing.T) {
	tests := []struct {
		name   string
		mangle func(doc *gltf.Document)
	}{
		{"position view", func(doc *gltf.Document) { doc.Accessors[0].BufferView = gltf.Index(7) }},
		{"index view", func(doc *gltf.Document) { doc.Accessors[1].BufferView = gltf.Index(2) }},
		{"missing view", func(doc *gltf.Document) { doc.Accessors[0].BufferView = nil }},
		{"buffer", func(doc *gltf.Document) { doc.BufferViews[1].Buffer = 3 }},
		{"no buffers", func(doc *gltf.Document) { doc.Buffers = nil }},
		{"negative offset", func(doc *gltf.Document) { doc.BufferViews[0].ByteOffset = -4 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := NewCubeDocument(NewCube())
			tc.mangle(doc)

			if _, err := cubeFromDocument(doc); err == nil {
				t.Errorf("expected error for dangling %s", tc.name)
			}
		})
	}
}
