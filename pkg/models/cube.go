// Package models provides the wireframe cube model for spincube.
package models

import (
	"github.com/taigrr/spincube/pkg/math3d"
)

// HalfExtent is the distance from the cube centre to each face.
const HalfExtent = 1.0

// VertexCount is the number of cube corners.
const VertexCount = 8

// EdgeCount is the number of cube edges.
const EdgeCount = 12

// Cube holds the eight corners of [-1,1]^3.
//
// Vertices 0-3 form the bottom face (y = -1) and 4-7 the top face (y = +1),
// listed in the same winding, so vertex i and i+4 always share an edge:
//
//	    7------6
//	  .'|    .'|
//	 4------5  |
//	 |  3---|--2
//	 |.'    |.'
//	 0------1
type Cube [VertexCount]math3d.Vec3

// Edge is a pair of vertex indices into a Cube.
type Edge [2]int

// NewCube returns the unit cube in its fixed index order.
func NewCube() Cube {
	const h = HalfExtent
	return Cube{
		{X: -h, Y: -h, Z: -h}, // 0: bottom
		{X: h, Y: -h, Z: -h},  // 1
		{X: h, Y: -h, Z: h},   // 2
		{X: -h, Y: -h, Z: h},  // 3
		{X: -h, Y: h, Z: -h},  // 4: top
		{X: h, Y: h, Z: -h},   // 5
		{X: h, Y: h, Z: h},    // 6
		{X: -h, Y: h, Z: h},   // 7
	}
}

// Edges returns the 12 cube edges derived from the vertex numbering:
// the bottom ring, the four uprights, then the top ring.
func Edges() [EdgeCount]Edge {
	var edges [EdgeCount]Edge
	n := 0

	// bottom: 0-1, 1-2, 2-3, 3-0
	for i := range 4 {
		edges[n] = Edge{i, (i + 1) % 4}
		n++
	}

	// uprights: 0-4, 1-5, 2-6, 3-7
	for i := range 4 {
		edges[n] = Edge{i, i + 4}
		n++
	}

	// top: 4-5, 5-6, 6-7, 7-4
	for i := range 4 {
		edges[n] = Edge{i + 4, (i+1)%4 + 4}
		n++
	}

	return edges
}
