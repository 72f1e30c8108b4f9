package renderer

// QuadVertices is a unit square centered on the origin, two floats (x, y) per vertex.
var QuadVertices = []float32{
	-0.5, -0.5, // 0
	0.5, -0.5, // 1
	0.5, 0.5, // 2
	-0.5, 0.5, // 3
}

// QuadIndices assembles QuadVertices into two counter-clockwise triangles.
var QuadIndices = []uint32{
	0, 1, 2,
	0, 2, 3,
}

const (
	quadComponents = 2 // floats per vertex
	floatSize      = 4
	indexSize      = 4
)
