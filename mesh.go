package tetracull

// Mesh represents an entry in a Scene's mesh table: a renderable primitive with a local-space bounding box. The vertex data itself
// is opaque to Tetracull and may be stored in Payload for the renderer's use.
type Mesh struct {
	Name        string
	Bounds      AABB // The local-space bounds of the Mesh's vertices
	VertexCount int
	Payload     any // Renderer-specific data (vertex buffers, materials, etc)
}

// NewMesh takes a name and the vertex positions of a mesh, and returns a new Mesh with its Bounds set to tightly contain them.
// With no positions given, the Mesh's Bounds are empty.
func NewMesh(name string, positions ...Vector3) Mesh {
	return Mesh{
		Name:        name,
		Bounds:      NewAABBFromPoints(positions...),
		VertexCount: len(positions),
	}
}

// NewMeshFromBounds returns a new Mesh with the local-space Bounds given. This is useful when the bounds are already known
// (as with a glTF accessor's min and max values).
func NewMeshFromBounds(name string, bounds AABB, vertexCount int) Mesh {
	return Mesh{
		Name:        name,
		Bounds:      bounds,
		VertexCount: vertexCount,
	}
}

// NewCubeMesh returns a Mesh for a cube centered on the origin with the edge length given, consisting of 12 triangles (36 vertices).
func NewCubeMesh(name string, size float32) Mesh {
	h := size / 2
	mesh := NewMeshFromBounds(name, NewAABBFromPoints(Vector3{-h, -h, -h}, Vector3{h, h, h}), 36)
	return mesh
}

// Dimensions returns the width, height, and depth of the Mesh's bounds.
func (mesh Mesh) Dimensions() Vector3 {
	return mesh.Bounds.Size()
}

// MaxSpan returns the maximum span out of the Mesh's width, height, and depth.
func (mesh Mesh) MaxSpan() float32 {
	size := mesh.Bounds.Size()
	return size.Max(Vector3{size.Y, size.Z, size.X}).Max(Vector3{size.Z, size.X, size.Y}).X
}
