package tetracull

import (
	"strconv"
	"strings"
)

// Scene represents a forest of Node3ds along with the entity tables (meshes, lights, and cameras) those nodes host.
// Nodes live in a flat list and are addressed by their index, which never changes; parent / child links are indices as well.
// A Scene is usually populated once by a loader (see LoadGLTFData()) and then driven every frame by a World.
type Scene struct {
	Name string

	nodes   []*Node3d
	roots   []int
	byType  [nodeTypeCount][]int
	meshes  []Mesh
	lights  []Light
	cameras []Camera

	// Nodes that were mutated (or created) since the last World.Update() call
	pendingUpdates []int
}

// NewScene returns a new, empty Scene.
func NewScene(name string) *Scene {
	return &Scene{
		Name: name,
	}
}

// AddNode adds a new Node3d of the NodeType given to the Scene as a child of the parent node index given (or as a root, if
// parent is -1), and returns the new node's index. The new node starts with an identity transform and is queued for an update.
func (scene *Scene) AddNode(name string, nodeType NodeType, parent int) int {

	if !nodeType.valid() {
		panic("tetracull: Scene.AddNode() given invalid NodeType " + nodeType.String())
	}

	if parent != -1 {
		scene.checkNode("AddNode", parent)
	}

	index := len(scene.nodes)
	node := newNode3d(scene, index, name, nodeType, parent)
	scene.nodes = append(scene.nodes, node)

	if parent == -1 {
		scene.roots = append(scene.roots, index)
	} else {
		p := scene.nodes[parent]
		p.children = append(p.children, index)
	}

	scene.byType[nodeType] = append(scene.byType[nodeType], index)
	scene.queueUpdate(index)

	return index

}

// Reparent moves the node at the index given to be a child of the new parent (or a root, if newParent is -1). The node keeps
// its local transform, and so moves along with its new parent. Reparenting a node underneath itself or one of its descendants panics.
func (scene *Scene) Reparent(index, newParent int) {

	scene.checkNode("Reparent", index)

	if newParent != -1 {
		scene.checkNode("Reparent", newParent)
		for p := newParent; p != -1; p = scene.nodes[p].parent {
			if p == index {
				panic("tetracull: Scene.Reparent() would create a cycle; node " + strconv.Itoa(index) + " is an ancestor of " + strconv.Itoa(newParent))
			}
		}
	}

	node := scene.nodes[index]

	if node.parent == newParent {
		return
	}

	if node.parent == -1 {
		scene.roots = removeIndex(scene.roots, index)
	} else {
		p := scene.nodes[node.parent]
		p.children = removeIndex(p.children, index)
	}

	node.parent = newParent

	if newParent == -1 {
		scene.roots = append(scene.roots, index)
	} else {
		p := scene.nodes[newParent]
		p.children = append(p.children, index)
	}

	// Force the node to be revisited, even if it's already flagged, as its parent matrix changed.
	node.needsUpdate = true
	scene.queueUpdate(index)

}

func removeIndex(indices []int, value int) []int {
	for i, v := range indices {
		if v == value {
			return append(indices[:i], indices[i+1:]...)
		}
	}
	return indices
}

// AddMesh adds a Mesh to the Scene's mesh table and returns its entity index.
func (scene *Scene) AddMesh(mesh Mesh) int {
	scene.meshes = append(scene.meshes, mesh)
	return len(scene.meshes) - 1
}

// AddLight adds a Light to the Scene's light table and returns its entity index.
func (scene *Scene) AddLight(light Light) int {
	scene.lights = append(scene.lights, light)
	return len(scene.lights) - 1
}

// AddCamera adds a Camera to the Scene's camera table and returns its entity index.
func (scene *Scene) AddCamera(camera Camera) int {
	scene.cameras = append(scene.cameras, camera)
	return len(scene.cameras) - 1
}

// AttachEntities appends the entity indices given to the node at the index given. The indices refer to the table matching the
// node's type (meshes for Mesh nodes, lights for Light nodes, cameras for Camera nodes). Empty nodes can't host entities, and
// out-of-range indices panic.
func (scene *Scene) AttachEntities(index int, entities ...int) {

	scene.checkNode("AttachEntities", index)
	node := scene.nodes[index]

	var tableSize int

	switch node.nodeType {
	case NodeTypeMesh:
		tableSize = len(scene.meshes)
	case NodeTypeLight:
		tableSize = len(scene.lights)
	case NodeTypeCamera:
		tableSize = len(scene.cameras)
	default:
		panic("tetracull: Scene.AttachEntities() called on node " + strconv.Itoa(index) + " of type " + node.nodeType.String() + ", which hosts no entities")
	}

	for _, e := range entities {
		if e < 0 || e >= tableSize {
			panic("tetracull: Scene.AttachEntities() entity index " + strconv.Itoa(e) + " out of range for " + node.nodeType.String() + " table of size " + strconv.Itoa(tableSize))
		}
	}

	node.entities = append(node.entities, entities...)

}

func (scene *Scene) checkNode(caller string, index int) {
	if index < 0 || index >= len(scene.nodes) {
		panic("tetracull: Scene." + caller + "() node index " + strconv.Itoa(index) + " out of range [0, " + strconv.Itoa(len(scene.nodes)) + ")")
	}
}

// queueUpdate adds the node index to the list of nodes World.Update() starts from.
func (scene *Scene) queueUpdate(index int) {
	scene.pendingUpdates = append(scene.pendingUpdates, index)
}

// Node returns the Node3d at the index given. Out-of-range indices panic.
func (scene *Scene) Node(index int) *Node3d {
	scene.checkNode("Node", index)
	return scene.nodes[index]
}

// NodeCount returns the number of nodes in the Scene.
func (scene *Scene) NodeCount() int {
	return len(scene.nodes)
}

// Roots returns the indices of the Scene's root nodes (nodes without a parent). The returned slice should not be modified.
func (scene *Scene) Roots() []int {
	return scene.roots
}

// NodesOfType returns the indices of every node of the NodeType given, in creation order. The returned slice should not be modified.
func (scene *Scene) NodesOfType(nodeType NodeType) []int {
	if !nodeType.valid() {
		return nil
	}
	return scene.byType[nodeType]
}

// FindNode returns the first node with the name given, or nil if there's no such node.
func (scene *Scene) FindNode(name string) *Node3d {
	for _, node := range scene.nodes {
		if node.name == name {
			return node
		}
	}
	return nil
}

// Mesh returns the Mesh at the entity index given. Out-of-range indices panic.
func (scene *Scene) Mesh(index int) Mesh {
	if index < 0 || index >= len(scene.meshes) {
		panic("tetracull: Scene.Mesh() index " + strconv.Itoa(index) + " out of range")
	}
	return scene.meshes[index]
}

// MeshCount returns the number of entries in the Scene's mesh table.
func (scene *Scene) MeshCount() int {
	return len(scene.meshes)
}

// Light returns the Light at the entity index given. Out-of-range indices panic.
func (scene *Scene) Light(index int) Light {
	if index < 0 || index >= len(scene.lights) {
		panic("tetracull: Scene.Light() index " + strconv.Itoa(index) + " out of range")
	}
	return scene.lights[index]
}

// LightCount returns the number of entries in the Scene's light table.
func (scene *Scene) LightCount() int {
	return len(scene.lights)
}

// Camera returns the Camera at the entity index given. Out-of-range indices panic.
func (scene *Scene) Camera(index int) Camera {
	if index < 0 || index >= len(scene.cameras) {
		panic("tetracull: Scene.Camera() index " + strconv.Itoa(index) + " out of range")
	}
	return scene.cameras[index]
}

// CameraCount returns the number of entries in the Scene's camera table.
func (scene *Scene) CameraCount() int {
	return len(scene.cameras)
}

// HierarchyAsString returns a string displaying the hierarchy of the Scene's nodes.
// This is a useful function to debug the layout of a node tree, for example.
// Each node shows its type by means of a prefix ("MESH" for mesh nodes, for example), along with its cached world position,
// truncated to the first 2 decimals.
func (scene *Scene) HierarchyAsString() string {

	var printNode func(index int, level int)

	builder := strings.Builder{}

	printNode = func(index int, level int) {

		node := scene.nodes[index]

		prefix := ""

		switch node.nodeType {
		case NodeTypeMesh:
			prefix = "MESH"
		case NodeTypeLight:
			prefix = "LIGHT"
		case NodeTypeCamera:
			prefix = "CAM"
		default:
			prefix = "NODE"
		}

		if level > 0 {
			for i := 0; i < level; i++ {
				builder.WriteString("    |")
			}
			builder.WriteString("\n")
		}

		for i := 0; i < level; i++ {
			builder.WriteString("    |")
		}

		wp := node.WorldPosition()
		floatTruncation := 2
		wpStr := "[" + strconv.FormatFloat(float64(wp.X), 'f', floatTruncation, 32) + ", " +
			strconv.FormatFloat(float64(wp.Y), 'f', floatTruncation, 32) + ", " +
			strconv.FormatFloat(float64(wp.Z), 'f', floatTruncation, 32) + "]"

		if level > 0 {
			builder.WriteString("-")
		}
		builder.WriteString(" [" + prefix + "] " + node.name + " : " + wpStr + "\n")

		for _, child := range node.children {
			printNode(child, level+1)
		}

	}

	for _, root := range scene.roots {
		printNode(root, 0)
	}

	return builder.String()
}
