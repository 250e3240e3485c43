package tetracull

import (
	"strconv"
)

// NodeType represents what kind of entity a Node3d hosts.
type NodeType int

const (
	NodeTypeEmpty  NodeType = iota // NodeTypeEmpty represents a plain transform node that hosts nothing
	NodeTypeMesh                   // NodeTypeMesh represents a node hosting one or more Meshes
	NodeTypeLight                  // NodeTypeLight represents a node hosting a Light
	NodeTypeCamera                 // NodeTypeCamera represents a node hosting a Camera

	nodeTypeCount
)

func (nt NodeType) String() string {
	switch nt {
	case NodeTypeEmpty:
		return "Empty"
	case NodeTypeMesh:
		return "Mesh"
	case NodeTypeLight:
		return "Light"
	case NodeTypeCamera:
		return "Camera"
	}
	return "NodeType(" + strconv.Itoa(int(nt)) + ")"
}

func (nt NodeType) valid() bool {
	return nt >= NodeTypeEmpty && nt < nodeTypeCount
}

// Node3d represents a transform node in a Scene. A Node3d is identified by its index in the Scene's node list, which is stable
// for the node's lifetime; parents and children are referred to by index as well.
//
// Setting a Node3d's position, rotation, or scale marks it as needing an update and queues it on its Scene; its world matrix
// (and that of all of its children) is refreshed on the next call to World.Update().
type Node3d struct {
	name     string
	nodeType NodeType
	index    int
	scene    *Scene

	position Vector3
	scale    Vector3
	rotation Quaternion

	worldMatrix Matrix4
	needsUpdate bool

	entities []int
	parent   int
	children []int

	data any // A place to store a pointer to something if you need it
}

func newNode3d(scene *Scene, index int, name string, nodeType NodeType, parent int) *Node3d {
	return &Node3d{
		name:        name,
		nodeType:    nodeType,
		index:       index,
		scene:       scene,
		scale:       Vector3{1, 1, 1},
		rotation:    NewQuaternionIdentity(),
		worldMatrix: NewMatrix4(),
		needsUpdate: true,
		parent:      parent,
	}
}

// Name returns the node's name.
func (node *Node3d) Name() string {
	return node.name
}

// SetName sets the node's name.
func (node *Node3d) SetName(name string) {
	node.name = name
}

// Type returns the NodeType for this node.
func (node *Node3d) Type() NodeType {
	return node.nodeType
}

// Index returns the node's index in its Scene.
func (node *Node3d) Index() int {
	return node.index
}

// Scene returns the Scene the node belongs to.
func (node *Node3d) Scene() *Scene {
	return node.scene
}

// Parent returns the index of the node's parent, or -1 if the node is a root.
func (node *Node3d) Parent() int {
	return node.parent
}

// Children returns the indices of the node's children, in order. The returned slice belongs to the node and should not be modified.
func (node *Node3d) Children() []int {
	return node.children
}

// Entities returns the entity indices the node hosts. For a Mesh node these index into the Scene's Mesh table, for a Light node
// the Light table, and for a Camera node the Camera table. The returned slice belongs to the node and should not be modified.
func (node *Node3d) Entities() []int {
	return node.entities
}

// SetData sets user-customizeable data that could be usefully stored on this node.
func (node *Node3d) SetData(data any) {
	node.data = data
}

// Data returns the user-customizeable data that was set on this node.
func (node *Node3d) Data() any {
	return node.data
}

// NeedsUpdate returns true if the node's world matrix is stale and will be recomputed on the next World.Update().
func (node *Node3d) NeedsUpdate() bool {
	return node.needsUpdate
}

// markDirty flags the node as needing an update and queues it on the Scene if it wasn't already flagged.
func (node *Node3d) markDirty() {
	if node.needsUpdate {
		return
	}
	node.needsUpdate = true
	node.scene.queueUpdate(node.index)
}

// LocalPosition returns the node's position relative to its parent.
func (node *Node3d) LocalPosition() Vector3 {
	return node.position
}

// SetPosition sets the node's position relative to its parent.
func (node *Node3d) SetPosition(position Vector3) {
	node.position = position
	node.markDirty()
}

// Move moves the node by the x, y, and z values given, relative to its parent.
func (node *Node3d) Move(x, y, z float32) {
	node.SetPosition(node.position.Add(Vector3{x, y, z}))
}

// LocalScale returns the node's scale relative to its parent.
func (node *Node3d) LocalScale() Vector3 {
	return node.scale
}

// SetScale sets the node's scale relative to its parent.
func (node *Node3d) SetScale(scale Vector3) {
	node.scale = scale
	node.markDirty()
}

// LocalRotation returns the node's rotation relative to its parent.
func (node *Node3d) LocalRotation() Quaternion {
	return node.rotation
}

// SetRotation sets the node's rotation relative to its parent.
func (node *Node3d) SetRotation(rotation Quaternion) {
	node.rotation = rotation.Unit()
	node.markDirty()
}

// Rotate rotates the node by the angle given (in radians) around the axis given, on top of its existing rotation.
func (node *Node3d) Rotate(axis Vector3, angle float32) {
	node.SetRotation(node.rotation.Mult(NewQuaternionFromAxisAngle(axis, angle)))
}

// SetTransform sets the node's local position, rotation, and scale from the Matrix4 given. Any skew in the matrix is discarded.
func (node *Node3d) SetTransform(transform Matrix4) {
	position, scale, rotation := transform.Decompose()
	node.position = position
	node.scale = scale
	node.rotation = rotation.ToQuaternion()
	node.markDirty()
}

// LocalMatrix returns the node's local transform as a Matrix4 (scale, then rotation, then translation).
func (node *Node3d) LocalMatrix() Matrix4 {

	// S * R * T

	transform := NewMatrix4Scale(node.scale.X, node.scale.Y, node.scale.Z)
	transform = transform.Mult(node.rotation.ToMatrix4())
	transform = transform.Mult(NewMatrix4Translate(node.position.X, node.position.Y, node.position.Z))
	return transform

}

// WorldMatrix returns the node's cached world transform, as computed by the last World.Update() call.
func (node *Node3d) WorldMatrix() Matrix4 {
	return node.worldMatrix
}

// WorldPosition returns the node's cached world position.
func (node *Node3d) WorldPosition() Vector3 {
	return node.worldMatrix.RowAsVector3(3)
}

// updateTransform recomputes the node's world matrix from the parent world matrix given and clears its update flag.
func (node *Node3d) updateTransform(parentWorld Matrix4) Matrix4 {
	node.worldMatrix = node.LocalMatrix().Mult(parentWorld)
	node.needsUpdate = false
	return node.worldMatrix
}
