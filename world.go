package tetracull

import (
	"strconv"

	"github.com/solarlune/tetracull/log"
)

// VisibleEntity represents a single mesh that survived a visibility query, ready to be handed to a renderer.
// Query results are allocated fresh for each call; the renderer is free to keep them.
type VisibleEntity struct {
	World  Matrix4 // The world matrix of the node hosting the mesh
	Mesh   int     // The index of the mesh in the Scene's mesh table
	Node   int     // The index of the node hosting the mesh
	Bounds AABB    // The world AABB that was tested against the Frustum (that of the whole node)
}

type updateEntry struct {
	node        int
	parentWorld Matrix4
}

// World drives a Scene each frame: it propagates transform changes down the node hierarchy, maintains a BVH over the world
// bounds of the Scene's mesh nodes, and answers visibility queries against a Frustum.
//
// A World is not safe for concurrent use. Each frame, call Update(), then UpdateBVH() (or BuildBVH() / RefitBVH()), then the
// visibility queries, in that order, and don't mutate nodes while doing so.
type World struct {
	Scene   *Scene
	Options WorldOptions

	bvh           *BVH
	bvhBuilt      bool
	builtEntities []int // Mesh nodes the BVH was last built over, in Scene order

	entityNodes  []int
	entityBounds []AABB
	entityRefs   []EntityRef

	updateStack       []updateEntry
	lastUpdateCount   int
	intersectionTests int

	logger log.Logger
}

// NewWorld returns a new World driving the Scene given.
func NewWorld(scene *Scene, options WorldOptions) *World {
	return &World{
		Scene:   scene,
		Options: options,
		bvh:     NewBVH(),
		logger:  log.New("world"),
	}
}

// Update recomputes the world matrix of every node that was created or mutated since the last call, along with all of their
// descendants. Nodes are processed from an explicit stack of (node, parent world matrix) pairs; a parent is always processed
// before its children, so no child is ever computed from a stale parent matrix.
// Nodes queued for update whose ancestors are also queued are skipped, as their ancestor's pass reaches them anyway.
func (world *World) Update() {

	scene := world.Scene
	pending := scene.pendingUpdates
	stack := world.updateStack[:0]

	// Pushed in reverse so that nodes are processed in the order they were queued.
	for i := len(pending) - 1; i >= 0; i-- {

		node := scene.nodes[pending[i]]

		if !node.needsUpdate || world.ancestorNeedsUpdate(node) {
			continue
		}

		parentWorld := identityMatrix
		if node.parent != -1 {
			parentWorld = scene.nodes[node.parent].worldMatrix
		}

		stack = append(stack, updateEntry{node: node.index, parentWorld: parentWorld})

	}

	count := 0

	for len(stack) > 0 {

		entry := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := scene.nodes[entry.node]

		// Already processed this pass
		if !node.needsUpdate {
			continue
		}

		nodeWorld := node.updateTransform(entry.parentWorld)
		count++

		for _, c := range node.children {
			scene.nodes[c].needsUpdate = true
			stack = append(stack, updateEntry{node: c, parentWorld: nodeWorld})
		}

	}

	scene.pendingUpdates = scene.pendingUpdates[:0]
	world.updateStack = stack[:0]
	world.lastUpdateCount = count

}

func (world *World) ancestorNeedsUpdate(node *Node3d) bool {
	for p := node.parent; p != -1; p = world.Scene.nodes[p].parent {
		if world.Scene.nodes[p].needsUpdate {
			return true
		}
	}
	return false
}

// LastUpdateCount returns how many nodes had their world matrix recomputed by the most recent Update() call.
func (world *World) LastUpdateCount() int {
	return world.lastUpdateCount
}

// EntityBounds returns the world AABB of the mesh node at the index given: the union of its meshes' local bounds, each
// transformed by the node's world matrix. The second return value is false if the node hosts no meshes.
func (world *World) EntityBounds(nodeIndex int) (AABB, bool) {

	node := world.Scene.Node(nodeIndex)

	if node.nodeType != NodeTypeMesh || len(node.entities) == 0 {
		return NewAABB(), false
	}

	box := NewAABB()
	for _, e := range node.entities {
		box = box.Extend(world.Scene.meshes[e].Bounds.Transform(node.worldMatrix))
	}

	return box, true

}

func (world *World) entityBoundsUnchecked(nodeIndex int) AABB {
	box, _ := world.EntityBounds(nodeIndex)
	return box
}

// collectEntities gathers the Scene's mesh-bearing nodes, in Scene order, into entityNodes.
func (world *World) collectEntities() {
	world.entityNodes = world.entityNodes[:0]
	for _, index := range world.Scene.NodesOfType(NodeTypeMesh) {
		if len(world.Scene.nodes[index].entities) > 0 {
			world.entityNodes = append(world.entityNodes, index)
		}
	}
}

// BuildBVH recomputes the world bounds of every mesh-bearing node and rebuilds the BVH over them from scratch.
func (world *World) BuildBVH() {

	world.collectEntities()

	world.entityBounds = world.entityBounds[:0]
	world.entityRefs = world.entityRefs[:0]

	for _, index := range world.entityNodes {
		world.entityBounds = append(world.entityBounds, world.entityBoundsUnchecked(index))
		world.entityRefs = append(world.entityRefs, EntityRef{Node: index})
	}

	world.bvh.Build(world.entityBounds, world.entityRefs)
	world.builtEntities = append(world.builtEntities[:0], world.entityNodes...)
	world.bvhBuilt = true

}

// RefitBVH recomputes the world bounds of the entities the BVH was built over and refits the tree's bounds to match, without
// changing its topology. If no tree has been built yet, RefitBVH builds one.
func (world *World) RefitBVH() {

	if !world.bvhBuilt {
		world.BuildBVH()
		return
	}

	for slot, ref := range world.bvh.Refs {
		world.bvh.Bounds[slot] = world.entityBoundsUnchecked(ref.Node)
	}

	world.bvh.Refit()

}

// UpdateBVH brings the BVH up to date with the Scene. The tree is rebuilt if none exists yet, if the set of mesh-bearing nodes
// changed since it was built, or if Options.AlwaysRebuild is set; otherwise it's refit.
func (world *World) UpdateBVH() {

	if !world.bvhBuilt || world.Options.AlwaysRebuild {
		world.BuildBVH()
		return
	}

	world.collectEntities()

	if !equalIndices(world.entityNodes, world.builtEntities) {
		world.logger.Debugf("entity set changed (%d -> %d entities); rebuilding BVH", len(world.builtEntities), len(world.entityNodes))
		world.BuildBVH()
		return
	}

	world.RefitBVH()

}

func equalIndices(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// BVH returns the World's BVH. Don't hold onto its arrays across calls to BuildBVH() or UpdateBVH().
func (world *World) BVH() *BVH {
	return world.bvh
}

func (world *World) appendVisible(out []VisibleEntity, nodeIndex int, bounds AABB) []VisibleEntity {
	node := world.Scene.nodes[nodeIndex]
	for _, mesh := range node.entities {
		out = append(out, VisibleEntity{
			World:  node.worldMatrix,
			Mesh:   mesh,
			Node:   nodeIndex,
			Bounds: bounds,
		})
	}
	return out
}

// VisibleEntities returns the meshes whose nodes' world bounds intersect the Frustum, testing every mesh-bearing node in turn.
// Every mesh a surviving node hosts is returned as its own VisibleEntity.
func (world *World) VisibleEntities(frustum Frustum) []VisibleEntity {

	world.intersectionTests = 0

	out := []VisibleEntity{}

	for _, index := range world.Scene.NodesOfType(NodeTypeMesh) {

		bounds, ok := world.EntityBounds(index)
		if !ok {
			continue
		}

		world.intersectionTests++

		if frustum.IntersectsAABB(bounds) {
			out = world.appendVisible(out, index, bounds)
		}

	}

	return out

}

// IntersectBVH returns the meshes whose nodes' world bounds intersect the Frustum, walking the BVH to skip groups of entities
// that lie outside of it. The bounds used are those cached by the last BuildBVH(), RefitBVH(), or UpdateBVH() call; if no tree
// has been built yet, one is built first.
func (world *World) IntersectBVH(frustum Frustum) []VisibleEntity {

	if !world.bvhBuilt {
		world.logger.Info("IntersectBVH() called before the BVH was built; building it now")
		world.BuildBVH()
	}

	world.intersectionTests = 0

	out := []VisibleEntity{}

	world.intersectionTests = world.bvh.Intersect(frustum, func(slot int) {
		out = world.appendVisible(out, world.bvh.Refs[slot].Node, world.bvh.Bounds[slot])
	})

	return out

}

// Cull returns the meshes visible in the Frustum, using the BVH if Options.UseBVH is set and testing every node otherwise.
func (world *World) Cull(frustum Frustum) []VisibleEntity {
	if world.Options.UseBVH {
		return world.IntersectBVH(frustum)
	}
	return world.VisibleEntities(frustum)
}

// IntersectionTests returns the number of AABB-frustum tests the last visibility query performed.
func (world *World) IntersectionTests() int {
	return world.intersectionTests
}

// VisibleLights returns the indices of the Light nodes whose area of influence intersects the Frustum. Lights without a finite
// range (directional and ambient lights, or lights with no Range) are always included.
func (world *World) VisibleLights(frustum Frustum) []int {

	out := []int{}

	for _, index := range world.Scene.NodesOfType(NodeTypeLight) {

		node := world.Scene.nodes[index]

		for _, e := range node.entities {
			bounds := world.Scene.lights[e].Bounds(node.WorldPosition())
			if bounds.IsEmpty() || frustum.IntersectsAABB(bounds) {
				out = append(out, index)
				break
			}
		}

	}

	return out

}

// CameraFrustum returns the Frustum seen by the Camera hosted by the node at the index given, for a view of the aspect ratio
// (width / height) given. The node must be a Camera node with a Camera attached.
func (world *World) CameraFrustum(cameraNode int, aspect float32) Frustum {

	node := world.Scene.Node(cameraNode)

	if node.nodeType != NodeTypeCamera || len(node.entities) == 0 {
		panic("tetracull: World.CameraFrustum() node " + strconv.Itoa(cameraNode) + " hosts no Camera")
	}

	camera := world.Scene.cameras[node.entities[0]]

	return NewFrustum(camera.ViewProjection(node.worldMatrix, aspect))

}
