package tetracull

import (
	"strconv"
	"time"

	"github.com/chewxy/math32"
	"github.com/solarlune/tetracull/log"
)

// The number of bins FindBestSplitPlane sorts primitive centroids into along each axis.
const bvhBinCount = 8

// BVHNode represents a node in a BVH. LeftFirst has two meanings depending on whether the node is a leaf or not: for a leaf
// (PrimCount > 0) it is the offset of the node's first entity in the BVH's entity arrays, and for an internal node
// (PrimCount == 0) it is the index of the node's left child, with the right child directly after it.
// Use the accessor functions rather than reading LeftFirst directly.
type BVHNode struct {
	Bounds    AABB
	LeftFirst uint32
	PrimCount uint32
}

// IsLeaf returns true if the node holds entities directly rather than having two children.
func (node BVHNode) IsLeaf() bool {
	return node.PrimCount > 0
}

// LeftChild returns the index of an internal node's left child. Calling LeftChild on a leaf panics.
func (node BVHNode) LeftChild() int {
	if node.IsLeaf() {
		panic("tetracull: BVHNode.LeftChild() called on a leaf node")
	}
	return int(node.LeftFirst)
}

// RightChild returns the index of an internal node's right child. Calling RightChild on a leaf panics.
func (node BVHNode) RightChild() int {
	return node.LeftChild() + 1
}

// FirstPrim returns the offset of a leaf node's first entity. Calling FirstPrim on an internal node panics.
func (node BVHNode) FirstPrim() int {
	if !node.IsLeaf() {
		panic("tetracull: BVHNode.FirstPrim() called on an internal node")
	}
	return int(node.LeftFirst)
}

// EntityRef identifies the entity a BVH slot stands for.
type EntityRef struct {
	Node int // The index of the mesh-bearing Node3d in the Scene
}

// BVHStats holds statistics about a built BVH.
type BVHStats struct {
	NodesUsed   int // Nodes allocated, including the reserved node 1
	Leaves      int
	MaxDepth    int
	Entities    int
	MaxLeafSize int
}

// BVH represents a bounding volume hierarchy over a set of entity AABBs, built top-down with the surface area heuristic.
//
// The tree is stored as a flat node array with the root at index 0. Children are always allocated in pairs, so index 1 is never
// used. The entity bounds and references are stored in two parallel arrays that are reordered together while building, so
// that each leaf covers a contiguous range of them.
// The arrays only ever grow; they are overwritten by subsequent builds, so don't hold onto them across a Build() call.
type BVH struct {
	Nodes  []BVHNode   // The node array; only the first NodesUsed() entries are meaningful
	Bounds []AABB      // The world AABB of each entity, in partitioned order
	Refs   []EntityRef // The entity each slot in Bounds belongs to

	nodesUsed uint32
	stack     []int
	logger    log.Logger
}

// NewBVH returns a new, empty BVH.
func NewBVH() *BVH {
	return &BVH{
		logger: log.New("bvh"),
	}
}

// EntityCount returns the number of entities the BVH was last built over.
func (bvh *BVH) EntityCount() int {
	return len(bvh.Refs)
}

// NodesUsed returns the number of nodes allocated by the last build, including the reserved (unused) node 1.
// An empty BVH has no nodes.
func (bvh *BVH) NodesUsed() int {
	return int(bvh.nodesUsed)
}

// Node returns the BVHNode at the index given.
func (bvh *BVH) Node(index int) BVHNode {
	if index < 0 || index >= int(bvh.nodesUsed) || index == 1 {
		panic("tetracull: BVH.Node() index " + strconv.Itoa(index) + " is not an allocated node")
	}
	return bvh.Nodes[index]
}

// Build rebuilds the BVH from scratch over the entity bounds and references given (which must be of equal length).
// The slices are copied, so the caller may reuse them afterwards.
func (bvh *BVH) Build(bounds []AABB, refs []EntityRef) {

	if len(bounds) != len(refs) {
		panic("tetracull: BVH.Build() given " + strconv.Itoa(len(bounds)) + " bounds but " + strconv.Itoa(len(refs)) + " entity references")
	}

	if bvh.logger == nil {
		bvh.logger = log.New("bvh")
	}

	start := time.Now()

	bvh.Bounds = append(bvh.Bounds[:0], bounds...)
	bvh.Refs = append(bvh.Refs[:0], refs...)

	count := len(bounds)

	if len(bvh.Nodes) < 2*count {
		bvh.Nodes = make([]BVHNode, 2*count)
	}

	if count == 0 {
		bvh.nodesUsed = 0
		return
	}

	bvh.Nodes[0] = BVHNode{LeftFirst: 0, PrimCount: uint32(count)}
	bvh.Nodes[1] = BVHNode{Bounds: NewAABB()}

	// Children are allocated in pairs from index 2 onwards; node 1 stays unused.
	bvh.nodesUsed = 2

	bvh.updateNodeBounds(0)
	bvh.Subdivide(0)

	stats := bvh.Stats()
	bvh.logger.Debugf(
		"BVH tree build time: %d µs, entities: %d, maxDepth: %d, nodes: %d, leafs: %d",
		time.Since(start).Microseconds(),
		stats.Entities, stats.MaxDepth, stats.NodesUsed, stats.Leaves,
	)

}

// updateNodeBounds sets a leaf node's bounds to tightly contain its entities.
func (bvh *BVH) updateNodeBounds(index int) {
	node := &bvh.Nodes[index]
	box := NewAABB()
	first := int(node.LeftFirst)
	for i := first; i < first+int(node.PrimCount); i++ {
		box = box.Extend(bvh.Bounds[i])
	}
	node.Bounds = box
}

// Subdivide attempts to split the leaf node at the index given into two children, recursing into both. The node is left as a leaf
// if no split beats the cost of not splitting, if the partition would leave one side empty, or if the node array is full.
func (bvh *BVH) Subdivide(index int) {

	node := &bvh.Nodes[index]

	if node.PrimCount <= 1 {
		return
	}

	axis, splitPos, cost := bvh.FindBestSplitPlane(index)

	if axis < 0 {
		return
	}

	noSplitCost := float32(node.PrimCount) * node.Bounds.Area()
	if cost >= noSplitCost {
		return
	}

	first := int(node.LeftFirst)
	count := int(node.PrimCount)

	// Hoare-style partition on centroids
	i := first
	j := first + count - 1
	for i <= j {
		if bvh.Bounds[i].Center().Get(axis) < splitPos {
			i++
		} else {
			bvh.Bounds[i], bvh.Bounds[j] = bvh.Bounds[j], bvh.Bounds[i]
			bvh.Refs[i], bvh.Refs[j] = bvh.Refs[j], bvh.Refs[i]
			j--
		}
	}

	leftCount := i - first
	if leftCount == 0 || leftCount == count {
		return
	}

	if int(bvh.nodesUsed)+2 > len(bvh.Nodes) {
		bvh.logger.Warningf("BVH node array full (%d nodes); leaving node %d as a leaf of %d entities", len(bvh.Nodes), index, count)
		return
	}

	left := int(bvh.nodesUsed)
	bvh.nodesUsed += 2

	bvh.Nodes[left] = BVHNode{LeftFirst: uint32(first), PrimCount: uint32(leftCount)}
	bvh.Nodes[left+1] = BVHNode{LeftFirst: uint32(i), PrimCount: uint32(count - leftCount)}

	node.LeftFirst = uint32(left)
	node.PrimCount = 0

	bvh.updateNodeBounds(left)
	bvh.updateNodeBounds(left + 1)

	bvh.Subdivide(left)
	bvh.Subdivide(left + 1)

}

type bvhBin struct {
	bounds AABB
	count  int
}

// FindBestSplitPlane finds the cheapest way to split the leaf node at the index given according to the surface area heuristic.
// Along each axis, the entities' centroids are sorted into 8 equally sized bins spanning the node's bounds; each of the 7 bin
// boundaries is then a candidate plane, costed as leftCount * leftArea + rightCount * rightArea. Axes along which the node has no
// extent are skipped, as are planes with no entities on one side.
//
// FindBestSplitPlane returns the axis (0, 1, or 2 for X, Y, or Z), the position of the plane along it, and its cost. If no valid
// plane exists, the axis is -1 and the cost is math32.MaxFloat32.
func (bvh *BVH) FindBestSplitPlane(index int) (axis int, splitPos float32, cost float32) {

	node := bvh.Nodes[index]
	first := int(node.LeftFirst)
	count := int(node.PrimCount)

	axis = -1
	cost = math32.MaxFloat32

	var bins [bvhBinCount]bvhBin
	var leftArea, rightArea [bvhBinCount - 1]float32
	var leftCount, rightCount [bvhBinCount - 1]int

	for a := 0; a < 3; a++ {

		boundsMin := node.Bounds.Min.Get(a)
		extent := node.Bounds.Max.Get(a) - boundsMin

		if extent <= 0 {
			continue
		}

		for b := range bins {
			bins[b] = bvhBin{bounds: NewAABB()}
		}

		scale := bvhBinCount / extent

		for i := first; i < first+count; i++ {
			c := bvh.Bounds[i].Center().Get(a)
			b := int((c - boundsMin) * scale)
			if b > bvhBinCount-1 {
				b = bvhBinCount - 1
			} else if b < 0 {
				b = 0
			}
			bins[b].count++
			bins[b].bounds = bins[b].bounds.Extend(bvh.Bounds[i])
		}

		// Prefix and suffix sweeps
		leftBox, rightBox := NewAABB(), NewAABB()
		leftSum, rightSum := 0, 0

		for i := 0; i < bvhBinCount-1; i++ {

			leftSum += bins[i].count
			leftCount[i] = leftSum
			leftBox = leftBox.Extend(bins[i].bounds)
			leftArea[i] = leftBox.Area()

			rightSum += bins[bvhBinCount-1-i].count
			rightCount[bvhBinCount-2-i] = rightSum
			rightBox = rightBox.Extend(bins[bvhBinCount-1-i].bounds)
			rightArea[bvhBinCount-2-i] = rightBox.Area()

		}

		binWidth := extent / bvhBinCount

		for i := 0; i < bvhBinCount-1; i++ {

			if leftCount[i] == 0 || rightCount[i] == 0 {
				continue
			}

			planeCost := float32(leftCount[i])*leftArea[i] + float32(rightCount[i])*rightArea[i]

			if planeCost < cost {
				axis = a
				splitPos = boundsMin + binWidth*float32(i+1)
				cost = planeCost
			}

		}

	}

	return axis, splitPos, cost

}

// Refit recomputes the bounds of every node from the current contents of the Bounds array without changing the tree's topology.
// Nodes are visited in reverse index order; as children are always allocated after their parents, every child is refit before
// its parent. Use this when entities have moved but the set of entities hasn't changed.
func (bvh *BVH) Refit() {

	for i := int(bvh.nodesUsed) - 1; i >= 0; i-- {

		if i == 1 {
			continue
		}

		node := &bvh.Nodes[i]

		if node.IsLeaf() {
			bvh.updateNodeBounds(i)
			continue
		}

		left := node.LeftChild()
		node.Bounds = bvh.Nodes[left].Bounds.Extend(bvh.Nodes[left+1].Bounds)

	}

}

// Traverse walks the tree without recursion. Nodes whose bounds fail nodeTest are skipped along with everything underneath them;
// visit is called with the slot index (into Bounds and Refs) of every entity in each leaf that passes.
func (bvh *BVH) Traverse(nodeTest func(bounds AABB) bool, visit func(slot int)) {

	if bvh.nodesUsed == 0 {
		return
	}

	stack := append(bvh.stack[:0], 0)

	for len(stack) > 0 {

		index := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := bvh.Nodes[index]

		if !nodeTest(node.Bounds) {
			continue
		}

		if node.IsLeaf() {
			first := node.FirstPrim()
			for slot := first; slot < first+int(node.PrimCount); slot++ {
				visit(slot)
			}
			continue
		}

		left := node.LeftChild()
		stack = append(stack, left+1, left)

	}

	bvh.stack = stack[:0]

}

// Intersect calls visit with the slot index of every entity whose bounds intersect the Frustum. Node bounds are tested first to
// skip whole subtrees; as a leaf's bounds are only a conservative union of its entities, each entity's own bounds are tested
// again before being visited. Intersect returns the number of AABB tests performed.
func (bvh *BVH) Intersect(frustum Frustum, visit func(slot int)) int {

	tests := 0

	bvh.Traverse(
		func(bounds AABB) bool {
			tests++
			return frustum.IntersectsAABB(bounds)
		},
		func(slot int) {
			tests++
			if frustum.IntersectsAABB(bvh.Bounds[slot]) {
				visit(slot)
			}
		},
	)

	return tests

}

// Stats walks the tree and returns statistics about it.
func (bvh *BVH) Stats() BVHStats {

	stats := BVHStats{
		NodesUsed: int(bvh.nodesUsed),
		Entities:  len(bvh.Refs),
	}

	if bvh.nodesUsed == 0 {
		return stats
	}

	type entry struct {
		index, depth int
	}

	stack := []entry{{0, 0}}

	for len(stack) > 0 {

		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if e.depth > stats.MaxDepth {
			stats.MaxDepth = e.depth
		}

		node := bvh.Nodes[e.index]

		if node.IsLeaf() {
			stats.Leaves++
			if int(node.PrimCount) > stats.MaxLeafSize {
				stats.MaxLeafSize = int(node.PrimCount)
			}
			continue
		}

		stack = append(stack, entry{node.RightChild(), e.depth + 1}, entry{node.LeftChild(), e.depth + 1})

	}

	return stats

}
