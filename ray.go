package tetracull

import (
	"sort"
)

// Ray represents a half-line starting at Origin and heading along Direction. Direction is not required to be of unit length;
// distances along the Ray are expressed in multiples of it, so for a Ray made with NewRay(from, to), At(1) is to.
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// NewRay returns a Ray that starts at from and points towards to.
func NewRay(from, to Vector3) Ray {
	return Ray{Origin: from, Direction: to.Sub(from)}
}

// At returns the point along the Ray at distance t.
func (ray Ray) At(t float32) Vector3 {
	return ray.Origin.Add(ray.Direction.Scale(t))
}

// RayHit represents the result of a raycast test against the entities in a World.
type RayHit struct {
	Node     int     // Node is the index of the mesh-bearing Node3d that was struck.
	Position Vector3 // Position is the world position at which the entity's world AABB was struck.
	Bounds   AABB    // Bounds is the world AABB of the entity that was struck.
	from     Vector3
}

// Distance returns the distance from the RayHit's originating ray source point to the struck position.
func (r RayHit) Distance() float32 {
	return r.from.DistanceTo(r.Position)
}

// RayTestOptions is a struct designed to control what options to use when performing a ray test.
type RayTestOptions struct {
	From Vector3 // The position to cast the ray from.
	To   Vector3 // The position to cast the ray to.

	// OnHit is a callback called for each hit the cast Ray returns, sorted by distance from the starting point.
	// index is the index of the hit out of the maximum number of hits found by the function (count).
	// The returned boolean indicates whether to keep iterating through all found rayhits, or to stop after the current one.
	OnHit func(hit RayHit, index, count int) bool
}

// WithOnHit sets the callback to be called for each hit a cast Ray returns, sorted by distance from the starting point.
func (r RayTestOptions) WithOnHit(onHit func(hit RayHit, index, count int) bool) RayTestOptions {
	r.OnHit = onHit
	return r
}

// rayTestAABB tests the line segment running along the Ray from t = 0 to t = 1 against the box.
func rayTestAABB(ray Ray, box AABB) (RayHit, bool) {

	if box.IsEmpty() {
		return RayHit{}, false
	}

	tNear, tFar := box.RayIntersect(ray)

	if tFar < tNear || tFar < 0 || tNear > 1 {
		return RayHit{}, false
	}

	if tNear < 0 {
		tNear = 0
	}

	return RayHit{
		Position: ray.At(tNear),
		Bounds:   box,
		from:     ray.Origin,
	}, true

}

// RayTest casts a ray from the options' From world position to its To world position, testing against the world AABBs of the
// World's mesh entities (through the BVH if one has been built, or against every entity otherwise). The function returns the
// closest struck entity; if none were struck, it returns nil. Call Update() and UpdateBVH() beforehand so the bounds are current.
func (world *World) RayTest(options RayTestOptions) *RayHit {

	ray := NewRay(options.From, options.To)

	hits := []RayHit{}

	test := func(node int, box AABB) {
		if hit, ok := rayTestAABB(ray, box); ok {
			hit.Node = node
			hits = append(hits, hit)
		}
	}

	if world.bvhBuilt {

		world.bvh.Traverse(
			func(box AABB) bool {
				_, ok := rayTestAABB(ray, box)
				return ok
			},
			func(slot int) {
				test(world.bvh.Refs[slot].Node, world.bvh.Bounds[slot])
			},
		)

	} else {

		for _, nodeIndex := range world.Scene.NodesOfType(NodeTypeMesh) {
			if bounds, ok := world.EntityBounds(nodeIndex); ok {
				test(nodeIndex, bounds)
			}
		}

	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Position.DistanceSquaredTo(hits[i].from) < hits[j].Position.DistanceSquaredTo(hits[j].from)
	})

	if options.OnHit != nil {
		for i, r := range hits {
			if !options.OnHit(r, i, len(hits)) {
				break
			}
		}
	}

	if len(hits) > 0 {
		return &hits[0]
	}
	return nil

}
