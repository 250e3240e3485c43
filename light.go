package tetracull

import "strconv"

// LightKind represents the kind of light a Light entry describes.
type LightKind int

const (
	LightKindPoint       LightKind = iota // LightKindPoint represents a point light, emitting light in all directions from its position
	LightKindDirectional                  // LightKindDirectional represents a directional (sun) light, shining along its node's -Z axis
	LightKindSpot                         // LightKindSpot represents a spot light, shining in a cone along its node's -Z axis
	LightKindAmbient                      // LightKindAmbient represents an ambient light that colors the entire Scene
)

func (kind LightKind) String() string {
	switch kind {
	case LightKindPoint:
		return "point"
	case LightKindDirectional:
		return "directional"
	case LightKindSpot:
		return "spot"
	case LightKindAmbient:
		return "ambient"
	}
	return "LightKind(" + strconv.Itoa(int(kind)) + ")"
}

// Light represents an entry in a Scene's light table. Light nodes position and orient the Light through their transform.
type Light struct {
	Name  string
	Kind  LightKind
	Color [3]float32 // Color is the color of the Light, from 0 to 1 in each channel.
	// Intensity is the overall energy of the Light. Internally, technically there's no difference between a brighter color and a
	// higher energy, but this is here for convenience / adherance to GLTF / 3D modelers.
	Intensity float32
	Range     float32 // How far the Light reaches; 0 means the Light has no range limit.
}

// NewLight returns a new white Light of the kind given with an intensity of 1 and no range limit.
func NewLight(name string, kind LightKind) Light {
	return Light{
		Name:      name,
		Kind:      kind,
		Color:     [3]float32{1, 1, 1},
		Intensity: 1,
	}
}

// Bounds returns the world-space area of influence of a Light hosted by a node with the world position given. Only point and spot
// lights with a Range have finite bounds; other lights return an empty AABB.
func (light Light) Bounds(worldPosition Vector3) AABB {
	if light.Range <= 0 || (light.Kind != LightKindPoint && light.Kind != LightKindSpot) {
		return NewAABB()
	}
	r := NewVector3Uniform(light.Range)
	return NewAABBFromPoints(worldPosition.Sub(r), worldPosition.Add(r))
}
