package tetracull

import (
	"math/rand"
	"strconv"
)

// PopulateRandomScene adds a root node to the Scene with count cube-shaped mesh nodes scattered underneath it, each with a
// random position within extent units of the origin, a random rotation, and a random size, along with a handful of point
// lights. Randomness comes entirely from the rng given, so the same seed always produces the same Scene.
// PopulateRandomScene returns the index of the new root node.
func PopulateRandomScene(scene *Scene, rng *rand.Rand, count int, extent float32) int {

	root := scene.AddNode("random", NodeTypeEmpty, -1)

	randomPosition := func() Vector3 {
		return Vector3{
			(rng.Float32()*2 - 1) * extent,
			(rng.Float32()*2 - 1) * extent,
			(rng.Float32()*2 - 1) * extent,
		}
	}

	cube := scene.AddMesh(NewCubeMesh("cube", 1))

	for i := 0; i < count; i++ {

		index := scene.AddNode("cube."+strconv.Itoa(i), NodeTypeMesh, root)
		scene.AttachEntities(index, cube)

		node := scene.Node(index)
		node.SetPosition(randomPosition())
		node.SetScale(NewVector3Uniform(0.25 + rng.Float32()*1.75))

		axis := Vector3{rng.Float32()*2 - 1, rng.Float32()*2 - 1, rng.Float32()*2 - 1}
		node.SetRotation(NewQuaternionFromAxisAngle(axis, rng.Float32()*6.2831855))

	}

	lightCount := count / 16
	if lightCount < 1 {
		lightCount = 1
	}

	for i := 0; i < lightCount; i++ {

		light := NewLight("light."+strconv.Itoa(i), LightKindPoint)
		light.Color = [3]float32{0.5 + rng.Float32()*0.5, 0.5 + rng.Float32()*0.5, 0.5 + rng.Float32()*0.5}
		light.Range = extent / 4

		index := scene.AddNode(light.Name, NodeTypeLight, root)
		scene.AttachEntities(index, scene.AddLight(light))
		scene.Node(index).SetPosition(randomPosition())

	}

	return root

}
