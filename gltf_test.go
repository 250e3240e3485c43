package tetracull

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGLTF = `{
	"asset": {"version": "2.0"},
	"scene": 1,
	"scenes": [
		{"name": "First", "nodes": [0]},
		{"name": "Main", "nodes": [1, 4]}
	],
	"nodes": [
		{"name": "Lone"},
		{"name": "Root", "translation": [1, 0, 0], "children": [2, 3, 5]},
		{"name": "Box", "mesh": 0, "scale": [2, 2, 2]},
		{"name": "Triangle", "mesh": 1, "matrix": [1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 1, 0, 1]},
		{"name": "Camera", "camera": 0, "translation": [0, 0, 10]},
		{"name": "Lamp", "extensions": {"KHR_lights_punctual": {"light": 0}}}
	],
	"meshes": [
		{"name": "Box", "primitives": [{"attributes": {"POSITION": 0}}]},
		{"name": "Triangle", "primitives": [{"attributes": {"POSITION": 1}}]}
	],
	"accessors": [
		{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [-1, -1, -1], "max": [1, 1, 1]},
		{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"}
	],
	"bufferViews": [{"buffer": 0, "byteLength": 36}],
	"buffers": [{"byteLength": 36, "uri": "data:application/octet-stream;base64,AAAAAAAAAAAAAAAAAACAPwAAAEAAAEBAAACAvwAAAD8AAIBA"}],
	"cameras": [{"type": "perspective", "perspective": {"yfov": 0.7853982, "znear": 0.5, "zfar": 50, "aspectRatio": 1.5}}],
	"extensionsUsed": ["KHR_lights_punctual"],
	"extensions": {"KHR_lights_punctual": {"lights": [{"type": "point", "color": [1, 0.5, 0.25], "intensity": 3, "range": 8}]}}
}`

func BenchmarkLoadGLTFData(b *testing.B) {
	data := []byte(testGLTF)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		_, err := LoadGLTFData(data, nil)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func TestLoadGLTFData(t *testing.T) {

	library, err := LoadGLTFData([]byte(testGLTF), nil)
	require.NoError(t, err)

	require.Len(t, library.Scenes, 2)
	require.NotNil(t, library.ExportedScene)
	assert.Equal(t, "Main", library.ExportedScene.Name)
	assert.Same(t, library.ExportedScene, library.FindScene("Main"))
	assert.Equal(t, 1, library.FindScene("First").NodeCount())

	scene := library.ExportedScene

	require.Equal(t, 5, scene.NodeCount())
	assert.Equal(t, 2, len(scene.Roots()))

	root := scene.FindNode("Root")
	require.NotNil(t, root)
	assert.Equal(t, NodeTypeEmpty, root.Type())
	assert.Len(t, root.Children(), 3)

	box := scene.FindNode("Box")
	require.NotNil(t, box)
	assert.Equal(t, NodeTypeMesh, box.Type())
	assert.Equal(t, root.Index(), box.Parent())
	require.Len(t, box.Entities(), 1)
	assert.True(t, scene.Mesh(box.Entities()[0]).Bounds.Equals(AABB{Min: Vector3{-1, -1, -1}, Max: Vector3{1, 1, 1}}))

	// Without min and max values on the accessor, the bounds are read from the vertices themselves.
	triangle := scene.FindNode("Triangle")
	require.NotNil(t, triangle)
	triangleMesh := scene.Mesh(triangle.Entities()[0])
	assert.True(t, triangleMesh.Bounds.Equals(AABB{Min: Vector3{-1, 0, 0}, Max: Vector3{1, 2, 4}}), triangleMesh.Bounds.String())
	assert.Equal(t, 3, triangleMesh.VertexCount)
	assert.NotNil(t, triangleMesh.Payload)

	camera := scene.FindNode("Camera")
	require.NotNil(t, camera)
	assert.Equal(t, NodeTypeCamera, camera.Type())
	cam := scene.Camera(camera.Entities()[0])
	assert.True(t, cam.Perspective)
	assert.InDelta(t, 45, cam.FieldOfView, 1e-3)
	assert.InDelta(t, 0.5, cam.Near, 1e-6)
	assert.InDelta(t, 50, cam.Far, 1e-6)

	lamp := scene.FindNode("Lamp")
	require.NotNil(t, lamp)
	assert.Equal(t, NodeTypeLight, lamp.Type())
	light := scene.Light(lamp.Entities()[0])
	assert.Equal(t, LightKindPoint, light.Kind)
	assert.Equal(t, [3]float32{1, 0.5, 0.25}, light.Color)
	assert.Equal(t, float32(3), light.Intensity)
	assert.Equal(t, float32(8), light.Range)

	world := NewWorld(scene, DefaultWorldOptions())
	world.Update()

	assert.True(t, triangle.WorldPosition().Equals(Vector3{1, 1, 0}), triangle.WorldPosition().String())
	assert.True(t, camera.WorldPosition().Equals(Vector3{0, 0, 10}))

	bounds, ok := world.EntityBounds(box.Index())
	require.True(t, ok)
	assert.True(t, bounds.Equals(AABB{Min: Vector3{-1, -2, -2}, Max: Vector3{3, 2, 2}}), bounds.String())

	// The camera sits on +Z looking back towards the origin, so it sees both meshes.
	visible := world.Cull(world.CameraFrustum(camera.Index(), 1.5))
	assert.ElementsMatch(t, []int{box.Index(), triangle.Index()}, visibleNodes(visible))

	assert.Same(t, box, library.FindNode("Box"))
	assert.Nil(t, library.FindNode("Nothing"))

}

func TestLoadGLTFOptions(t *testing.T) {

	options := DefaultGLTFLoadOptions()
	options.LoadCameras = false
	options.LoadLights = false
	options.ReadMissingBounds = false

	library, err := LoadGLTFData([]byte(testGLTF), options)
	require.NoError(t, err)

	scene := library.ExportedScene

	assert.Equal(t, NodeTypeEmpty, scene.FindNode("Camera").Type())
	assert.Equal(t, NodeTypeEmpty, scene.FindNode("Lamp").Type())
	assert.Equal(t, 0, scene.CameraCount())
	assert.Equal(t, 0, scene.LightCount())

	triangle := scene.FindNode("Triangle")
	assert.True(t, scene.Mesh(triangle.Entities()[0]).Bounds.IsEmpty())

}

func TestLoadGLTFFile(t *testing.T) {

	path := filepath.Join(t.TempDir(), "scene.gltf")
	require.NoError(t, os.WriteFile(path, []byte(testGLTF), 0o644))

	library, err := LoadGLTFFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "Main", library.ExportedScene.Name)

	_, err = LoadGLTFFile(filepath.Join(t.TempDir(), "missing.gltf"), nil)
	assert.Error(t, err)

}

func TestLoadGLTFErrors(t *testing.T) {

	library, err := LoadGLTFData([]byte(`{"asset": {"version": "2.0"}}`), nil)
	assert.ErrorIs(t, err, ErrNoScenes)
	assert.Nil(t, library)

	_, err = LoadGLTFData([]byte(`{
		"asset": {"version": "2.0"},
		"scenes": [{"nodes": [0]}],
		"nodes": [{"name": "a", "children": [1]}, {"name": "b", "children": [0]}]
	}`), nil)
	assert.ErrorIs(t, err, ErrNodeCycle)

	_, err = LoadGLTFData([]byte(`{
		"asset": {"version": "2.0"},
		"scenes": [{"nodes": [3]}],
		"nodes": [{"name": "a"}]
	}`), nil)
	assert.ErrorIs(t, err, ErrInvalidNode)

	_, err = LoadGLTFData([]byte(`not a gltf file`), nil)
	assert.Error(t, err)

	// Unnamed scenes and nodes get names from their indices, and a document without a default scene exports its first.
	library, err = LoadGLTFData([]byte(`{
		"asset": {"version": "2.0"},
		"scenes": [{"nodes": [0]}],
		"nodes": [{}]
	}`), nil)
	require.NoError(t, err)
	assert.Equal(t, "Scene.0", library.ExportedScene.Name)
	assert.NotNil(t, library.ExportedScene.FindNode("node.0"))

}
