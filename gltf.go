package tetracull

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/chewxy/math32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/ext/lightspunctual"
	"github.com/qmuntal/gltf/modeler"
	"github.com/solarlune/tetracull/log"
)

// GLTFLoadOptions controls how a glTF document is turned into Scenes.
type GLTFLoadOptions struct {
	LoadCameras bool // If camera nodes should host Cameras. If false, they're loaded as empty nodes.
	LoadLights  bool // If KHR_lights_punctual lights should be loaded. If false, light nodes are loaded as empty nodes.
	// If a primitive's POSITION accessor doesn't list its min and max values, ReadMissingBounds makes the loader read the vertex
	// positions to work out the mesh's bounds. If false, such meshes get empty bounds (and so are never visible).
	ReadMissingBounds bool
}

// DefaultGLTFLoadOptions creates an instance of GLTFLoadOptions with some sensible defaults.
func DefaultGLTFLoadOptions() *GLTFLoadOptions {
	return &GLTFLoadOptions{
		LoadCameras:       true,
		LoadLights:        true,
		ReadMissingBounds: true,
	}
}

// LoadGLTFFile loads a .gltf or .glb file from the filepath given, using a provided GLTFLoadOptions struct to alter how the file is loaded.
// Passing nil for loadOptions will load the file using default load options. Buffers referenced by relative URIs are read from
// alongside the file. LoadGLTFFile will return a Library, and an error if the process fails.
func LoadGLTFFile(path string, loadOptions *GLTFLoadOptions) (*Library, error) {

	doc, err := gltf.Open(path)

	if err != nil {
		return nil, fmt.Errorf("opening glTF file %q: %w", path, err)
	}

	return LoadGLTFDocument(doc, loadOptions)

}

// LoadGLTFData loads a .gltf or .glb file from the byte data given, using a provided GLTFLoadOptions struct to alter how the file is loaded.
// Passing nil for loadOptions will load the file using default load options. Buffers must be embedded (as in a .glb file, or with data URIs).
// LoadGLTFData will return a Library, and an error if the process fails.
func LoadGLTFData(data []byte, loadOptions *GLTFLoadOptions) (*Library, error) {

	decoder := gltf.NewDecoder(bytes.NewReader(data))

	doc := new(gltf.Document)

	if err := decoder.Decode(doc); err != nil {
		return nil, fmt.Errorf("decoding glTF data: %w", err)
	}

	return LoadGLTFDocument(doc, loadOptions)

}

// LoadGLTFDocument turns each scene of an already decoded glTF document into a Scene. Each node in a scene's hierarchy becomes a
// Node3d; meshes become Mesh nodes hosting one Mesh entry per primitive (with local bounds taken from the POSITION accessor),
// cameras become Camera nodes, and KHR_lights_punctual lights become Light nodes. All other content is ignored.
func LoadGLTFDocument(doc *gltf.Document, loadOptions *GLTFLoadOptions) (*Library, error) {

	if loadOptions == nil {
		loadOptions = DefaultGLTFLoadOptions()
	}

	if len(doc.Scenes) == 0 {
		return nil, ErrNoScenes
	}

	library := NewLibrary()
	logger := log.New("gltf")

	for sceneIndex, s := range doc.Scenes {

		name := s.Name
		if name == "" {
			name = "Scene." + strconv.Itoa(sceneIndex)
		}

		loader := &gltfSceneLoader{
			doc:      doc,
			scene:    library.AddScene(name),
			options:  loadOptions,
			logger:   logger,
			meshes:   map[int][]int{},
			visiting: map[int]bool{},
		}

		for _, n := range s.Nodes {
			if err := loader.addNode(int(n), -1); err != nil {
				return nil, fmt.Errorf("loading scene %q: %w", name, err)
			}
		}

		logger.Debugf("loaded scene %q: %d nodes, %d meshes, %d lights, %d cameras", name,
			loader.scene.NodeCount(), loader.scene.MeshCount(), loader.scene.LightCount(), loader.scene.CameraCount())

	}

	library.ExportedScene = library.Scenes[0]
	if doc.Scene != nil && int(*doc.Scene) < len(library.Scenes) {
		library.ExportedScene = library.Scenes[int(*doc.Scene)]
	}

	return library, nil

}

type gltfSceneLoader struct {
	doc      *gltf.Document
	scene    *Scene
	options  *GLTFLoadOptions
	logger   log.Logger
	meshes   map[int][]int // glTF mesh index to Scene mesh table indices
	visiting map[int]bool
}

func (loader *gltfSceneLoader) addNode(index, parent int) error {

	doc := loader.doc

	if index < 0 || index >= len(doc.Nodes) {
		return fmt.Errorf("%w: node %d", ErrInvalidNode, index)
	}

	if loader.visiting[index] {
		return fmt.Errorf("%w: node %d is its own ancestor", ErrNodeCycle, index)
	}

	loader.visiting[index] = true
	defer delete(loader.visiting, index)

	node := doc.Nodes[index]

	name := node.Name
	if name == "" {
		name = "node." + strconv.Itoa(index)
	}

	nodeType := NodeTypeEmpty
	var entities []int

	if node.Mesh != nil {

		meshEntities, err := loader.meshEntities(int(*node.Mesh))
		if err != nil {
			return err
		}
		nodeType = NodeTypeMesh
		entities = meshEntities

	} else if node.Camera != nil && loader.options.LoadCameras {

		camera, err := loader.camera(int(*node.Camera), name)
		if err != nil {
			return err
		}
		nodeType = NodeTypeCamera
		entities = []int{loader.scene.AddCamera(camera)}

	} else if lighting, exists := node.Extensions["KHR_lights_punctual"]; exists && loader.options.LoadLights {

		if light, ok := loader.light(lighting, name); ok {
			nodeType = NodeTypeLight
			entities = []int{loader.scene.AddLight(light)}
		}

	}

	nodeIndex := loader.scene.AddNode(name, nodeType, parent)

	if len(entities) > 0 {
		loader.scene.AttachEntities(nodeIndex, entities...)
	}

	loader.setTransform(loader.scene.Node(nodeIndex), node)

	for _, child := range node.Children {
		if err := loader.addNode(int(child), nodeIndex); err != nil {
			return err
		}
	}

	return nil

}

func (loader *gltfSceneLoader) setTransform(obj *Node3d, node *gltf.Node) {

	mtData := node.Matrix

	matrix := NewMatrix4()
	matrix.SetRow(0, Vector4{float32(mtData[0]), float32(mtData[1]), float32(mtData[2]), float32(mtData[3])})
	matrix.SetRow(1, Vector4{float32(mtData[4]), float32(mtData[5]), float32(mtData[6]), float32(mtData[7])})
	matrix.SetRow(2, Vector4{float32(mtData[8]), float32(mtData[9]), float32(mtData[10]), float32(mtData[11])})
	matrix.SetRow(3, Vector4{float32(mtData[12]), float32(mtData[13]), float32(mtData[14]), float32(mtData[15])})

	// Documents built in code rather than decoded may leave the matrix zeroed out.
	if !matrix.IsIdentity() && !matrix.Equals(Matrix4{}) {
		obj.SetTransform(matrix)
		return
	}

	obj.SetPosition(Vector3{float32(node.Translation[0]), float32(node.Translation[1]), float32(node.Translation[2])})

	scale := Vector3{float32(node.Scale[0]), float32(node.Scale[1]), float32(node.Scale[2])}
	if scale.IsZero() {
		scale = Vector3{1, 1, 1}
	}
	obj.SetScale(scale)

	rotation := NewQuaternion(float32(node.Rotation[0]), float32(node.Rotation[1]), float32(node.Rotation[2]), float32(node.Rotation[3]))
	if rotation.Equals(Quaternion{}) {
		rotation = NewQuaternionIdentity()
	}
	obj.SetRotation(rotation)

}

// meshEntities returns the Scene mesh table indices for the primitives of the glTF mesh given, adding them on first use.
func (loader *gltfSceneLoader) meshEntities(meshIndex int) ([]int, error) {

	if entities, exists := loader.meshes[meshIndex]; exists {
		return entities, nil
	}

	doc := loader.doc

	if meshIndex < 0 || meshIndex >= len(doc.Meshes) {
		return nil, fmt.Errorf("%w: mesh %d", ErrInvalidNode, meshIndex)
	}

	gltfMesh := doc.Meshes[meshIndex]
	entities := make([]int, 0, len(gltfMesh.Primitives))

	for primIndex, prim := range gltfMesh.Primitives {

		name := gltfMesh.Name
		if len(gltfMesh.Primitives) > 1 {
			name += "." + strconv.Itoa(primIndex)
		}

		bounds := NewAABB()
		vertexCount := 0

		if posIndex, exists := prim.Attributes[gltf.POSITION]; !exists {
			loader.logger.Warningf("mesh %q primitive %d has no POSITION attribute; it will have empty bounds", gltfMesh.Name, primIndex)
		} else if int(posIndex) >= len(doc.Accessors) {
			return nil, fmt.Errorf("%w: accessor %d in mesh %q", ErrInvalidNode, posIndex, gltfMesh.Name)
		} else {

			acc := doc.Accessors[posIndex]
			vertexCount = int(acc.Count)

			if len(acc.Min) >= 3 && len(acc.Max) >= 3 {

				bounds = NewAABBFromPoints(
					Vector3{float32(acc.Min[0]), float32(acc.Min[1]), float32(acc.Min[2])},
					Vector3{float32(acc.Max[0]), float32(acc.Max[1]), float32(acc.Max[2])},
				)

			} else if loader.options.ReadMissingBounds {

				posBuffer := [][3]float32{}
				vertPos, err := modeler.ReadPosition(doc, acc, posBuffer)

				if err != nil {
					return nil, fmt.Errorf("reading positions of mesh %q: %w", gltfMesh.Name, err)
				}

				for _, v := range vertPos {
					bounds = bounds.ExtendPoint(Vector3{v[0], v[1], v[2]})
				}

			} else {
				loader.logger.Warningf("mesh %q primitive %d has no position bounds; it will have empty bounds", gltfMesh.Name, primIndex)
			}

		}

		mesh := NewMeshFromBounds(name, bounds, vertexCount)
		mesh.Payload = prim
		entities = append(entities, loader.scene.AddMesh(mesh))

	}

	loader.meshes[meshIndex] = entities

	return entities, nil

}

func (loader *gltfSceneLoader) camera(cameraIndex int, name string) (Camera, error) {

	if cameraIndex < 0 || cameraIndex >= len(loader.doc.Cameras) {
		return Camera{}, fmt.Errorf("%w: camera %d", ErrInvalidNode, cameraIndex)
	}

	gltfCam := loader.doc.Cameras[cameraIndex]

	newCam := NewCamera(name)

	if gltfCam.Perspective != nil {
		newCam.Perspective = true
		newCam.Near = float32(gltfCam.Perspective.Znear)
		newCam.FieldOfView = float32(gltfCam.Perspective.Yfov) * 180 / math32.Pi
		if gltfCam.Perspective.Zfar != nil {
			newCam.Far = float32(*gltfCam.Perspective.Zfar)
		} else {
			// An infinite projection; approximate it with a distant far plane
			newCam.Far = 1e4
		}
	} else if gltfCam.Orthographic != nil {
		newCam.Perspective = false
		newCam.Near = float32(gltfCam.Orthographic.Znear)
		newCam.Far = float32(gltfCam.Orthographic.Zfar)
		newCam.OrthoScale = float32(gltfCam.Orthographic.Xmag)
	}

	return newCam, nil

}

func (loader *gltfSceneLoader) light(lighting any, name string) (Light, bool) {

	lightIndex, ok := lighting.(lightspunctual.LightIndex)
	if !ok {
		loader.logger.Warningf("node %q has malformed KHR_lights_punctual data; loading it as an empty node", name)
		return Light{}, false
	}

	lights, ok := loader.doc.Extensions["KHR_lights_punctual"].(lightspunctual.Lights)
	if !ok || int(lightIndex) >= len(lights) {
		loader.logger.Warningf("node %q refers to missing light %d; loading it as an empty node", name, lightIndex)
		return Light{}, false
	}

	lightData := lights[lightIndex]

	light := NewLight(name, LightKindPoint)

	switch lightData.Type {
	case lightspunctual.TypeDirectional:
		light.Kind = LightKindDirectional
	case lightspunctual.TypePoint:
		light.Kind = LightKindPoint
	case lightspunctual.TypeSpot:
		light.Kind = LightKindSpot
	default:
		// Any unsupported light type just gets turned into an ambient light
		loader.logger.Warningf("light %q has unsupported type %q; loading it as an ambient light", name, lightData.Type)
		light.Kind = LightKindAmbient
	}

	light.Color = [3]float32{float32(lightData.Color[0]), float32(lightData.Color[1]), float32(lightData.Color[2])}

	if lightData.Intensity != nil {
		light.Intensity = float32(*lightData.Intensity)
	}

	if lightData.Range != nil && !math32.IsInf(float32(*lightData.Range), 0) {
		light.Range = float32(*lightData.Range)
	}

	return light, true

}
