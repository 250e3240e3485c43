package main

import (
	"fmt"
	"math/rand"
	"path/filepath"

	"github.com/solarlune/tetracull"
	"github.com/urfave/cli"
)

var sceneFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "config, c",
		Usage: "TOML file holding the world options",
	},
	cli.StringFlag{
		Name:  "scene, s",
		Usage: "name of the scene to load from the file (defaults to the file's default scene)",
	},
	cli.IntFlag{
		Name:  "random, r",
		Usage: "generate a random scene with this many meshes instead of loading one",
	},
	cli.Int64Flag{
		Name:  "seed",
		Value: 1,
		Usage: "seed for the random scene",
	},
	cli.Float64Flag{
		Name:  "extent",
		Value: 100,
		Usage: "half the size of the volume the random scene is scattered over",
	},
}

// loadWorld loads (or generates) the scene requested on the command line and returns a World over it, with its transforms
// already propagated.
func loadWorld(ctx *cli.Context) (*tetracull.World, error) {

	setupLogging(ctx)

	options := tetracull.DefaultWorldOptions()

	if path := ctx.String("config"); path != "" {
		var err error
		if options, err = tetracull.LoadWorldOptions(path); err != nil {
			return nil, err
		}
		options.Apply()
	}

	scene, err := loadScene(ctx)
	if err != nil {
		return nil, err
	}

	world := tetracull.NewWorld(scene, options)
	world.Update()

	return world, nil

}

func loadScene(ctx *cli.Context) (*tetracull.Scene, error) {

	if count := ctx.Int("random"); count > 0 {

		extent := float32(ctx.Float64("extent"))
		seed := ctx.Int64("seed")

		scene := tetracull.NewScene(fmt.Sprintf("random-%d", seed))
		tetracull.PopulateRandomScene(scene, rand.New(rand.NewSource(seed)), count, extent)

		camera := tetracull.NewCamera("camera")
		camera.Far = extent * 4
		cameraNode := scene.AddNode("camera", tetracull.NodeTypeCamera, -1)
		scene.AttachEntities(cameraNode, scene.AddCamera(camera))
		scene.Node(cameraNode).SetPosition(tetracull.Vector3{X: 0, Y: 0, Z: extent * 2})

		logger.Infof("generated random scene with %d meshes (seed %d)", count, seed)

		return scene, nil

	}

	if ctx.NArg() != 1 {
		return nil, fmt.Errorf("expected a single scene file or --random")
	}

	path := ctx.Args().First()

	switch filepath.Ext(path) {
	case ".gltf", ".glb":
	default:
		return nil, fmt.Errorf("unsupported scene file %s", path)
	}

	library, err := tetracull.LoadGLTFFile(path, nil)
	if err != nil {
		return nil, err
	}

	if name := ctx.String("scene"); name != "" {
		scene := library.FindScene(name)
		if scene == nil {
			return nil, fmt.Errorf("no scene named %q in %s", name, path)
		}
		return scene, nil
	}

	logger.Infof("loaded %s: %d scene(s), exporting %q", path, len(library.Scenes), library.ExportedScene.Name)

	return library.ExportedScene, nil

}
