package main

import (
	"os"

	"github.com/urfave/cli"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "tetracull"
	app.Usage = "inspect scene graphs and test visibility culling"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "stats",
			Usage: "build a BVH over a scene and print statistics about it",
			Description: `
Load a scene from a .gltf / .glb file (or generate a random one with --random),
propagate its transforms, build a BVH over the world bounds of its mesh nodes
and print statistics about the scene and the resulting tree.`,
			ArgsUsage: "[scene.gltf]",
			Flags:     sceneFlags,
			Action:    Stats,
		},
		{
			Name:  "cull",
			Usage: "list the meshes visible from a scene camera",
			Description: `
Load a scene, then query the meshes visible from one of its cameras both by
walking the BVH and by testing every mesh node, and compare the two. Random
scenes get a camera placed on +Z looking back at the origin.`,
			ArgsUsage: "[scene.gltf]",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "camera",
					Usage: "name of the camera node to cull from (defaults to the first camera)",
				},
				cli.Float64Flag{
					Name:  "aspect",
					Value: 16.0 / 9.0,
					Usage: "aspect ratio (width / height) of the view",
				},
				cli.BoolFlag{
					Name:  "list, l",
					Usage: "list every visible mesh",
				},
			}, sceneFlags...),
			Action: Cull,
		},
		{
			Name:      "hierarchy",
			Usage:     "print the node hierarchy of a scene",
			ArgsUsage: "[scene.gltf]",
			Flags:     sceneFlags,
			Action:    Hierarchy,
		},
		{
			Name:   "options",
			Usage:  "print the default world options as TOML",
			Action: Options,
		},
	}

	return app
}
