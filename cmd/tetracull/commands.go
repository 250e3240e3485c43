package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/solarlune/tetracull"
	"github.com/urfave/cli"
)

// Stats prints statistics about a scene and the BVH built over it.
func Stats(ctx *cli.Context) error {

	world, err := loadWorld(ctx)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	start := time.Now()
	world.BuildBVH()
	buildTime := time.Since(start)

	fmt.Fprint(os.Stdout, statsTable(world, buildTime))

	return nil

}

func statsTable(world *tetracull.World, buildTime time.Duration) string {

	scene := world.Scene
	stats := world.BVH().Stats()

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Category", "Stat", "Value"})
	table.Append([]string{"Scene", "Name", scene.Name})
	table.Append([]string{"", "Nodes", fmt.Sprint(scene.NodeCount())})
	table.Append([]string{"", "Mesh nodes", fmt.Sprint(len(scene.NodesOfType(tetracull.NodeTypeMesh)))})
	table.Append([]string{"", "Meshes", fmt.Sprint(scene.MeshCount())})
	table.Append([]string{"", "Lights", fmt.Sprint(scene.LightCount())})
	table.Append([]string{"", "Cameras", fmt.Sprint(scene.CameraCount())})
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"BVH", "Entities", fmt.Sprint(stats.Entities)})
	table.Append([]string{"", "Nodes", fmt.Sprint(stats.NodesUsed)})
	table.Append([]string{"", "Leaves", fmt.Sprint(stats.Leaves)})
	table.Append([]string{"", "Max depth", fmt.Sprint(stats.MaxDepth)})
	table.Append([]string{"", "Max leaf size", fmt.Sprint(stats.MaxLeafSize)})
	table.Append([]string{"", "Build time", buildTime.String()})
	if stats.NodesUsed > 0 {
		table.Append([]string{"", "Bounds", world.BVH().Node(0).Bounds.String()})
	}
	table.Render()

	return buf.String()

}

// Cull lists the meshes visible from one of the scene's cameras.
func Cull(ctx *cli.Context) error {

	world, err := loadWorld(ctx)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	cameraNode, err := findCamera(world.Scene, ctx.String("camera"))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	world.UpdateBVH()

	frustum := world.CameraFrustum(cameraNode, float32(ctx.Float64("aspect")))

	report := cullReport{}

	start := time.Now()
	report.flat = world.VisibleEntities(frustum)
	report.flatTime = time.Since(start)
	report.flatTests = world.IntersectionTests()

	start = time.Now()
	report.bvh = world.IntersectBVH(frustum)
	report.bvhTime = time.Since(start)
	report.bvhTests = world.IntersectionTests()

	report.lights = len(world.VisibleLights(frustum))

	fmt.Fprint(os.Stdout, report.table())

	if ctx.Bool("list") {
		fmt.Fprint(os.Stdout, visibleTable(world.Scene, report.bvh))
	}

	if len(report.flat) != len(report.bvh) {
		logger.Warningf("BVH and flat queries disagree: %d vs %d visible meshes", len(report.bvh), len(report.flat))
	}

	return nil

}

// findCamera returns the index of the camera node with the name given, or the first camera node if name is empty.
func findCamera(scene *tetracull.Scene, name string) (int, error) {

	for _, index := range scene.NodesOfType(tetracull.NodeTypeCamera) {
		node := scene.Node(index)
		if len(node.Entities()) == 0 {
			continue
		}
		if name == "" || node.Name() == name {
			return index, nil
		}
	}

	if name != "" {
		return -1, fmt.Errorf("no camera named %q in scene %q", name, scene.Name)
	}
	return -1, fmt.Errorf("scene %q has no cameras", scene.Name)

}

type cullReport struct {
	flat, bvh           []tetracull.VisibleEntity
	flatTests, bvhTests int
	flatTime, bvhTime   time.Duration
	lights              int
}

func (report cullReport) table() string {

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Query", "Visible", "AABB tests", "Time"})
	table.Append([]string{"Flat", fmt.Sprint(len(report.flat)), fmt.Sprint(report.flatTests), report.flatTime.String()})
	table.Append([]string{"BVH", fmt.Sprint(len(report.bvh)), fmt.Sprint(report.bvhTests), report.bvhTime.String()})
	table.Append([]string{"Lights", fmt.Sprint(report.lights), "", ""})
	table.Render()

	return buf.String()

}

func visibleTable(scene *tetracull.Scene, visible []tetracull.VisibleEntity) string {

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Node", "Mesh", "World bounds"})
	for _, entity := range visible {
		table.Append([]string{scene.Node(entity.Node).Name(), scene.Mesh(entity.Mesh).Name, entity.Bounds.String()})
	}
	table.Render()

	return buf.String()

}

// Hierarchy prints the node hierarchy of a scene.
func Hierarchy(ctx *cli.Context) error {

	world, err := loadWorld(ctx)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	fmt.Fprint(os.Stdout, world.Scene.HierarchyAsString())

	return nil

}

// Options prints the default world options, ready to be saved to a file and passed to --config.
func Options(ctx *cli.Context) error {

	data, err := tetracull.DefaultWorldOptions().Marshal()
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	fmt.Fprint(os.Stdout, string(data))

	return nil

}
