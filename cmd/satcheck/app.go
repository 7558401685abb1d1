package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli"
	"github.com/zeusync/collision/internal/core/observability/log"
	"github.com/zeusync/collision/internal/core/systems/physics"
	"github.com/zeusync/collision/internal/injector"
	"gopkg.in/yaml.v3"
)

func newApp(ctx context.Context) *cli.App {
	app := cli.NewApp()
	app.Name = "satcheck"
	app.Usage = "Separating axis collision checks between convex polygons"
	app.HideVersion = true

	sceneFlags := []cli.Flag{
		cli.StringFlag{Name: "scene", Usage: "Scene file (.yaml, .yml or .json); required"},
		cli.BoolFlag{Name: "debug", Usage: "Enable debug logging"},
	}

	app.Commands = []cli.Command{
		{
			Name:  "check",
			Usage: "Report every colliding pair of bodies in a scene",
			Flags: append(sceneFlags,
				cli.IntFlag{Name: "workers", Value: 0, Usage: "Maximum pair checks in parallel; 0 means unbounded"},
			),
			Action: func(c *cli.Context) error {
				world, logger, err := loadWorld(c)
				if err != nil {
					return err
				}
				defer func() { _ = logger.Sync() }()

				world.SetConcurrency(c.Int("workers"))
				return runCheck(ctx, world, c.App.Writer)
			},
		},
		{
			Name:  "inspect",
			Usage: "Print the world-space model of every body in a scene",
			Flags: sceneFlags,
			Action: func(c *cli.Context) error {
				world, logger, err := loadWorld(c)
				if err != nil {
					return err
				}
				defer func() { _ = logger.Sync() }()

				return runInspect(world, c.App.Writer)
			},
		},
	}

	return app
}

func loadWorld(c *cli.Context) (*physics.World, *log.Logger, error) {
	path := c.String("scene")
	if path == "" {
		return nil, nil, errors.New("--scene is required")
	}

	level := log.LevelWarn
	if c.Bool("debug") {
		level = log.LevelDebug
	}
	logger := injector.ProvideLogger(level)

	scene, err := physics.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}

	world := injector.InitializeWorld(logger)
	if err := scene.Populate(world); err != nil {
		return nil, nil, fmt.Errorf("scene %s: %w", path, err)
	}

	logger.Debug("Scene loaded", log.String("path", path), log.Int("bodies", world.Len()))
	return world, logger, nil
}

func runCheck(ctx context.Context, world *physics.World, out io.Writer) error {
	collisions, err := world.Collisions(ctx)
	if err != nil {
		return err
	}

	if len(collisions) == 0 {
		_, err = fmt.Fprintln(out, "no collisions")
		return err
	}

	for _, c := range collisions {
		n := c.Contact.Normal
		if _, err := fmt.Fprintf(out, "%s %s depth=%.6f normal=(%.6f, %.6f)\n",
			c.First, c.Second, c.Contact.Depth, unsigned(n.X()), unsigned(n.Y())); err != nil {
			return err
		}
	}
	return nil
}

// unsigned drops the sign of negative zero so it prints as 0.
func unsigned(f float64) float64 {
	if f == 0 {
		return 0
	}
	return f
}

type bodyReport struct {
	ID       string       `yaml:"id"`
	Vertices [][2]float64 `yaml:"vertices,flow"`
	Normals  [][2]float64 `yaml:"normals,flow"`
	Bounds   boundsReport `yaml:"bounds"`
}

type boundsReport struct {
	Min [2]float64 `yaml:"min,flow"`
	Max [2]float64 `yaml:"max,flow"`
}

func runInspect(world *physics.World, out io.Writer) error {
	reports := make([]bodyReport, 0, world.Len())
	for _, body := range world.Bodies() {
		shape := body.Shape()
		report := bodyReport{ID: body.ID()}
		for _, v := range shape.Vertices() {
			report.Vertices = append(report.Vertices, [2]float64(v))
		}
		for _, n := range shape.Normals() {
			report.Normals = append(report.Normals, [2]float64(n))
		}
		box := shape.BoundingBox()
		report.Bounds = boundsReport{Min: [2]float64(box.Min), Max: [2]float64(box.Max)}
		reports = append(reports, report)
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(reports); err != nil {
		return err
	}
	return enc.Close()
}
