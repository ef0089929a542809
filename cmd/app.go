package cmd

import (
	"github.com/urfave/cli"
)

// NewApp builds the command line application
func NewApp() *cli.App {
	// Free -v for verbose logging
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "pathtracer"
	app.Usage = "render scenes using progressive path tracing"
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
			Name:  "render",
			Usage: "render a built-in scene to a PNG file",
			Description: `
Render a number of progressive frames of a built-in scene. Each frame traces
--spp paths per pixel and is blended into the running average of the previous
frames; the final average is written to --out.`,
			Flags:  renderFlags(),
			Action: RenderScene,
		},
		{
			Name:   "scenes",
			Usage:  "list the built-in scenes",
			Action: ListScenes,
		},
		{
			Name:  "inspect",
			Usage: "build a scene and show its buffer and BVH statistics",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "balls",
					Usage: "built-in scene name",
				},
				cli.StringFlag{
					Name:  "bvh",
					Value: "high",
					Usage: "bvh build quality: low, high or disabled",
				},
			},
			Action: InspectScene,
		},
	}

	return app
}

func renderFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "scene, s",
			Value: "balls",
			Usage: "built-in scene name",
		},
		cli.IntFlag{
			Name:  "width",
			Value: 640,
			Usage: "frame width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: 360,
			Usage: "frame height",
		},
		cli.IntFlag{
			Name:  "spp",
			Value: 4,
			Usage: "samples per pixel per frame",
		},
		cli.IntFlag{
			Name:  "bounces",
			Value: 8,
			Usage: "maximum number of bounces",
		},
		cli.IntFlag{
			Name:  "frames, f",
			Value: 16,
			Usage: "number of progressive frames",
		},
		cli.BoolTFlag{
			Name:  "sky",
			Usage: "light escaping rays with the procedural sky (--sky=false to disable)",
		},
		cli.StringFlag{
			Name:  "debug",
			Value: "off",
			Usage: "debug view: off, box, tri, box+tri, depth, focus, normals, uv or normalmap",
		},
		cli.Float64Flag{
			Name:  "debug-scale",
			Value: 100,
			Usage: "divisor mapping debug counts and distances into [0,1]",
		},
		cli.StringFlag{
			Name:  "bvh",
			Value: "high",
			Usage: "bvh build quality: low, high or disabled",
		},
		cli.StringFlag{
			Name:  "traversal",
			Value: "nearest",
			Usage: "bvh child order: nearest or left",
		},
		cli.StringFlag{
			Name:  "texture",
			Usage: "PNG or JPEG file replacing the default texture of textured scenes",
		},
		cli.BoolFlag{
			Name:  "normal-map",
			Usage: "apply material normal maps while shading",
		},
		cli.BoolFlag{
			Name:  "cosine",
			Usage: "sample diffuse bounces with a cosine weighted hemisphere",
		},
		cli.IntFlag{
			Name:  "tile-size",
			Value: 64,
			Usage: "tile edge length in pixels",
		},
		cli.IntFlag{
			Name:  "workers",
			Value: 0,
			Usage: "number of render workers (0 = one per CPU)",
		},
		cli.StringFlag{
			Name:  "out, o",
			Value: "frame.png",
			Usage: "image filename for the rendered frame",
		},
	}
}
