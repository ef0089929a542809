package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/df07/go-progressive-pathtracer/pkg/geometry"
	"github.com/df07/go-progressive-pathtracer/pkg/loaders"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
	"github.com/df07/go-progressive-pathtracer/pkg/renderer"
	"github.com/df07/go-progressive-pathtracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// RenderScene renders progressive frames of a scene and saves the final average.
func RenderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	params, config, err := renderOptions(ctx)
	if err != nil {
		return err
	}

	opts, err := sceneOptions(ctx, params)
	if err != nil {
		return err
	}
	if path := ctx.String("texture"); path != "" {
		tex, err := loaders.LoadTexture(path, material.FilterBilinear)
		if err != nil {
			return err
		}
		opts.Texture = tex
	}

	sc, err := scene.Load(ctx.String("scene"), opts)
	if err != nil {
		return err
	}

	r, err := renderer.NewProgressiveRenderer(sc, params, config)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	frames := ctx.Int("frames")
	start := time.Now()
	frameChan, errChan := r.RenderProgressive(runCtx, frames)

	var history []renderer.FrameStats
	for result := range frameChan {
		history = append(history, result.Stats)
		logger.Infof("frame %d/%d: %v, average luminance %.3f",
			result.Frame+1, frames, result.Stats.Duration, renderer.CalculateAverageLuminance(result.Image))
	}

	// Keep whatever finished if rendering was interrupted
	if err := <-errChan; err != nil && err != context.Canceled {
		return err
	}

	out := ctx.String("out")
	if err := loaders.SavePNG(out, r.Buffer().Image()); err != nil {
		return err
	}

	logger.Noticef("frame statistics\n%s", frameStatsTable(history, time.Since(start)))
	logger.Noticef("saved %d frame(s) of %q to %s", len(history), sc.Name, out)
	return nil
}

// renderOptions collects the per-frame parameters and scheduler configuration
func renderOptions(ctx *cli.Context) (renderer.Params, renderer.Config, error) {
	params := renderer.DefaultParams(ctx.Int("width"), ctx.Int("height"))
	params.SamplesPerPixel = ctx.Int("spp")
	params.MaxBounces = ctx.Int("bounces")
	params.EnvironmentLight = ctx.BoolT("sky")
	params.DebugScale = ctx.Float64("debug-scale")
	params.NormalMapping = ctx.Bool("normal-map")
	params.CosineWeightedDiffuse = ctx.Bool("cosine")

	mode, err := renderer.ParseDebugMode(ctx.String("debug"))
	if err != nil {
		return params, renderer.Config{}, err
	}
	params.DebugMode = mode

	if params.Width <= 0 || params.Height <= 0 {
		return params, renderer.Config{}, fmt.Errorf("invalid frame size %dx%d", params.Width, params.Height)
	}
	if ctx.Int("frames") <= 0 {
		return params, renderer.Config{}, fmt.Errorf("frames must be positive, got %d", ctx.Int("frames"))
	}

	config := renderer.DefaultConfig()
	config.TileSize = ctx.Int("tile-size")
	config.NumWorkers = ctx.Int("workers")
	return params, config, nil
}

// sceneOptions collects the scene build options shared by render and inspect
func sceneOptions(ctx *cli.Context, params renderer.Params) (scene.Options, error) {
	opts := scene.DefaultOptions()
	if params.Height > 0 {
		opts.AspectRatio = float64(params.Width) / float64(params.Height)
	}

	quality, err := geometry.ParseQuality(ctx.String("bvh"))
	if err != nil {
		return opts, err
	}
	opts.Quality = quality

	switch order := ctx.String("traversal"); order {
	case "", "nearest":
		opts.Order = geometry.NearestFirst
	case "left":
		opts.Order = geometry.LeftFirst
	default:
		return opts, fmt.Errorf("unknown traversal order %q", order)
	}
	return opts, nil
}

func frameStatsTable(history []renderer.FrameStats, total time.Duration) string {
	var buf bytes.Buffer
	writeFrameStats(&buf, history, total)
	return buf.String()
}

func writeFrameStats(w io.Writer, history []renderer.FrameStats, total time.Duration) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Frame", "Samples", "Tests/sample", "Samples/s", "Render time"})

	var samples int
	for _, stats := range history {
		samples += stats.Samples
		table.Append([]string{
			fmt.Sprintf("%d", stats.Frame),
			fmt.Sprintf("%d", stats.Samples),
			fmt.Sprintf("%.1f", stats.TestsPerSample()),
			fmt.Sprintf("%.0f", stats.SamplesPerSecond()),
			stats.Duration.String(),
		})
	}
	table.SetFooter([]string{"", fmt.Sprintf("%d", samples), "", "TOTAL", total.String()})

	table.Render()
}
