package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-progressive-pathtracer/pkg/log"
	"github.com/df07/go-progressive-pathtracer/pkg/scene"
)

// ErrRendererClosed is returned when rendering after Close
var ErrRendererClosed = errors.New("renderer closed")

// Config contains configuration for the tile scheduler
type Config struct {
	TileSize   int // Size of each tile (64x64 recommended)
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   64,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// ProgressiveRenderer renders successive frames of one scene into a shared
// accumulation buffer
type ProgressiveRenderer struct {
	scene      *scene.Scene
	params     Params
	config     Config
	tiles      []Tile
	buffer     *AccumulationBuffer
	workerPool *WorkerPool
	nextFrame  int
	closed     bool
	logger     log.Logger
}

// NewProgressiveRenderer creates a renderer and starts its workers. params.Frame
// is ignored; frames are numbered from 0 by the renderer.
func NewProgressiveRenderer(s *scene.Scene, params Params, config Config) (*ProgressiveRenderer, error) {
	if params.Width <= 0 || params.Height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", params.Width, params.Height)
	}

	tiles := NewTileGrid(params.Width, params.Height, config.TileSize)
	pool := NewWorkerPool(config.NumWorkers, len(tiles))
	pool.Start()

	return &ProgressiveRenderer{
		scene:      s,
		params:     params,
		config:     config,
		tiles:      tiles,
		buffer:     NewAccumulationBuffer(params.Width, params.Height),
		workerPool: pool,
		logger:     log.New("renderer"),
	}, nil
}

// Buffer returns the accumulation buffer
func (pr *ProgressiveRenderer) Buffer() *AccumulationBuffer {
	return pr.buffer
}

// Reset clears the accumulated history so the next frame starts over
func (pr *ProgressiveRenderer) Reset() {
	pr.buffer.Reset()
	pr.nextFrame = 0
}

// Close stops the workers. The renderer cannot be used afterwards.
func (pr *ProgressiveRenderer) Close() {
	if pr.closed {
		return
	}
	pr.closed = true
	pr.workerPool.Stop()
}

// RenderFrame renders the next frame. It returns only after every tile is written,
// so the following frame always reads this frame's values.
func (pr *ProgressiveRenderer) RenderFrame() (FrameStats, error) {
	if pr.closed {
		return FrameStats{}, ErrRendererClosed
	}

	params := pr.params
	params.Frame = pr.nextFrame
	kernel := NewKernel(pr.scene, params)

	start := time.Now()
	for i, tile := range pr.tiles {
		pr.workerPool.SubmitTask(TileTask{Tile: tile, Kernel: kernel, Surface: pr.buffer, TaskID: i})
	}

	stats := FrameStats{Frame: params.Frame}
	for range pr.tiles {
		result, ok := pr.workerPool.GetResult()
		if !ok {
			return FrameStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		stats.Add(result.Stats)
	}
	stats.Duration = time.Since(start)

	pr.logger.Infof("Frame %d completed in %v (%d samples, %.1f tests/sample, %d workers)",
		params.Frame, stats.Duration, stats.Samples, stats.TestsPerSample(), pr.workerPool.NumWorkers())

	pr.nextFrame++
	return stats, nil
}

// FrameResult contains the result of a single frame
type FrameResult struct {
	Frame  int
	Image  *image.RGBA
	Stats  FrameStats
	IsLast bool
}

// RenderProgressive renders frames in a goroutine and streams one result per frame.
// Cancellation is checked between frames; a frame in flight always completes.
// Both channels are closed when rendering stops, and the renderer is closed.
func (pr *ProgressiveRenderer) RenderProgressive(ctx context.Context, frames int) (<-chan FrameResult, <-chan error) {
	frameChan := make(chan FrameResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(frameChan)
		defer close(errChan)
		defer pr.Close()

		pr.logger.Infof("Starting progressive rendering of %d frames...", frames)

		for i := 0; i < frames; i++ {
			select {
			case <-ctx.Done():
				pr.logger.Noticef("Rendering cancelled before frame %d", pr.nextFrame)
				errChan <- ctx.Err()
				return
			default:
			}

			stats, err := pr.RenderFrame()
			if err != nil {
				errChan <- err
				return
			}

			result := FrameResult{
				Frame:  stats.Frame,
				Image:  pr.buffer.Image(),
				Stats:  stats,
				IsLast: i == frames-1,
			}

			select {
			case frameChan <- result:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}
	}()

	return frameChan, errChan
}
