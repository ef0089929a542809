package renderer

import (
	"image"

	"github.com/df07/go-progressive-pathtracer/pkg/geometry"
)

// Tile represents a rectangular region of the image to be rendered. Tiles never
// overlap, so each pixel is written by exactly one worker per frame.
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []Tile {
	if tileSize <= 0 {
		tileSize = DefaultConfig().TileSize
	}

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	tiles := make([]Tile, 0, tilesX*tilesY)
	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, Tile{ID: len(tiles), Bounds: image.Rect(x0, y0, x1, y1)})
		}
	}

	return tiles
}

// renderTile renders every pixel inside the tile bounds
func renderTile(kernel *Kernel, tile Tile, surface Surface) FrameStats {
	var traversal geometry.TraversalStats
	bounds := tile.Bounds

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			kernel.RenderPixel(x, y, surface, &traversal)
		}
	}

	pixels := bounds.Dx() * bounds.Dy()
	samples := 0
	if kernel.params.DebugMode == DebugOff {
		samples = pixels * max(kernel.params.SamplesPerPixel, 0)
	}

	return FrameStats{
		Frame:         kernel.params.Frame,
		Pixels:        pixels,
		Samples:       samples,
		BoxTests:      traversal.BoxTests,
		TriangleTests: traversal.TriangleTests,
	}
}
