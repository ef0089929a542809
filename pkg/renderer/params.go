package renderer

import (
	"fmt"
	"strings"
)

// DebugMode selects an alternate single-sample output in place of path tracing
type DebugMode int

const (
	DebugOff DebugMode = iota
	DebugBoxTests
	DebugTriangleTests
	DebugBoxAndTriangleTests
	DebugDepth
	DebugFocus
	DebugNormals
	DebugTexCoords
	DebugNormalMap
)

var debugModeNames = map[DebugMode]string{
	DebugOff:                 "off",
	DebugBoxTests:            "box",
	DebugTriangleTests:       "tri",
	DebugBoxAndTriangleTests: "box+tri",
	DebugDepth:               "depth",
	DebugFocus:               "focus",
	DebugNormals:             "normals",
	DebugTexCoords:           "uv",
	DebugNormalMap:           "normalmap",
}

// DebugModes lists the known modes in selector order
func DebugModes() []DebugMode {
	return []DebugMode{
		DebugOff, DebugBoxTests, DebugTriangleTests, DebugBoxAndTriangleTests,
		DebugDepth, DebugFocus, DebugNormals, DebugTexCoords, DebugNormalMap,
	}
}

func (m DebugMode) String() string {
	if name, ok := debugModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("DebugMode(%d)", int(m))
}

// ParseDebugMode converts a mode name to a DebugMode
func ParseDebugMode(s string) (DebugMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DebugOff, nil
	}
	for mode, name := range debugModeNames {
		if name == s {
			return mode, nil
		}
	}
	return DebugOff, fmt.Errorf("unknown debug mode %q", s)
}

// Params is the per-frame configuration read by every pixel task
type Params struct {
	Width, Height    int
	MaxBounces       int
	SamplesPerPixel  int
	EnvironmentLight bool // Light escaping rays with the procedural sky
	Frame            int  // Index of the frame being rendered, 0 is the first
	Accumulate       bool // Blend into previous frames instead of overwriting
	DebugMode        DebugMode
	DebugScale       float64 // Divisor that maps debug counts and distances into [0,1]

	NormalMapping         bool
	CosineWeightedDiffuse bool
}

// DefaultParams returns settings for an accumulating render lit by the sky
func DefaultParams(width, height int) Params {
	return Params{
		Width:            width,
		Height:           height,
		MaxBounces:       8,
		SamplesPerPixel:  4,
		EnvironmentLight: true,
		Accumulate:       true,
		DebugMode:        DebugOff,
		DebugScale:       100,
	}
}
