// Package environment holds the static geometry bodies settle against and the
// loaders for the optional text sources that describe it.
package environment

import (
	"log/slog"

	"github.com/nvandessel/ballfall/internal/models"
	"github.com/nvandessel/ballfall/internal/pathutil"
)

// SegmentDefaults are applied to every segment that does not carry its own values.
type SegmentDefaults struct {
	Thickness  float64
	Elasticity float64
	Friction   float64
}

// Environment is the immutable set of static segments for a run.
type Environment struct {
	width    float64
	height   float64
	segments []models.Segment
}

// New creates an Environment. The segment slice is copied.
func New(width, height float64, segments []models.Segment) *Environment {
	segs := make([]models.Segment, len(segments))
	copy(segs, segments)
	return &Environment{width: width, height: height, segments: segs}
}

// Width returns the horizontal extent.
func (e *Environment) Width() float64 { return e.width }

// Height returns the vertical extent.
func (e *Environment) Height() float64 { return e.height }

// Segments returns a copy of the static segments.
func (e *Environment) Segments() []models.Segment {
	segs := make([]models.Segment, len(e.segments))
	copy(segs, e.segments)
	return segs
}

// DefaultFunnel returns the hard-coded container: a floor between x=200 and
// x=600 with two walls flaring out to the top corners.
func DefaultFunnel(width, height float64, d SegmentDefaults) []models.Segment {
	floorY := height - 550
	topY := height - 50
	seg := func(ax, ay, bx, by float64) models.Segment {
		return models.Segment{
			A:          models.Vec2{X: ax, Y: ay},
			B:          models.Vec2{X: bx, Y: by},
			Thickness:  d.Thickness,
			Elasticity: d.Elasticity,
			Friction:   d.Friction,
		}
	}
	return []models.Segment{
		seg(200, floorY, 600, floorY),
		seg(50, topY, 200, floorY),
		seg(width-50, topY, 600, floorY),
	}
}

// Build returns the run environment. With an empty segmentsPath it uses the
// hard-coded funnel. A segment source that cannot be read is logged and the
// funnel is used instead.
func Build(width, height float64, segmentsPath string, d SegmentDefaults, logger *slog.Logger) *Environment {
	if segmentsPath == "" {
		return New(width, height, DefaultFunnel(width, height, d))
	}

	segs, err := LoadSegments(segmentsPath, d)
	if err != nil {
		logger.Warn("segment source unreadable, using built-in funnel",
			"path", pathutil.RedactPath(segmentsPath), "error", err)
		return New(width, height, DefaultFunnel(width, height, d))
	}

	logger.Debug("loaded segments", "path", pathutil.RedactPath(segmentsPath), "count", len(segs))
	return New(width, height, segs)
}
