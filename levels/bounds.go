package levels

import "github.com/go-gl/mathgl/mgl64"

const (
	wallThickness = 0.3
	wallHeight    = 1.5
	courseHalfW   = 2.0
	floorHalfH    = 0.1
)

// Box is an axis-aligned cuboid given by centre and half extents.
type Box struct {
	Center      mgl64.Vec3
	HalfExtents mgl64.Vec3
}

// BoundsSpec is the fixed geometry enclosing the whole course.
type BoundsSpec struct {
	Left  Box
	Right Box
	End   Box
	Floor Box
}

// Walls returns the three wall boxes.
func (b BoundsSpec) Walls() []Box {
	return []Box{b.Left, b.Right, b.End}
}

// Bounds sizes the walls and floor collider for totalLength block segments
// (the obstacle count plus Start and End).
func Bounds(totalLength int) BoundsSpec {
	l := float64(totalLength)
	midZ := l*BlockSpacing/2 - BlockSpacing/2
	sideHalf := mgl64.Vec3{wallThickness / 2, wallHeight / 2, l * BlockSpacing / 2}
	sideX := courseHalfW + wallThickness/2

	return BoundsSpec{
		Left: Box{
			Center:      mgl64.Vec3{-sideX, wallHeight / 2, midZ},
			HalfExtents: sideHalf,
		},
		Right: Box{
			Center:      mgl64.Vec3{sideX, wallHeight / 2, midZ},
			HalfExtents: sideHalf,
		},
		End: Box{
			Center:      mgl64.Vec3{0, wallHeight / 2, l*BlockSpacing - BlockSpacing/2},
			HalfExtents: mgl64.Vec3{courseHalfW, wallHeight / 2, wallThickness / 2},
		},
		Floor: Box{
			Center:      mgl64.Vec3{0, -floorHalfH, midZ},
			HalfExtents: mgl64.Vec3{courseHalfW, floorHalfH, l * BlockSpacing / 2},
		},
	}
}

// FloorSlab is the render-only slab under a single block.
func FloorSlab(block BlockSpec) Box {
	return Box{
		Center:      block.Position.Add(mgl64.Vec3{0, -floorHalfH, 0}),
		HalfExtents: mgl64.Vec3{courseHalfW, floorHalfH, BlockSpacing / 2},
	}
}
