package component

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

type MeshShape uint8

const (
	MeshBox MeshShape = iota
	MeshBall
)

// Mesh is drawn at the entity's Transform, displaced by Offset in the
// entity's local frame.
type Mesh struct {
	Shape       MeshShape
	HalfExtents mgl64.Vec3
	Radius      float64
	Offset      mgl64.Vec3
	Color       color.Color
}

var MeshComponent = NewComponent[Mesh]()
