package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/rollcourse/ecs/render"
)

const maxBatchVertices = 65535

var whiteImage = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

// drawPolygons fills each polygon as a triangle fan, batching draw calls.
func drawPolygons(screen *ebiten.Image, polys []render.Polygon) {
	vertices := make([]ebiten.Vertex, 0, 1024)
	indices := make([]uint16, 0, 2048)

	flush := func() {
		if len(indices) == 0 {
			return
		}
		screen.DrawTriangles(vertices, indices, whiteImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
		vertices = vertices[:0]
		indices = indices[:0]
	}

	for _, p := range polys {
		if len(p.Points) < 3 {
			continue
		}
		if len(vertices)+len(p.Points) > maxBatchVertices {
			flush()
		}
		base := uint16(len(vertices))
		r := float32(p.Color.R) / 0xff
		g := float32(p.Color.G) / 0xff
		b := float32(p.Color.B) / 0xff
		a := float32(p.Color.A) / 0xff
		for _, pt := range p.Points {
			vertices = append(vertices, ebiten.Vertex{
				DstX:   float32(pt.X()),
				DstY:   float32(pt.Y()),
				SrcX:   1,
				SrcY:   1,
				ColorR: r,
				ColorG: g,
				ColorB: b,
				ColorA: a,
			})
		}
		for i := 1; i+1 < len(p.Points); i++ {
			indices = append(indices, base, base+uint16(i), base+uint16(i+1))
		}
	}
	flush()
}
