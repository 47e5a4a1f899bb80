package component

import "github.com/go-gl/mathgl/mgl64"

// Goal is an axis-aligned trigger volume centred on the entity's Transform.
type Goal struct {
	HalfExtents mgl64.Vec3
	Reached     bool
}

// Contains reports whether p lies inside the volume centred at center.
func (g Goal) Contains(center, p mgl64.Vec3) bool {
	d := p.Sub(center)
	for i := 0; i < 3; i++ {
		if d[i] < -g.HalfExtents[i] || d[i] > g.HalfExtents[i] {
			return false
		}
	}
	return true
}

var GoalComponent = NewComponent[Goal]()
