package sim

import "math"

// Projectile is a player shot travelling in a straight line.
type Projectile struct {
	X, Y   float64
	VX, VY float64
	Active bool
}

// NewProjectile aims from (x, y) toward (tx, ty). The heading is fixed here;
// the shot never tracks its target afterwards.
func NewProjectile(x, y, tx, ty float64) Projectile {
	angle := Angle(x, y, tx, ty)
	return Projectile{
		X:      x,
		Y:      y,
		VX:     math.Cos(angle) * ProjectileSpeed,
		VY:     math.Sin(angle) * ProjectileSpeed,
		Active: true,
	}
}

func (p *Projectile) Update() {
	p.X += p.VX
	p.Y += p.VY
	if !Playfield.ContainsPoint(p.X, p.Y) {
		p.Active = false
	}
}
