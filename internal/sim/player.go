package sim

// MoveInput holds the held-key flags for one frame.
type MoveInput struct {
	Up, Down, Left, Right bool
	Dash                  bool
}

// direction turns the flags into a per-axis direction. Diagonals are scaled by
// DiagonalFactor on each axis rather than by true normalisation.
func (in MoveInput) direction() (float64, float64) {
	var dx, dy float64
	if in.Up {
		dy--
	}
	if in.Down {
		dy++
	}
	if in.Left {
		dx--
	}
	if in.Right {
		dx++
	}
	if dx != 0 && dy != 0 {
		dx *= DiagonalFactor
		dy *= DiagonalFactor
	}
	return dx, dy
}

type Player struct {
	X, Y float64
	Col  RGB

	Speed          float64 // base speed
	EffectiveSpeed float64 // speed used on the last Move

	Stamina      float64
	MaxStamina   float64
	Dashing      bool
	DashCooldown int // frames

	HP Health

	Shield          bool
	ShieldTimer     int
	SpeedBoost      bool
	SpeedBoostTimer int
}

func NewPlayer(x, y float64, col RGB) *Player {
	return &Player{
		X:              x,
		Y:              y,
		Col:            col,
		Speed:          PlayerSpeed,
		EffectiveSpeed: PlayerSpeed,
		Stamina:        PlayerMaxStamina,
		MaxStamina:     PlayerMaxStamina,
		HP:             NewHealth(PlayerMaxHealth),
	}
}

// Move advances buffs, cooldowns and stamina by one frame, then moves the
// player and clamps it inside the playfield. After Move returns, Dashing is
// true only on the frame a dash was started.
func (p *Player) Move(in MoveInput) {
	speed := p.Speed

	if p.ShieldTimer > 0 {
		p.ShieldTimer--
		if p.ShieldTimer == 0 {
			p.Shield = false
		}
	}

	if p.SpeedBoostTimer > 0 {
		p.SpeedBoostTimer--
		speed = p.Speed * SpeedBoostFactor
		if p.SpeedBoostTimer == 0 {
			p.SpeedBoost = false
		}
	}

	if p.DashCooldown > 0 {
		p.DashCooldown--
	}

	if !p.Dashing && p.Stamina < p.MaxStamina {
		p.Stamina = clampF(p.Stamina+StaminaRegen, 0, p.MaxStamina)
	}

	dx, dy := in.direction()

	switch {
	case in.Dash && p.Stamina >= DashCost && p.DashCooldown == 0 && (dx != 0 || dy != 0):
		p.Dashing = true
		p.Stamina = clampF(p.Stamina-DashCost, 0, p.MaxStamina)
		p.DashCooldown = DashCooldown
		speed = DashSpeed
	case p.Dashing:
		// Carry the dash through one more frame.
		speed = DashSpeed
		p.Dashing = false
	}
	p.EffectiveSpeed = speed

	p.X += dx * speed
	p.Y += dy * speed
	p.X, p.Y = Playfield.Inset(PlayerSize/2).Clamp(p.X, p.Y)
}

// Shoot returns a projectile aimed at (tx, ty). It does not touch the player.
func (p *Player) Shoot(tx, ty float64) Projectile {
	return NewProjectile(p.X, p.Y, tx, ty)
}

// TakeDamage applies amount unless the shield is up and reports whether the hit was lethal.
func (p *Player) TakeDamage(amount float64) bool {
	if p.Shield {
		return false
	}
	p.HP.Damage(amount)
	return p.HP.IsDead()
}

// ApplyPowerUp grants the pickup effect of kind.
func (p *Player) ApplyPowerUp(kind PowerUpKind) {
	switch kind {
	case PowerUpHealth:
		p.HP.Heal(HealthPickupBonus)
	case PowerUpSpeed:
		p.SpeedBoost = true
		p.SpeedBoostTimer = BuffDuration
	case PowerUpShield:
		p.Shield = true
		p.ShieldTimer = BuffDuration
	}
}

// StaminaFraction is Stamina/MaxStamina in [0,1].
func (p *Player) StaminaFraction() float64 {
	if p.MaxStamina <= 0 {
		return 0
	}
	return clampF(p.Stamina/p.MaxStamina, 0, 1)
}
