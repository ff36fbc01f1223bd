package sim

type EnemyKind int

const (
	EnemyNormal EnemyKind = iota
	EnemyFast
	EnemyTank

	EnemyKindCount // must stay last
)

// enemyStats are the per-kind modifiers applied on top of the difficulty base.
type enemyStats struct {
	Name        string
	SpeedMul    float64
	HealthDelta float64
	HealthMul   float64
	Col         RGB
}

var enemyKinds = [EnemyKindCount]enemyStats{
	EnemyNormal: {Name: "normal", SpeedMul: 1, HealthDelta: 0, HealthMul: 1, Col: Palette.Blue},
	EnemyFast:   {Name: "fast", SpeedMul: 1.5, HealthDelta: -1, HealthMul: 1, Col: Palette.Orange},
	EnemyTank:   {Name: "tank", SpeedMul: 0.7, HealthDelta: 0, HealthMul: 2, Col: Palette.Steel},
}

func (k EnemyKind) String() string {
	if k < 0 || k >= EnemyKindCount {
		return "unknown"
	}
	return enemyKinds[k].Name
}

func (k EnemyKind) Color() RGB {
	if k < 0 || k >= EnemyKindCount {
		return Palette.White
	}
	return enemyKinds[k].Col
}

type Enemy struct {
	X, Y  float64
	Speed float64
	HP    Health
	Kind  EnemyKind
	Col   RGB
	Alive bool
}

// NewEnemy spawns an enemy of a uniformly random kind.
func NewEnemy(x, y float64, difficulty int, r *Rand) Enemy {
	return NewEnemyOfKind(x, y, difficulty, EnemyKind(r.Intn(int(EnemyKindCount))))
}

// NewEnemyOfKind derives speed and health from difficulty, then applies the kind modifiers.
func NewEnemyOfKind(x, y float64, difficulty int, kind EnemyKind) Enemy {
	st := enemyKinds[kind]
	speed := (EnemyBaseSpeed + EnemySpeedPerLevel*float64(difficulty)) * st.SpeedMul
	hp := (EnemyBaseHealth + float64(difficulty) + st.HealthDelta) * st.HealthMul
	if hp < 1 {
		hp = 1
	}
	return Enemy{
		X:     x,
		Y:     y,
		Speed: speed,
		HP:    NewHealth(hp),
		Kind:  kind,
		Col:   st.Col,
		Alive: true,
	}
}

// MoveTowards steps Speed units toward (px, py). Already on target: no-op.
func (e *Enemy) MoveTowards(px, py float64) {
	nx, ny, d := Normalize(px-e.X, py-e.Y)
	if d == 0 {
		return
	}
	e.X += nx * e.Speed
	e.Y += ny * e.Speed
}

// TakeDamage subtracts amount and reports whether the enemy died.
func (e *Enemy) TakeDamage(amount float64) bool {
	e.HP.Damage(amount)
	return e.HP.IsDead()
}

// removeDeadEnemies compacts in place, keeping collection order.
func removeDeadEnemies(es []Enemy) []Enemy {
	kept := es[:0]
	for _, e := range es {
		if e.Alive {
			kept = append(kept, e)
		}
	}
	return kept
}
