package sim

type PowerUpKind int

const (
	PowerUpHealth PowerUpKind = iota
	PowerUpSpeed
	PowerUpShield

	PowerUpKindCount // must stay last
)

var powerUpKinds = [PowerUpKindCount]struct {
	Name  string
	Label string
	Col   RGB
}{
	PowerUpHealth: {Name: "health", Label: "+30 HEALTH", Col: Palette.Green},
	PowerUpSpeed:  {Name: "speed", Label: "SPEED BOOST", Col: Palette.Cyan},
	PowerUpShield: {Name: "shield", Label: "SHIELD ACTIVE", Col: Palette.Purple},
}

func (k PowerUpKind) String() string {
	if k < 0 || k >= PowerUpKindCount {
		return "unknown"
	}
	return powerUpKinds[k].Name
}

func (k PowerUpKind) Label() string {
	if k < 0 || k >= PowerUpKindCount {
		return ""
	}
	return powerUpKinds[k].Label
}

func (k PowerUpKind) Color() RGB {
	if k < 0 || k >= PowerUpKindCount {
		return Palette.White
	}
	return powerUpKinds[k].Col
}

// PowerUp is a stationary pickup that expires after PowerUpLifetime frames.
// Its effect is applied by the session on pickup, see Player.ApplyPowerUp.
type PowerUp struct {
	X, Y     float64
	Kind     PowerUpKind
	Lifetime int
}

func NewPowerUp(x, y float64, kind PowerUpKind) PowerUp {
	return PowerUp{X: x, Y: y, Kind: kind, Lifetime: PowerUpLifetime}
}

// Update burns one frame of lifetime and reports whether the pickup is still alive.
func (p *PowerUp) Update() bool {
	p.Lifetime--
	return p.Lifetime > 0
}
