package sim

// Particle is a purely cosmetic decay fragment.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Size   float64
	Life   int // frames left
	Col    RGB
}

// NewParticle returns a particle with a random velocity in [-3,3]² and a random size in 3..8.
func NewParticle(x, y float64, col RGB, r *Rand) Particle {
	return Particle{
		X: x, Y: y,
		VX:   r.RangeF(-ParticleMaxSpeed, ParticleMaxSpeed),
		VY:   r.RangeF(-ParticleMaxSpeed, ParticleMaxSpeed),
		Size: float64(r.Range(ParticleMinSize, ParticleMaxSize)),
		Life: ParticleLife,
		Col:  col,
	}
}

func (p *Particle) Update() {
	p.X += p.VX
	p.Y += p.VY
	p.Life--
	p.Size -= ParticleShrink
	if p.Size < 1 {
		p.Size = 1
	}
}

// Alpha fades linearly with remaining life.
func (p *Particle) Alpha() float64 {
	return clampF(float64(p.Life)/ParticleLife, 0, 1)
}

type ParticleSystem struct {
	Max    int
	P      []Particle
	rng    *Rand
	ovrIdx int // circular overwrite index when full
}

func NewParticleSystem(maxParticles int, seed uint64) *ParticleSystem {
	if maxParticles <= 0 {
		maxParticles = MaxParticles
	}
	return &ParticleSystem{
		Max: maxParticles,
		P:   make([]Particle, 0, maxParticles),
		rng: NewRand(seed),
	}
}

func (ps *ParticleSystem) Clear() {
	ps.P = ps.P[:0]
	ps.ovrIdx = 0
}

func (ps *ParticleSystem) Add(p Particle) {
	if len(ps.P) < ps.Max {
		ps.P = append(ps.P, p)
		return
	}
	// Circular overwrite.
	if ps.ovrIdx >= ps.Max {
		ps.ovrIdx = 0
	}
	ps.P[ps.ovrIdx] = p
	ps.ovrIdx++
}

// Burst emits count particles at (x, y).
func (ps *ParticleSystem) Burst(x, y float64, col RGB, count int) {
	for range count {
		ps.Add(NewParticle(x, y, col, ps.rng))
	}
}

// Update advances every particle and drops the ones whose life ran out.
func (ps *ParticleSystem) Update() {
	kept := ps.P[:0]
	for _, p := range ps.P {
		p.Update()
		if p.Life <= 0 {
			continue
		}
		kept = append(kept, p)
	}
	ps.P = kept
	if ps.ovrIdx > len(ps.P) {
		ps.ovrIdx = 0
	}
}

func (ps *ParticleSystem) Len() int { return len(ps.P) }
