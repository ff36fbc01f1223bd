package sim

import (
	"cubesurvival/internal/logging"
)

// HighScoreStore is the persistence collaborator. LoadHighScore returns 0 when
// nothing usable is stored.
type HighScoreStore interface {
	LoadHighScore() int
	SaveHighScore(score int) error
}

// Session is the whole simulation state, owned by the frontend loop.
type Session struct {
	Mode Mode

	Player      *Player
	Enemies     []Enemy
	Projectiles []Projectile
	PowerUps    []PowerUp
	Particles   *ParticleSystem

	Score        float64
	Wave         int
	Difficulty   int
	Kills        int
	SpawnTimer   int
	PowerUpTimer int
	Frame        int // playing ticks since the last reset

	HighScore int
	// NewHighScore is set when the last game over beat the stored high score.
	NewHighScore bool

	ColorIdx    int // selection on the customize screen
	PlayerColor RGB // colour used by the next reset

	Events *EventBus

	store    HighScoreStore
	rng      *Rand
	seed     uint64
	finished bool // game over already resolved for this run
}

// NewSession reads the high score once and leaves the session on the menu.
// store may be nil.
func NewSession(seed uint64, store HighScoreStore) *Session {
	s := &Session{
		Mode:        ModeMenu,
		PlayerColor: CubeColors[0].Col,
		Events:      NewEventBus(),
		store:       store,
		rng:         NewRand(mixSeed(seed, 0x5EED)),
		seed:        seed,
		Particles:   NewParticleSystem(MaxParticles, mixSeed(seed, 0xF00D)),
	}
	if store != nil {
		s.HighScore = store.LoadHighScore()
		if s.HighScore < 0 {
			s.HighScore = 0
		}
	}
	s.Reset()
	return s
}

func (s *Session) Seed() uint64 { return s.seed }

// Reset starts a fresh run. Mode and high score are left alone.
func (s *Session) Reset() {
	s.Player = NewPlayer(Width/2, Height/2, s.PlayerColor)
	s.Enemies = s.Enemies[:0]
	s.Projectiles = s.Projectiles[:0]
	s.PowerUps = s.PowerUps[:0]
	s.Particles.Clear()
	s.Score = 0
	s.Wave = 1
	s.Difficulty = 0
	s.Kills = 0
	s.SpawnTimer = 0
	s.PowerUpTimer = 0
	s.Frame = 0
	s.NewHighScore = false
	s.finished = false
}

// Tick advances one fixed frame: triggers first, then the simulation when playing.
func (s *Session) Tick(in Input) {
	s.applyTriggers(&in)
	if s.Mode != ModePlaying {
		return
	}
	s.step(in.Move)
}

func (s *Session) step(mv MoveInput) {
	s.Frame++

	s.Player.Move(mv)
	if s.Player.Dashing {
		s.Events.Emit(Event{Type: EventDash, X: s.Player.X, Y: s.Player.Y})
	}

	s.SpawnTimer++
	if s.SpawnTimer >= EnemySpawnEvery {
		n := 1 + s.Wave/EnemiesPerWaveDiv
		for range n {
			s.spawnEnemy()
		}
		s.SpawnTimer = 0
		s.Wave++
		s.Difficulty++
		s.Events.Emit(Event{Type: EventWaveStarted, Data: s.Wave})
	}

	s.PowerUpTimer++
	if s.PowerUpTimer >= PowerUpSpawnEvery {
		s.spawnPowerUp()
		s.PowerUpTimer = 0
	}

	s.updateEnemies()
	s.updateProjectiles()
	s.Enemies = removeDeadEnemies(s.Enemies)
	s.updatePowerUps()
	s.Particles.Update()

	s.Score += ScorePerFrame
}

// spawnEnemy places one enemy just outside a random playfield edge.
func (s *Session) spawnEnemy() {
	var x, y float64
	switch s.rng.Intn(4) {
	case 0: // top
		x, y = float64(s.rng.Range(0, Width)), -EnemySpawnEdgeOffset
	case 1: // bottom
		x, y = float64(s.rng.Range(0, Width)), Height+EnemySpawnEdgeOffset
	case 2: // left
		x, y = -EnemySpawnEdgeOffset, float64(s.rng.Range(0, Height))
	default: // right
		x, y = Width+EnemySpawnEdgeOffset, float64(s.rng.Range(0, Height))
	}
	e := NewEnemy(x, y, s.Difficulty, s.rng)
	s.Enemies = append(s.Enemies, e)
	s.Events.Emit(Event{Type: EventEnemySpawned, X: x, Y: y, Data: int(e.Kind)})
}

func (s *Session) spawnPowerUp() {
	x := float64(s.rng.Range(PowerUpSpawnMargin, Width-PowerUpSpawnMargin))
	y := float64(s.rng.Range(PowerUpSpawnMargin, Height-PowerUpSpawnMargin))
	kind := PowerUpKind(s.rng.Intn(int(PowerUpKindCount)))
	s.PowerUps = append(s.PowerUps, NewPowerUp(x, y, kind))
	s.Events.Emit(Event{Type: EventPowerUpSpawned, X: x, Y: y, Data: int(kind)})
}

// updateEnemies moves every enemy and resolves contact with the player.
// Contact always consumes the enemy.
func (s *Session) updateEnemies() {
	p := s.Player
	for i := range s.Enemies {
		e := &s.Enemies[i]
		e.MoveTowards(p.X, p.Y)
		if !Colliding(p.X, p.Y, e.X, e.Y, (PlayerSize+EnemySize)/2) {
			continue
		}
		absorbed := 0
		if p.Shield {
			absorbed = 1
		}
		lethal := p.TakeDamage(EnemyContactDamage)
		s.Events.Emit(Event{Type: EventPlayerHit, X: e.X, Y: e.Y, Data: absorbed})
		if lethal {
			s.gameOver()
		}
		e.Alive = false
		s.Particles.Burst(e.X, e.Y, e.Col, HitParticles)
	}
}

// updateProjectiles moves shots and lets each one hit at most one live enemy.
func (s *Session) updateProjectiles() {
	kept := s.Projectiles[:0]
	for _, pr := range s.Projectiles {
		pr.Update()
		if !pr.Active {
			continue
		}
		for i := range s.Enemies {
			e := &s.Enemies[i]
			if !e.Alive || !Colliding(pr.X, pr.Y, e.X, e.Y, ProjectileSize+EnemySize/2) {
				continue
			}
			if e.TakeDamage(ProjectileDamage) {
				e.Alive = false
				s.Score += ScorePerKill
				s.Kills++
				s.Particles.Burst(e.X, e.Y, e.Col, KillParticles)
				s.Events.Emit(Event{Type: EventEnemyKilled, X: e.X, Y: e.Y, Data: int(e.Kind)})
			} else {
				s.Events.Emit(Event{Type: EventEnemyHit, X: e.X, Y: e.Y, Data: int(e.Kind)})
			}
			pr.Active = false
			break
		}
		if pr.Active {
			kept = append(kept, pr)
		}
	}
	s.Projectiles = kept
}

func (s *Session) updatePowerUps() {
	p := s.Player
	kept := s.PowerUps[:0]
	for _, pu := range s.PowerUps {
		if !pu.Update() {
			continue
		}
		if Colliding(p.X, p.Y, pu.X, pu.Y, (PlayerSize+PowerUpSize)/2) {
			p.ApplyPowerUp(pu.Kind)
			s.Particles.Burst(pu.X, pu.Y, pu.Kind.Color(), PickupParticles)
			s.Events.Emit(Event{Type: EventPowerUpCollected, X: pu.X, Y: pu.Y, Data: int(pu.Kind)})
			continue
		}
		kept = append(kept, pu)
	}
	s.PowerUps = kept
}

// gameOver switches to the game-over screen and persists a beaten high score.
// Only the first lethal hit of a run gets here.
func (s *Session) gameOver() {
	if s.finished {
		return
	}
	s.finished = true
	s.setMode(ModeGameOver)
	s.Events.Emit(Event{Type: EventGameOver, Data: int(s.Score)})

	if s.Score <= float64(s.HighScore) {
		return
	}
	s.HighScore = int(s.Score)
	s.NewHighScore = true
	s.Events.Emit(Event{Type: EventNewHighScore, Data: s.HighScore})
	if s.store == nil {
		return
	}
	if err := s.store.SaveHighScore(s.HighScore); err != nil {
		logging.LogWarn("saving high score %d: %v", s.HighScore, err)
	}
}

// IsHighScore reports whether the current run matches or beats the high score,
// which is what the game-over screen celebrates.
func (s *Session) IsHighScore() bool {
	return s.Score >= float64(s.HighScore)
}

// WavesSurvived is the number of completed waves.
func (s *Session) WavesSurvived() int {
	return s.Wave - 1
}

// ColorName is the name of the colour highlighted on the customize screen.
func (s *Session) ColorName() string {
	return CubeColors[s.ColorIdx].Name
}
