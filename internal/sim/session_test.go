package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	high  int
	saves []int
	err   error
}

func (m *memStore) LoadHighScore() int { return m.high }

func (m *memStore) SaveHighScore(score int) error {
	m.saves = append(m.saves, score)
	if m.err != nil {
		return m.err
	}
	m.high = score
	return nil
}

func playingSession(t *testing.T, store HighScoreStore) *Session {
	t.Helper()
	s := NewSession(1, store)
	s.Tick(Input{Triggers: []Trigger{TriggerConfirm}})
	require.Equal(t, ModePlaying, s.Mode)
	s.Reset()
	return s
}

func TestNewSessionLoadsHighScore(t *testing.T) {
	s := NewSession(1, &memStore{high: 420})
	assert.Equal(t, 420, s.HighScore)
	assert.Equal(t, ModeMenu, s.Mode)
	assert.Equal(t, 1, s.Wave)

	s = NewSession(1, nil)
	assert.Zero(t, s.HighScore)
}

func TestEnemyContactDamagesPlayer(t *testing.T) {
	s := playingSession(t, nil)
	require.Equal(t, 500.0, s.Player.X)
	require.Equal(t, 350.0, s.Player.Y)

	s.Enemies = append(s.Enemies, NewEnemyOfKind(550.5, 350, 0, EnemyNormal))
	s.Tick(Input{})

	assert.Equal(t, 90.0, s.Player.HP.Current)
	assert.Empty(t, s.Enemies)
	assert.Equal(t, HitParticles, s.Particles.Len())
	assert.Equal(t, ModePlaying, s.Mode)
}

func TestEnemyAtExactThresholdDoesNotCollide(t *testing.T) {
	s := playingSession(t, nil)
	// One step of speed 1 lands the enemy exactly 50 units away.
	s.Enemies = append(s.Enemies, NewEnemyOfKind(551, 350, 0, EnemyNormal))
	s.Tick(Input{})

	assert.Equal(t, PlayerMaxHealth, s.Player.HP.Current)
	require.Len(t, s.Enemies, 1)
	assert.Equal(t, 550.0, s.Enemies[0].X)
}

func TestProjectileKillsWeakEnemy(t *testing.T) {
	s := playingSession(t, nil)
	s.Enemies = append(s.Enemies, NewEnemyOfKind(700, 350, 0, EnemyFast))
	require.Equal(t, 1.0, s.Enemies[0].HP.Current)
	s.Projectiles = append(s.Projectiles, Projectile{X: 680, Y: 350, VX: ProjectileSpeed, Active: true})

	s.Tick(Input{})

	assert.Empty(t, s.Enemies)
	assert.Empty(t, s.Projectiles)
	assert.Equal(t, 1, s.Kills)
	assert.InDelta(t, ScorePerKill+ScorePerFrame, s.Score, 1e-9)
	assert.Equal(t, KillParticles, s.Particles.Len())
}

func TestProjectileConsumedByDurableEnemy(t *testing.T) {
	s := playingSession(t, nil)
	s.Enemies = append(s.Enemies,
		NewEnemyOfKind(700, 350, 0, EnemyTank),
		NewEnemyOfKind(705, 350, 0, EnemyFast),
	)
	s.Projectiles = append(s.Projectiles, Projectile{X: 690, Y: 350, VX: ProjectileSpeed, Active: true})

	s.Tick(Input{})

	require.Len(t, s.Enemies, 2, "only the first enemy in range is hit")
	assert.Equal(t, 3.0, s.Enemies[0].HP.Current)
	assert.Equal(t, 1.0, s.Enemies[1].HP.Current)
	assert.Empty(t, s.Projectiles)
	assert.Zero(t, s.Kills)
}

func TestShieldPickupLastsBuffDuration(t *testing.T) {
	s := playingSession(t, nil)
	s.PowerUps = append(s.PowerUps, NewPowerUp(500, 350, PowerUpShield))

	s.Tick(Input{})
	require.Empty(t, s.PowerUps)
	assert.True(t, s.Player.Shield)
	assert.Equal(t, BuffDuration, s.Player.ShieldTimer)
	assert.Equal(t, PickupParticles, s.Particles.Len())

	for range BuffDuration - 1 {
		s.Tick(Input{})
	}
	assert.True(t, s.Player.Shield)
	s.Tick(Input{})
	assert.False(t, s.Player.Shield)
}

func TestPowerUpExpires(t *testing.T) {
	s := playingSession(t, nil)
	s.PowerUps = append(s.PowerUps, NewPowerUp(100, 100, PowerUpHealth))
	s.PowerUps[0].Lifetime = 2

	s.Tick(Input{})
	assert.Len(t, s.PowerUps, 1)
	s.Tick(Input{})
	assert.Empty(t, s.PowerUps)
}

func TestWaveSpawn(t *testing.T) {
	s := playingSession(t, nil)
	s.Wave = 4
	s.SpawnTimer = EnemySpawnEvery - 1

	var spawned, waves int
	s.Events.Subscribe(EventEnemySpawned, func(Event) { spawned++ })
	s.Events.Subscribe(EventWaveStarted, func(e Event) {
		waves++
		assert.Equal(t, 5, e.Data)
	})

	s.Tick(Input{})

	assert.Len(t, s.Enemies, 2)
	assert.Equal(t, 2, spawned)
	assert.Equal(t, 1, waves)
	assert.Equal(t, 5, s.Wave)
	assert.Equal(t, 1, s.Difficulty)
	assert.Zero(t, s.SpawnTimer)
	for _, e := range s.Enemies {
		// Spawned enemies already took one step toward the player.
		onEdge := e.X <= -EnemySpawnEdgeOffset+2 || e.X >= Width+EnemySpawnEdgeOffset-2 ||
			e.Y <= -EnemySpawnEdgeOffset+2 || e.Y >= Height+EnemySpawnEdgeOffset-2
		assert.True(t, onEdge, "enemy at (%v,%v) should start off-field", e.X, e.Y)
	}
}

func TestPowerUpSpawnInterval(t *testing.T) {
	s := playingSession(t, nil)
	var spawns []Event
	s.Events.Subscribe(EventPowerUpSpawned, func(e Event) { spawns = append(spawns, e) })

	for range PowerUpSpawnEvery - 1 {
		s.Tick(Input{})
	}
	assert.Empty(t, spawns)
	s.Tick(Input{})
	require.Len(t, spawns, 1)
	assert.GreaterOrEqual(t, spawns[0].X, float64(PowerUpSpawnMargin))
	assert.LessOrEqual(t, spawns[0].X, float64(Width-PowerUpSpawnMargin))
	assert.GreaterOrEqual(t, spawns[0].Y, float64(PowerUpSpawnMargin))
	assert.LessOrEqual(t, spawns[0].Y, float64(Height-PowerUpSpawnMargin))
	assert.Zero(t, s.PowerUpTimer)
}

func TestScoreAccumulatesPerFrame(t *testing.T) {
	s := playingSession(t, nil)
	for range 100 {
		s.Tick(Input{})
	}
	assert.InDelta(t, 10.0, s.Score, 1e-6)
	assert.Equal(t, 100, s.Frame)
}

func TestGameOverSavesHighScoreOnce(t *testing.T) {
	store := &memStore{high: 5}
	s := playingSession(t, store)
	s.Score = 42.7
	s.Player.HP.Current = 10
	s.Enemies = append(s.Enemies,
		NewEnemyOfKind(510, 350, 0, EnemyNormal),
		NewEnemyOfKind(490, 350, 0, EnemyNormal),
	)
	var overs int
	s.Events.Subscribe(EventGameOver, func(Event) { overs++ })

	s.Tick(Input{})

	assert.Equal(t, ModeGameOver, s.Mode)
	assert.Equal(t, []int{42}, store.saves)
	assert.Equal(t, 42, s.HighScore)
	assert.True(t, s.NewHighScore)
	assert.True(t, s.IsHighScore())
	assert.Equal(t, 1, overs)
	assert.Empty(t, s.Enemies, "both contacts still resolve")
	assert.Equal(t, 2*HitParticles, s.Particles.Len())

	// Frozen until restarted.
	s.Tick(Input{})
	assert.Equal(t, []int{42}, store.saves)
}

func TestGameOverWithoutNewHighScore(t *testing.T) {
	store := &memStore{high: 1000}
	s := playingSession(t, store)
	s.Score = 10
	s.Player.HP.Current = 5
	s.Enemies = append(s.Enemies, NewEnemyOfKind(510, 350, 0, EnemyNormal))

	s.Tick(Input{})

	assert.Equal(t, ModeGameOver, s.Mode)
	assert.Empty(t, store.saves)
	assert.Equal(t, 1000, s.HighScore)
	assert.False(t, s.IsHighScore())
}

func TestGameOverSaveErrorIsNotFatal(t *testing.T) {
	store := &memStore{err: errors.New("disk full")}
	s := playingSession(t, store)
	s.Score = 3
	s.Player.HP.Current = 1
	s.Enemies = append(s.Enemies, NewEnemyOfKind(510, 350, 0, EnemyNormal))

	s.Tick(Input{})

	assert.Equal(t, ModeGameOver, s.Mode)
	assert.Equal(t, 3, s.HighScore)
	assert.Len(t, store.saves, 1)
}

func TestShootTriggerFiresProjectile(t *testing.T) {
	s := playingSession(t, nil)
	shots := 0
	s.Events.Subscribe(EventShot, func(Event) { shots++ })

	s.Tick(Input{Triggers: []Trigger{TriggerShoot}, TargetX: 900, TargetY: 350})

	require.Len(t, s.Projectiles, 1)
	assert.Equal(t, 1, shots)
	assert.InDelta(t, 500+ProjectileSpeed, s.Projectiles[0].X, 1e-9)
}

func TestDashEmitsEvent(t *testing.T) {
	s := playingSession(t, nil)
	dashes := 0
	s.Events.Subscribe(EventDash, func(Event) { dashes++ })

	s.Tick(Input{Move: MoveInput{Right: true, Dash: true}})
	s.Tick(Input{Move: MoveInput{Right: true, Dash: true}})

	assert.Equal(t, 1, dashes)
}

func TestInvariantsHoldUnderRandomPlay(t *testing.T) {
	s := playingSession(t, nil)
	r := NewRand(99)
	for frame := range 20000 {
		in := Input{
			Move: MoveInput{
				Up:    r.Intn(2) == 0,
				Down:  r.Intn(3) == 0,
				Left:  r.Intn(2) == 0,
				Right: r.Intn(3) == 0,
				Dash:  r.Intn(4) == 0,
			},
			TargetX: r.RangeF(0, Width),
			TargetY: r.RangeF(0, Height),
		}
		if r.Intn(5) == 0 {
			in.Triggers = append(in.Triggers, TriggerShoot)
		}
		restarting := s.Mode == ModeGameOver
		if restarting {
			in.Triggers = append(in.Triggers, TriggerRestart)
		}
		prevScore := s.Score
		s.Tick(in)

		p := s.Player
		require.GreaterOrEqual(t, p.Stamina, 0.0, "frame %d", frame)
		require.LessOrEqual(t, p.Stamina, p.MaxStamina, "frame %d", frame)
		require.GreaterOrEqual(t, p.HP.Current, 0.0, "frame %d", frame)
		require.LessOrEqual(t, p.HP.Current, p.HP.Max, "frame %d", frame)
		if !restarting {
			require.GreaterOrEqual(t, s.Score, prevScore, "frame %d", frame)
		}
		for _, e := range s.Enemies {
			require.True(t, e.Alive)
			require.LessOrEqual(t, e.HP.Current, e.HP.Max)
		}
		for _, pr := range s.Projectiles {
			require.True(t, pr.Active)
		}
	}
}

func TestSameSeedSameRun(t *testing.T) {
	run := func() *Session {
		s := NewSession(1234, nil)
		s.Tick(Input{Triggers: []Trigger{TriggerConfirm}})
		for i := range 3000 {
			in := Input{Move: MoveInput{Left: i%200 < 100, Right: i%200 >= 100}}
			if i%15 == 0 {
				in.Triggers = []Trigger{TriggerShoot}
				in.TargetX, in.TargetY = float64(i%Width), 0
			}
			s.Tick(in)
		}
		return s
	}
	a, b := run(), run()
	assert.Equal(t, a.Score, b.Score)
	assert.Equal(t, a.Kills, b.Kills)
	assert.Equal(t, a.Enemies, b.Enemies)
	assert.Equal(t, a.Particles.P, b.Particles.P)
}
