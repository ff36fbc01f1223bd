package sim

// Playfield dimensions (in playfield units; the desktop window maps 1:1 at default size).
const (
	Width  = 1000
	Height = 700
)

// Tick rate driven by the frontends.
const TicksPerSecond = 60

// Entity sizes.
const (
	PlayerSize     = 50
	EnemySize      = 50
	ProjectileSize = 10
	PowerUpSize    = 30
)

// Player tuning (per frame).
const (
	PlayerSpeed       = 4.0
	PlayerMaxStamina  = 100.0
	PlayerMaxHealth   = 100.0
	StaminaRegen      = 0.5
	DashCost          = 30.0
	DashSpeed         = 12.0
	DashCooldown      = 20
	DiagonalFactor    = 0.707
	SpeedBoostFactor  = 1.5
	BuffDuration      = 300
	HealthPickupBonus = 30.0
)

// Enemy tuning.
const (
	EnemyBaseSpeed       = 1.0
	EnemySpeedPerLevel   = 0.1
	EnemyBaseHealth      = 2.0
	EnemyContactDamage   = 10.0
	ProjectileDamage     = 1.0
	EnemySpawnEdgeOffset = EnemySize
)

// Projectile tuning.
const ProjectileSpeed = 8.0

// Power-up tuning.
const (
	PowerUpLifetime    = 600
	PowerUpSpawnMargin = 50
	PowerUpSpawnEvery  = 600
)

// Waves and scoring.
const (
	EnemySpawnEvery   = 180
	EnemiesPerWaveDiv = 3 // a wave spawns 1 + wave/EnemiesPerWaveDiv enemies
	ScorePerKill      = 10.0
	ScorePerFrame     = 0.1
)

// Particles.
const (
	MaxParticles     = 4000
	ParticleLife     = 30
	ParticleMaxSpeed = 3.0
	ParticleMinSize  = 3
	ParticleMaxSize  = 8
	ParticleShrink   = 0.2

	HitParticles    = 20
	KillParticles   = 15
	PickupParticles = 10
)
