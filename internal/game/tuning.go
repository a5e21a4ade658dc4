package game

// --- Tuning ---
//
// Every constant the simulation reads lives here so hosts can override it
// from config. Values are in world units (metres) and seconds.

// PlayerTuning holds the player's fixed defaults.
type PlayerTuning struct {
	EyeHeight        float64 `mapstructure:"eyeHeight"`        // standing camera height, also the ground clamp
	MaxHealth        float64 `mapstructure:"maxHealth"`        // starting and maximum health
	MoveSpeed        float64 `mapstructure:"moveSpeed"`        // walk speed, units/s
	SprintSpeed      float64 `mapstructure:"sprintSpeed"`      // sprint speed, units/s
	JumpPower        float64 `mapstructure:"jumpPower"`        // vertical impulse, units/s
	Gravity          float64 `mapstructure:"gravity"`          // units/s²
	MouseSensitivity float64 `mapstructure:"mouseSensitivity"` // radians per mouse count
	GameOverDelay    float64 `mapstructure:"gameOverDelay"`    // seconds between death and game over
}

// ArchetypeStats are the base stats an archetype spawns with.
type ArchetypeStats struct {
	Health     float64 `mapstructure:"health"`
	Speed      float64 `mapstructure:"speed"`
	Damage     float64 `mapstructure:"damage"`
	AggroRange float64 `mapstructure:"aggroRange"`
}

// EnemyTuning holds the agent model constants.
type EnemyTuning struct {
	Boar              ArchetypeStats `mapstructure:"boar"`
	Tusker            ArchetypeStats `mapstructure:"tusker"`
	AttackRange       float64        `mapstructure:"attackRange"`
	AttackCooldown    float64        `mapstructure:"attackCooldown"`    // seconds between contact hits
	RemovalDelay      float64        `mapstructure:"removalDelay"`      // corpse grace period
	PatrolSpeedFactor float64        `mapstructure:"patrolSpeedFactor"` // fraction of base speed while patrolling
	PatrolArrive      float64        `mapstructure:"patrolArrive"`      // distance at which a patrol target is reached
	PatrolWander      float64        `mapstructure:"patrolWander"`      // full width of the new-target box
	SpawnWander       float64        `mapstructure:"spawnWander"`       // full width of the first-target box
	ZigzagFrequency   float64        `mapstructure:"zigzagFrequency"`   // rad/s of the charge oscillation
	ZigzagWeight      float64        `mapstructure:"zigzagWeight"`      // lateral share mixed into the charge
}

// WeaponTuning describes one weapon archetype.
type WeaponTuning struct {
	Name            string  `mapstructure:"name"`
	Damage          float64 `mapstructure:"damage"`
	Unlimited       bool    `mapstructure:"unlimited"`
	MaxAmmo         int     `mapstructure:"maxAmmo"`
	FireInterval    float64 `mapstructure:"fireInterval"`
	ReloadTime      float64 `mapstructure:"reloadTime"`
	Unlocked        bool    `mapstructure:"unlocked"`
	Range           float64 `mapstructure:"range"`
	ProjectileSpeed float64 `mapstructure:"projectileSpeed"`
	Pellets         int     `mapstructure:"pellets"`
	SpreadLateral   float64 `mapstructure:"spreadLateral"`  // full width of the lateral perturbation
	SpreadVertical  float64 `mapstructure:"spreadVertical"` // full width of the vertical perturbation
	UnlockKills     int     `mapstructure:"unlockKills"`    // kills that unlock it; 0 = never by kills
}

// WeaponsTuning is the weapon table.
type WeaponsTuning struct {
	Rifle     WeaponTuning `mapstructure:"rifle"`
	Shotgun   WeaponTuning `mapstructure:"shotgun"`
	Explosive WeaponTuning `mapstructure:"explosive"`
}

// ProjectileTuning holds hit resolution constants.
type ProjectileTuning struct {
	HitRadius   float64 `mapstructure:"hitRadius"`
	HitScore    int     `mapstructure:"hitScore"`
	GroundLevel float64 `mapstructure:"groundLevel"`
}

// SpawnerTuning drives the ambient enemy spawner.
type SpawnerTuning struct {
	Enabled     bool    `mapstructure:"enabled"`
	RatePerSec  float64 `mapstructure:"ratePerSec"` // spawn probability per second at normal difficulty
	MaxLive     int     `mapstructure:"maxLive"`
	MinDistance float64 `mapstructure:"minDistance"`
	MaxDistance float64 `mapstructure:"maxDistance"`
	TuskerShare float64 `mapstructure:"tuskerShare"`
}

// DifficultyProfile scales spawn and enemy tuning.
type DifficultyProfile struct {
	EnemyHealth float64 `mapstructure:"enemyHealth"`
	EnemyDamage float64 `mapstructure:"enemyDamage"`
	EnemySpeed  float64 `mapstructure:"enemySpeed"`
	SpawnRate   float64 `mapstructure:"spawnRate"`
}

// DifficultyTuning maps each difficulty to its profile.
type DifficultyTuning struct {
	Easy   DifficultyProfile `mapstructure:"easy"`
	Normal DifficultyProfile `mapstructure:"normal"`
	Hard   DifficultyProfile `mapstructure:"hard"`
}

// Tuning is the full simulation parameter set.
type Tuning struct {
	Player        PlayerTuning     `mapstructure:"player"`
	Enemy         EnemyTuning      `mapstructure:"enemy"`
	Weapons       WeaponsTuning    `mapstructure:"weapons"`
	Projectile    ProjectileTuning `mapstructure:"projectile"`
	Spawner       SpawnerTuning    `mapstructure:"spawner"`
	Difficulty    DifficultyTuning `mapstructure:"difficulty"`
	MaxFrameDelta float64          `mapstructure:"maxFrameDelta"` // Δt clamp at the step boundary
}

// DefaultTuning returns the stock game balance.
func DefaultTuning() Tuning {
	return Tuning{
		Player: PlayerTuning{
			EyeHeight:        1.7,
			MaxHealth:        100,
			MoveSpeed:        8,
			SprintSpeed:      12,
			JumpPower:        10,
			Gravity:          30,
			MouseSensitivity: 0.002,
			GameOverDelay:    1.0,
		},
		Enemy: EnemyTuning{
			Boar:              ArchetypeStats{Health: 30, Speed: 6, Damage: 15, AggroRange: 20},
			Tusker:            ArchetypeStats{Health: 60, Speed: 4, Damage: 25, AggroRange: 25},
			AttackRange:       2,
			AttackCooldown:    2,
			RemovalDelay:      2,
			PatrolSpeedFactor: 0.3,
			PatrolArrive:      2,
			PatrolWander:      30,
			SpawnWander:       20,
			ZigzagFrequency:   5,
			ZigzagWeight:      0.3,
		},
		Weapons: WeaponsTuning{
			Rifle: WeaponTuning{
				Name: "Lever-Action Rifle", Damage: 25, Unlimited: true,
				FireInterval: 1.2, ReloadTime: 2.0, Unlocked: true,
				Range: 100, ProjectileSpeed: 100, Pellets: 1,
			},
			Shotgun: WeaponTuning{
				Name: "Pump Shotgun", Damage: 15, MaxAmmo: 8,
				FireInterval: 0.8, ReloadTime: 3.0,
				Range: 30, ProjectileSpeed: 80, Pellets: 8,
				SpreadLateral: 0.3, SpreadVertical: 0.2, UnlockKills: 5,
			},
			Explosive: WeaponTuning{
				Name: "TX-TNT Bundle", Damage: 100, MaxAmmo: 3,
				FireInterval: 1.5, ReloadTime: 0,
				Range: 50, ProjectileSpeed: 30, Pellets: 1, UnlockKills: 15,
			},
		},
		Projectile: ProjectileTuning{HitRadius: 1, HitScore: 10, GroundLevel: 0},
		Spawner: SpawnerTuning{
			Enabled:     true,
			RatePerSec:  0.06, // ~0.001 per frame at 60fps
			MaxLive:     8,
			MinDistance: 30,
			MaxDistance: 50,
			TuskerShare: 0.25,
		},
		Difficulty: DifficultyTuning{
			Easy:   DifficultyProfile{EnemyHealth: 0.75, EnemyDamage: 0.5, EnemySpeed: 0.85, SpawnRate: 0.6},
			Normal: DifficultyProfile{EnemyHealth: 1, EnemyDamage: 1, EnemySpeed: 1, SpawnRate: 1},
			Hard:   DifficultyProfile{EnemyHealth: 1.5, EnemyDamage: 1.5, EnemySpeed: 1.2, SpawnRate: 1.6},
		},
		MaxFrameDelta: 0.1,
	}
}

// Profile returns the profile for d, falling back to normal.
func (dt DifficultyTuning) Profile(d Difficulty) DifficultyProfile {
	switch d {
	case DifficultyEasy:
		return dt.Easy
	case DifficultyHard:
		return dt.Hard
	default:
		return dt.Normal
	}
}

// Stats returns the base stats of an archetype.
func (et EnemyTuning) Stats(a Archetype) ArchetypeStats {
	if a == ArchetypeTusker {
		return et.Tusker
	}
	return et.Boar
}

// Weapon returns the tuning row for kind.
func (wt WeaponsTuning) Weapon(kind WeaponKind) WeaponTuning {
	switch kind {
	case WeaponShotgun:
		return wt.Shotgun
	case WeaponExplosive:
		return wt.Explosive
	default:
		return wt.Rifle
	}
}
