package arena

import "time"

// Tick cadence. The simulation always advances by TickInterval regardless
// of how long a tick actually took to compute (no fixed-accumulator catch-up).
const (
	TickRate     = 20
	TickInterval = time.Second / TickRate
	DT           = 1.0 / float64(TickRate)
)

// Arena bounds, XZ plane, symmetric around the origin.
const ArenaSize = 300.0

// Ship kinematics.
const (
	ShipRadius        = 1.5
	ShipMaxSpeed      = 3.0
	ShipAcceleration  = 0.08
	ShipDrag          = 0.98
	ShipRotationSpeed = 1.5 // rad/s
)

// Shared pools and regen.
const (
	ShieldRegenRate  = 8.0
	ShieldRegenDelay = 5.0
	EnergyRegenRate  = 8.0
	RespawnTime      = 10.0
)

// Laser (sustained hitscan).
const (
	LaserDamage     = 20.0
	LaserEnergyCost = 15.0
	LaserRange      = 80.0
	LaserHitWidth   = ShipRadius * 2.5
)

// Vanguard abilities.
const (
	WarpDistance    = 25.0
	WarpEnergyCost  = 40.0
	WarpCooldown    = 3.0
	MissileDamage   = 12.0
	MissileSpeed    = 10.0
	MissileCount    = 5
	MissileCooldown = 10.0
	MissileLifetime = 5.0
	MissileHitRange = ShipRadius * 2
)

// Dreadnought abilities.
const (
	EmergencyShieldsAmount = 300.0
	EmergencyShieldsCD     = 20.0
	YamatoRange            = 100.0
	YamatoChannelTime      = 2.0
	YamatoDamage           = 150.0
	YamatoCD               = 15.0
	RepairBotsDuration     = 6.0
	RepairBotsHealPct      = 0.05
	RepairBotsCD           = 25.0
	BombardmentRadius      = 40.0
	BombardmentTimer       = 3.0
	BombardmentDamage      = 120.0
	BombardmentCD          = 45.0
	BombardmentEnergyCost  = 80.0
	DreadnoughtDamageRed   = 0.15
)

// Leviathan abilities + passive.
const (
	BioRegenDelay       = 5.0
	BioRegenRate        = 10.0
	BioStasisRange      = 60.0
	BioStasisDuration   = 2.5
	BioStasisCD         = 12.0
	BioStasisEnergyCost = 30.0

	SporeCloudRadius      = 35.0
	SporeCloudDuration    = 5.0
	SporeCloudCD          = 18.0
	SporeCloudEnergyCost  = 40.0
	SporeCloudSlowPct     = 0.5
	SporeCloudSlowRefresh = 0.5 // window slow_timer is refreshed to each tick inside the cloud

	MutaliskSpawnCount  = 3
	MutaliskCD          = 30.0
	MutaliskEnergyCost  = 50.0
	MutaliskHealth      = 40.0
	MutaliskDamage      = 8.0
	MutaliskLifetime    = 12.0
	MutaliskSpeed       = 4.0
	MutaliskAttackRange = 15.0
	MutaliskAttackCD    = 1.0

	BileSwellRadius      = 45.0
	BileSwellDamage      = 100.0
	BileSwellArmorDebuff = 0.25
	BileSwellDebuffTime  = 6.0
	BileSwellCD          = 50.0
	BileSwellEnergyCost  = 85.0
)

// ShipClass identifies one of the three playable classes.
type ShipClass string

const (
	ClassVanguard    ShipClass = "vanguard"
	ClassDreadnought ShipClass = "dreadnought"
	ClassLeviathan   ShipClass = "leviathan"
)

// AbilitySlot identifies one of the four ability keybinds.
type AbilitySlot string

const (
	SlotQ AbilitySlot = "q"
	SlotW AbilitySlot = "w"
	SlotE AbilitySlot = "e"
	SlotR AbilitySlot = "r"
)

