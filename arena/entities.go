package arena

import "math/rand"

// Ship is a player-controlled vessel. It is the authoritative mutable
// state, not the wire payload; Snapshot's serializer picks the fields it
// sends over the wire.
type Ship struct {
	ID    string
	Name  string
	Class ShipClass

	X, Z     float64
	Rotation float64
	VX, VZ   float64

	Hull    float64
	Shields float64
	Energy  float64

	MoveTargetX, MoveTargetZ float64
	HasMoveTarget            bool
	IsFiring                 bool
	FireTargetX, FireTargetZ float64

	Alive        bool
	RespawnTimer float64
	Kills        int
	Deaths       int

	ShieldBroken     bool
	ShieldRegenTimer float64

	// Per-class cooldowns. Only the ones matching Class are ever set or
	// read; they're carried on every Ship for simplicity.
	WarpCD    float64
	MissileCD float64

	EmergencyShieldsCD float64
	YamatoCD           float64
	RepairBotsCD       float64
	BombardmentCD      float64

	BioStasisCD  float64
	SporeCloudCD float64
	MutaliskCD   float64
	BileSwellCD  float64

	IsChanneling    bool
	ChannelTimer    float64
	ChannelTargetID string

	RepairBotsTimer float64
	LastDamageTime  float64 // room.CurrentTime at last damage received; leviathan bio-regen

	StunTimer         float64
	SlowTimer         float64
	SlowAmount        float64
	ArmorDebuffTimer  float64
	ArmorDebuffAmount float64
	InSporeCloud      bool
}

// NewShip creates a ship in its spawned state.
func NewShip(id, name string, class ShipClass) *Ship {
	s := &Ship{ID: id, Name: name, Class: class}
	s.Spawn()
	return s
}

// Spawn resets a ship to a fresh spawn: random position/rotation, full
// pools, every timer and intent cleared.
func (s *Ship) Spawn() {
	stats := StatsFor(s.Class)
	s.X = randRange(-ArenaSize*0.7, ArenaSize*0.7)
	s.Z = randRange(-ArenaSize*0.7, ArenaSize*0.7)
	s.Rotation = randRange(0, 2*3.141592653589793)
	s.VX, s.VZ = 0, 0
	s.Hull = stats.MaxHull
	s.Shields = stats.MaxShields
	s.Energy = stats.MaxEnergy
	s.Alive = true
	s.IsFiring = false
	s.ShieldBroken = false
	s.ShieldRegenTimer = 0
	s.HasMoveTarget = false
	s.RespawnTimer = 0
	s.IsChanneling = false
	s.ChannelTimer = 0
	s.ChannelTargetID = ""
	s.RepairBotsTimer = 0
	s.StunTimer = 0
	s.SlowTimer = 0
	s.SlowAmount = 0
	s.ArmorDebuffTimer = 0
	s.ArmorDebuffAmount = 0
	s.InSporeCloud = false
	s.WarpCD, s.MissileCD = 0, 0
	s.EmergencyShieldsCD, s.YamatoCD, s.RepairBotsCD, s.BombardmentCD = 0, 0, 0, 0
	s.BioStasisCD, s.SporeCloudCD, s.MutaliskCD, s.BileSwellCD = 0, 0, 0, 0
}

func randRange(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}

// Missile is a homing projectile fired by the vanguard missile salvo.
type Missile struct {
	ID       string
	OwnerID  string
	X, Z     float64
	TargetID string
	Alive    bool
	Lifetime float64
}

// BombardmentZone is a dreadnought orbital-bombardment delayed area attack.
type BombardmentZone struct {
	ID       string
	OwnerID  string
	X, Z     float64
	Radius   float64
	Timer    float64
	Exploded bool
}

// SporeCloud is a leviathan ground-effect zone that slows enemies inside it.
type SporeCloud struct {
	ID      string
	OwnerID string
	X, Z    float64
	Radius  float64
	Timer   float64
}

// Mutalisk is a temporary autonomous minion spawned by leviathan E. It
// moves, attacks, and expires every tick on its own, independent of its
// owner.
type Mutalisk struct {
	ID             string
	OwnerID        string
	X, Z           float64
	Health         float64
	Alive          bool
	Lifetime       float64
	TargetID       string
	AttackCooldown float64
}

// Effect is one entry in the tick-scoped, append-only effect log. Kind
// selects which of the optional fields are populated; Snapshot's
// serializer copies every field and omits the zero-valued ones.
type Effect struct {
	Kind string

	PlayerID string
	X, Z     float64
	Size     string // "small" | "large", for explosion
	Killer   string
	Victim   string
	Name     string // player_joined / player_left
}
