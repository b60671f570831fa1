package arena

import (
	"encoding/json"
	"math"
)

// round rounds v to the nearest value with n decimal digits, matching the reference's
// per-field rounding so wire payloads stay compact and diff-friendly.
func round(v float64, n int) float64 {
	p := math.Pow(10, float64(n))
	return math.Round(v*p) / p
}

// wirePlayer is the serialized form of one Ship. Cooldowns is a map that
// holds only the cooldown keys of the player's own class.
type wirePlayer struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	ShipClass string  `json:"shipClass"`
	X         float64 `json:"x"`
	Z         float64 `json:"z"`
	Rotation  float64 `json:"rotation"`
	VX        float64 `json:"vx"`
	VZ        float64 `json:"vz"`

	Hull       float64 `json:"hull"`
	MaxHull    float64 `json:"maxHull"`
	Shields    float64 `json:"shields"`
	MaxShields float64 `json:"maxShields"`
	Energy     float64 `json:"energy"`
	MaxEnergy  float64 `json:"maxEnergy"`

	Alive        bool    `json:"alive"`
	IsFiring     bool    `json:"isFiring"`
	FireTargetX  float64 `json:"fireTargetX"`
	FireTargetZ  float64 `json:"fireTargetZ"`
	RespawnTimer float64 `json:"respawnTimer"`
	Kills        int     `json:"kills"`
	Deaths       int     `json:"deaths"`

	StunTimer        float64 `json:"stunTimer"`
	SlowTimer        float64 `json:"slowTimer"`
	ArmorDebuffTimer float64 `json:"armorDebuffTimer"`

	Cooldowns map[string]float64 `json:"cooldowns"`
}

type wireMissile struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Z        float64 `json:"z"`
	OwnerID  string  `json:"ownerId"`
	TargetID string  `json:"targetId"`
}

type wireBombardment struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Z      float64 `json:"z"`
	Radius float64 `json:"radius"`
	Timer  float64 `json:"timer"`
}

type wireEffect struct {
	Type     string  `json:"type"`
	PlayerID string  `json:"playerId,omitempty"`
	X        float64 `json:"x,omitempty"`
	Z        float64 `json:"z,omitempty"`
	Size     string  `json:"size,omitempty"`
	Killer   string  `json:"killer,omitempty"`
	Victim   string  `json:"victim,omitempty"`
	Name     string  `json:"name,omitempty"`
}

type wireSnapshot struct {
	Type         string            `json:"type"`
	Tick         int64             `json:"tick"`
	Players      []wirePlayer      `json:"players"`
	Missiles     []wireMissile     `json:"missiles"`
	Bombardments []wireBombardment `json:"bombardments"`
	Effects      []wireEffect      `json:"effects"`
}

// classCooldowns picks the cooldown fields relevant to s.Class, per §4.9:
// the snapshot only includes the cooldown block for the player's own class.
// Rounded to 1 decimal, matching original_source/backend/game_engine.py's
// to_dict() rounding of warpCooldown/missileCooldown/etc.
func classCooldowns(s *Ship) map[string]float64 {
	switch s.Class {
	case ClassVanguard:
		return map[string]float64{
			"warp":    round(s.WarpCD, 1),
			"missile": round(s.MissileCD, 1),
		}
	case ClassDreadnought:
		return map[string]float64{
			"emergencyShields": round(s.EmergencyShieldsCD, 1),
			"yamato":           round(s.YamatoCD, 1),
			"repairBots":       round(s.RepairBotsCD, 1),
			"bombardment":      round(s.BombardmentCD, 1),
		}
	case ClassLeviathan:
		return map[string]float64{
			"bioStasis":  round(s.BioStasisCD, 1),
			"sporeCloud": round(s.SporeCloudCD, 1),
			"mutalisk":   round(s.MutaliskCD, 1),
			"bileSwell":  round(s.BileSwellCD, 1),
		}
	default:
		return map[string]float64{}
	}
}

func serializePlayer(s *Ship) wirePlayer {
	return wirePlayer{
		ID:        s.ID,
		Name:      s.Name,
		ShipClass: string(s.Class),
		X:         round(s.X, 2),
		Z:         round(s.Z, 2),
		Rotation:  round(s.Rotation, 3),
		VX:        round(s.VX, 3),
		VZ:        round(s.VZ, 3),

		Hull:       round(s.Hull, 1),
		MaxHull:    round(StatsFor(s.Class).MaxHull, 1),
		Shields:    round(s.Shields, 1),
		MaxShields: round(StatsFor(s.Class).MaxShields, 1),
		Energy:     round(s.Energy, 1),
		MaxEnergy:  round(StatsFor(s.Class).MaxEnergy, 1),

		Alive:        s.Alive,
		IsFiring:     s.IsFiring,
		FireTargetX:  round(s.FireTargetX, 2),
		FireTargetZ:  round(s.FireTargetZ, 2),
		RespawnTimer: round(s.RespawnTimer, 1),
		Kills:        s.Kills,
		Deaths:       s.Deaths,

		StunTimer:        round(s.StunTimer, 3),
		SlowTimer:        round(s.SlowTimer, 3),
		ArmorDebuffTimer: round(s.ArmorDebuffTimer, 3),

		Cooldowns: classCooldowns(s),
	}
}

func serializeEffect(e Effect) wireEffect {
	return wireEffect{
		Type:     e.Kind,
		PlayerID: e.PlayerID,
		X:        round(e.X, 2),
		Z:        round(e.Z, 2),
		Size:     e.Size,
		Killer:   e.Killer,
		Victim:   e.Victim,
		Name:     e.Name,
	}
}

// buildSnapshotLocked renders the current room state into the per-tick
// wire payload. Caller must hold r.mu (read or write). Missiles exclude
// the dead, bombardment zones exclude the exploded, matching §6.
func (r *Room) buildSnapshotLocked() []byte {
	snap := wireSnapshot{
		Type:         "state",
		Tick:         r.Tick,
		Players:      make([]wirePlayer, 0, len(r.Ships)),
		Missiles:     make([]wireMissile, 0, len(r.Missiles)),
		Bombardments: make([]wireBombardment, 0, len(r.Zones)),
		Effects:      make([]wireEffect, 0, len(r.Effects)),
	}

	for _, s := range r.Ships {
		snap.Players = append(snap.Players, serializePlayer(s))
	}
	for _, m := range r.Missiles {
		if !m.Alive {
			continue
		}
		snap.Missiles = append(snap.Missiles, wireMissile{
			ID:       m.ID,
			X:        round(m.X, 2),
			Z:        round(m.Z, 2),
			OwnerID:  m.OwnerID,
			TargetID: m.TargetID,
		})
	}
	for _, z := range r.Zones {
		if z.Exploded {
			continue
		}
		snap.Bombardments = append(snap.Bombardments, wireBombardment{
			ID:     z.ID,
			X:      round(z.X, 2),
			Z:      round(z.Z, 2),
			Radius: z.Radius,
			Timer:  round(z.Timer, 3),
		})
	}
	for _, e := range r.Effects {
		snap.Effects = append(snap.Effects, serializeEffect(e))
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		// Schema is fixed and contains no cyclic/unsupported types; a
		// marshal error here means a programming mistake, not bad input.
		panic(err)
	}
	return payload
}
