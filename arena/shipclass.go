package arena

// ClassStats holds the immutable base stats for a ship class, the way the
// teacher's game.ShipData table holds per-ShipType specs.
type ClassStats struct {
	MaxHull         float64
	MaxShields      float64
	MaxEnergy       float64
	DamageReduction float64
	HasBioRegen     bool // leviathan passive: regen hull after a damage-free window
}

// ClassData is the immutable class registry. Unknown classes fall back to
// vanguard both here and at player-creation time.
var ClassData = map[ShipClass]ClassStats{
	ClassVanguard: {
		MaxHull:    100,
		MaxShields: 100,
		MaxEnergy:  100,
	},
	ClassDreadnought: {
		MaxHull:         150,
		MaxShields:      200,
		MaxEnergy:       100,
		DamageReduction: DreadnoughtDamageRed,
	},
	ClassLeviathan: {
		MaxHull:     180,
		MaxShields:  120,
		MaxEnergy:   120,
		HasBioRegen: true,
	},
}

// ResolveClass maps an arbitrary class string to a known ShipClass,
// defaulting to vanguard for anything unrecognized.
func ResolveClass(raw string) ShipClass {
	switch ShipClass(raw) {
	case ClassVanguard, ClassDreadnought, ClassLeviathan:
		return ShipClass(raw)
	default:
		return ClassVanguard
	}
}

// StatsFor returns the class stats table entry, falling back to vanguard.
func StatsFor(class ShipClass) ClassStats {
	if stats, ok := ClassData[class]; ok {
		return stats
	}
	return ClassData[ClassVanguard]
}
