package arena

import "testing"

func TestUseAbilityDispatchesByClassAndSlot(t *testing.T) {
	r := NewRoom("t", nil)
	s := NewShip("v", "Vanguard", ClassVanguard)
	s.Energy = 100

	r.useAbility(s, SlotQ, 0, 0)

	if s.WarpCD != WarpCooldown {
		t.Error("slot Q on a vanguard should have dispatched to useWarp")
	}
}

func TestUseAbilityUnknownSlotIsNoOp(t *testing.T) {
	r := NewRoom("t", nil)
	s := NewShip("v", "Vanguard", ClassVanguard)
	energyBefore := s.Energy

	r.useAbility(s, SlotE, 0, 0) // vanguard has no E ability

	if s.Energy != energyBefore {
		t.Error("dispatching to a (class, slot) pair absent from the table must be a no-op")
	}
}

func TestUseMissileSalvoRequiresATarget(t *testing.T) {
	r := NewRoom("t", nil)
	s := NewShip("v", "lonely", ClassVanguard)

	useMissileSalvo(r, s, 0, 0)

	if s.MissileCD != 0 {
		t.Error("missile salvo with no living enemy should not consume its cooldown")
	}
	if len(r.Missiles) != 0 {
		t.Error("missile salvo with no living enemy should not spawn missiles")
	}
}

func TestUseMissileSalvoFansOutAtTarget(t *testing.T) {
	r := NewRoom("t", nil)
	s := NewShip("v", "shooter", ClassVanguard)
	enemy := NewShip("e", "enemy", ClassVanguard)
	enemy.X, enemy.Z = 50, 0
	r.Ships[s.ID] = s
	r.Ships[enemy.ID] = enemy

	useMissileSalvo(r, s, 0, 0)

	if len(r.Missiles) != MissileCount {
		t.Errorf("missile count = %d, want %d", len(r.Missiles), MissileCount)
	}
	for _, m := range r.Missiles {
		if m.TargetID != enemy.ID {
			t.Error("every fanned-out missile should target the nearest enemy")
		}
	}
	if s.MissileCD != MissileCooldown {
		t.Error("missile salvo should consume its cooldown")
	}
}

func TestUseMissileSalvoRefusedOnCooldown(t *testing.T) {
	r := NewRoom("t", nil)
	s := NewShip("v", "shooter", ClassVanguard)
	enemy := NewShip("e", "enemy", ClassVanguard)
	r.Ships[s.ID] = s
	r.Ships[enemy.ID] = enemy
	s.MissileCD = 1

	useMissileSalvo(r, s, 0, 0)

	if len(r.Missiles) != 0 {
		t.Error("missile salvo on cooldown should not spawn missiles")
	}
}

func TestUseEmergencyShieldsCapsAtMax(t *testing.T) {
	r := NewRoom("t", nil)
	s := NewShip("d", "tank", ClassDreadnought)
	s.Shields = StatsFor(ClassDreadnought).MaxShields - 50
	s.ShieldBroken = true

	useEmergencyShields(r, s, 0, 0)

	if s.Shields != StatsFor(ClassDreadnought).MaxShields {
		t.Errorf("shields = %v, want capped at max %v", s.Shields, StatsFor(ClassDreadnought).MaxShields)
	}
	if s.ShieldBroken {
		t.Error("emergency shields should clear the shield-broken state")
	}
	if s.EmergencyShieldsCD != EmergencyShieldsCD {
		t.Error("emergency shields should consume its cooldown")
	}
}

func TestUseRepairBotsRefusedWhileAlreadyActive(t *testing.T) {
	r := NewRoom("t", nil)
	s := NewShip("d", "tank", ClassDreadnought)
	s.RepairBotsTimer = 3

	useRepairBots(r, s, 0, 0)

	if s.RepairBotsCD != 0 {
		t.Error("repair bots should refuse to restack while already active")
	}
}

func TestUseOrbitalBombardmentRefusedBelowEnergyCost(t *testing.T) {
	r := NewRoom("t", nil)
	s := NewShip("d", "tank", ClassDreadnought)
	s.Energy = BombardmentEnergyCost - 1

	useOrbitalBombardment(r, s, 10, 10)

	if len(r.Zones) != 0 {
		t.Error("bombardment below energy cost should not spawn a zone")
	}
}

func TestUseOrbitalBombardmentClampsTargetToArena(t *testing.T) {
	r := NewRoom("t", nil)
	s := NewShip("d", "tank", ClassDreadnought)
	s.Energy = BombardmentEnergyCost

	useOrbitalBombardment(r, s, ArenaSize*5, ArenaSize*5)

	if len(r.Zones) != 1 {
		t.Fatal("expected one zone to spawn")
	}
	if r.Zones[0].X != ArenaSize || r.Zones[0].Z != ArenaSize {
		t.Errorf("zone center = (%v, %v), want clamped to (%v, %v)", r.Zones[0].X, r.Zones[0].Z, ArenaSize, ArenaSize)
	}
}

func TestUseBileSwellDamagesAndDebuffsEveryoneInRadius(t *testing.T) {
	r := NewRoom("t", nil)
	caster := NewShip("l", "caster", ClassLeviathan)
	near := NewShip("n", "near", ClassVanguard)
	far := NewShip("f", "far", ClassVanguard)
	near.X, near.Z = 10, 0
	near.Shields = 0
	far.X, far.Z = BileSwellRadius*5, 0
	far.Shields = 0
	caster.Energy = 100
	r.Ships[caster.ID] = caster
	r.Ships[near.ID] = near
	r.Ships[far.ID] = far

	nearHullBefore := near.Hull
	useBileSwell(r, caster, 0, 0)

	if near.Hull >= nearHullBefore {
		t.Error("ships within the bile swell radius should take damage")
	}
	if near.ArmorDebuffTimer != BileSwellDebuffTime {
		t.Error("ships within the bile swell radius should take the armor debuff")
	}
	if far.Hull != StatsFor(ClassVanguard).MaxHull {
		t.Error("ships outside the bile swell radius should be untouched")
	}
	if far.ArmorDebuffTimer != 0 {
		t.Error("ships outside the bile swell radius should not be debuffed")
	}
}

func TestUseSpawnMutalisksRefusedBelowEnergyCost(t *testing.T) {
	r := NewRoom("t", nil)
	s := NewShip("l", "caster", ClassLeviathan)
	s.Energy = MutaliskEnergyCost - 1

	useSpawnMutalisks(r, s, 0, 0)

	if len(r.Mutalisks) != 0 {
		t.Error("mutalisk spawn below energy cost should not spawn minions")
	}
}

func TestUseSpawnMutalisksSpawnsFullSquad(t *testing.T) {
	r := NewRoom("t", nil)
	s := NewShip("l", "caster", ClassLeviathan)
	s.Energy = MutaliskEnergyCost

	useSpawnMutalisks(r, s, 0, 0)

	if len(r.Mutalisks) != MutaliskSpawnCount {
		t.Errorf("mutalisk count = %d, want %d", len(r.Mutalisks), MutaliskSpawnCount)
	}
	for _, m := range r.Mutalisks {
		if m.OwnerID != s.ID {
			t.Error("every spawned mutalisk should be owned by the caster")
		}
	}
}

func TestUseYamatoCannonRefusedWithoutTargetInRange(t *testing.T) {
	r := NewRoom("t", nil)
	s := NewShip("d", "caster", ClassDreadnought)
	far := NewShip("e", "far", ClassVanguard)
	far.X, far.Z = YamatoRange*5, 0
	r.Ships[s.ID] = s
	r.Ships[far.ID] = far

	useYamatoCannon(r, s, 0, 0)

	if s.IsChanneling {
		t.Error("yamato cannon with no target in range should not start a channel")
	}
}
