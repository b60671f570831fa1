package arena

// abilityFunc is one (class, slot) handler. It owns its own precondition
// checks (cooldown, energy, range/target) and is responsible for charging
// cooldown/energy and emitting an effect only on success — a
// precondition-failed ability use is a silent no-op.
type abilityFunc func(r *Room, s *Ship, x, z float64)

// abilityTable is a fixed table indexed by (ship class, ability slot).
// Combinations absent from the table are no-ops.
var abilityTable = map[ShipClass]map[AbilitySlot]abilityFunc{
	ClassVanguard: {
		SlotQ: useWarp,
		SlotW: useMissileSalvo,
	},
	ClassDreadnought: {
		SlotQ: useEmergencyShields,
		SlotW: useYamatoCannon,
		SlotE: useRepairBots,
		SlotR: useOrbitalBombardment,
	},
	ClassLeviathan: {
		SlotQ: useBioStasis,
		SlotW: useSporeCloud,
		SlotE: useSpawnMutalisks,
		SlotR: useBileSwell,
	},
}

// useAbility looks up and invokes the handler for s's class and the given
// slot, no-op if the (class, slot) pair isn't in the table.
func (r *Room) useAbility(s *Ship, slot AbilitySlot, x, z float64) {
	byClass, ok := abilityTable[s.Class]
	if !ok {
		return
	}
	fn, ok := byClass[slot]
	if !ok {
		return
	}
	fn(r, s, x, z)
}

// --- Vanguard ---

func useWarp(r *Room, s *Ship, _, _ float64) {
	if s.WarpCD > 0 || s.Energy < WarpEnergyCost {
		return
	}
	s.Energy -= WarpEnergyCost
	s.WarpCD = WarpCooldown

	dx, dz := Facing(s.Rotation)
	s.X += dx * WarpDistance
	s.Z += dz * WarpDistance
	s.X, s.Z = ClampToArena(s.X, s.Z)

	r.emitEffect(Effect{Kind: "warp", PlayerID: s.ID, X: s.X, Z: s.Z})
}

func useMissileSalvo(r *Room, s *Ship, _, _ float64) {
	if s.MissileCD > 0 {
		return
	}
	nearest := r.nearestLivingEnemyTo(s.X, s.Z, s.ID)
	if nearest == nil {
		return
	}
	s.MissileCD = MissileCooldown

	for i := 0; i < MissileCount; i++ {
		angleOffset := float64(i-MissileCount/2) * 0.3
		dx, dz := Facing(s.Rotation + angleOffset)
		r.Missiles = append(r.Missiles, &Missile{
			ID:       r.newID("missile"),
			OwnerID:  s.ID,
			X:        s.X + dx*2,
			Z:        s.Z + dz*2,
			TargetID: nearest.ID,
			Alive:    true,
			Lifetime: MissileLifetime,
		})
	}
	r.emitEffect(Effect{Kind: "missile_salvo", PlayerID: s.ID, X: s.X, Z: s.Z})
}

// --- Dreadnought ---

func useEmergencyShields(r *Room, s *Ship, _, _ float64) {
	if s.EmergencyShieldsCD > 0 {
		return
	}
	s.EmergencyShieldsCD = EmergencyShieldsCD
	stats := StatsFor(s.Class)
	s.Shields = min64(stats.MaxShields, s.Shields+EmergencyShieldsAmount)
	s.ShieldBroken = false
	r.emitEffect(Effect{Kind: "emergency_shields", PlayerID: s.ID})
}

func useYamatoCannon(r *Room, s *Ship, _, _ float64) {
	if s.YamatoCD > 0 {
		return
	}
	target := r.nearestLivingEnemyWithinRange(s.X, s.Z, YamatoRange, s.ID)
	if target == nil {
		return
	}
	s.YamatoCD = YamatoCD
	s.IsChanneling = true
	s.ChannelTimer = YamatoChannelTime
	s.ChannelTargetID = target.ID
	s.VX, s.VZ = 0, 0
	r.emitEffect(Effect{Kind: "yamato_channel", PlayerID: s.ID})
}

// resolveYamato fires the yamato beam on channel expiry. Caster death
// during the channel clears IsChanneling in ApplyDamage, so this only
// fires for casters still alive when the channel completes.
func (r *Room) resolveYamato(s *Ship) {
	s.IsChanneling = false
	s.ChannelTimer = 0
	target, ok := r.Ships[s.ChannelTargetID]
	s.ChannelTargetID = ""
	if !ok || !target.Alive {
		return
	}
	r.ApplyDamage(target, YamatoDamage, s)
	r.emitEffect(Effect{Kind: "yamato_fire", PlayerID: s.ID, X: target.X, Z: target.Z})
}

func useRepairBots(r *Room, s *Ship, _, _ float64) {
	if s.RepairBotsCD > 0 || s.RepairBotsTimer > 0 {
		return
	}
	s.RepairBotsCD = RepairBotsCD
	s.RepairBotsTimer = RepairBotsDuration
	r.emitEffect(Effect{Kind: "repair_bots", PlayerID: s.ID})
}

func useOrbitalBombardment(r *Room, s *Ship, x, z float64) {
	if s.BombardmentCD > 0 || s.Energy < BombardmentEnergyCost {
		return
	}
	s.Energy -= BombardmentEnergyCost
	s.BombardmentCD = BombardmentCD

	cx, cz := ClampToArena(x, z)
	r.Zones = append(r.Zones, &BombardmentZone{
		ID:      r.newID("zone"),
		OwnerID: s.ID,
		X:       cx,
		Z:       cz,
		Radius:  BombardmentRadius,
		Timer:   BombardmentTimer,
	})
	r.emitEffect(Effect{Kind: "bombardment_mark", PlayerID: s.ID, X: cx, Z: cz})
}

// --- Leviathan ---

func useBioStasis(r *Room, s *Ship, _, _ float64) {
	if s.BioStasisCD > 0 || s.Energy < BioStasisEnergyCost {
		return
	}
	target := r.nearestLivingEnemyWithinRange(s.X, s.Z, BioStasisRange, s.ID)
	if target == nil {
		return
	}
	s.Energy -= BioStasisEnergyCost
	s.BioStasisCD = BioStasisCD

	target.StunTimer = BioStasisDuration
	target.HasMoveTarget = false
	target.IsFiring = false
	target.VX, target.VZ = 0, 0

	r.emitEffect(Effect{Kind: "bio_stasis", PlayerID: s.ID, X: target.X, Z: target.Z})
}

func useSporeCloud(r *Room, s *Ship, x, z float64) {
	if s.SporeCloudCD > 0 || s.Energy < SporeCloudEnergyCost {
		return
	}
	s.Energy -= SporeCloudEnergyCost
	s.SporeCloudCD = SporeCloudCD

	cx, cz := ClampToArena(x, z)
	r.Clouds = append(r.Clouds, &SporeCloud{
		ID:      r.newID("cloud"),
		OwnerID: s.ID,
		X:       cx,
		Z:       cz,
		Radius:  SporeCloudRadius,
		Timer:   SporeCloudDuration,
	})
	r.emitEffect(Effect{Kind: "spore_cloud_spawn", PlayerID: s.ID, X: cx, Z: cz})
}

func useSpawnMutalisks(r *Room, s *Ship, _, _ float64) {
	if s.MutaliskCD > 0 || s.Energy < MutaliskEnergyCost {
		return
	}
	s.Energy -= MutaliskEnergyCost
	s.MutaliskCD = MutaliskCD

	for i := 0; i < MutaliskSpawnCount; i++ {
		angleOffset := float64(i-MutaliskSpawnCount/2) * 0.25
		dx, dz := Facing(s.Rotation + angleOffset)
		r.Mutalisks = append(r.Mutalisks, &Mutalisk{
			ID:       r.newID("mutalisk"),
			OwnerID:  s.ID,
			X:        s.X + dx*3,
			Z:        s.Z + dz*3,
			Health:   MutaliskHealth,
			Alive:    true,
			Lifetime: MutaliskLifetime,
		})
	}
	r.emitEffect(Effect{Kind: "mutalisk_spawn", PlayerID: s.ID, X: s.X, Z: s.Z})
}

func useBileSwell(r *Room, s *Ship, x, z float64) {
	if s.BileSwellCD > 0 || s.Energy < BileSwellEnergyCost {
		return
	}
	s.Energy -= BileSwellEnergyCost
	s.BileSwellCD = BileSwellCD

	cx, cz := ClampToArena(x, z)
	for _, target := range r.Ships {
		if target.ID == s.ID || !target.Alive {
			continue
		}
		if Distance(cx, cz, target.X, target.Z) <= BileSwellRadius {
			r.ApplyDamage(target, BileSwellDamage, s)
			target.ArmorDebuffTimer = BileSwellDebuffTime
			target.ArmorDebuffAmount = BileSwellArmorDebuff
		}
	}
	r.emitEffect(Effect{Kind: "bile_swell", PlayerID: s.ID, X: cx, Z: cz})
}
