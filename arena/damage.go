package arena

// ApplyDamage is the shared damage resolver every weapon and ability
// routes through. Fixed order:
//  1. no-op on a dead target
//  2. raw damage scaled by armor debuff then by class damage reduction
//  3. shields absorb first, arming the shield-break timer if drained
//  4. remainder to hull
//  5. death: clamp hull, clear state, respawn timer, kill/death counters,
//     explosion + kill effects
//
// attacker may be nil (e.g. a missile, bombardment zone or mutalisk whose
// owner has already left the room).
func (r *Room) ApplyDamage(target *Ship, rawDamage float64, attacker *Ship) {
	if !target.Alive {
		return
	}

	d := rawDamage
	if target.ArmorDebuffTimer > 0 {
		d *= 1 + target.ArmorDebuffAmount
	}
	d *= 1 - StatsFor(target.Class).DamageReduction

	if target.Shields > 0 {
		shieldDmg := min64(target.Shields, d)
		target.Shields -= shieldDmg
		d -= shieldDmg
		if target.Shields <= 0 {
			target.Shields = 0
			target.ShieldBroken = true
			target.ShieldRegenTimer = ShieldRegenDelay
		}
	}

	if d > 0 {
		target.Hull -= d
	}

	target.LastDamageTime = r.CurrentTime

	if target.Hull <= 0 {
		target.Hull = 0
		target.Alive = false
		target.RespawnTimer = RespawnTime
		target.Deaths++
		target.IsFiring = false
		target.IsChanneling = false
		target.ChannelTimer = 0
		target.ChannelTargetID = ""
		target.RepairBotsTimer = 0

		if attacker != nil {
			attacker.Kills++
		}

		r.emitEffect(Effect{Kind: "explosion", X: target.X, Z: target.Z, Size: "large"})
		killerName := "Unknown"
		if attacker != nil {
			killerName = attacker.Name
		}
		r.emitEffect(Effect{Kind: "kill", Killer: killerName, Victim: target.Name})
	}
}

func min64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
