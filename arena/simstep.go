package arena

import "math"

// step runs one fixed-dt simulation tick. Caller must hold r.mu. Ordering
// is fixed and observable: players, then lasers, then missiles, then
// bombardment zones, then spore clouds, then mutalisks. No update pass
// spawns entities. Missiles, zones, clouds and mutalisks created by
// abilities during the input drain that precedes step in the same tick
// are already advanced by this step; they are not held back a tick.
func (r *Room) step(dt float64) {
	for _, ship := range r.Ships {
		r.updatePlayer(ship, dt)
	}
	r.resolveLasers(dt)
	r.updateMissiles(dt)
	r.updateBombardments(dt)
	r.updateSporeClouds(dt)
	r.updateMutalisks(dt)

	// Crowd-control timers decrement last, after every system that gates or
	// reads them this tick (movement's stun/slow check, the damage pipeline's
	// armor-debuff multiplier). This keeps the tick on which a timer reaches
	// zero still the last *active* tick for that effect, matching the
	// bombardment zone's detonate-then-remove-next-tick shape but for the
	// opposite edge: here the zero-crossing tick is still blocked/slowed/
	// debuffed, not yet free.
	for _, ship := range r.Ships {
		if ship.Alive {
			r.tickDebuffs(ship, dt)
		}
	}
}

// updatePlayer advances one ship's kinematics, pools, heal-over-time,
// channel, cooldowns, and respawn timer by dt. Incoming debuff timers are
// ticked separately by tickDebuffs at the end of step.
func (r *Room) updatePlayer(s *Ship, dt float64) {
	stats := StatsFor(s.Class)

	if !s.Alive {
		s.RespawnTimer -= dt
		if s.RespawnTimer <= 0 {
			s.Spawn()
			r.emitEffect(Effect{Kind: "respawn", PlayerID: s.ID})
		}
		return
	}

	if s.StunTimer > 0 || s.IsChanneling {
		s.VX, s.VZ = 0, 0
		s.HasMoveTarget = false
		s.IsFiring = false
	} else {
		r.updateMovement(s, dt)
	}

	// Shield regeneration.
	if s.ShieldBroken {
		s.ShieldRegenTimer -= dt
		if s.ShieldRegenTimer <= 0 {
			s.ShieldBroken = false
		}
	}
	if !s.ShieldBroken && s.Shields < stats.MaxShields {
		s.Shields = min64(stats.MaxShields, s.Shields+ShieldRegenRate*dt)
	}

	// Energy.
	if s.IsFiring {
		s.Energy -= LaserEnergyCost * dt
		if s.Energy <= 0 {
			s.Energy = 0
			s.IsFiring = false
		}
	} else {
		s.Energy = min64(stats.MaxEnergy, s.Energy+EnergyRegenRate*dt)
	}

	// Bio-regen passive (leviathan): heal after a damage-free window.
	if stats.HasBioRegen && s.Hull < stats.MaxHull && r.CurrentTime-s.LastDamageTime >= BioRegenDelay {
		s.Hull = min64(stats.MaxHull, s.Hull+BioRegenRate*dt)
	}

	// Repair bots (dreadnought E channel-less heal-over-time).
	if s.RepairBotsTimer > 0 {
		s.Hull = min64(stats.MaxHull, s.Hull+stats.MaxHull*RepairBotsHealPct*dt)
		s.RepairBotsTimer = max64(0, s.RepairBotsTimer-dt)
	}

	// Yamato channel resolution.
	if s.IsChanneling {
		s.ChannelTimer -= dt
		if s.ChannelTimer <= 0 {
			r.resolveYamato(s)
		}
	}

	decrementCooldowns(s, dt)
}

func decrementCooldowns(s *Ship, dt float64) {
	s.WarpCD = max64(0, s.WarpCD-dt)
	s.MissileCD = max64(0, s.MissileCD-dt)
	s.EmergencyShieldsCD = max64(0, s.EmergencyShieldsCD-dt)
	s.YamatoCD = max64(0, s.YamatoCD-dt)
	s.RepairBotsCD = max64(0, s.RepairBotsCD-dt)
	s.BombardmentCD = max64(0, s.BombardmentCD-dt)
	s.BioStasisCD = max64(0, s.BioStasisCD-dt)
	s.SporeCloudCD = max64(0, s.SporeCloudCD-dt)
	s.MutaliskCD = max64(0, s.MutaliskCD-dt)
	s.BileSwellCD = max64(0, s.BileSwellCD-dt)
}

// timerEpsilon absorbs the float error that repeated dt subtraction leaves
// behind (2.5 minus fifty 0.05 steps is about 5e-16, not 0).
const timerEpsilon = 1e-9

// decTimer decrements a countdown timer by dt, snapping it to 0 once it
// is at or within timerEpsilon of zero.
func decTimer(v, dt float64) float64 {
	v -= dt
	if v <= timerEpsilon {
		return 0
	}
	return v
}

// tickDebuffs decrements incoming crowd-control timers, snapping to 0.
func (r *Room) tickDebuffs(s *Ship, dt float64) {
	if s.StunTimer > 0 {
		s.StunTimer = decTimer(s.StunTimer, dt)
	}
	if s.SlowTimer > 0 {
		s.SlowTimer = decTimer(s.SlowTimer, dt)
		if s.SlowTimer == 0 {
			s.SlowAmount = 0
			s.InSporeCloud = false
		}
	}
	if s.ArmorDebuffTimer > 0 {
		s.ArmorDebuffTimer = decTimer(s.ArmorDebuffTimer, dt)
		if s.ArmorDebuffTimer == 0 {
			s.ArmorDebuffAmount = 0
		}
	}
}

// updateMovement runs the move-to-target steering and integration policy,
// with the slow debuff scaling both thrust and the speed clamp while
// active.
func (r *Room) updateMovement(s *Ship, dt float64) {
	slowMul := 1.0
	if s.SlowTimer > 0 {
		slowMul = 1 - s.SlowAmount
	}

	if s.HasMoveTarget {
		dx := s.MoveTargetX - s.X
		dz := s.MoveTargetZ - s.Z
		distToTarget := math.Sqrt(dx*dx + dz*dz)

		if distToTarget > 2.0 {
			desiredAngle := math.Atan2(dx, dz)
			diff := ShortestAngleDiff(s.Rotation, desiredAngle)

			rotationAmount := ShipRotationSpeed * dt
			if math.Abs(diff) < rotationAmount {
				s.Rotation = desiredAngle
			} else if diff > 0 {
				s.Rotation += rotationAmount
			} else {
				s.Rotation -= rotationAmount
			}
			s.Rotation = NormalizeAngle(s.Rotation)

			fx, fz := Facing(s.Rotation)
			s.VX += fx * ShipAcceleration * slowMul
			s.VZ += fz * ShipAcceleration * slowMul
		} else {
			s.HasMoveTarget = false
		}
	}

	s.VX *= ShipDrag
	s.VZ *= ShipDrag

	maxSpeed := ShipMaxSpeed * slowMul
	speed := math.Sqrt(s.VX*s.VX + s.VZ*s.VZ)
	if speed > maxSpeed {
		s.VX = (s.VX / speed) * maxSpeed
		s.VZ = (s.VZ / speed) * maxSpeed
	}

	// Velocity is a per-tick displacement, not a per-second rate, so it
	// integrates into position without a further dt factor.
	s.X += s.VX
	s.Z += s.VZ

	if math.Abs(s.X) > ArenaSize {
		s.X = clamp(s.X, -ArenaSize, ArenaSize)
		s.VX *= -0.5
	}
	if math.Abs(s.Z) > ArenaSize {
		s.Z = clamp(s.Z, -ArenaSize, ArenaSize)
		s.VZ *= -0.5
	}
}

// resolveLasers is the sustained hitscan pass: every firing ship tests
// every other living ship against its ray this tick.
func (r *Room) resolveLasers(dt float64) {
	for _, shooter := range r.Ships {
		if !shooter.Alive || !shooter.IsFiring {
			continue
		}

		dx := shooter.FireTargetX - shooter.X
		dz := shooter.FireTargetZ - shooter.Z
		rayLen := math.Sqrt(dx*dx + dz*dz)
		if rayLen < 0.1 {
			continue
		}
		ndx, ndz := dx/rayLen, dz/rayLen

		for _, target := range r.Ships {
			if target.ID == shooter.ID || !target.Alive {
				continue
			}
			t, perp := rayProjection(shooter.X, shooter.Z, ndx, ndz, target.X, target.Z)
			if t < 0 || t > LaserRange {
				continue
			}
			if perp < LaserHitWidth {
				r.ApplyDamage(target, LaserDamage*dt, shooter)
			}
		}
	}
}

// nearestLivingEnemyTo returns the living ship closest to (x, z), excluding
// excludeID, or nil if none qualify. Shared by missile re-acquisition,
// missile salvo targeting, and every ability that targets "nearest enemy".
func (r *Room) nearestLivingEnemyTo(x, z float64, excludeID string) *Ship {
	var nearest *Ship
	nearestDist := math.Inf(1)
	for _, other := range r.Ships {
		if other.ID == excludeID || !other.Alive {
			continue
		}
		d := Distance(x, z, other.X, other.Z)
		if d < nearestDist {
			nearest = other
			nearestDist = d
		}
	}
	return nearest
}

// nearestLivingEnemyWithinRange is like nearestLivingEnemyTo but rejects
// candidates beyond maxRange, for range-limited targeted abilities.
func (r *Room) nearestLivingEnemyWithinRange(x, z, maxRange float64, excludeID string) *Ship {
	nearest := r.nearestLivingEnemyTo(x, z, excludeID)
	if nearest == nil || Distance(x, z, nearest.X, nearest.Z) > maxRange {
		return nil
	}
	return nearest
}
