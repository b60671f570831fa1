package arena

import "math"

// updateMissiles advances every homing missile: lifetime, re-acquire,
// detonate, or step toward target. Filters in place instead of allocating
// a fresh slice every tick.
func (r *Room) updateMissiles(dt float64) {
	writeIdx := 0
	for _, m := range r.Missiles {
		if r.stepMissile(m, dt) {
			r.Missiles[writeIdx] = m
			writeIdx++
		}
	}
	r.Missiles = r.Missiles[:writeIdx]
}

// stepMissile returns true if the missile survives this tick.
func (r *Room) stepMissile(m *Missile, dt float64) bool {
	m.Lifetime -= dt
	if m.Lifetime <= 0 {
		return false
	}

	target, ok := r.Ships[m.TargetID]
	if !ok || !target.Alive {
		nearest := r.nearestLivingEnemyTo(m.X, m.Z, m.OwnerID)
		if nearest == nil {
			return false
		}
		m.TargetID = nearest.ID
		target = nearest
	}

	dx := target.X - m.X
	dz := target.Z - m.Z
	dist := math.Sqrt(dx*dx + dz*dz)

	if dist < MissileHitRange {
		owner := r.Ships[m.OwnerID]
		r.ApplyDamage(target, MissileDamage, owner)
		r.emitEffect(Effect{Kind: "explosion", X: m.X, Z: m.Z, Size: "small"})
		return false
	}

	m.X += (dx / dist) * MissileSpeed * dt
	m.Z += (dz / dist) * MissileSpeed * dt
	return true
}

// updateBombardments ticks down dreadnought orbital-bombardment zones and
// detonates them once their timer expires, removing them the tick after
// detonation so the detonation itself is still observable in a snapshot.
func (r *Room) updateBombardments(dt float64) {
	writeIdx := 0
	for _, z := range r.Zones {
		if z.Exploded {
			continue // removed the tick after detonation
		}

		z.Timer = decTimer(z.Timer, dt)
		if z.Timer <= 0 {
			z.Exploded = true
			r.detonateBombardment(z)
			r.Zones[writeIdx] = z
			writeIdx++
			continue
		}

		r.Zones[writeIdx] = z
		writeIdx++
	}
	r.Zones = r.Zones[:writeIdx]
}

func (r *Room) detonateBombardment(z *BombardmentZone) {
	for _, target := range r.Ships {
		if target.ID == z.OwnerID || !target.Alive {
			continue
		}
		if Distance(z.X, z.Z, target.X, target.Z) <= z.Radius {
			r.ApplyDamage(target, BombardmentDamage, r.Ships[z.OwnerID])
		}
	}
	r.emitEffect(Effect{Kind: "bombardment_explode", X: z.X, Z: z.Z})
}

// updateSporeClouds ticks down leviathan spore clouds and applies the slow
// debuff to every enemy ship currently inside one.
func (r *Room) updateSporeClouds(dt float64) {
	writeIdx := 0
	for _, c := range r.Clouds {
		c.Timer -= dt
		if c.Timer <= 0 {
			continue
		}

		for _, target := range r.Ships {
			if target.ID == c.OwnerID || !target.Alive {
				continue
			}
			if Distance(c.X, c.Z, target.X, target.Z) <= c.Radius {
				target.SlowTimer = max64(target.SlowTimer, SporeCloudSlowRefresh)
				target.SlowAmount = SporeCloudSlowPct
				target.InSporeCloud = true
			}
		}

		r.Clouds[writeIdx] = c
		writeIdx++
	}
	r.Clouds = r.Clouds[:writeIdx]
}
