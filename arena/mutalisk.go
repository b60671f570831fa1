package arena

// updateMutalisks advances every leviathan minion: acquire a target if it
// has none or its target died, close distance, attack on cooldown within
// range, and expire on health or lifetime.
func (r *Room) updateMutalisks(dt float64) {
	writeIdx := 0
	for _, m := range r.Mutalisks {
		if r.stepMutalisk(m, dt) {
			r.Mutalisks[writeIdx] = m
			writeIdx++
		}
	}
	r.Mutalisks = r.Mutalisks[:writeIdx]
}

func (r *Room) stepMutalisk(m *Mutalisk, dt float64) bool {
	m.Lifetime -= dt
	if m.Lifetime <= 0 || m.Health <= 0 {
		return false
	}
	if m.AttackCooldown > 0 {
		m.AttackCooldown = max64(0, m.AttackCooldown-dt)
	}

	target, ok := r.Ships[m.TargetID]
	if !ok || !target.Alive {
		nearest := r.nearestLivingEnemyTo(m.X, m.Z, m.OwnerID)
		if nearest == nil {
			return true // no target available yet, keep waiting
		}
		m.TargetID = nearest.ID
		target = nearest
	}

	dist := Distance(m.X, m.Z, target.X, target.Z)
	if dist <= MutaliskAttackRange {
		if m.AttackCooldown <= 0 {
			r.ApplyDamage(target, MutaliskDamage, r.Ships[m.OwnerID])
			m.AttackCooldown = MutaliskAttackCD
		}
		return true
	}

	dx := target.X - m.X
	dz := target.Z - m.Z
	m.X += (dx / dist) * MutaliskSpeed * dt
	m.Z += (dz / dist) * MutaliskSpeed * dt
	return true
}
