package arena

import "testing"

func TestApplyDamageShieldThenHull(t *testing.T) {
	tests := []struct {
		name            string
		initialShields  float64
		initialHull     float64
		raw             float64
		expectedShields float64
		expectedHull    float64
	}{
		{"shields fully absorb", 100, 100, 50, 50, 100},
		{"shields partially absorb, remainder to hull", 30, 100, 50, 0, 80},
		{"shields already down, all to hull", 0, 100, 50, 0, 50},
		{"zero damage is a no-op", 100, 100, 0, 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRoom("t", nil)
			target := NewShip("v", "victim", ClassVanguard)
			target.Shields = tt.initialShields
			target.Hull = tt.initialHull

			r.ApplyDamage(target, tt.raw, nil)

			if target.Shields != tt.expectedShields {
				t.Errorf("shields = %v, want %v", target.Shields, tt.expectedShields)
			}
			if target.Hull != tt.expectedHull {
				t.Errorf("hull = %v, want %v", target.Hull, tt.expectedHull)
			}
		})
	}
}

func TestApplyDamageDeathClearsState(t *testing.T) {
	r := NewRoom("t", nil)
	attacker := NewShip("a", "attacker", ClassVanguard)
	victim := NewShip("v", "victim", ClassVanguard)
	victim.Shields = 0
	victim.Hull = 10
	victim.IsFiring = true
	victim.IsChanneling = true
	victim.ChannelTimer = 1
	victim.ChannelTargetID = "a"
	victim.RepairBotsTimer = 3

	r.ApplyDamage(victim, 50, attacker)

	if victim.Alive {
		t.Fatal("victim should be dead")
	}
	if victim.Hull != 0 {
		t.Errorf("hull should clamp to 0, got %v", victim.Hull)
	}
	if victim.RespawnTimer != RespawnTime {
		t.Errorf("respawn timer = %v, want %v", victim.RespawnTimer, RespawnTime)
	}
	if victim.Deaths != 1 {
		t.Errorf("deaths = %d, want 1", victim.Deaths)
	}
	if attacker.Kills != 1 {
		t.Errorf("attacker kills = %d, want 1", attacker.Kills)
	}
	if victim.IsFiring || victim.IsChanneling || victim.RepairBotsTimer != 0 {
		t.Error("death should clear firing/channel/repair-bot state")
	}

	var sawKill bool
	for _, e := range r.Effects {
		if e.Kind == "kill" && e.Killer == attacker.Name && e.Victim == victim.Name {
			sawKill = true
		}
	}
	if !sawKill {
		t.Error("expected a kill effect naming killer and victim")
	}
}

func TestApplyDamageNoOpOnDeadTarget(t *testing.T) {
	r := NewRoom("t", nil)
	target := NewShip("v", "victim", ClassVanguard)
	target.Alive = false
	target.Hull = 0
	target.Shields = 0

	r.ApplyDamage(target, 999, nil)

	if target.Hull != 0 || target.Shields != 0 {
		t.Error("damage applied to an already-dead target")
	}
}

func TestDreadnoughtDamageReduction(t *testing.T) {
	r := NewRoom("t", nil)
	target := NewShip("d", "tank", ClassDreadnought)
	target.Shields = 0
	target.Hull = StatsFor(ClassDreadnought).MaxHull

	r.ApplyDamage(target, 100, nil)

	want := StatsFor(ClassDreadnought).MaxHull - 100*(1-DreadnoughtDamageRed)
	if target.Hull != want {
		t.Errorf("hull = %v, want %v (15%% damage reduction)", target.Hull, want)
	}
}

func TestArmorDebuffMultipliesIncomingDamage(t *testing.T) {
	r := NewRoom("t", nil)
	target := NewShip("v", "victim", ClassVanguard)
	target.Shields = 0
	target.Hull = 100
	target.ArmorDebuffTimer = BileSwellDebuffTime
	target.ArmorDebuffAmount = BileSwellArmorDebuff

	r.ApplyDamage(target, 100, nil)

	want := 100 - 100*(1+BileSwellArmorDebuff)
	if want < 0 {
		want = 0
	}
	if target.Hull != want {
		t.Errorf("hull = %v, want %v", target.Hull, want)
	}
}
