package arena

import (
	"encoding/json"
	"testing"
)

func TestRoundToPrecision(t *testing.T) {
	tests := []struct {
		v    float64
		n    int
		want float64
	}{
		{1.23456, 2, 1.23},
		{1.23456, 3, 1.235},
		{-9.876, 2, -9.88},
		{100.0, 1, 100.0},
	}
	for _, tt := range tests {
		if got := round(tt.v, tt.n); got != tt.want {
			t.Errorf("round(%v, %d) = %v, want %v", tt.v, tt.n, got, tt.want)
		}
	}
}

func TestClassCooldownsOnlyIncludesOwnClass(t *testing.T) {
	s := NewShip("v", "victim", ClassVanguard)
	cds := classCooldowns(s)
	if _, ok := cds["warp"]; !ok {
		t.Error("vanguard cooldown block missing warp")
	}
	if _, ok := cds["yamato"]; ok {
		t.Error("vanguard cooldown block should not include dreadnought abilities")
	}

	d := NewShip("d", "dread", ClassDreadnought)
	dcds := classCooldowns(d)
	if _, ok := dcds["bombardment"]; !ok {
		t.Error("dreadnought cooldown block missing bombardment")
	}
	if _, ok := dcds["warp"]; ok {
		t.Error("dreadnought cooldown block should not include vanguard abilities")
	}

	lev := NewShip("l", "lev", ClassLeviathan)
	lcds := classCooldowns(lev)
	if _, ok := lcds["mutalisk"]; !ok {
		t.Error("leviathan cooldown block missing mutalisk")
	}
}

func TestSnapshotExcludesDeadMissilesAndExplodedZones(t *testing.T) {
	r := NewRoom("t", nil)
	s := NewShip("a", "A", ClassVanguard)
	r.Ships[s.ID] = s
	r.Missiles = append(r.Missiles, &Missile{ID: "m1", Alive: true}, &Missile{ID: "m2", Alive: false})
	r.Zones = append(r.Zones, &BombardmentZone{ID: "z1", Exploded: false}, &BombardmentZone{ID: "z2", Exploded: true})

	payload := r.buildSnapshotLocked()

	var decoded wireSnapshot
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("snapshot did not decode: %v", err)
	}
	if len(decoded.Missiles) != 1 || decoded.Missiles[0].ID != "m1" {
		t.Errorf("missiles = %+v, want only m1", decoded.Missiles)
	}
	if len(decoded.Bombardments) != 1 || decoded.Bombardments[0].ID != "z1" {
		t.Errorf("bombardments = %+v, want only z1", decoded.Bombardments)
	}
}

func TestSnapshotRoundsFields(t *testing.T) {
	r := NewRoom("t", nil)
	s := NewShip("a", "A", ClassVanguard)
	s.X = 1.23456
	s.Z = -9.87654
	s.Rotation = 0.123456789
	r.Ships[s.ID] = s

	payload := r.buildSnapshotLocked()
	var decoded wireSnapshot
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("snapshot did not decode: %v", err)
	}
	p := decoded.Players[0]
	if p.X != 1.23 {
		t.Errorf("x = %v, want 1.23", p.X)
	}
	if p.Z != -9.88 {
		t.Errorf("z = %v, want -9.88", p.Z)
	}
	if p.Rotation != 0.123 {
		t.Errorf("rotation = %v, want 0.123", p.Rotation)
	}
}

func TestSnapshotTypeAndTick(t *testing.T) {
	r := NewRoom("t", nil)
	r.Tick = 42

	payload := r.buildSnapshotLocked()
	var decoded wireSnapshot
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("snapshot did not decode: %v", err)
	}
	if decoded.Type != "state" {
		t.Errorf("type = %q, want %q", decoded.Type, "state")
	}
	if decoded.Tick != 42 {
		t.Errorf("tick = %d, want 42", decoded.Tick)
	}
}
