package arena

import (
	"encoding/json"
	"errors"
	"testing"
)

var errFakeSendFailed = errors.New("fake send failed")

type fakeSender struct {
	sent [][]byte
	fail bool
}

func (f *fakeSender) Send(payload []byte) error {
	if f.fail {
		return errFakeSendFailed
	}
	f.sent = append(f.sent, payload)
	return nil
}

func TestAddPlayerSpawnsShipAndEmitsJoinEffect(t *testing.T) {
	r := NewRoom("t", nil)
	sender := &fakeSender{}

	ship := r.AddPlayer("p1", "Alice", ClassVanguard, sender)

	if ship == nil || !ship.Alive {
		t.Fatal("AddPlayer should return a live ship")
	}
	if r.PlayerCount() != 1 {
		t.Errorf("player count = %d, want 1", r.PlayerCount())
	}
	var sawJoin bool
	for _, e := range r.Effects {
		if e.Kind == "player_joined" && e.Name == "Alice" {
			sawJoin = true
		}
	}
	if !sawJoin {
		t.Error("expected a player_joined effect")
	}
}

func TestRemovePlayerDropsShipAndConnection(t *testing.T) {
	r := NewRoom("t", nil)
	sender := &fakeSender{}
	r.AddPlayer("p1", "Alice", ClassVanguard, sender)

	r.RemovePlayer("p1")

	if r.PlayerCount() != 0 {
		t.Errorf("player count = %d, want 0 after remove", r.PlayerCount())
	}
	if _, ok := r.connections["p1"]; ok {
		t.Error("connection should be removed")
	}
}

func TestBroadcastDropsFailingConnections(t *testing.T) {
	r := NewRoom("t", nil)
	good := &fakeSender{}
	bad := &fakeSender{fail: true}
	r.AddPlayer("good", "Good", ClassVanguard, good)
	r.AddPlayer("bad", "Bad", ClassVanguard, bad)

	r.broadcast([]byte(`{"type":"state"}`))

	if r.PlayerCount() != 1 {
		t.Errorf("player count = %d, want 1 after dropping failing connection", r.PlayerCount())
	}
	if len(good.sent) != 1 {
		t.Errorf("good sender got %d payloads, want 1", len(good.sent))
	}
	if _, ok := r.Ships["bad"]; ok {
		t.Error("ship for the failing connection should have been removed")
	}
}

func TestQueueMessageDrainsInArrivalOrder(t *testing.T) {
	r := NewRoom("t", nil)
	ship := r.AddPlayer("p1", "Alice", ClassVanguard, &fakeSender{})

	r.QueueMessage("p1", []byte(`{"type":"move","x":10,"z":20}`))
	r.QueueMessage("p1", []byte(`{"type":"fire_start","x":5,"z":5}`))
	r.QueueMessage("p1", []byte(`{"type":"fire_aim","x":7,"z":8}`))

	r.drainInputsLocked()

	if !ship.HasMoveTarget || ship.MoveTargetX != 10 || ship.MoveTargetZ != 20 {
		t.Error("move intent was not applied")
	}
	if !ship.IsFiring {
		t.Error("fire_start intent was not applied")
	}
	if ship.FireTargetX != 7 || ship.FireTargetZ != 8 {
		t.Error("the later fire_aim should win over the earlier fire_start target")
	}
}

func TestDrainInputsSkipsChannelingShips(t *testing.T) {
	r := NewRoom("t", nil)
	ship := r.AddPlayer("p1", "Alice", ClassVanguard, &fakeSender{})
	ship.IsChanneling = true

	r.QueueMessage("p1", []byte(`{"type":"move","x":10,"z":20}`))
	r.drainInputsLocked()

	if ship.HasMoveTarget {
		t.Error("a channeling ship's intents should be dropped, not queued for later")
	}
}

func TestDrainInputsSkipsUnknownPlayer(t *testing.T) {
	r := NewRoom("t", nil)
	r.QueueMessage("ghost", []byte(`{"type":"move","x":1,"z":1}`))
	// Must not panic on a player id with no matching ship.
	r.drainInputsLocked()
}

func TestMalformedIntentIsDroppedSilently(t *testing.T) {
	r := NewRoom("t", nil)
	ship := r.AddPlayer("p1", "Alice", ClassVanguard, &fakeSender{})
	ship.HasMoveTarget = false

	r.QueueMessage("p1", []byte(`not json`))
	r.drainInputsLocked()

	if ship.HasMoveTarget {
		t.Error("malformed intent should not mutate ship state")
	}
}

func TestIdleStepKeepsPlayerCount(t *testing.T) {
	r := NewRoom("t", nil)
	s1 := r.AddPlayer("p1", "Alice", ClassVanguard, &fakeSender{})
	s2 := r.AddPlayer("p2", "Bob", ClassVanguard, &fakeSender{})
	s1.HasMoveTarget = false
	s2.HasMoveTarget = false

	before1 := r.buildSnapshotLocked()
	r.step(DT)
	after1 := r.buildSnapshotLocked()

	var beforeSnap, afterSnap wireSnapshot
	if err := json.Unmarshal(before1, &beforeSnap); err != nil {
		t.Fatalf("before snapshot did not decode: %v", err)
	}
	if err := json.Unmarshal(after1, &afterSnap); err != nil {
		t.Fatalf("after snapshot did not decode: %v", err)
	}

	if len(beforeSnap.Players) != len(afterSnap.Players) {
		t.Fatal("player count should not change across an idle tick")
	}
}

func TestNewIDsAreUnique(t *testing.T) {
	r := NewRoom("t", nil)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := r.newID("x")
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}
