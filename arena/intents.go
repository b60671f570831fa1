package arena

import "encoding/json"

// IntentType enumerates the inbound client message kinds.
type IntentType string

const (
	IntentMove      IntentType = "move"
	IntentFireStart IntentType = "fire_start"
	IntentFireStop  IntentType = "fire_stop"
	IntentFireAim   IntentType = "fire_aim"
	IntentAbility   IntentType = "ability"
)

// Intent is one decoded client message, queued alongside the sender's
// player ID. Raw messages are queued verbatim; unknown wire types decode
// to ok=false when the room drains its queue and are dropped there.
type Intent struct {
	Type      IntentType
	X, Z      float64
	AbilityID AbilitySlot
}

type wireIntent struct {
	Type string  `json:"type"`
	ID   string  `json:"id"`
	X    float64 `json:"x"`
	Z    float64 `json:"z"`
}

// ParseIntent decodes one raw inbound JSON message into an Intent. The
// bool return is false for malformed JSON or an unrecognized type; callers
// drop those silently rather than erroring.
func ParseIntent(raw []byte) (Intent, bool) {
	var w wireIntent
	if err := json.Unmarshal(raw, &w); err != nil {
		return Intent{}, false
	}
	switch IntentType(w.Type) {
	case IntentMove:
		return Intent{Type: IntentMove, X: w.X, Z: w.Z}, true
	case IntentFireStart:
		return Intent{Type: IntentFireStart, X: w.X, Z: w.Z}, true
	case IntentFireStop:
		return Intent{Type: IntentFireStop}, true
	case IntentFireAim:
		return Intent{Type: IntentFireAim, X: w.X, Z: w.Z}, true
	case IntentAbility:
		switch AbilitySlot(w.ID) {
		case SlotQ, SlotW, SlotE, SlotR:
			return Intent{Type: IntentAbility, AbilityID: AbilitySlot(w.ID), X: w.X, Z: w.Z}, true
		default:
			return Intent{}, false
		}
	default:
		return Intent{}, false
	}
}

// QueuedIntent pairs a decoded intent with the player id it came from.
type QueuedIntent struct {
	PlayerID string
	Intent   Intent
}
