package core

// DefaultHoldTicks is how long a movement key counts as held after its
// last press. Terminals only report presses, so holding a key shows up as
// the keyboard's auto-repeat; the window must cover the repeat delay.
const DefaultHoldTicks = 30

// HeldKeys emulates key-held state from a stream of key presses.
// Movement actions stay active for the hold window after each press; the
// rest last a single tick.
type HeldKeys struct {
	window int
	held   map[PlayerID]map[Action]int
}

// NewHeldKeys creates a tracker with the given hold window in ticks.
func NewHeldKeys(window int) *HeldKeys {
	if window < 1 {
		window = 1
	}
	return &HeldKeys{
		window: window,
		held:   make(map[PlayerID]map[Action]int),
	}
}

func continuous(a Action) bool {
	switch a {
	case ActionLeft, ActionRight, ActionJump, ActionAttack:
		return true
	}
	return false
}

// Press records a key press.
func (h *HeldKeys) Press(id PlayerID, a Action) {
	if a == ActionNone {
		return
	}
	actions, ok := h.held[id]
	if !ok {
		actions = make(map[Action]int)
		h.held[id] = actions
	}

	ticks := 1
	if continuous(a) {
		ticks = h.window
		// Opposite directions cancel each other.
		switch a {
		case ActionLeft:
			delete(actions, ActionRight)
		case ActionRight:
			delete(actions, ActionLeft)
		}
	}
	actions[a] = ticks
}

// Frame returns the actions active this tick and ages them by one tick.
func (h *HeldKeys) Frame() MultiInputFrame {
	frame := NewMultiInputFrame()
	for id, actions := range h.held {
		for a, left := range actions {
			frame.Press(id, a)
			if left <= 1 {
				delete(actions, a)
			} else {
				actions[a] = left - 1
			}
		}
	}
	return frame
}

// Release forgets every held key.
func (h *HeldKeys) Release() {
	clear(h.held)
}
