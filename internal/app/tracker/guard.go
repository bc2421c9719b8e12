package tracker

// ─── Delete Confirmation ────────────────────────────────────────────────────
// Deleting a day takes two clicks on the same record. The first arms the
// guard for that index; the second, on the same index, confirms. Any other
// action disarms it.

// GuardState is the state of a DeleteGuard.
type GuardState int

const (
	GuardIdle GuardState = iota
	GuardArmed
)

func (s GuardState) String() string {
	if s == GuardArmed {
		return "armed"
	}
	return "idle"
}

// DeleteGuard is the Idle | Armed(index) state machine.
type DeleteGuard struct {
	state GuardState
	index int
}

// State returns the current state.
func (g DeleteGuard) State() GuardState { return g.state }

// Armed returns the armed index.
func (g DeleteGuard) Armed() (int, bool) {
	if g.state != GuardArmed {
		return 0, false
	}
	return g.index, true
}

// ArmedFor reports whether the guard is armed for index i.
func (g DeleteGuard) ArmedFor(i int) bool {
	return g.state == GuardArmed && g.index == i
}

// Arm moves to Armed(i), replacing any earlier arming.
func (g *DeleteGuard) Arm(i int) {
	g.state = GuardArmed
	g.index = i
}

// Disarm returns to Idle.
func (g *DeleteGuard) Disarm() {
	*g = DeleteGuard{}
}

// Click applies a delete click on index i and reports whether it confirmed.
func (g *DeleteGuard) Click(i int) bool {
	if g.ArmedFor(i) {
		g.Disarm()
		return true
	}
	g.Arm(i)
	return false
}
