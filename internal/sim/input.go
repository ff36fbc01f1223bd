package sim

// Trigger is a discrete, edge-triggered input event.
type Trigger int

const (
	TriggerConfirm   Trigger = iota // Enter
	TriggerBack                     // Escape
	TriggerCustomize                // C
	TriggerQuit                     // Q, quit to menu
	TriggerRestart                  // Space pressed
	TriggerPrev                     // Left arrow
	TriggerNext                     // Right arrow
	TriggerShoot                    // Primary click at (TargetX, TargetY)
)

// Input is everything the input collaborator hands the core for one frame.
type Input struct {
	Triggers         []Trigger
	Move             MoveInput
	TargetX, TargetY float64
}

// Has reports whether t was triggered this frame.
func (in *Input) Has(t Trigger) bool {
	for _, x := range in.Triggers {
		if x == t {
			return true
		}
	}
	return false
}
