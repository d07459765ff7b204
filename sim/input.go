package sim

// Control identifies one flight input
type Control int

const (
	ControlForward Control = iota
	ControlReverse
	ControlTurnLeft
	ControlTurnRight
	ControlBoost

	controlCount
)

var controlNames = [controlCount]string{
	ControlForward:   "forward",
	ControlReverse:   "reverse",
	ControlTurnLeft:  "turnLeft",
	ControlTurnRight: "turnRight",
	ControlBoost:     "boost",
}

// Controls returns every control in declaration order
func Controls() []Control {
	cs := make([]Control, 0, controlCount)
	for c := Control(0); c < controlCount; c++ {
		cs = append(cs, c)
	}
	return cs
}

func (c Control) String() string {
	if c < 0 || c >= controlCount {
		return "unknown"
	}
	return controlNames[c]
}

// ParseControl maps an identifier such as "turnLeft" to its Control
func ParseControl(name string) (Control, bool) {
	for c, n := range controlNames {
		if n == name {
			return Control(c), true
		}
	}
	return 0, false
}

// InputState records which controls are held.
// Writers update it between frames; the flight controller reads it once per frame.
type InputState struct {
	pressed [controlCount]bool
}

// Set records the held state of a control. Unknown controls are ignored.
func (in *InputState) Set(c Control, down bool) {
	if c < 0 || c >= controlCount {
		return
	}
	in.pressed[c] = down
}

// Pressed reports whether a control is held
func (in *InputState) Pressed(c Control) bool {
	if c < 0 || c >= controlCount {
		return false
	}
	return in.pressed[c]
}

// Reset releases every control
func (in *InputState) Reset() {
	in.pressed = [controlCount]bool{}
}
