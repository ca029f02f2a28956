package lifecycle

// State is the position of a Lifecycle in its startup/shutdown sequence.
type State int

const (
	StateCreated State = iota
	StateInitializing
	StateReady
	StateFailed
	StateStopping
	StateStopped
)

var stateNames = [...]string{
	StateCreated:      "Created",
	StateInitializing: "Initializing",
	StateReady:        "Ready",
	StateFailed:       "Failed",
	StateStopping:     "Stopping",
	StateStopped:      "Stopped",
}

// String implements fmt.Stringer.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}
