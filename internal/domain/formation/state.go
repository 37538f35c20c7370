package formation

// State is a step of a formation run.
type State string

// Formation run states. Any state may transition to StateFallbackRandom on error.
const (
	StateValidating     State = "validating"
	StateProfiling      State = "profiling"
	StateStrategizing   State = "strategizing"
	StateRepairing      State = "repairing"
	StateFallbackRandom State = "fallback_random"
	StateDone           State = "done"
)

// String implements fmt.Stringer.
func (s State) String() string { return string(s) }
