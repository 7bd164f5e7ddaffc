package lifecycle

// Machine holds the state for one session. It is not safe for concurrent
// use; callers apply every action from a single goroutine.
type Machine struct {
	state  State
	policy Policy
	gen    uint64
}

// NewMachine returns an Idle machine.
func NewMachine(p Policy) *Machine {
	return &Machine{policy: p}
}

// Next allocates a new fetch generation.
func (m *Machine) Next() uint64 {
	m.gen++
	return m.gen
}

// Dispatch applies a in order.
func (m *Machine) Dispatch(a Action) {
	m.state = Reduce(m.state, a, m.policy)
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Policy returns the completion policy.
func (m *Machine) Policy() Policy { return m.policy }
