package lamp

import "sync"

// Mock is an in-memory lamp for demo mode and tests. It records every
// transition so tests can assert on the exact on/off sequence.
type Mock struct {
	mu          sync.Mutex
	on          bool
	transitions []bool
}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Set(on bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.on = on
	m.transitions = append(m.transitions, on)
	return nil
}

// On reports the current lamp state.
func (m *Mock) On() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.on
}

// Transitions returns a copy of every Set call seen so far, in order.
func (m *Mock) Transitions() []bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]bool, len(m.transitions))
	copy(out, m.transitions)
	return out
}
