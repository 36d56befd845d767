package restart

import (
	"fmt"
)

// Comm is the subset of a message-passing communicator needed to share a
// restart file between processes. Broadcasts overwrite buf on every rank
// except root with root's contents. All ranks must make the same sequence of
// calls with equal-length buffers.
type Comm interface {
	Rank() int
	Size() int
	BcastInt64(buf []int64, root int) error
	BcastFloat64(buf []float64, root int) error
}

// Type assertions
var (
	_ Comm = Serial{ }
	_ Comm = &Member{ }
)

// Serial is a Comm containing a single process.
type Serial struct{ }

func (Serial) Rank() int { return 0 }
func (Serial) Size() int { return 1 }
func (Serial) BcastInt64(buf []int64, root int) error { return checkRoot(root, 1) }
func (Serial) BcastFloat64(buf []float64, root int) error {
	return checkRoot(root, 1)
}

func checkRoot(root, size int) error {
	if root < 0 || root >= size {
		return fmt.Errorf("Root rank %d is outside the communicator, which " +
			"has %d ranks.", root, size)
	}
	return nil
}

// group is shared state of the members of an in-process communicator. inbox[r]
// receives every message sent to rank r.
type group struct {
	size int
	inbox []chan interface{}
}

// Member is one rank of an in-process communicator created by NewGroup. Each
// Member must be used by a single goroutine.
type Member struct {
	g *group
	rank int
}

// NewGroup returns the n members of an in-process communicator. The members
// are meant to run on separate goroutines, standing in for separate
// processes.
func NewGroup(n int) []*Member {
	g := &group{ size: n, inbox: make([]chan interface{}, n) }
	for i := range g.inbox { g.inbox[i] = make(chan interface{}, 16) }

	out := make([]*Member, n)
	for i := range out { out[i] = &Member{ g, i } }
	return out
}

func (m *Member) Rank() int { return m.rank }
func (m *Member) Size() int { return m.g.size }

func (m *Member) BcastInt64(buf []int64, root int) error {
	if err := checkRoot(root, m.g.size); err != nil { return err }

	if m.rank == root {
		for r := 0; r < m.g.size; r++ {
			if r == root { continue }
			m.g.inbox[r] <- append([]int64{ }, buf...)
		}
		return nil
	}

	msg, ok := (<-m.g.inbox[m.rank]).([]int64)
	if !ok {
		return fmt.Errorf("Rank %d expected an int64 broadcast, but " +
			"received a different type.", m.rank)
	} else if len(msg) != len(buf) {
		return fmt.Errorf("Rank %d expected a broadcast of length %d, but " +
			"received %d values.", m.rank, len(buf), len(msg))
	}
	copy(buf, msg)
	return nil
}

func (m *Member) BcastFloat64(buf []float64, root int) error {
	if err := checkRoot(root, m.g.size); err != nil { return err }

	if m.rank == root {
		for r := 0; r < m.g.size; r++ {
			if r == root { continue }
			m.g.inbox[r] <- append([]float64{ }, buf...)
		}
		return nil
	}

	msg, ok := (<-m.g.inbox[m.rank]).([]float64)
	if !ok {
		return fmt.Errorf("Rank %d expected a float64 broadcast, but " +
			"received a different type.", m.rank)
	} else if len(msg) != len(buf) {
		return fmt.Errorf("Rank %d expected a broadcast of length %d, but " +
			"received %d values.", m.rank, len(buf), len(msg))
	}
	copy(buf, msg)
	return nil
}
