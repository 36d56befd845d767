package lattice

// Order maps site IDs to their 3D index in a cubic lattice.
type Order interface {
	// IDToIndex converts an ID to its 3-index equivalent in the grid.
	IDToIndex(id uint64) [3]int
	// IndexToID converts a 3-index to its ID.
	IndexToID(i [3]int) uint64
	// Span returns the number of sites along each side of the grid.
	Span() [3]int
}

// Type assertions
var (
	_ Order = &ZMajorUnigrid{ }
)

// ZMajorUnigrid is the Order of a z-major uniform grid: z varies fastest.
// See the Order interface for documentation of the methods.
type ZMajorUnigrid struct {
	n int
	n64 uint64
}

// NewZMajorUnigrid returns a z-major uniform grid with width n on each side.
func NewZMajorUnigrid(n int) *ZMajorUnigrid {
	return &ZMajorUnigrid{ n, uint64(n) }
}

func (g *ZMajorUnigrid) IDToIndex(id uint64) [3]int {
	return [3]int{
		int(id / (g.n64 * g.n64)),
		int((id / g.n64) % g.n64),
		int(id % g.n64),
	}
}

func (g *ZMajorUnigrid) IndexToID(i [3]int) uint64 {
	return uint64(i[2] + i[1]*g.n + i[0]*g.n*g.n)
}

func (g *ZMajorUnigrid) Span() [3]int { return [3]int{ g.n, g.n, g.n } }
