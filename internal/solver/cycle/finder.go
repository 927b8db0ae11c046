// Package cycle implements the Cuckoo Cycle path-walking algorithm
// : given the trimmed residual edge set, locate a simple
// 42-cycle by incrementally building a forest and splicing each new edge.
package cycle

import "github.com/opencuckoo/cuckaroo29/internal/graph"

// NoCycle is returned by Find when the full edge set is processed without
// any 42-length closure. This is a normal outcome; the caller advances to
// the next nonce seed.
type NoCycle struct{}

func (NoCycle) Error() string { return "cycle: no 42-cycle found in trimmed edge set" }

// maxPathLen bounds the path walk; the accepted proof size is the longest cycle
// this solver ever accepts, so no path need be followed further.
const maxPathLen = graph.ProofSize

// finder holds the incremental cuckoo forest: a sparse node -> node mapping,
// using a map rather than a dense [2^30]uint32 array since the live node set
// after trimming is a small fraction of the full node space.
type finder struct {
	cuckoo map[graph.Node]graph.Node
}

func newFinder() *finder {
	return &finder{cuckoo: make(map[graph.Node]graph.Node)}
}

// next follows one hop of the forest; ok is false when n has no parent yet.
func (f *finder) next(n graph.Node) (graph.Node, bool) {
	v, ok := f.cuckoo[n]
	return v, ok
}

// path walks the forest from n, returning the visited nodes in order
// (n first), stopping when a node has no parent or maxPathLen is reached.
func (f *finder) path(n graph.Node) []graph.Node {
	p := make([]graph.Node, 0, maxPathLen)
	p = append(p, n)
	cur := n
	for len(p) < maxPathLen {
		nxt, ok := f.next(cur)
		if !ok {
			break
		}
		cur = nxt
		p = append(p, cur)
	}
	return p
}

// splice reverses path's edges into the forest so that following it now
// leads out through the new edge, then roots it at other.
func (f *finder) splice(path []graph.Node, other graph.Node) {
	for i := len(path) - 1; i > 0; i-- {
		f.cuckoo[path[i]] = path[i-1]
	}
	f.cuckoo[path[0]] = other
}

// Found is a located 42-cycle: the participating edges, in discovery order.
type Found struct {
	Edges [graph.ProofSize]graph.Edge
}

// Find scans edges in order, maintaining a cuckoo forest, and returns the
// first simple cycle of exactly graph.ProofSize length encountered. Cycles
// of any other length are rejected (the walk simply continues), since
// Cuckaroo-29's valid proof length is fixed at 42.
func Find(edges []graph.Edge) (Found, error) {
	f := newFinder()

	for _, e := range edges {
		u := e.Node0()
		v := e.Node1()

		pu := f.path(u)
		pv := f.path(v)

		if pu[len(pu)-1] == pv[len(pv)-1] {
			// Paths share a root, but may also share a longer suffix below
			// it from earlier splices; find the nearest point where they
			// actually join before counting the cycle's length.
			i, j := joinIndices(pu, pv)
			if length := i + j + 1; length == graph.ProofSize {
				if found, ok := extractCycle(pu[:i+1], pv[:j+1], e); ok {
					return found, nil
				}
			}
			continue
		}

		// No shared root: splice the new edge into the forest, reversing
		// the shorter path so it now roots at the other endpoint.
		if len(pu) < len(pv) {
			f.splice(pu, v)
		} else {
			f.splice(pv, u)
		}
	}

	return Found{}, NoCycle{}
}

// joinIndices finds where two paths that end at the same forest root
// actually converge. Re-splicing over the run can give two paths a common
// suffix longer than the terminal root alone, so the naive pu/pv lengths
// overcount shared nodes; this aligns both paths by remaining distance to
// the root and walks toward their endpoints until the nodes first match,
// mirroring the reference miner's alignment correction.
func joinIndices(pu, pv []graph.Node) (int, int) {
	i := len(pu) - 1
	j := len(pv) - 1
	min := i
	if j < min {
		min = j
	}
	i -= min
	j -= min
	for pu[i] != pv[j] {
		i++
		j++
	}
	return i, j
}

// extractCycle reconstructs the ordered edge list of a closed cycle from
// the two paths that met at a common root, plus the edge that closed it.
func extractCycle(pu, pv []graph.Node, closing graph.Edge) (Found, bool) {
	var edges []graph.Edge
	for i := 0; i < len(pu)-1; i++ {
		edges = append(edges, graph.PackEdge(evenFirst(pu[i], pu[i+1])))
	}
	for i := 0; i < len(pv)-1; i++ {
		edges = append(edges, graph.PackEdge(evenFirst(pv[i], pv[i+1])))
	}
	edges = append(edges, closing)

	if len(edges) != graph.ProofSize {
		return Found{}, false
	}

	var f Found
	copy(f.Edges[:], edges)
	return f, true
}

// evenFirst returns (even, odd) from an unordered forest-edge node pair so
// PackEdge's (node0, node1) convention holds regardless of walk direction.
func evenFirst(a, b graph.Node) (graph.Node, graph.Node) {
	if a.Even() {
		return a, b
	}
	return b, a
}
