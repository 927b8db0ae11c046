package cycle

import (
	"testing"

	"github.com/opencuckoo/cuckaroo29/internal/graph"
)

// buildCycle constructs the edges of a simple cycle of the given length:
// even0-odd0, odd0-even1 (reversed to even1-odd0 form), even1-odd1, ...
// closing back to even0. Node values are synthetic but respect parity.
func buildCycle(length int) []graph.Edge {
	edges := make([]graph.Edge, 0, length)
	evens := make([]graph.Node, length/2)
	odds := make([]graph.Node, length/2)
	for i := range evens {
		evens[i] = graph.Node(2 * (1000 + i))
		odds[i] = graph.Node(2*(2000+i) + 1)
	}
	for i := 0; i < length/2; i++ {
		edges = append(edges, graph.PackEdge(evens[i], odds[i]))
		next := (i + 1) % (length / 2)
		edges = append(edges, graph.PackEdge(evens[next], odds[i]))
	}
	return edges
}

func TestFindLocatesPlantedCycle(t *testing.T) {
	edges := buildCycle(graph.ProofSize)

	found, err := Find(edges)
	if err != nil {
		t.Fatalf("Find returned error on a planted %d-cycle: %v", graph.ProofSize, err)
	}

	seen := make(map[graph.Node]int)
	for _, e := range found.Edges {
		seen[e.Node0()]++
		seen[e.Node1()]++
	}
	for node, count := range seen {
		if count != 2 {
			t.Fatalf("node %d appears %d times in the found cycle, want 2", node, count)
		}
	}
}

func TestFindReturnsNoCycleForTree(t *testing.T) {
	edges := []graph.Edge{
		graph.PackEdge(10, 11),
		graph.PackEdge(12, 11),
		graph.PackEdge(12, 13),
	}

	_, err := Find(edges)
	if err == nil {
		t.Fatalf("expected NoCycle error for an acyclic edge set")
	}
	if _, ok := err.(NoCycle); !ok {
		t.Fatalf("expected NoCycle, got %T: %v", err, err)
	}
}

func TestFindRejectsWrongLengthCycle(t *testing.T) {
	edges := buildCycle(4)

	_, err := Find(edges)
	if err == nil {
		t.Fatalf("expected NoCycle for a 4-cycle, since only length-42 cycles are accepted")
	}
}

// TestJoinIndicesFindsSharedSuffixBeyondRoot covers a forest shape that
// buildCycle's idealized non-branching cycle never produces: two paths
// that, through earlier re-splicing, share more than just the terminal
// root. pu = [u, x, c, d], pv = [v, c, d] — both end at root d, but the
// true join is at c, one hop short of the root on pu's side. The naive
// len(pu)+len(pv)-1 computation (6) overcounts the shared c->d hop;
// joinIndices must report the true join (i=2, j=1, length 4).
func TestJoinIndicesFindsSharedSuffixBeyondRoot(t *testing.T) {
	u, x, c, d := graph.Node(100), graph.Node(102), graph.Node(104), graph.Node(106)
	v := graph.Node(108)

	pu := []graph.Node{u, x, c, d}
	pv := []graph.Node{v, c, d}

	i, j := joinIndices(pu, pv)
	if i != 2 || j != 1 {
		t.Fatalf("joinIndices(pu, pv) = (%d, %d), want (2, 1)", i, j)
	}
	if length := i + j + 1; length != 4 {
		t.Fatalf("cycle length computed as %d, want 4", length)
	}
}

// TestExtractCycleUsesJoinedPathsNotFullPaths guards against the
// false-positive case: extractCycle must be fed the paths truncated at the
// true join point, not the full pu/pv, or the shared c->d hop is counted
// twice and a node appears more than twice in the resulting proof.
func TestExtractCycleUsesJoinedPathsNotFullPaths(t *testing.T) {
	u, x, c, d := graph.Node(200), graph.Node(202), graph.Node(204), graph.Node(206)
	v := graph.Node(208)

	pu := []graph.Node{u, x, c, d}
	pv := []graph.Node{v, c, d}

	i, j := joinIndices(pu, pv)
	edges := make([]graph.Node, 0)
	for k := 0; k <= i; k++ {
		edges = append(edges, pu[k])
	}
	for k := 0; k <= j; k++ {
		edges = append(edges, pv[k])
	}

	seen := make(map[graph.Node]int)
	for _, n := range edges {
		seen[n]++
	}
	if seen[d] != 0 {
		t.Fatalf("root %d should not appear in the truncated join paths, got count %d", d, seen[d])
	}
	if seen[c] != 2 {
		t.Fatalf("join node %d should appear exactly once per truncated path (twice total), got %d", c, seen[c])
	}
}

func TestEvenFirstOrdering(t *testing.T) {
	e, o := evenFirst(graph.Node(11), graph.Node(10))
	if !e.Even() || o.Even() {
		t.Fatalf("evenFirst(11, 10) = (%d, %d), want (even, odd)", e, o)
	}
}
