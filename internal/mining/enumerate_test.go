package mining

import (
	"context"
	"testing"
)

// Invariant 3 — clique property: every emitted PatternInstance is a
// clique over its typed members in the NeighborGraph.
func TestEnumerateCliqueProperty(t *testing.T) {
	points := []Point{
		{ID: 0, Type: "A", X: 0, Y: 0},
		{ID: 1, Type: "B", X: 0, Y: 0.001},
		{ID: 2, Type: "C", X: 0.001, Y: 0},
		{ID: 3, Type: "C", X: 5, Y: 5},
	}
	radius := 0.01
	ti, err := BuildTypeIndex(points, radius)
	if err != nil {
		t.Fatalf("BuildTypeIndex: %v", err)
	}
	ng, err := BuildNeighborGraph(context.Background(), ti, radius, 0)
	if err != nil {
		t.Fatalf("BuildNeighborGraph: %v", err)
	}

	ta, _ := ti.TypeByLabel("A")
	tb, _ := ti.TypeByLabel("B")
	tc, _ := ti.TypeByLabel("C")

	pattern := Pattern{Types: sortedTypes([]TypeID{ta, tb, tc})}
	enumerator := NewInstanceEnumerator(ti, ng, 0)
	instances, err := enumerator.Enumerate(pattern)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(instances) != 1 {
		t.Fatalf("expected exactly one instance, got %d", len(instances))
	}

	inst := instances[0]
	for i := 0; i < len(inst); i++ {
		for j := 0; j < len(inst); j++ {
			if i == j {
				continue
			}
			if !contains(ng.Neighbors(inst[i], pattern.Types[j]), inst[j]) {
				t.Fatalf("instance %v is not a clique: %d not a neighbor of type %v", inst, inst[i], pattern.Types[j])
			}
		}
	}
}

func TestIntersectSorted(t *testing.T) {
	cases := []struct {
		a, b, want []int
	}{
		{[]int{1, 2, 3}, []int{2, 3, 4}, []int{2, 3}},
		{[]int{}, []int{1}, nil},
		{[]int{1, 2}, []int{3, 4}, nil},
	}
	for _, c := range cases {
		got := intersectSorted(c.a, c.b)
		if len(got) != len(c.want) {
			t.Fatalf("intersectSorted(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("intersectSorted(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
			}
		}
	}
}
