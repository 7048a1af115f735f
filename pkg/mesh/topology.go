package mesh

// Edge topology checks. A closed printable surface needs every
// undirected edge shared by exactly two faces; a consistently oriented
// one additionally needs the two faces to traverse the edge in opposite
// directions.

type edge struct {
	a, b int
}

// directedEdges counts every directed edge (a->b) over all faces.
func (m *Mesh) directedEdges() map[edge]int {
	counts := make(map[edge]int, len(m.Faces)*3)
	for _, f := range m.Faces {
		counts[edge{f[0], f[1]}]++
		counts[edge{f[1], f[2]}]++
		counts[edge{f[2], f[0]}]++
	}
	return counts
}

// OpenEdges returns every directed edge that is not matched by a
// reverse edge on a neighboring face. A watertight oriented mesh
// returns an empty slice.
func (m *Mesh) OpenEdges() [][2]int {
	counts := m.directedEdges()
	var open [][2]int
	for e, n := range counts {
		rev := counts[edge{e.b, e.a}]
		for i := 0; i < n-rev; i++ {
			open = append(open, [2]int{e.a, e.b})
		}
	}
	return open
}

// IsWatertight reports whether every undirected edge is shared by
// exactly two faces.
func (m *Mesh) IsWatertight() bool {
	if len(m.Faces) == 0 {
		return false
	}
	counts := m.directedEdges()
	seen := make(map[edge]bool, len(counts))
	for e := range counts {
		u := e
		if u.b < u.a {
			u.a, u.b = u.b, u.a
		}
		if seen[u] {
			continue
		}
		seen[u] = true
		if counts[edge{u.a, u.b}]+counts[edge{u.b, u.a}] != 2 {
			return false
		}
	}
	return true
}

// IsOriented reports whether every directed edge appears exactly once
// and is matched by exactly one reverse edge. This is strictly stronger
// than IsWatertight.
func (m *Mesh) IsOriented() bool {
	if len(m.Faces) == 0 {
		return false
	}
	counts := m.directedEdges()
	for e, n := range counts {
		if n != 1 || counts[edge{e.b, e.a}] != 1 {
			return false
		}
	}
	return true
}

// EulerCharacteristic returns V - E + F counting only vertices that are
// referenced by at least one face, so dangling vertices (isolated
// occupied cells) do not skew the result. A closed genus-0 surface
// yields 2.
func (m *Mesh) EulerCharacteristic() int {
	used := make(map[int]bool, len(m.Vertices))
	edges := make(map[edge]bool, len(m.Faces)*3)
	for _, f := range m.Faces {
		used[f[0]] = true
		used[f[1]] = true
		used[f[2]] = true
		for _, e := range [3]edge{{f[0], f[1]}, {f[1], f[2]}, {f[2], f[0]}} {
			if e.b < e.a {
				e.a, e.b = e.b, e.a
			}
			edges[e] = true
		}
	}
	return len(used) - len(edges) + len(m.Faces)
}
