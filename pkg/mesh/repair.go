package mesh

// Hole filling. The heightfield builder produces closed meshes by
// construction, but assembled or externally loaded geometry can carry
// open boundary loops. FillHoles closes each loop with a centroid fan,
// which is sufficient for the small planar holes this module can
// encounter; it makes no attempt at CAD-grade manifold repair.

// boundaryLoops chains the unmatched directed edges into closed loops.
// Open chains that never return to their start (which a triangle soup
// can produce) are dropped.
func (m *Mesh) boundaryLoops() [][]int {
	counts := m.directedEdges()

	// A boundary edge a->b has no face traversing b->a. The hole
	// perimeter is walked against the face winding (b->a) so that the
	// fill triangles come out wound like the missing faces would be.
	next := make(map[int]int)
	for e, n := range counts {
		if n > counts[edge{e.b, e.a}] {
			next[e.b] = e.a
		}
	}

	var loops [][]int
	visited := make(map[int]bool, len(next))
	for start := range next {
		if visited[start] {
			continue
		}
		loop := []int{start}
		visited[start] = true
		cur := next[start]
		closed := false
		for {
			if cur == start {
				closed = true
				break
			}
			if visited[cur] {
				break
			}
			visited[cur] = true
			loop = append(loop, cur)
			n, ok := next[cur]
			if !ok {
				break
			}
			cur = n
		}
		if closed && len(loop) >= 3 {
			loops = append(loops, loop)
		}
	}
	return loops
}

// FillHoles closes every boundary loop with a fan of triangles around
// the loop centroid and returns the number of faces added. Loops of
// three vertices are closed with a single triangle.
func (m *Mesh) FillHoles() int {
	added := 0
	for _, loop := range m.boundaryLoops() {
		if len(loop) == 3 {
			m.AddFace(loop[0], loop[1], loop[2])
			added++
			continue
		}
		var centroid Vec3
		for _, vi := range loop {
			centroid = centroid.Add(m.Vertices[vi])
		}
		centroid = centroid.Scale(1 / float64(len(loop)))
		ci := m.AddVertex(centroid)
		for i, vi := range loop {
			vj := loop[(i+1)%len(loop)]
			m.AddFace(ci, vi, vj)
			added++
		}
	}
	return added
}
