package embed

// components labels the connected components of the fuzzy graph with a
// breadth-first walk from every unvisited vertex, in index order. It returns
// the label of each vertex and the number of components.
//
// Complexity: O(N + E).
func components(n int, edges []edge) (labels []int, count int) {
	adj := make([][]int, n)
	for _, e := range edges {
		if e.weight > 0 {
			adj[e.head] = append(adj[e.head], e.tail)
		}
	}

	labels = make([]int, n)
	for i := range labels {
		labels[i] = -1
	}
	queue := make([]int, 0, n)
	var start, v int
	for start = 0; start < n; start++ {
		if labels[start] >= 0 {
			continue
		}
		labels[start] = count
		queue = append(queue[:0], start)
		for len(queue) > 0 {
			v, queue = queue[0], queue[1:]
			for _, w := range adj[v] {
				if labels[w] < 0 {
					labels[w] = count
					queue = append(queue, w)
				}
			}
		}
		count++
	}

	return labels, count
}
