package depgraph

// Cycles returns every strongly connected component of size > 1 (plus
// any single node with a self-loop), computed lazily with Tarjan's
// algorithm on first call and cached for the lifetime of the graph. This
// generalizes the teacher's circular_dependencies field, which the
// Python builder leaves for callers to populate; Tarjan is the standard
// choice here since nothing in the retrieval pack does graph SCC work
// for us to follow instead.
func (g *Graph) Cycles() [][]string {
	g.sccOnce.Do(func() {
		g.sccCycles = g.tarjanSCC()
	})
	return g.sccCycles
}

type tarjanState struct {
	index   map[string]int
	lowlink map[string]int
	onStack map[string]bool
	stack   []string
	counter int
	result  [][]string
	graph   *Graph
}

func (g *Graph) tarjanSCC() [][]string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	st := &tarjanState{
		index:   make(map[string]int),
		lowlink: make(map[string]int),
		onStack: make(map[string]bool),
		graph:   g,
	}

	for node := range g.nodes {
		if _, visited := st.index[node]; !visited {
			st.strongconnect(node)
		}
	}
	return st.result
}

func (st *tarjanState) strongconnect(v string) {
	st.index[v] = st.counter
	st.lowlink[v] = st.counter
	st.counter++
	st.stack = append(st.stack, v)
	st.onStack[v] = true

	for w := range st.graph.importsByModule[v] {
		if _, visited := st.index[w]; !visited {
			st.strongconnect(w)
			if st.lowlink[w] < st.lowlink[v] {
				st.lowlink[v] = st.lowlink[w]
			}
		} else if st.onStack[w] {
			if st.index[w] < st.lowlink[v] {
				st.lowlink[v] = st.index[w]
			}
		}
	}

	if st.lowlink[v] == st.index[v] {
		var component []string
		for {
			n := len(st.stack) - 1
			w := st.stack[n]
			st.stack = st.stack[:n]
			st.onStack[w] = false
			component = append(component, w)
			if w == v {
				break
			}
		}
		if len(component) > 1 || st.graph.importsByModule[component[0]][component[0]] {
			st.result = append(st.result, component)
		}
	}
}
