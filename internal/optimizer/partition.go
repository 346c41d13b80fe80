package optimizer

// partition splits p into subproblems whose constraints share no variable.
// Blocks keep the declaration order of their variables and constraints and
// are ordered by their first variable. Constraints without terms are dropped.
func partition(p *Problem) []*Problem {
	index := make(map[VarID]int, len(p.Variables))
	for j, v := range p.Variables {
		index[v.ID] = j
	}

	parent := make([]int, len(p.Variables))
	for j := range parent {
		parent[j] = j
	}
	var find func(int) int
	find = func(j int) int {
		if parent[j] != j {
			parent[j] = find(parent[j])
		}
		return parent[j]
	}
	for _, c := range p.Constraints {
		if len(c.Terms) == 0 {
			continue
		}
		root := find(index[c.Terms[0].Var])
		for _, t := range c.Terms[1:] {
			if other := find(index[t.Var]); other != root {
				if other < root {
					root, other = other, root
				}
				parent[other] = root
			}
		}
	}

	blocks := make(map[int]*Problem)
	var order []int
	for j, v := range p.Variables {
		root := find(j)
		b, ok := blocks[root]
		if !ok {
			b = &Problem{Name: p.Name, ObjectiveStep: p.ObjectiveStep}
			if p.Hint != nil {
				b.Hint = make(map[VarID]int64)
			}
			blocks[root] = b
			order = append(order, root)
		}
		b.Variables = append(b.Variables, v)
		if h, ok := p.Hint[v.ID]; ok {
			b.Hint[v.ID] = h
		}
	}
	for _, c := range p.Constraints {
		if len(c.Terms) == 0 {
			continue
		}
		b := blocks[find(index[c.Terms[0].Var])]
		b.Constraints = append(b.Constraints, c)
	}

	out := make([]*Problem, 0, len(order))
	for _, root := range order {
		out = append(out, blocks[root])
	}
	return out
}
