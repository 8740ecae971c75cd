package graphite

const noParent = -1

// Node links are indices into the owning Tree's arena.
type Node struct {
	Name     string
	Parent   int
	Children []int
}

type Tree struct {
	nodes []Node
	index map[string]int
	root  int
}

// Line is one row of the flattened stack listing.
type Line struct {
	Name  string
	Depth int
	// Last[i] reports whether the ancestor at depth i+1 (or the row itself
	// for the final element) is the last child of its parent.
	Last []bool
}

// BuildTree links every branch under its parent and roots the result at
// trunk. The trunk's own Parent field is ignored.
func BuildTree(bm *BranchMap, trunk string) (*Tree, error) {
	names := bm.Names()
	t := &Tree{
		nodes: make([]Node, len(names)),
		index: make(map[string]int, len(names)),
		root:  noParent,
	}
	for i, name := range names {
		t.nodes[i] = Node{Name: name, Parent: noParent}
		t.index[name] = i
	}

	var orphan string
	for i, name := range names {
		if name == trunk {
			continue
		}
		b, _ := bm.Get(name)
		if b.Parent == "" {
			if orphan == "" {
				orphan = name
			}
			continue
		}
		p, ok := t.index[b.Parent]
		if !ok {
			return nil, &TopologyError{Kind: MissingParent, Branch: name, Parent: b.Parent}
		}
		t.nodes[i].Parent = p
		t.nodes[p].Children = append(t.nodes[p].Children, i)
	}

	root, ok := t.index[trunk]
	if !ok {
		return nil, &TopologyError{Kind: MissingTrunk, Trunk: trunk, Known: names}
	}
	t.root = root
	if orphan != "" {
		return nil, &TopologyError{Kind: Orphan, Branch: orphan, Trunk: trunk}
	}

	reached := make([]bool, len(t.nodes))
	stack := []int{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reached[n] {
			continue
		}
		reached[n] = true
		stack = append(stack, t.nodes[n].Children...)
	}
	for i, ok := range reached {
		if !ok {
			return nil, cycleError(bm, names[i], trunk)
		}
	}
	return t, nil
}

func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

func (t *Tree) Root() string {
	if t == nil || t.root == noParent {
		return ""
	}
	return t.nodes[t.root].Name
}

func (t *Tree) Node(name string) (Node, bool) {
	if t == nil {
		return Node{}, false
	}
	i, ok := t.index[name]
	if !ok {
		return Node{}, false
	}
	return t.nodes[i], true
}

// ParentOf returns "" for the root and for unknown names.
func (t *Tree) ParentOf(name string) string {
	n, ok := t.Node(name)
	if !ok || n.Parent == noParent {
		return ""
	}
	return t.nodes[n.Parent].Name
}

func (t *Tree) ChildrenOf(name string) []string {
	n, ok := t.Node(name)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		out = append(out, t.nodes[c].Name)
	}
	return out
}

// Flatten lists branch names depth-first, parent before children.
func (t *Tree) Flatten() ([]string, error) {
	lines, err := t.Lines()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Name
	}
	return out, nil
}

func (t *Tree) Lines() ([]Line, error) {
	if t == nil || t.root == noParent {
		return nil, nil
	}
	type frame struct {
		node int
		last []bool
	}
	visited := make([]bool, len(t.nodes))
	out := make([]Line, 0, len(t.nodes))
	stack := []frame{{node: t.root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.nodes[f.node]
		if visited[f.node] {
			return nil, &TopologyError{Kind: Cycle, Branch: n.Name, Path: []string{n.Name}}
		}
		visited[f.node] = true
		out = append(out, Line{Name: n.Name, Depth: len(f.last), Last: f.last})
		for i := len(n.Children) - 1; i >= 0; i-- {
			last := make([]bool, len(f.last)+1)
			copy(last, f.last)
			last[len(f.last)] = i == len(n.Children)-1
			stack = append(stack, frame{node: n.Children[i], last: last})
		}
	}
	return out, nil
}

// FlattenBranchMap produces the same listing as Tree.Flatten straight from
// the Parent fields.
func FlattenBranchMap(bm *BranchMap, trunk string) ([]string, error) {
	var orphan string
	for _, name := range bm.Names() {
		if name == trunk {
			continue
		}
		b, _ := bm.Get(name)
		if b.Parent == "" {
			if orphan == "" {
				orphan = name
			}
			continue
		}
		if !bm.Has(b.Parent) {
			return nil, &TopologyError{Kind: MissingParent, Branch: name, Parent: b.Parent}
		}
	}
	if !bm.Has(trunk) {
		return nil, &TopologyError{Kind: MissingTrunk, Trunk: trunk, Known: bm.Names()}
	}
	if orphan != "" {
		return nil, &TopologyError{Kind: Orphan, Branch: orphan, Trunk: trunk}
	}
	visited := make(map[string]bool, bm.Len())
	out := make([]string, 0, bm.Len())
	stack := []string{trunk}
	for len(stack) > 0 {
		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[name] {
			return nil, cycleError(bm, name, trunk)
		}
		visited[name] = true
		out = append(out, name)
		children := bm.Children(name)
		for i := len(children) - 1; i >= 0; i-- {
			if children[i] == trunk {
				continue
			}
			stack = append(stack, children[i])
		}
	}
	// Every parent exists, so anything left unvisited sits on or above a cycle.
	for _, name := range bm.Names() {
		if !visited[name] {
			return nil, cycleError(bm, name, trunk)
		}
	}
	return out, nil
}

// Ancestry walks from name down to trunk. A missing parent ends the chain.
func Ancestry(bm *BranchMap, name string, trunk string) ([]*Branch, error) {
	var out []*Branch
	seen := make(map[string]bool)
	cur, ok := bm.Get(name)
	for ok {
		if seen[cur.Name] {
			return nil, cycleError(bm, name, trunk)
		}
		seen[cur.Name] = true
		out = append(out, cur)
		if cur.Name == trunk || cur.Parent == "" {
			break
		}
		cur, ok = bm.Get(cur.Parent)
	}
	return out, nil
}

// cycleError follows Parent fields from start and reports the loop it runs
// into. It falls back to an orphan error when the chain ends instead.
func cycleError(bm *BranchMap, start string, trunk string) *TopologyError {
	pos := make(map[string]int)
	var path []string
	name := start
	for {
		if i, ok := pos[name]; ok {
			loop := append(append([]string(nil), path[i:]...), name)
			return &TopologyError{Kind: Cycle, Branch: name, Path: loop}
		}
		b, ok := bm.Get(name)
		if !ok || name == trunk || b.Parent == "" {
			return &TopologyError{Kind: Orphan, Branch: start, Trunk: trunk}
		}
		pos[name] = len(path)
		path = append(path, name)
		name = b.Parent
	}
}
