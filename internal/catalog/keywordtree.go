package catalog

// RootKeywordID is the id of the synthetic root of every keyword tree.
const RootKeywordID ID = 0

// KeywordTree indexes keywords by parent. It is rebuilt from the keyword
// list and never mutated afterwards.
type KeywordTree struct {
	root     Keyword
	byID     map[ID]Keyword
	children map[ID][]ID
}

// NewKeywordTree builds the parent to children index. Children keep the
// order of keywords. Cycles and dangling parents are accepted as-is.
func NewKeywordTree(keywords []Keyword) *KeywordTree {
	t := &KeywordTree{
		root:     Keyword{ID: RootKeywordID},
		byID:     make(map[ID]Keyword, len(keywords)),
		children: make(map[ID][]ID),
	}
	for _, k := range keywords {
		t.byID[k.ID] = k
		t.children[k.Parent] = append(t.children[k.Parent], k.ID)
	}
	return t
}

// Root returns the synthetic root keyword.
func (t *KeywordTree) Root() Keyword {
	return t.root
}

// Keyword returns the keyword with id. The root is found under RootKeywordID.
func (t *KeywordTree) Keyword(id ID) (Keyword, bool) {
	if id == RootKeywordID {
		return t.root, true
	}
	k, ok := t.byID[id]
	return k, ok
}

// ChildrenFor returns the direct children of id in insertion order. Unknown
// ids have no children.
func (t *KeywordTree) ChildrenFor(id ID) []ID {
	children := t.children[id]
	out := make([]ID, len(children))
	copy(out, children)
	return out
}

// Len returns the number of keywords, not counting the root.
func (t *KeywordTree) Len() int {
	return len(t.byID)
}

// Walk visits every keyword reachable from the root depth-first, children in
// insertion order. depth is 1 for top-level keywords. A keyword is visited at
// most once, so cyclic input terminates. Returning false from fn skips the
// keyword's subtree.
func (t *KeywordTree) Walk(fn func(k Keyword, depth int) bool) {
	visited := make(map[ID]struct{}, len(t.byID))
	t.walk(RootKeywordID, 1, visited, fn)
}

func (t *KeywordTree) walk(parent ID, depth int, visited map[ID]struct{}, fn func(Keyword, int) bool) {
	for _, id := range t.children[parent] {
		if _, seen := visited[id]; seen {
			continue
		}
		visited[id] = struct{}{}
		k := t.byID[id]
		if fn(k, depth) {
			t.walk(id, depth+1, visited, fn)
		}
	}
}

// Unreachable returns the keywords Walk never visits.
// They sit on a parent cycle or below a missing parent. Sorted by id.
func (t *KeywordTree) Unreachable() []ID {
	reached := make(map[ID]struct{}, len(t.byID))
	t.Walk(func(k Keyword, _ int) bool {
		reached[k.ID] = struct{}{}
		return true
	})

	var out []ID
	for _, ids := range t.children {
		for _, id := range ids {
			if _, ok := reached[id]; !ok {
				out = append(out, id)
			}
		}
	}
	sortIDs(out)
	return out
}
