package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordTreeChildren(t *testing.T) {
	t.Parallel()

	tree := NewKeywordTree([]Keyword{
		{ID: 1, Name: "a", Parent: 0},
		{ID: 2, Name: "b", Parent: 1},
		{ID: 3, Name: "c", Parent: 1},
	})

	assert.Equal(t, ids(1), tree.ChildrenFor(0))
	assert.Equal(t, ids(2, 3), tree.ChildrenFor(1))
	assert.Empty(t, tree.ChildrenFor(2))
	assert.Empty(t, tree.ChildrenFor(99))
	assert.NotNil(t, tree.ChildrenFor(99))
	assert.Equal(t, 3, tree.Len())

	root, ok := tree.Keyword(RootKeywordID)
	require.True(t, ok)
	assert.Equal(t, Keyword{}, root)
	assert.Equal(t, root, tree.Root())

	_, ok = tree.Keyword(99)
	assert.False(t, ok)
}

func TestKeywordTreeKeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	tree := NewKeywordTree([]Keyword{
		{ID: 9, Name: "z", Parent: 0},
		{ID: 4, Name: "m", Parent: 0},
		{ID: 7, Name: "a", Parent: 0},
	})
	assert.Equal(t, ids(9, 4, 7), tree.ChildrenFor(0))
}

func TestKeywordTreeChildrenAreCopies(t *testing.T) {
	t.Parallel()

	tree := NewKeywordTree([]Keyword{{ID: 1}, {ID: 2}})
	children := tree.ChildrenFor(0)
	children[0] = 42
	assert.Equal(t, ids(1, 2), tree.ChildrenFor(0))
}

type visit struct {
	id    ID
	depth int
}

func walkAll(tree *KeywordTree) []visit {
	var out []visit
	tree.Walk(func(k Keyword, depth int) bool {
		out = append(out, visit{k.ID, depth})
		return true
	})
	return out
}

func TestKeywordTreeWalk(t *testing.T) {
	t.Parallel()

	tree := NewKeywordTree([]Keyword{
		{ID: 1, Parent: 0},
		{ID: 2, Parent: 1},
		{ID: 3, Parent: 2},
		{ID: 4, Parent: 1},
		{ID: 5, Parent: 0},
	})

	assert.Equal(t, []visit{{1, 1}, {2, 2}, {3, 3}, {4, 2}, {5, 1}}, walkAll(tree))

	var pruned []ID
	tree.Walk(func(k Keyword, _ int) bool {
		pruned = append(pruned, k.ID)
		return k.ID != 2
	})
	assert.Equal(t, ids(1, 2, 4, 5), pruned)
}

func TestKeywordTreeWalkTerminatesOnCycles(t *testing.T) {
	t.Parallel()

	tree := NewKeywordTree([]Keyword{
		{ID: 1, Parent: 0},
		{ID: 2, Parent: 3},
		{ID: 3, Parent: 2},
		{ID: 4, Parent: 4},
		{ID: 5, Parent: 77},
	})

	assert.Equal(t, []visit{{1, 1}}, walkAll(tree))
	assert.Equal(t, ids(2, 3, 4, 5), tree.Unreachable())
}

func TestLoadKeywordsTreeFromCatalog(t *testing.T) {
	t.Parallel()

	s := loadedSession(t)
	tree, err := s.LoadKeywordsTree()
	require.NoError(t, err)

	assert.Equal(t, ids(1, 4), tree.ChildrenFor(0))
	assert.Equal(t, ids(2, 3), tree.ChildrenFor(1))
	assert.Empty(t, tree.Unreachable())

	again, err := s.LoadKeywordsTree()
	require.NoError(t, err)
	assert.NotSame(t, tree, again, "the tree is rebuilt on every call")
	assert.Equal(t, tree.ChildrenFor(1), again.ChildrenFor(1))
}
