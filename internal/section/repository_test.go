package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sectionmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/section"
)

func node(id uint, parentID *uint, slug string) sectionmodel.Section {
	return sectionmodel.Section{
		ID:           id,
		Type:         sectionmodel.TypeBlog,
		Slug:         slug,
		ChineseTitle: slug,
		ParentID:     parentID,
	}
}

func TestBuildTree(t *testing.T) {
	p1 := uint(1)
	p2 := uint(2)

	flat := []sectionmodel.Section{
		node(1, nil, "tech"),
		node(2, &p1, "tech-go"),
		node(3, &p2, "tech-go-web"),
		node(4, nil, "life"),
	}

	tree := BuildTree(flat)
	require.Len(t, tree, 2)

	tech := tree[0]
	assert.Equal(t, "tech", tech.Slug)
	require.Len(t, tech.Children, 1)
	assert.Equal(t, "tech-go", tech.Children[0].Slug)
	require.Len(t, tech.Children[0].Children, 1)
	assert.Equal(t, "tech-go-web", tech.Children[0].Children[0].Slug)

	life := tree[1]
	assert.NotNil(t, life.Children)
	assert.Empty(t, life.Children)
}

func TestBuildTreeEmptyInput(t *testing.T) {
	tree := BuildTree(nil)
	assert.NotNil(t, tree)
	assert.Empty(t, tree)
}

func TestBuildTreeOrphanChildDropped(t *testing.T) {
	missing := uint(99)
	flat := []sectionmodel.Section{
		node(1, nil, "root"),
		node(2, &missing, "orphan"),
	}

	tree := BuildTree(flat)
	require.Len(t, tree, 1)
	assert.Equal(t, "root", tree[0].Slug)
}
