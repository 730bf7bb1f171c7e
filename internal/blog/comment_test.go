package blog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	blogmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/blog"
	usermodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/user"
)

func ptrUint(v uint) *uint { return &v }

func comment(id, blogID uint, parentID *uint, text string) blogmodel.BlogComment {
	return blogmodel.BlogComment{
		ID:        id,
		BlogID:    blogID,
		UserID:    100,
		Comment:   text,
		ParentID:  parentID,
		CreatedAt: time.Now().UTC(),
	}
}

func TestBuildCommentTreeNested(t *testing.T) {
	roots := []blogmodel.BlogComment{
		comment(1, 5, nil, "根评论A"),
		comment(2, 5, nil, "根评论B"),
	}
	replies := []blogmodel.BlogComment{
		comment(3, 5, ptrUint(1), "A的回复"),
		comment(4, 5, ptrUint(3), "回复的回复"),
		comment(5, 5, ptrUint(1), "A的第二条回复"),
	}

	tree := BuildCommentTree(roots, replies)
	require.Len(t, tree, 2)

	a := tree[0]
	assert.Equal(t, uint(1), a.ID)
	require.Len(t, a.Children, 2)
	assert.Equal(t, uint(3), a.Children[0].ID)
	assert.Equal(t, uint(5), a.Children[1].ID)

	// 第三层挂在第二层下
	require.Len(t, a.Children[0].Children, 1)
	assert.Equal(t, uint(4), a.Children[0].Children[0].ID)

	// 没有回复的根节点 children 为空切片而非 nil
	b := tree[1]
	assert.Empty(t, b.Children)
	assert.NotNil(t, b.Children)
}

func TestBuildCommentTreeCarriesUsername(t *testing.T) {
	name := "visitor"
	root := comment(1, 5, nil, "hello")
	root.User = &usermodel.User{Username: &name}

	tree := BuildCommentTree([]blogmodel.BlogComment{root}, nil)
	require.Len(t, tree, 1)
	require.NotNil(t, tree[0].Username)
	assert.Equal(t, "visitor", *tree[0].Username)
}

func TestBuildCommentTreeIgnoresOrphanReply(t *testing.T) {
	roots := []blogmodel.BlogComment{comment(1, 5, nil, "根评论")}
	// 父节点已被删除的回复不应出现在树里
	replies := []blogmodel.BlogComment{comment(9, 5, ptrUint(404), "孤儿回复")}

	tree := BuildCommentTree(roots, replies)
	require.Len(t, tree, 1)
	assert.Empty(t, tree[0].Children)
}

func TestBuildCommentTreeEmptyRoots(t *testing.T) {
	tree := BuildCommentTree(nil, nil)
	assert.NotNil(t, tree)
	assert.Empty(t, tree)
}
