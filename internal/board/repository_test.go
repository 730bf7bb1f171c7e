package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	boardmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/board"
)

func boardComment(id uint, parentID *uint, text string) boardmodel.BoardComment {
	return boardmodel.BoardComment{
		ID:        id,
		BoardID:   1,
		UserID:    7,
		Comment:   text,
		ParentID:  parentID,
		CreatedAt: time.Now().UTC(),
	}
}

func TestBuildCommentTreeDepth(t *testing.T) {
	p1 := uint(1)
	p2 := uint(2)

	roots := []boardmodel.BoardComment{boardComment(1, nil, "留言")}
	replies := []boardmodel.BoardComment{
		boardComment(2, &p1, "一层回复"),
		boardComment(3, &p2, "二层回复"),
	}

	tree := BuildCommentTree(roots, replies)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, uint(3), tree[0].Children[0].Children[0].ID)
}

func TestBuildCommentTreeKeepsRootOrder(t *testing.T) {
	roots := []boardmodel.BoardComment{
		boardComment(3, nil, "第三条"),
		boardComment(2, nil, "第二条"),
		boardComment(1, nil, "第一条"),
	}

	tree := BuildCommentTree(roots, nil)
	require.Len(t, tree, 3)
	assert.Equal(t, uint(3), tree[0].ID)
	assert.Equal(t, uint(2), tree[1].ID)
	assert.Equal(t, uint(1), tree[2].ID)
}
