package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mediamodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/media"
	projectmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/project"
)

func TestNormalizeLimit(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{0, 10},
		{-5, 10},
		{51, 10},
		{1, 1},
		{50, 50},
		{20, 20},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, normalizeLimit(tc.in))
	}
}

func TestToListItem(t *testing.T) {
	p := projectmodel.Project{
		ID:                 3,
		Type:               projectmodel.TypeWeb,
		Slug:               "portfolio-site",
		ChineseTitle:       "个人作品站",
		ChineseDescription: "基于 Gin 的站点",
		IsPublished:        true,
		Cover: &mediamodel.Media{
			OriginalFilepathURL: "https://cdn.example.com/cover.png",
		},
		Monetization: &projectmodel.ProjectMonetization{Price: 49.9},
	}

	item := toListItem(&p)
	assert.Equal(t, uint(3), item.ID)
	assert.Equal(t, int(projectmodel.TypeWeb), item.Type)
	assert.Equal(t, "portfolio-site", item.Slug)
	require.NotNil(t, item.CoverURL)
	assert.Equal(t, "https://cdn.example.com/cover.png", *item.CoverURL)
	require.NotNil(t, item.Price)
	assert.InDelta(t, 49.9, *item.Price, 1e-9)
}

func TestToListItemWithoutCoverAndPrice(t *testing.T) {
	p := projectmodel.Project{
		ID:   4,
		Type: projectmodel.TypeOther,
		Slug: "free-tool",
	}

	item := toListItem(&p)
	assert.Nil(t, item.CoverURL)
	assert.Nil(t, item.Price)
}
