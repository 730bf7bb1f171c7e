package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/par4d15e/blogbackendserver-sub001/config"
	mediamodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/media"
)

func TestNewAvatarMedia(t *testing.T) {
	url := "https://avatars.githubusercontent.com/u/12345"
	m := newAvatarMedia(42, url)

	assert.NotEmpty(t, m.UUID)
	assert.Equal(t, uint(42), m.UserID)
	assert.Equal(t, mediamodel.TypeImage, m.Type)
	assert.True(t, m.IsAvatar)
	assert.Equal(t, "avatar_42.png", m.FileName)

	// 头像不做规格转换, 三个地址一致
	assert.Equal(t, url, m.OriginalFilepathURL)
	require.NotNil(t, m.ThumbnailFilepathURL)
	assert.Equal(t, url, *m.ThumbnailFilepathURL)
	require.NotNil(t, m.WatermarkFilepathURL)
	assert.Equal(t, url, *m.WatermarkFilepathURL)
}

func TestDefaultAvatarURL(t *testing.T) {
	old := config.Conf
	defer func() { config.Conf = old }()

	config.Conf = &config.AppConfig{}
	config.Conf.App.Domain = "https://api.example.com"

	assert.Equal(t, "https://api.example.com/static/image/default_avatar.png", defaultAvatarURL())
}
