package media

import (
	"testing"

	"github.com/stretchr/testify/assert"

	mediamodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/media"
)

func TestDetectType(t *testing.T) {
	cases := []struct {
		contentType string
		want        mediamodel.MediaType
	}{
		{"image/png", mediamodel.TypeImage},
		{"image/jpeg", mediamodel.TypeImage},
		{"video/mp4", mediamodel.TypeVideo},
		{"audio/mpeg", mediamodel.TypeAudio},
		{"application/pdf", mediamodel.TypeDocument},
		{"text/markdown", mediamodel.TypeDocument},
		{"application/zip", mediamodel.TypeOther},
		{"", mediamodel.TypeOther},
	}

	for _, tc := range cases {
		t.Run(tc.contentType, func(t *testing.T) {
			assert.Equal(t, tc.want, detectType(tc.contentType))
		})
	}
}
