package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanAssetPath(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"moon.png", "moon.png"},
		{"assets/moon.png", "moon.png"},
		{"/home/me/project/assets/moon.png", "moon.png"},
		{"/elsewhere/moon.png", "moon.png"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			assert.Equal(t, c.want, cleanAssetPath(c.in))
		})
	}
}

func TestDecodeSceneTextures(t *testing.T) {
	for _, name := range []string{SpaceTexture, MoonTexture, MoonNormalTexture, GithubTexture, SiteTexture} {
		t.Run(name, func(t *testing.T) {
			img, err := DecodeImage(name)
			require.NoError(t, err)
			assert.Positive(t, img.Bounds().Dx())
			assert.Positive(t, img.Bounds().Dy())
		})
	}
}

func TestDecodeMissing(t *testing.T) {
	_, err := DecodeImage("nope.png")
	assert.Error(t, err)
}
