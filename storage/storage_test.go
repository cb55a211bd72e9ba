package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogoKey(t *testing.T) {
	key, err := LogoKey("teams", 12, "image/PNG")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "teams/12/"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	other, err := LogoKey("teams", 12, "image/png")
	require.NoError(t, err)
	assert.NotEqual(t, key, other)

	_, err = LogoKey("teams", 12, "application/pdf")
	assert.ErrorIs(t, err, ErrUnsupportedContentType)
}

func TestPublicURL(t *testing.T) {
	base, err := parsePublicBase("https://cdn.example.com/logos")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/logos/teams/1/a.png", publicURL(base, "teams/1/a.png"))
	assert.Equal(t, "https://cdn.example.com/logos/teams/1/a.png", publicURL(base, "/teams/1/a.png"))
	assert.Empty(t, publicURL(base, ""))
	assert.Empty(t, publicURL(nil, "teams/1/a.png"))

	_, err = parsePublicBase("not a url")
	assert.Error(t, err)
}

func TestR2Config_Enabled(t *testing.T) {
	assert.False(t, R2Config{AccountID: "a"}.Enabled())
	assert.True(t, R2Config{
		AccountID: "a", AccessKeyID: "k", SecretAccessKey: "s", BucketName: "b", PublicBaseURL: "https://x",
	}.Enabled())
}
