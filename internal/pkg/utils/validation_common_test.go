package utils

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBase64Image(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	encoded := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	data, ext, err := DecodeBase64Image(encoded)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, ".png", ext)
}

func TestDecodeBase64ImageRejectsMalformedInput(t *testing.T) {
	for _, input := range []string{
		"",
		"no-comma-here",
		"data:image/png;base64,@@not-base64@@",
		"image/png;base64," + base64.StdEncoding.EncodeToString([]byte("x")),
	} {
		_, _, err := DecodeBase64Image(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestValidateImageFormat(t *testing.T) {
	allowed := []string{".jpg", ".jpeg", ".png"}
	assert.NoError(t, ValidateImageFormat(".png", allowed))
	assert.Error(t, ValidateImageFormat(".gif", allowed))
	assert.Error(t, ValidateImageFormat("png", allowed))
}

func TestValidateImageSize(t *testing.T) {
	assert.NoError(t, ValidateImageSize(make([]byte, 1024), 1))
	assert.Error(t, ValidateImageSize(make([]byte, 2*1024*1024), 1))
}
