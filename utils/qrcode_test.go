package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func TestQRGeneratorEncode(t *testing.T) {
	g := NewQRGenerator()

	png, err := g.Encode("https://certs.example.com/verify/abc-123", 256)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngSignature), "output should be a PNG")
}

func TestQRGeneratorDeterministic(t *testing.T) {
	g := NewQRGenerator()

	first, err := g.Encode("https://certs.example.com/verify/abc-123", 256)
	require.NoError(t, err)
	second, err := g.Encode("https://certs.example.com/verify/abc-123", 256)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same payload and size must produce identical bytes")

	other, err := g.Encode("https://certs.example.com/verify/def-456", 256)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestQRGeneratorEmptyPayload(t *testing.T) {
	g := NewQRGenerator()

	_, err := g.Encode("", 256)
	assert.Error(t, err)
}

func TestQRGeneratorDefaultSize(t *testing.T) {
	g := NewQRGenerator()

	png, err := g.Encode("payload", 0)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
