package ldm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseASCIIGUIDNormalizesToCanonicalForm(t *testing.T) {
	g, err := parseASCIIGUID("550e8400-e29b-41d4-a716-446655440000\x00\x00\x00")
	require.NoError(t, err)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", g.String())
}

func TestParseASCIIGUIDRejectsGarbage(t *testing.T) {
	_, err := parseASCIIGUID("not-a-guid")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalid))
}

func TestRawGUIDMatchesEquivalentASCIIForm(t *testing.T) {
	ascii, err := parseASCIIGUID("550e8400-e29b-41d4-a716-446655440000")
	require.NoError(t, err)

	raw := rawGUID(ascii[:])
	assert.Equal(t, ascii, raw)
}
